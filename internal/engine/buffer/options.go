package buffer

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithTabWidth sets the tab stop distance used for column geometry.
func WithTabWidth(width int) Option {
	return func(b *Buffer) {
		if width > 0 {
			b.tabWidth = width
		}
	}
}
