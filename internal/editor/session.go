// Package editor ties the editing core together into a Session: one
// document with its caret, bracket matcher and key dispatcher.
//
// A Session is the single owner of all mutable state. Every call that
// changes the document, the selection or the dialect takes the session
// lock, so key handling on the input goroutine and dialect reloads from
// the config watcher never interleave.
package editor

import (
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/sqledit/internal/config"
	"github.com/dshills/sqledit/internal/engine"
	"github.com/dshills/sqledit/internal/engine/bracket"
	"github.com/dshills/sqledit/internal/engine/cursor"
	"github.com/dshills/sqledit/internal/highlight"
	"github.com/dshills/sqledit/internal/input/expand"
	"github.com/dshills/sqledit/internal/input/key"
	"github.com/dshills/sqledit/internal/input/keymap"
	"github.com/dshills/sqledit/internal/log"
)

// Session is one editing session.
type Session struct {
	mu sync.Mutex

	id      string
	doc     *engine.Document
	cur     *cursor.Model
	matcher *bracket.Matcher
	keys    *keymap.Dispatcher
	dialect *highlight.Dialect
	logger  *log.Logger

	onReload []func(*highlight.Dialect)

	// construction settings
	content      string
	tabWidth     int
	side         bracket.Side
	visibleLines int
	autoIndent   bool
	readOnly     bool
}

// Option configures a Session.
type Option func(*Session)

// WithContent sets the initial text.
func WithContent(text string) Option {
	return func(s *Session) { s.content = text }
}

// WithTabWidth sets the tab width used for column geometry.
func WithTabWidth(n int) Option {
	return func(s *Session) { s.tabWidth = n }
}

// WithDialect sets the SQL dialect. The default is ANSI.
func WithDialect(d *highlight.Dialect) Option {
	return func(s *Session) { s.dialect = d }
}

// WithDispatcher sets the key dispatcher. The default uses
// DefaultBindings with no expander.
func WithDispatcher(d *keymap.Dispatcher) Option {
	return func(s *Session) { s.keys = d }
}

// WithBracketSide sets which side of the caret the matcher tests.
func WithBracketSide(side bracket.Side) Option {
	return func(s *Session) { s.side = side }
}

// WithVisibleLines sets the page size.
func WithVisibleLines(n int) Option {
	return func(s *Session) { s.visibleLines = n }
}

// WithAutoIndent controls auto-indent on line breaks.
func WithAutoIndent(on bool) Option {
	return func(s *Session) { s.autoIndent = on }
}

// WithReadOnly makes every edit fail with engine.ErrReadOnly.
func WithReadOnly() Option {
	return func(s *Session) { s.readOnly = true }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// New creates a session.
func New(opts ...Option) (*Session, error) {
	s := &Session{
		id:           uuid.New().String(),
		visibleLines: cursor.DefaultVisibleLines,
		autoIndent:   true,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = log.Discard()
	}
	s.logger = s.logger.With("session", s.id[:8])

	if s.dialect == nil {
		s.dialect = highlight.ANSIDialect()
	}
	if s.keys == nil {
		table, err := keymap.NewDefaultTable()
		if err != nil {
			return nil, fmt.Errorf("building default key table: %w", err)
		}
		s.keys = keymap.NewDispatcher(table)
	}

	docOpts := []engine.Option{
		engine.WithContent(s.content),
		engine.WithScanner(s.dialect.Scanner()),
	}
	if s.tabWidth > 0 {
		docOpts = append(docOpts, engine.WithTabWidth(s.tabWidth))
	}
	if s.readOnly {
		docOpts = append(docOpts, engine.WithReadOnly())
	}
	s.doc = engine.New(docOpts...)
	s.content = ""

	s.cur = cursor.New(loggedDocument{s.doc, s},
		cursor.WithVisibleLines(s.visibleLines),
		cursor.WithAutoIndent(s.autoIndent),
	)
	s.matcher = bracket.New(s.doc, s.side)

	s.logger.Info(log.CatEdit, "session started",
		"dialect", s.dialect.Name, "lines", s.doc.LineCount())
	return s, nil
}

// FromConfig creates a session from cfg: its dialect, key bindings,
// expander and editor settings. The returned function releases the
// expander and must be called when the session is done.
func FromConfig(cfg *config.Config, logger *log.Logger, opts ...Option) (*Session, func() error, error) {
	dialect, err := cfg.LoadDialect()
	if err != nil {
		return nil, nil, err
	}
	exp, closeFn, err := cfg.Expander()
	if err != nil {
		return nil, nil, err
	}
	keys, err := cfg.Dispatcher(exp)
	if err != nil {
		_ = closeFn()
		return nil, nil, err
	}

	base := []Option{
		WithDialect(dialect),
		WithDispatcher(keys),
		WithTabWidth(cfg.Editor.TabWidth),
		WithVisibleLines(cfg.Editor.VisibleLines),
		WithAutoIndent(cfg.Editor.AutoIndent),
		WithBracketSide(cfg.Side()),
		WithLogger(logger),
	}
	s, err := New(append(base, opts...)...)
	if err != nil {
		_ = closeFn()
		return nil, nil, err
	}
	return s, closeFn, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// HandleKey dispatches one chord and executes the resulting command.
// It reports whether the chord did anything.
func (s *Session) HandleKey(c key.Chord) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cmd, ok := s.keys.Dispatch(c, caretContext{s})
	if !ok {
		s.logger.Debug(log.CatInput, "unbound", "chord", c)
		return false, nil
	}
	s.logger.Debug(log.CatInput, "dispatch", "chord", c, "action", cmd.Action)
	return true, s.execute(cmd)
}

// Execute runs an action as if its chord had been pressed.
func (s *Session) Execute(a keymap.Action) error {
	return s.Run(keymap.Command{Action: a})
}

// Run executes a fully specified command.
func (s *Session) Run(cmd keymap.Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.execute(cmd)
}

// ApplyEdit applies an edit that did not come from the caret, such as
// a paste from outside or a collaborator's change, and moves the
// selection along with the text.
func (s *Session) ApplyEdit(offset, deleteLength int, text string) (engine.Change, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, err := s.doc.ApplyEdit(offset, deleteLength, text)
	if err != nil {
		return ch, err
	}
	s.cur.Transform(ch)
	s.logChange("external edit", ch)
	return ch, nil
}

// ReloadDialect switches to d and re-lexes the document. The keyword
// table is rebuilt from d alone; nothing carries over from the previous
// dialect.
func (s *Session) ReloadDialect(d *highlight.Dialect) error {
	if err := d.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.dialect = d
	s.doc.SetScanner(d.Scanner())
	s.logger.Info(log.CatDialect, "dialect loaded",
		"name", d.Name, "words", d.Table().Len(), "lines", s.doc.LineCount())
	handlers := slices.Clone(s.onReload)
	s.mu.Unlock()

	for _, fn := range handlers {
		fn(d)
	}
	return nil
}

// OnDialectReload registers fn to run after every successful dialect
// reload, once the document has been re-lexed. fn runs without the
// session lock held and may call back into the session.
func (s *Session) OnDialectReload(fn func(*highlight.Dialect)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onReload = append(s.onReload, fn)
}

// ReloadDialectFile loads a dialect file and switches to it. On error
// the current dialect stays in place.
func (s *Session) ReloadDialectFile(path string) error {
	d, err := highlight.LoadDialect(path)
	if err != nil {
		s.logger.ErrorErr(log.CatDialect, "dialect reload failed", err, "path", path)
		return err
	}
	return s.ReloadDialect(d)
}

// Read accessors. Each takes the lock, so results are consistent with
// one another only within a single call.

// Caret returns the caret offset.
func (s *Session) Caret() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur.Caret()
}

// Selection returns the current selection.
func (s *Session) Selection() cursor.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur.Selection()
}

// SelectedText returns the selected text; rectangular selections are
// joined with newlines.
func (s *Session) SelectedText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur.SelectedText()
}

// Text returns the whole document.
func (s *Session) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Text()
}

// LineCount returns the number of lines.
func (s *Session) LineCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.LineCount()
}

// LineRunes returns a copy of a line's text.
func (s *Session) LineRunes(line int) ([]rune, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	runes, err := s.doc.LineRunes(line)
	return slices.Clone(runes), err
}

// Tokens returns a copy of a line's token chain. Unlike the document's
// own view, the copy stays valid after later edits.
func (s *Session) Tokens(line int) []highlight.Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.doc.Tokens(line))
}

// MatchingBracket returns the bracket next to the caret and its match.
func (s *Session) MatchingBracket() (at, match int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.matcher.Pair(s.cur.Caret())
}

// Overwrite reports whether overwrite mode is on.
func (s *Session) Overwrite() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur.Overwrite()
}

// Dialect returns the active dialect.
func (s *Session) Dialect() *highlight.Dialect {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dialect
}

// SetVisibleLines updates the page size, as reported by the view.
func (s *Session) SetVisibleLines(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.SetVisibleLines(n)
}

// SetSelection replaces the selection.
func (s *Session) SetSelection(sel cursor.Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.SetSelection(sel)
}

// SetRectangularSelection selects display columns [startCol, endCol)
// on lines startLine through endLine.
func (s *Session) SetRectangularSelection(startLine, startCol, endLine, endCol int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.SetRectangularSelection(startLine, startCol, endLine, endCol)
}

// loggedDocument logs the edits the caret model makes.
type loggedDocument struct {
	*engine.Document
	s *Session
}

func (d loggedDocument) ApplyEdit(offset, deleteLength int, text string) (engine.Change, error) {
	ch, err := d.Document.ApplyEdit(offset, deleteLength, text)
	if err == nil {
		d.s.logChange("edit", ch)
	}
	return ch, err
}

// caretContext gives the dispatcher read access to a locked session.
type caretContext struct {
	s *Session
}

// WordBeforeCaret implements keymap.Context.
func (c caretContext) WordBeforeCaret() string {
	return c.s.wordBeforeCaret()
}

func (s *Session) wordBeforeCaret() string {
	sel := s.cur.Selection()
	if !sel.IsEmpty() {
		return ""
	}
	caret := sel.Head
	line, err := s.doc.OffsetToLine(caret)
	if err != nil {
		return ""
	}
	start, _ := s.doc.LineToOffset(line)
	runes, _ := s.doc.LineRunes(line)
	return expand.WordBefore(runes, caret-start)
}

func (s *Session) logChange(msg string, ch engine.Change) {
	if !s.logger.Enabled(log.LevelDebug) {
		return
	}
	s.logger.Debug(log.CatEdit, msg,
		"offset", ch.Edit.Offset, "deleted", ch.Edit.DeletedLen, "inserted", ch.Edit.InsertedLen)
	s.logger.Debug(log.CatLexer, "relexed",
		"first", ch.Relex.First, "last", ch.Relex.Last, "converged", ch.Relex.Converged)
}
