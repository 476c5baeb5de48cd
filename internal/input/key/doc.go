// Package key provides key chord types and parsing for the input system.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Key: Identifies a keyboard key (special keys, function keys, or runes)
//   - Modifier: Represents modifier keys (Ctrl, Alt, Shift, Meta)
//   - Chord: A single key press with modifiers, comparable and canonical
//
// # Key Specifications
//
// Key specifications can be written in multiple formats:
//
//   - Simple keys: "a", "A", "1", "Enter", "Escape"
//   - With modifiers: "Ctrl+S", "Alt+F4", "Ctrl+Shift+Left"
//   - Angle notation: "<C-s>", "<A-f>", "<C-S-Left>", "<CR>", "<Esc>"
//   - Bare dash notation: "C-s", "C-S-Left"
//
// Terminal events are converted with FromTcell.
package key
