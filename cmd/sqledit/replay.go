package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/dshills/sqledit/internal/highlight"
	"github.com/dshills/sqledit/internal/input/key"
)

// step is one element of a replay script: a chord, or text to type.
type step struct {
	chord key.Chord
	text  string
	typed bool
}

func newReplayCmd(c *cli) *cobra.Command {
	var (
		keys     string
		keysFile string
		tokens   bool
		caret    bool
	)

	cmd := &cobra.Command{
		Use:   "replay [file]",
		Short: "Replay a key sequence against a document",
		Long: `Load a document (empty when no file is given) and feed it a key
sequence, then print the resulting text.

A key sequence is whitespace separated. Each element is either a chord
in any notation the key parser accepts, or a Go-quoted string whose
characters are typed one at a time:

  "select * frm t" C-Left C-Left Left "o"

Examples:
  sqledit replay --keys '"sf" Tab "t"'
  sqledit replay query.sql --keys-file edits.keys --tokens`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script := keys
			if keysFile != "" {
				if keys != "" {
					return errors.New("--keys and --keys-file are mutually exclusive")
				}
				data, err := os.ReadFile(keysFile)
				if err != nil {
					return fmt.Errorf("reading key file: %w", err)
				}
				script = string(data)
			}
			steps, err := parseScript(script)
			if err != nil {
				return err
			}

			var text string
			if len(args) > 0 {
				if text, err = readInput(cmd, args[0]); err != nil {
					return err
				}
			}
			s, closeFn, err := c.session(text)
			if err != nil {
				return err
			}
			defer func() { _ = closeFn() }()

			for i, st := range steps {
				chords := []key.Chord{st.chord}
				if st.typed {
					chords = textChords(st.text)
				}
				for _, ch := range chords {
					handled, err := s.HandleKey(ch)
					if err != nil {
						return fmt.Errorf("step %d (%s): %w", i+1, ch, err)
					}
					if !handled {
						return fmt.Errorf("step %d: %s is not bound", i+1, ch)
					}
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, s.Text())
			if !strings.HasSuffix(s.Text(), "\n") {
				fmt.Fprintln(out)
			}
			if caret {
				sel := s.Selection()
				fmt.Fprintf(out, "caret %d anchor %d\n", sel.Head, sel.Anchor)
			}
			if tokens {
				return tokenPrinter{theme: highlight.PlainTheme(), list: true}.print(cmd, s)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&keys, "keys", "k", "", "key sequence to replay")
	cmd.Flags().StringVar(&keysFile, "keys-file", "", "read the key sequence from a file")
	cmd.Flags().BoolVar(&tokens, "tokens", false, "list the final tokens")
	cmd.Flags().BoolVar(&caret, "caret", false, "print the final caret and anchor")
	return cmd
}

// parseScript splits a key sequence into steps. Lines starting with '#'
// are comments.
func parseScript(script string) ([]step, error) {
	var steps []step
	for n, line := range strings.Split(script, "\n") {
		rest := strings.TrimSpace(line)
		if strings.HasPrefix(rest, "#") {
			continue
		}
		for rest != "" {
			if rest[0] == '"' || rest[0] == '`' {
				quoted, err := strconv.QuotedPrefix(rest)
				if err != nil {
					return nil, fmt.Errorf("line %d: bad string near %q", n+1, rest)
				}
				text, _ := strconv.Unquote(quoted)
				steps = append(steps, step{text: text, typed: true})
				rest = strings.TrimLeftFunc(rest[len(quoted):], unicode.IsSpace)
				continue
			}
			spec, tail := rest, ""
			if i := strings.IndexFunc(rest, unicode.IsSpace); i >= 0 {
				spec, tail = rest[:i], rest[i:]
			}
			chord, err := key.Parse(spec)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", n+1, err)
			}
			steps = append(steps, step{chord: chord})
			rest = strings.TrimLeftFunc(tail, unicode.IsSpace)
		}
	}
	return steps, nil
}

// textChords returns the chords that type text. A newline presses Enter
// and a tab presses Tab.
func textChords(text string) []key.Chord {
	chords := make([]key.Chord, 0, len(text))
	for _, r := range text {
		switch r {
		case '\n':
			chords = append(chords, key.NewSpecial(key.KeyEnter, key.ModNone))
		case '\t':
			chords = append(chords, key.NewSpecial(key.KeyTab, key.ModNone))
		default:
			chords = append(chords, key.NewRune(r, key.ModNone))
		}
	}
	return chords
}
