package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/dshills/sqledit/internal/config/watcher"
	"github.com/dshills/sqledit/internal/editor"
	"github.com/dshills/sqledit/internal/highlight"
	"github.com/dshills/sqledit/internal/log"
)

func newTokensCmd(c *cli) *cobra.Command {
	var (
		plain    bool
		list     bool
		watch    bool
		category string
	)

	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Highlight SQL or list its tokens",
		Long: `Tokenize a SQL file (or stdin) with the configured dialect.

By default each line is printed with terminal colors. --list prints one
token per line instead, and --category keeps only one category:

  LINE:COL  CATEGORY  TEXT

With --watch the dialect file is watched and the output is printed
again after every change, until interrupted.

Examples:
  sqledit tokens query.sql
  sqledit tokens --dialect mysql --list < dump.sql
  sqledit tokens --dialect-file warehouse.yaml --watch query.sql`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, argOrEmpty(args))
			if err != nil {
				return err
			}
			s, closeFn, err := c.session(text)
			if err != nil {
				return err
			}
			defer func() { _ = closeFn() }()

			p := tokenPrinter{theme: highlight.DefaultTheme(), list: list}
			if plain {
				p.theme = highlight.PlainTheme()
			}
			if category != "" {
				cat, ok := highlight.CategoryFromString(category)
				if !ok {
					return fmt.Errorf("unknown category %q", category)
				}
				p.list, p.only = true, &cat
			}
			if err := p.print(cmd, s); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			return c.watchTokens(cmd, s, func() error {
				return p.print(cmd, s)
			})
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "disable colors")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "list tokens instead of rendering")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-print when the dialect file changes")
	cmd.Flags().StringVar(&category, "category", "", "list only tokens of this category (implies --list)")
	return cmd
}

// tokenPrinter writes a session's lines as styled text or as a token
// list, optionally limited to one category.
type tokenPrinter struct {
	theme *highlight.Theme
	list  bool
	only  *highlight.Category
}

func (p tokenPrinter) print(cmd *cobra.Command, s *editor.Session) error {
	out := cmd.OutOrStdout()
	for line := range s.LineCount() {
		runes, err := s.LineRunes(line)
		if err != nil {
			return err
		}
		tokens := s.Tokens(line)
		if !p.list {
			fmt.Fprintln(out, p.theme.RenderLine(runes, tokens))
			continue
		}
		pos := 0
		for _, tok := range tokens {
			end := min(pos+tok.Length, len(runes))
			if p.only == nil || *p.only == tok.Category {
				fmt.Fprintf(out, "%d:%d\t%s\t%q\n", line+1, pos+1, tok.Category, string(runes[pos:end]))
			}
			pos = end
		}
	}
	return nil
}

// watchTokens reloads the session's dialect whenever the dialect file
// changes and calls render after each reload. It returns when the command
// context is done or the process is interrupted.
func (c *cli) watchTokens(cmd *cobra.Command, s *editor.Session, render func() error) error {
	path := c.cfg.DialectPath()
	if path == "" {
		return errors.New("--watch needs a dialect file (--dialect-file or [dialect] file)")
	}

	w, err := watcher.New(watcher.WithErrorHandler(func(err error) {
		c.logger.ErrorErr(log.CatConfig, "watch failed", err, "path", path)
	}))
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	reloaded := make(chan struct{}, 1)
	s.OnDialectReload(func(*highlight.Dialect) {
		select {
		case reloaded <- struct{}{}:
		default:
		}
	})
	if err := s.WatchDialect(w, path); err != nil {
		return err
	}
	w.Start()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-reloaded:
			fmt.Fprintf(cmd.OutOrStdout(), "-- dialect %s reloaded\n", s.Dialect().Name)
			if err := render(); err != nil {
				return err
			}
		}
	}
}
