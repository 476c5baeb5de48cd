package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dshills/sqledit/internal/editor"
	"github.com/dshills/sqledit/internal/engine/bracket"
	"github.com/dshills/sqledit/internal/engine/cursor"
)

func newMatchCmd(c *cli) *cobra.Command {
	var side string

	cmd := &cobra.Command{
		Use:   "match <file> <offset>",
		Short: "Find the bracket matching the one next to an offset",
		Long: `Find the bracket matching the one adjacent to a caret offset.

Brackets inside comments and string literals never match. The file may
be "-" for stdin. Prints "AT MATCH" as character offsets, or "none".

Examples:
  sqledit match query.sql 17
  sqledit match --side after query.sql 16`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			caret, err := strconv.Atoi(args[1])
			if err != nil || caret < 0 {
				return fmt.Errorf("invalid offset %q", args[1])
			}
			text, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			var opts []editor.Option
			if side != "" {
				sd, err := bracket.ParseSide(side)
				if err != nil {
					return err
				}
				opts = append(opts, editor.WithBracketSide(sd))
			}
			s, closeFn, err := c.session(text, opts...)
			if err != nil {
				return err
			}
			defer func() { _ = closeFn() }()

			s.SetSelection(cursor.NewCursorSelection(caret))
			at, match, ok := s.MatchingBracket()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "none")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d %d\n", at, match)
			return nil
		},
	}

	cmd.Flags().StringVar(&side, "side", "", "caret side to test: before, after or either")
	return cmd
}
