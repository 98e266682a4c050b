// ABOUTME: resolve command: classify a dependency argument like npm would
// ABOUTME: Relative paths resolve against the workspace root

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mauromedda/pkgkit/internal/specifier"
)

func (a *app) resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <name@spec | path | url>",
		Short: "Show how a dependency reference is classified",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := specifier.ParseArgWith(a.parser(false), args[0], a.root)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "type:\t%s\n", res.Type)
			fmt.Fprintf(w, "name:\t%s\n", orDash(res.Name))
			fmt.Fprintf(w, "fetch:\t%s\n", orDash(res.FetchSpec))
			if res.SaveSpec != "" {
				fmt.Fprintf(w, "save:\t%s\n", res.SaveSpec)
			}
			if res.GitCommittish != "" {
				fmt.Fprintf(w, "committish:\t%s\n", res.GitCommittish)
			}
			if res.GitRange != "" {
				fmt.Fprintf(w, "range:\t%s\n", res.GitRange)
			}
			return w.Flush()
		},
	}
}
