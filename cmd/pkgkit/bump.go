// ABOUTME: bump command: set a package version and update its dependents
// ABOUTME: Prints every manifest change; --dry-run leaves files untouched

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mauromedda/pkgkit/internal/workspace"
)

func (a *app) bumpCmd() *cobra.Command {
	var (
		savePrefix string
		dryRun     bool
	)
	cmd := &cobra.Command{
		Use:   "bump <package> <version>",
		Short: "Set a package version and rewrite sibling references to it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.workspace(cmd.Context())
			if err != nil {
				return err
			}

			prefix := a.settings.Prefix()
			if cmd.Flags().Changed("save-prefix") {
				prefix = savePrefix
			}

			changes, err := ws.Bump(cmd.Context(), args[0], args[1], workspace.BumpOptions{
				SavePrefix: prefix,
				DryRun:     dryRun,
				Write:      a.writeOptions(),
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			st := newStyles(out)
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PACKAGE\tFIELD\tFROM\tTO")
			for _, c := range changes {
				field := c.Field
				if c.Dependency != "" {
					field += "." + c.Dependency
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Package, field, orDash(c.From), c.To)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			manifests := map[string]bool{}
			for _, c := range changes {
				manifests[c.Package] = true
			}
			if dryRun {
				fmt.Fprintln(out, st.Warn(fmt.Sprintf("dry run: %d manifests not written", len(manifests))))
				return nil
			}
			fmt.Fprintln(out, st.Good(fmt.Sprintf("updated %d manifests", len(manifests))))
			return nil
		},
	}
	cmd.Flags().StringVar(&savePrefix, "save-prefix", "^", `prefix for rewritten versions ("^", "~" or "")`)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show changes without writing manifests")
	return cmd
}
