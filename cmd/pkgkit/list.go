// ABOUTME: list and info commands: workspace packages and per-package details
// ABOUTME: Locations are shown relative to the workspace root

package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mauromedda/pkgkit/internal/jsonfile"
	"github.com/mauromedda/pkgkit/internal/manifest"
)

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the packages in the workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.workspace(cmd.Context())
			if err != nil {
				return err
			}
			st := newStyles(cmd.OutOrStdout())

			if len(ws.Packages()) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), st.Dim("No packages found."))
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tVERSION\tPRIVATE\tLOCATION")
			for _, pkg := range ws.Packages() {
				private := "no"
				if pkg.Private() {
					private = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", pkg.Name(), orDash(pkg.Version()), private, a.rel(pkg.Location()))
			}
			return w.Flush()
		},
	}
}

func (a *app) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <package>",
		Short: "Show locations, executables and dependencies of a package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.workspace(cmd.Context())
			if err != nil {
				return err
			}
			pkg, err := ws.Get(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "name:\t%s\n", pkg.Name())
			fmt.Fprintf(w, "version:\t%s\n", orDash(pkg.Version()))
			fmt.Fprintf(w, "private:\t%t\n", pkg.Private())
			fmt.Fprintf(w, "location:\t%s\n", a.rel(pkg.Location()))
			fmt.Fprintf(w, "manifest:\t%s\n", a.rel(pkg.ManifestLocation()))
			fmt.Fprintf(w, "contents:\t%s\n", a.rel(pkg.Contents()))
			fmt.Fprintf(w, "bin location:\t%s\n", a.rel(pkg.BinLocation()))
			if err := w.Flush(); err != nil {
				return err
			}

			printMap(out, "bin", pkg.Bin())
			printMap(out, "scripts", pkg.Scripts())
			printMap(out, "dependencies", pkg.Dependencies())
			printMap(out, "devDependencies", pkg.DevDependencies())
			printMap(out, "optionalDependencies", pkg.OptionalDependencies())
			printMap(out, "peerDependencies", pkg.PeerDependencies())

			var dependents []string
			for _, dep := range ws.Dependents(pkg.Name()) {
				dependents = append(dependents, dep.Name())
			}
			if len(dependents) > 0 {
				fmt.Fprintf(out, "dependents: %s\n", strings.Join(dependents, ", "))
			}
			return nil
		},
	}
}

func printMap(w io.Writer, title string, m *jsonfile.Object) {
	if m == nil || m.Len() == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n", title)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		fmt.Fprintf(tw, "  %s\t%v\n", pair.Key, pair.Value)
	}
	tw.Flush()
}

func (a *app) rel(path string) string {
	rel, err := filepath.Rel(a.root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// loadPackage finds one package of the workspace by name.
func (a *app) loadPackage(cmd *cobra.Command, name string) (*manifest.Package, error) {
	ws, err := a.workspace(cmd.Context())
	if err != nil {
		return nil, err
	}
	return ws.Get(name)
}
