// ABOUTME: name and combine commands over the package name parser
// ABOUTME: Prints scope/unscoped parts, or the validation error per name

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mauromedda/pkgkit/internal/pkgname"
)

func (a *app) parser(allowUpperCase bool) *pkgname.Parser {
	return pkgname.NewParser(pkgname.Options{
		AllowUpperCase: allowUpperCase || a.settings.AllowUpperCase,
	})
}

func (a *app) nameCmd() *cobra.Command {
	var allowUpperCase bool
	cmd := &cobra.Command{
		Use:   "name <name>...",
		Short: "Validate package names and split them into scope and unscoped name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := a.parser(allowUpperCase)
			st := newStyles(cmd.OutOrStdout())

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSCOPE\tUNSCOPED\tSTATUS")
			invalid := 0
			for _, name := range args {
				res := parser.TryParse(name)
				if res.Error != "" {
					invalid++
					fmt.Fprintf(w, "%s\t-\t-\t%s\n", name, st.Bad(res.Error))
					continue
				}
				scope := res.Scope
				if scope == "" {
					scope = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, scope, res.UnscopedName, st.Good("ok"))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if invalid > 0 {
				return fmt.Errorf("%d of %d package names are invalid", invalid, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&allowUpperCase, "allow-upper-case", false, "accept upper case letters in names")
	return cmd
}

func (a *app) combineCmd() *cobra.Command {
	var allowUpperCase bool
	cmd := &cobra.Command{
		Use:   "combine <scope> <name>",
		Short: `Join a scope ("@scope" or "") and an unscoped name into a package name`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := a.parser(allowUpperCase).CombineParts(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}
	cmd.Flags().BoolVar(&allowUpperCase, "allow-upper-case", false, "accept upper case letters in names")
	return cmd
}
