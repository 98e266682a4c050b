// ABOUTME: get command: query a package manifest with a gjson path
// ABOUTME: Strings print bare; objects, arrays and numbers print as JSON

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/mauromedda/pkgkit/internal/jsonfile"
)

func (a *app) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <package> <path>",
		Short: "Print a manifest field selected by a gjson path (e.g. scripts.test)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg, err := a.loadPackage(cmd, args[0])
			if err != nil {
				return err
			}
			data, err := jsonfile.Marshal(pkg.ToJSON(), "")
			if err != nil {
				return err
			}

			res := gjson.GetBytes(data, args[1])
			if !res.Exists() {
				return fmt.Errorf("%s: no value at %q", pkg.Name(), args[1])
			}
			if res.Type == gjson.String {
				fmt.Fprintln(cmd.OutOrStdout(), res.Str)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Raw)
			return nil
		},
	}
}
