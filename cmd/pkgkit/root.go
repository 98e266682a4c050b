// ABOUTME: Root cobra command: workspace root, verbosity and config loading
// ABOUTME: Subcommands share one app value holding the resolved settings

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mauromedda/pkgkit/internal/config"
	"github.com/mauromedda/pkgkit/internal/jsonfile"
	"github.com/mauromedda/pkgkit/internal/log"
	"github.com/mauromedda/pkgkit/internal/manifest"
	"github.com/mauromedda/pkgkit/internal/workspace"
)

type app struct {
	root     string
	verbose  bool
	settings *config.Settings
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:           "pkgkit",
		Short:         "Validate npm package names and version packages in a workspace",
		Version:       version + " (" + commit + ")",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	cmd.PersistentFlags().StringVar(&a.root, "root", ".", "workspace root directory")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		a.nameCmd(),
		a.combineCmd(),
		a.listCmd(),
		a.infoCmd(),
		a.getCmd(),
		a.bumpCmd(),
		a.resolveCmd(),
	)
	return cmd
}

func (a *app) init() error {
	if a.verbose {
		log.SetLevel(log.LevelDebug)
	}

	root, err := workspace.NormalizeRoot(a.root)
	if err != nil {
		return err
	}
	a.root = root

	settings, err := config.Load(root)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.settings = settings
	log.Debug("workspace root %s, package globs %v", root, settings.PackageGlobs())
	return nil
}

func (a *app) workspace(ctx context.Context) (*workspace.Workspace, error) {
	return workspace.DiscoverWith(ctx, a.root, workspace.Options{
		Patterns: a.settings.PackageGlobs(),
		Parser:   a.parser(false),
	})
}

func (a *app) writeOptions() manifest.WritePackageOptions {
	opts := manifest.WritePackageOptions{
		Normalize: a.settings.Normalize,
		SortKeys:  a.settings.SortKeys,
	}
	if a.settings.Indent != "" {
		opts.Indent = jsonfile.ParseIndent(a.settings.Indent)
	}
	return opts
}
