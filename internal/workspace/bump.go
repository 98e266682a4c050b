// ABOUTME: Bump sets a package version and rewrites sibling references to it
// ABOUTME: Changed manifests are saved concurrently unless running dry

package workspace

import (
	"context"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/pkgkit/internal/jsonfile"
	"github.com/mauromedda/pkgkit/internal/log"
	"github.com/mauromedda/pkgkit/internal/manifest"
	"github.com/mauromedda/pkgkit/internal/specifier"
)

// BumpOptions configures Bump.
type BumpOptions struct {
	SavePrefix string
	// DryRun computes changes in memory without writing manifests.
	DryRun bool
	Write  manifest.WritePackageOptions
}

// Change is one manifest edit made by Bump. Field is "version" for the
// bumped package itself, otherwise the dependency map that was rewritten.
type Change struct {
	Package    string
	Field      string
	Dependency string
	From       string
	To         string
}

// Bump sets the version of package name and points every dependent at it.
// References that cannot carry a version, like aliases and tarballs, are
// skipped.
func (w *Workspace) Bump(ctx context.Context, name, version string, opts BumpOptions) ([]Change, error) {
	if _, err := semver.StrictNewVersion(version); err != nil {
		return nil, fmt.Errorf("invalid version %q: %w", version, err)
	}
	target, err := w.Get(name)
	if err != nil {
		return nil, err
	}

	changes := []Change{{
		Package: name,
		Field:   "version",
		From:    target.Version(),
		To:      version,
	}}
	target.SetVersion(version)
	touched := []*manifest.Package{target}

	for _, dep := range w.Dependents(name) {
		field, spec, ok := dependencySpec(dep, name)
		if !ok {
			continue
		}
		resolved, err := specifier.ResolveWith(w.parser, name, spec, dep.Location())
		if err != nil {
			log.Warn("%s: cannot read %s reference %q: %v", dep.Name(), name, spec, err)
			continue
		}
		if !dep.UpdateLocalDependency(resolved, version, opts.SavePrefix) {
			continue
		}
		deps, _ := dep.Get(field).(*jsonfile.Object)
		updated, _ := deps.Get(name)
		to, _ := updated.(string)
		log.Debug("%s: %s %s %q -> %q", dep.Name(), field, name, spec, to)
		changes = append(changes, Change{
			Package:    dep.Name(),
			Field:      field,
			Dependency: name,
			From:       spec,
			To:         to,
		})
		touched = append(touched, dep)
	}

	if opts.DryRun {
		return changes, nil
	}
	if err := savePackages(ctx, touched, opts.Write); err != nil {
		return changes, err
	}
	return changes, nil
}

func savePackages(ctx context.Context, packages []*manifest.Package, opts manifest.WritePackageOptions) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(loadConcurrency)
	for _, pkg := range packages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			log.Debug("writing %s", pkg.ManifestLocation())
			if err := pkg.Save(opts); err != nil {
				return fmt.Errorf("saving %s: %w", pkg.Name(), err)
			}
			return nil
		})
	}
	return g.Wait()
}
