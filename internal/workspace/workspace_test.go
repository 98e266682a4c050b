// ABOUTME: Tests for workspace discovery, lookup, dependents and version bumps
// ABOUTME: Builds throwaway monorepos in temp directories

package workspace

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/unicode/norm"

	"github.com/mauromedda/pkgkit/internal/pkgname"
)

func writeManifest(t *testing.T, root, dir, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(dir))
	if err := os.MkdirAll(full, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(full, "package.json"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readManifest(t *testing.T, root, dir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(dir), "package.json"))
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func newMonorepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeManifest(t, root, "packages/a", "{\n  \"name\": \"@ws/a\",\n  \"version\": \"1.0.0\"\n}\n")
	writeManifest(t, root, "packages/b", "{\n  \"name\": \"@ws/b\",\n  \"version\": \"1.0.0\",\n  \"dependencies\": {\n    \"@ws/a\": \"^1.0.0\"\n  }\n}\n")
	writeManifest(t, root, "packages/c", "{\n  \"name\": \"@ws/c\",\n  \"devDependencies\": {\n    \"@ws/a\": \"file:../a\"\n  }\n}\n")
	writeManifest(t, root, "packages/d", "{\n  \"name\": \"@ws/d\",\n  \"optionalDependencies\": {\n    \"@ws/a\": \"github:org/a#v1.0.0\"\n  }\n}\n")
	writeManifest(t, root, "packages/e", "{\n  \"name\": \"@ws/e\",\n  \"dependencies\": {\n    \"@ws/a\": \"npm:@ws/a@^1.0.0\"\n  }\n}\n")
	writeManifest(t, root, "tools/cli", "{\n  \"name\": \"@ws/cli\",\n  \"peerDependencies\": {\n    \"@ws/a\": \"*\"\n  }\n}\n")
	if err := os.MkdirAll(filepath.Join(root, "packages", "empty"), 0o755); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestDiscover(t *testing.T) {
	t.Parallel()
	root := newMonorepo(t)

	ws, err := Discover(context.Background(), root, nil)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	var names []string
	for _, pkg := range ws.Packages() {
		names = append(names, pkg.Name())
	}
	if got := strings.Join(names, ","); got != "@ws/a,@ws/b,@ws/c,@ws/d,@ws/e" {
		t.Errorf("packages = %s", got)
	}

	ws, err = Discover(context.Background(), root, []string{"packages/*", "tools/*", "packages/a"})
	if err != nil {
		t.Fatalf("Discover with patterns: %v", err)
	}
	if len(ws.Packages()) != 6 {
		t.Errorf("len(Packages()) = %d; want 6", len(ws.Packages()))
	}
}

func TestDiscoverWith_AllowUpperCase(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeManifest(t, root, "packages/a", "{\n  \"name\": \"@MyOrg/a\",\n  \"version\": \"1.0.0\"\n}\n")
	writeManifest(t, root, "packages/b", "{\n  \"name\": \"@MyOrg/b\",\n  \"dependencies\": {\n    \"@MyOrg/a\": \"^1.0.0\"\n  }\n}\n")

	if _, err := Discover(context.Background(), root, nil); err == nil {
		t.Fatal("strict Discover accepted an upper case scope")
	}

	ws, err := DiscoverWith(context.Background(), root, Options{
		Parser: pkgname.NewParser(pkgname.Options{AllowUpperCase: true}),
	})
	if err != nil {
		t.Fatalf("DiscoverWith: %v", err)
	}
	if _, err := ws.Get("@MyOrg/a"); err != nil {
		t.Fatalf("Get: %v", err)
	}

	changes, err := ws.Bump(context.Background(), "@MyOrg/a", "1.1.0", BumpOptions{SavePrefix: "^"})
	if err != nil {
		t.Fatalf("Bump: %v", err)
	}
	if len(changes) != 2 || changes[1].To != "^1.1.0" {
		t.Errorf("changes = %+v", changes)
	}
	if got := readManifest(t, root, "packages/b"); !strings.Contains(got, "\"@MyOrg/a\": \"^1.1.0\"") {
		t.Errorf("b/package.json = %q", got)
	}
}

func TestDiscover_Duplicate(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeManifest(t, root, "packages/one", `{"name": "same"}`)
	writeManifest(t, root, "packages/two", `{"name": "same"}`)

	_, err := Discover(context.Background(), root, nil)
	if !errors.Is(err, ErrDuplicatePackage) {
		t.Errorf("error = %v; want ErrDuplicatePackage", err)
	}
}

func TestDiscover_InvalidManifest(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeManifest(t, root, "packages/bad", `{"version": "1.0.0"}`)

	_, err := Discover(context.Background(), root, nil)
	if err == nil || !strings.Contains(err.Error(), "must not be null or undefined") {
		t.Errorf("error = %v; want missing name error", err)
	}
}

func TestDiscover_Cancelled(t *testing.T) {
	t.Parallel()
	root := newMonorepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Discover(ctx, root, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v; want context.Canceled", err)
	}
}

func TestGet(t *testing.T) {
	t.Parallel()
	ws, err := Discover(context.Background(), newMonorepo(t), nil)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	pkg, err := ws.Get("@ws/b")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if pkg.Version() != "1.0.0" {
		t.Errorf("Version() = %q", pkg.Version())
	}

	_, err = ws.Get("wsb")
	if !errors.Is(err, ErrPackageNotFound) {
		t.Fatalf("error = %v; want ErrPackageNotFound", err)
	}
	if !strings.Contains(err.Error(), "did you mean @ws/b") {
		t.Errorf("error = %q; want a suggestion", err.Error())
	}

	_, err = ws.Get("zzz")
	if !errors.Is(err, ErrPackageNotFound) || strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %v; want plain not found", err)
	}
}

func TestDependents(t *testing.T) {
	t.Parallel()
	ws, err := Discover(context.Background(), newMonorepo(t), []string{"packages/*", "tools/*"})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	var names []string
	for _, pkg := range ws.Dependents("@ws/a") {
		names = append(names, pkg.Name())
	}
	if got := strings.Join(names, ","); got != "@ws/b,@ws/c,@ws/d,@ws/e" {
		t.Errorf("Dependents = %s", got)
	}
}

func TestBump(t *testing.T) {
	t.Parallel()
	root := newMonorepo(t)
	ws, err := Discover(context.Background(), root, nil)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	changes, err := ws.Bump(context.Background(), "@ws/a", "2.0.0", BumpOptions{SavePrefix: "^"})
	if err != nil {
		t.Fatalf("Bump: %v", err)
	}

	want := []Change{
		{Package: "@ws/a", Field: "version", From: "1.0.0", To: "2.0.0"},
		{Package: "@ws/b", Field: "dependencies", Dependency: "@ws/a", From: "^1.0.0", To: "^2.0.0"},
		{Package: "@ws/c", Field: "devDependencies", Dependency: "@ws/a", From: "file:../a", To: "^2.0.0"},
		{Package: "@ws/d", Field: "optionalDependencies", Dependency: "@ws/a", From: "github:org/a#v1.0.0", To: "github:org/a#v2.0.0"},
	}
	if len(changes) != len(want) {
		t.Fatalf("changes = %+v; want %d entries", changes, len(want))
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Errorf("changes[%d] = %+v; want %+v", i, changes[i], want[i])
		}
	}

	if got := readManifest(t, root, "packages/a"); got != "{\n  \"name\": \"@ws/a\",\n  \"version\": \"2.0.0\"\n}\n" {
		t.Errorf("a/package.json = %q", got)
	}
	if got := readManifest(t, root, "packages/b"); !strings.Contains(got, "\"@ws/a\": \"^2.0.0\"") {
		t.Errorf("b/package.json = %q", got)
	}
	if got := readManifest(t, root, "packages/e"); !strings.Contains(got, "npm:@ws/a@^1.0.0") {
		t.Errorf("alias reference was rewritten: %q", got)
	}
}

func TestBump_DryRun(t *testing.T) {
	t.Parallel()
	root := newMonorepo(t)
	before := readManifest(t, root, "packages/b")
	ws, err := Discover(context.Background(), root, nil)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	changes, err := ws.Bump(context.Background(), "@ws/a", "1.1.0", BumpOptions{SavePrefix: "~", DryRun: true})
	if err != nil {
		t.Fatalf("Bump: %v", err)
	}
	if len(changes) != 4 || changes[1].To != "~1.1.0" {
		t.Errorf("changes = %+v", changes)
	}
	if after := readManifest(t, root, "packages/b"); after != before {
		t.Errorf("dry run wrote b/package.json: %q", after)
	}
}

func TestBump_Errors(t *testing.T) {
	t.Parallel()
	ws, err := Discover(context.Background(), newMonorepo(t), nil)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	if _, err := ws.Bump(context.Background(), "@ws/a", "two", BumpOptions{}); err == nil {
		t.Error("expected error for invalid version")
	}
	if _, err := ws.Bump(context.Background(), "@ws/zzz", "2.0.0", BumpOptions{}); !errors.Is(err, ErrPackageNotFound) {
		t.Errorf("error = %v; want ErrPackageNotFound", err)
	}
}

func TestNormalizeRoot(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := NormalizeRoot("~/repo/../ws")
	if err != nil {
		t.Fatalf("NormalizeRoot: %v", err)
	}
	if want := filepath.Join(home, "ws"); got != want {
		t.Errorf("NormalizeRoot = %q; want %q", got, want)
	}

	decomposed := filepath.Join(home, norm.NFD.String("café"))
	got, err = NormalizeRoot(decomposed)
	if err != nil {
		t.Fatalf("NormalizeRoot: %v", err)
	}
	if want := filepath.Join(home, "café"); got != norm.NFC.String(want) {
		t.Errorf("NormalizeRoot = %q; want NFC form", got)
	}
}
