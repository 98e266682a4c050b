// ABOUTME: Tests for the pkgkit commands run end to end against temp workspaces
// ABOUTME: HOME points at a temp dir so no user config leaks in

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mauromedda/pkgkit/internal/config"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvSavePrefix, "")
	os.Unsetenv(config.EnvSavePrefix)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "packages", "core", "package.json"),
		"{\n  \"name\": \"@acme/core\",\n  \"version\": \"1.0.0\",\n  \"bin\": \"cli.js\",\n  \"scripts\": {\n    \"test\": \"node test.js\"\n  }\n}\n")
	writeFile(t, filepath.Join(root, "packages", "web", "package.json"),
		"{\n  \"name\": \"@acme/web\",\n  \"version\": \"0.3.0\",\n  \"private\": true,\n  \"dependencies\": {\n    \"@acme/core\": \"^1.0.0\"\n  }\n}\n")
	return root
}

func TestNameCmd(t *testing.T) {
	out, err := runCmd(t, "name", "@acme/core", "lodash")
	if err != nil {
		t.Fatalf("name: %v", err)
	}
	if !strings.Contains(out, "@acme/core  @acme  core") {
		t.Errorf("output missing scoped row:\n%s", out)
	}
	if !strings.Contains(out, "lodash") || !strings.Contains(out, "ok") {
		t.Errorf("output missing unscoped row:\n%s", out)
	}
}

func TestNameCmd_Invalid(t *testing.T) {
	out, err := runCmd(t, "name", "@Acme/tool", "good")
	if err == nil {
		t.Fatal("expected error for invalid name")
	}
	if !strings.Contains(err.Error(), "1 of 2") {
		t.Errorf("error = %q", err.Error())
	}
	if !strings.Contains(out, "upper case characters") {
		t.Errorf("output missing validation message:\n%s", out)
	}

	if _, err := runCmd(t, "name", "--allow-upper-case", "@Acme/tool"); err != nil {
		t.Errorf("--allow-upper-case: %v", err)
	}
}

func TestCombineCmd(t *testing.T) {
	out, err := runCmd(t, "combine", "@acme", "core")
	if err != nil {
		t.Fatalf("combine: %v", err)
	}
	if strings.TrimSpace(out) != "@acme/core" {
		t.Errorf("output = %q; want @acme/core", out)
	}

	if _, err := runCmd(t, "combine", "acme", "core"); err == nil {
		t.Error("expected error for scope without @")
	}
}

func TestListCmd(t *testing.T) {
	root := newWorkspace(t)

	out, err := runCmd(t, "--root", root, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines; want header + 2:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[1], "@acme/core") || !strings.Contains(lines[1], "packages/core") {
		t.Errorf("line 1 = %q", lines[1])
	}
	if !strings.Contains(lines[2], "yes") {
		t.Errorf("line 2 = %q; want private", lines[2])
	}
}

func TestListCmd_AllowUpperCaseConfig(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "packages", "a", "package.json"), "{\n  \"name\": \"@MyOrg/a\",\n  \"version\": \"1.0.0\"\n}\n")

	if _, err := runCmd(t, "--root", root, "list"); err == nil {
		t.Fatal("list accepted an upper case scope without allowUpperCase")
	}

	writeFile(t, filepath.Join(root, ".pkgkit", "config.yaml"), "allowUpperCase: true\n")
	out, err := runCmd(t, "--root", root, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "@MyOrg/a") {
		t.Errorf("output missing @MyOrg/a:\n%s", out)
	}
}

func TestInfoCmd(t *testing.T) {
	root := newWorkspace(t)

	out, err := runCmd(t, "--root", root, "info", "@acme/core")
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	for _, want := range []string{"packages/core/package.json", "core", "cli.js", "node test.js", "dependents: @acme/web"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if _, err := runCmd(t, "--root", root, "info", "core"); err == nil || !strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %v; want suggestion", err)
	}
}

func TestGetCmd(t *testing.T) {
	root := newWorkspace(t)
	tests := []struct {
		path string
		want string
	}{
		{"version", "1.0.0"},
		{"scripts.test", "node test.js"},
		{"scripts", `{"test":"node test.js"}`},
	}

	for _, tt := range tests {
		out, err := runCmd(t, "--root", root, "get", "@acme/core", tt.path)
		if err != nil {
			t.Fatalf("get %s: %v", tt.path, err)
		}
		if got := strings.TrimSpace(out); got != tt.want {
			t.Errorf("get %s = %q; want %q", tt.path, got, tt.want)
		}
	}

	if _, err := runCmd(t, "--root", root, "get", "@acme/core", "nope"); err == nil {
		t.Error("expected error for missing path")
	}
}

func TestBumpCmd(t *testing.T) {
	root := newWorkspace(t)

	out, err := runCmd(t, "--root", root, "bump", "@acme/core", "1.1.0", "--dry-run")
	if err != nil {
		t.Fatalf("bump --dry-run: %v", err)
	}
	if !strings.Contains(out, "dry run") || !strings.Contains(out, "^1.1.0") {
		t.Errorf("dry run output:\n%s", out)
	}

	writeFile(t, filepath.Join(root, ".pkgkit", "config.yaml"), "savePrefix: \"~\"\n")
	out, err = runCmd(t, "--root", root, "bump", "@acme/core", "2.0.0")
	if err != nil {
		t.Fatalf("bump: %v", err)
	}
	if !strings.Contains(out, "updated 2 manifests") {
		t.Errorf("output:\n%s", out)
	}

	data, err := os.ReadFile(filepath.Join(root, "packages", "web", "package.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"@acme/core": "~2.0.0"`) {
		t.Errorf("web/package.json = %s", data)
	}

	if _, err := runCmd(t, "--root", root, "bump", "@acme/core", "3.0.0", "--save-prefix", ""); err != nil {
		t.Fatalf("bump exact: %v", err)
	}
	data, _ = os.ReadFile(filepath.Join(root, "packages", "web", "package.json"))
	if !strings.Contains(string(data), `"@acme/core": "3.0.0"`) {
		t.Errorf("web/package.json = %s", data)
	}
}

func TestResolveCmd(t *testing.T) {
	root := t.TempDir()
	tests := []struct {
		arg   string
		wants []string
	}{
		{"lodash@^4.17.0", []string{"range", "lodash", "^4.17.0"}},
		{"./packages/core", []string{"directory", "file:packages/core"}},
		{"github:acme/core#semver:^1.0.0", []string{"git", "range:", "^1.0.0"}},
	}

	for _, tt := range tests {
		out, err := runCmd(t, "--root", root, "resolve", tt.arg)
		if err != nil {
			t.Fatalf("resolve %s: %v", tt.arg, err)
		}
		for _, want := range tt.wants {
			if !strings.Contains(out, want) {
				t.Errorf("resolve %s output missing %q:\n%s", tt.arg, want, out)
			}
		}
	}

	if _, err := runCmd(t, "--root", root, "resolve", "pkg@not a tag"); err == nil {
		t.Error("expected error for invalid tag")
	}
}
