//go:build integration

package integration_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// engineFixture lays out the parts of the engine repository a generated
// project pulls in.
var engineFixture = map[string]string{
	"BladeEngine/CMakeLists.txt":                  "project(BladeEngine)\n",
	"BladeEngine/src/Core/Game.hpp":               "#pragma once\nclass Game {};\n",
	"Sandbox/assets/shaders/default.vert":         "#version 450\n",
	"Sandbox/assets/shaders/default.frag":         "#version 450\n",
	"Sandbox/assets/sprites/tex_DebugUVTiles.png": "\x89PNG\r\n",
	"Sandbox/src/TestGame.cpp":                    "// sandbox\n",
	"README.md":                                   "# BladeEngine\n",
}

// setupEngineRepo creates a local engine repository with a vendored
// submodule and returns its file:// URL.
func setupEngineRepo(t *testing.T) string {
	t.Helper()
	requireGit(t)

	root := t.TempDir()
	glm := filepath.Join(root, "glm")
	writeTree(t, glm, map[string]string{"glm/glm.hpp": "// glm\n"})
	initRepo(t, glm)

	origin := filepath.Join(root, "BladeEngine")
	writeTree(t, origin, engineFixture)
	initRepo(t, origin)
	runGit(t, origin, "-c", "protocol.file.allow=always", "submodule", "add", "-q", "file://"+filepath.ToSlash(glm), "BladeEngine/vendor/glm")
	runGit(t, origin, "commit", "-q", "-m", "vendor glm")
	runGit(t, origin, "tag", "v0.1.0")
	runGit(t, origin, "tag", "v0.2.0")

	// Local submodule clones are blocked by default since git 2.38.1.
	t.Setenv("GIT_CONFIG_COUNT", "1")
	t.Setenv("GIT_CONFIG_KEY_0", "protocol.file.allow")
	t.Setenv("GIT_CONFIG_VALUE_0", "always")

	return "file://" + filepath.ToSlash(origin)
}

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

func initRepo(t *testing.T, dir string) {
	t.Helper()
	runGit(t, dir, "init", "-q")
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-q", "-m", "initial")
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	full := append([]string{"-c", "user.name=test", "-c", "user.email=test@example.com", "-c", "commit.gpgsign=false"}, args...)
	cmd := exec.Command("git", full...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %s: %v\n%s", strings.Join(args, " "), err, out)
	}
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		writeFile(t, filepath.Join(root, filepath.FromSlash(name)), content)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s", path)
	}
}

func assertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); err == nil {
		t.Errorf("expected path to not exist: %s", path)
	}
}

func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("expected %s to contain %q\n\ngot:\n%s", path, substr, data)
	}
}
