package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValidMinimal(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "std"), 0o755))

	yaml := `
libs:
  - section: std
    name: list
    path: ./std
modules:
  - path: main.lm
    public: true
`
	m, err := Parse([]byte(yaml), filepath.Join(dir, "lumina.yaml"))
	require.NoError(t, err)

	require.Len(t, m.Libs, 1)
	assert.Equal(t, "std", m.Libs[0].Section)
	assert.Equal(t, "list", m.Libs[0].Name)

	require.Len(t, m.Modules, 1)
	assert.Equal(t, "main.lm", m.Modules[0].Path)
	assert.True(t, m.Modules[0].Public)
}

func TestParseRejectsUnknownSection(t *testing.T) {
	dir := t.TempDir()
	yaml := `
libs:
  - section: bogus
    name: list
    path: .
modules:
  - path: main.lm
`
	_, err := Parse([]byte(yaml), filepath.Join(dir, "lumina.yaml"))
	assert.ErrorContains(t, err, "unknown section")
}

func TestParseRejectsMissingLibPath(t *testing.T) {
	dir := t.TempDir()
	yaml := `
libs:
  - section: std
    name: list
    path: ./does-not-exist
modules:
  - path: main.lm
`
	_, err := Parse([]byte(yaml), filepath.Join(dir, "lumina.yaml"))
	assert.ErrorContains(t, err, "not found")
}

func TestParseRejectsDuplicateLibEntry(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "std"), 0o755))

	yaml := `
libs:
  - section: std
    name: list
    path: ./std
  - section: std
    name: list
    path: ./std
modules:
  - path: main.lm
`
	_, err := Parse([]byte(yaml), filepath.Join(dir, "lumina.yaml"))
	assert.ErrorContains(t, err, "declared more than once")
}

func TestParseRejectsNoModules(t *testing.T) {
	dir := t.TempDir()
	yaml := `libs: []`
	_, err := Parse([]byte(yaml), filepath.Join(dir, "lumina.yaml"))
	assert.ErrorContains(t, err, "no modules")
}

func TestModulePathsPreservesDeclarationOrder(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "lumina.yaml")

	m := &Manifest{
		Modules: []ModuleEntry{
			{Path: "a.lm"},
			{Path: "sub/b.lm"},
			{Path: "/abs/c.lm"},
		},
	}

	paths := m.ModulePaths(configPath)
	require.Len(t, paths, 3)
	assert.Equal(t, filepath.Join(dir, "a.lm"), paths[0])
	assert.Equal(t, filepath.Join(dir, "sub/b.lm"), paths[1])
	assert.Equal(t, "/abs/c.lm", paths[2])
}

func TestFindWalksUpToParentDirectories(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	manifestPath := filepath.Join(root, "lumina.yaml")
	require.NoError(t, os.WriteFile(manifestPath, []byte("modules:\n  - path: main.lm\n"), 0o644))

	found, err := Find(nested)
	require.NoError(t, err)
	assert.Equal(t, manifestPath, found)
}

func TestFindReturnsEmptyWhenAbsent(t *testing.T) {
	root := t.TempDir()
	found, err := Find(root)
	require.NoError(t, err)
	assert.Empty(t, found)
}
