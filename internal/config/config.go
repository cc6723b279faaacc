// Package config loads lumina.yaml, the project manifest that tells
// cmd/luminac which library roots populate resolve.Resolver's "std", "ext",
// and "prelude" sections and which project source modules to declare, in
// what order.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest is the top-level lumina.yaml configuration.
type Manifest struct {
	// Libs lists the library roots to install into the resolver's fixed
	// library sections before any project module is declared.
	Libs []LibRoot `yaml:"libs"`

	// Modules lists the project's own source modules, in the order they
	// must be declared so that declaration order stays deterministic.
	Modules []ModuleEntry `yaml:"modules"`
}

// LibRoot installs one named root module under a library section.
type LibRoot struct {
	// Section is one of "std", "ext", or "prelude".
	Section string `yaml:"section"`

	// Name is the root's name within that section, e.g. "list" for std.list.
	Name string `yaml:"name"`

	// Path is the filesystem path to the root's source, relative to
	// lumina.yaml unless absolute.
	Path string `yaml:"path"`
}

// ModuleEntry is a single project module to declare.
type ModuleEntry struct {
	// Path is the module's source path, relative to lumina.yaml unless
	// absolute.
	Path string `yaml:"path"`

	// Public marks the module visible to the rest of the project rather
	// than private to its parent. Defaults to false.
	Public bool `yaml:"public,omitempty"`
}

// Load reads and parses a lumina.yaml file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses lumina.yaml content from bytes. path is used only for error
// messages.
func Parse(data []byte, path string) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := m.validate(path); err != nil {
		return nil, err
	}
	m.setDefaults()
	return &m, nil
}

// Find searches for lumina.yaml starting from dir and walking up to parent
// directories. It returns the empty string with a nil error if none is
// found before the filesystem root.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, "lumina.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

var validSections = map[string]bool{"std": true, "ext": true, "prelude": true}

// validate checks the manifest for semantic errors a malformed lumina.yaml
// could contain.
func (m *Manifest) validate(path string) error {
	if len(m.Modules) == 0 {
		return fmt.Errorf("%s: no modules defined", path)
	}

	configDir := filepath.Dir(path)
	seen := make(map[string]bool, len(m.Libs))

	for i, lib := range m.Libs {
		if lib.Section == "" {
			return fmt.Errorf("%s: libs[%d]: section is required", path, i)
		}
		if !validSections[lib.Section] {
			return fmt.Errorf("%s: libs[%d]: unknown section %q", path, i, lib.Section)
		}
		if lib.Name == "" {
			return fmt.Errorf("%s: libs[%d] (%s): name is required", path, i, lib.Section)
		}
		if lib.Path == "" {
			return fmt.Errorf("%s: libs[%d] (%s.%s): path is required", path, i, lib.Section, lib.Name)
		}

		key := lib.Section + "." + lib.Name
		if seen[key] {
			return fmt.Errorf("%s: libs[%d]: %s is declared more than once", path, i, key)
		}
		seen[key] = true

		libPath := lib.Path
		if !filepath.IsAbs(libPath) {
			libPath = filepath.Join(configDir, libPath)
		}
		if info, err := os.Stat(libPath); err != nil {
			return fmt.Errorf("%s: libs[%d] (%s): path %q not found: %w", path, i, key, lib.Path, err)
		} else if !info.IsDir() {
			return fmt.Errorf("%s: libs[%d] (%s): path %q is not a directory", path, i, key, lib.Path)
		}
	}

	for i, mod := range m.Modules {
		if mod.Path == "" {
			return fmt.Errorf("%s: modules[%d]: path is required", path, i)
		}
	}

	return nil
}

func (m *Manifest) setDefaults() {}

// LibPaths returns every library root's resolved filesystem path, in the
// order cmd/luminac should declare them.
func (m *Manifest) LibPaths(configPath string) []string {
	configDir := filepath.Dir(configPath)
	paths := make([]string, len(m.Libs))
	for i, lib := range m.Libs {
		if filepath.IsAbs(lib.Path) {
			paths[i] = lib.Path
		} else {
			paths[i] = filepath.Join(configDir, lib.Path)
		}
	}
	return paths
}

// ModulePaths returns every project module's resolved filesystem path, in
// declaration order.
func (m *Manifest) ModulePaths(configPath string) []string {
	configDir := filepath.Dir(configPath)
	paths := make([]string, len(m.Modules))
	for i, mod := range m.Modules {
		if filepath.IsAbs(mod.Path) {
			paths[i] = mod.Path
		} else {
			paths[i] = filepath.Join(configDir, mod.Path)
		}
	}
	return paths
}
