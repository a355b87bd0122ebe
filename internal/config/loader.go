package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return nil
}

// LoadMatch reads a single match file over Defaults, so a key missing from
// the file keeps its default while an explicit zero is kept.
func LoadMatch(path string) (*MatchConfig, error) {
	mc := Defaults()
	if err := loadYAML(path, &mc); err != nil {
		return nil, err
	}
	mc = mc.WithDefaults()
	return &mc, nil
}

// LoadAll reads dir/match.yaml plus the optional dir/actions.yaml and
// dir/doctrines/*.yaml. A missing actions file yields a nil ActionsConfig,
// which callers treat as "use the built-in catalog".
func LoadAll(dir string) (*MatchConfig, *ActionsConfig, []DoctrineConfig, error) {
	mc, err := LoadMatch(filepath.Join(dir, "match.yaml"))
	if err != nil {
		return nil, nil, nil, err
	}

	var ac *ActionsConfig
	var tmp ActionsConfig
	switch err := loadYAML(filepath.Join(dir, "actions.yaml"), &tmp); {
	case err == nil:
		ac = &tmp
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, nil, nil, err
	}

	docs, err := LoadDoctrines(filepath.Join(dir, "doctrines"))
	if err != nil {
		return nil, nil, nil, err
	}
	return mc, ac, docs, nil
}

// LoadDoctrines reads every *.yaml file in dir, sorted by file name. A
// missing directory is not an error.
func LoadDoctrines(dir string) ([]DoctrineConfig, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	out := make([]DoctrineConfig, 0, len(names))
	for _, n := range names {
		var dc DoctrineConfig
		if err := loadYAML(filepath.Join(dir, n), &dc); err != nil {
			return nil, err
		}
		if dc.Name == "" {
			dc.Name = strings.TrimSuffix(n, ".yaml")
		}
		out = append(out, dc)
	}
	return out, nil
}
