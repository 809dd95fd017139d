package reference

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bendichter/aind-data-schema/internal/vocab"
)

// LoadEnumFile читает один YAML-справочник. Имя справочника — из name или из имени файла.
func LoadEnumFile(path string) (*vocab.Enum, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var dir EnumDirectory
	if err := yaml.Unmarshal(data, &dir); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if strings.TrimSpace(dir.Name) == "" {
		base := filepath.Base(path)
		dir.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	e, err := dir.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return e, nil
}

// LoadEnumCatalog читает все *.yaml / *.yml справочники из папки (без рекурсии).
// Пустой dir — пустой результат.
func LoadEnumCatalog(dir string) ([]*vocab.Enum, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ext := strings.ToLower(filepath.Ext(e.Name())); ext == ".yaml" || ext == ".yml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	out := make([]*vocab.Enum, 0, len(names))
	seen := make(map[string]string, len(names))
	for _, n := range names {
		path := filepath.Join(dir, n)
		e, err := LoadEnumFile(path)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[e.Name()]; dup {
			return nil, fmt.Errorf("%w: enum %q in %s and %s", ErrDuplicate, e.Name(), prev, path)
		}
		seen[e.Name()] = path
		out = append(out, e)
	}
	return out, nil
}
