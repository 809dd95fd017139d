package dsl

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/bendichter/aind-data-schema/internal/reference"
)

// Source — где лежат пользовательские схемы и справочники. Пустой или
// отсутствующий каталог пропускается.
type Source struct {
	DSLDir   string
	Pattern  string
	EnumsDir string
}

func present(dir string) (bool, error) {
	if dir == "" {
		return false, nil
	}
	st, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !st.IsDir() {
		return false, fmt.Errorf("%s is not a directory", dir)
	}
	return true, nil
}

// Build дополняет base справочниками из EnumsDir и типами из DSLDir.
// base не меняется.
func Build(base *reference.Catalog, src Source) (*reference.Catalog, error) {
	if base == nil {
		base, _ = reference.NewCatalog()
	}
	cat := base
	ok, err := present(src.EnumsDir)
	if err != nil {
		return nil, err
	}
	if ok {
		enums, err := reference.LoadEnumCatalog(src.EnumsDir)
		if err != nil {
			return nil, fmt.Errorf("enums: %w", err)
		}
		if cat, err = cat.With(reference.WithEnums(enums...)); err != nil {
			return nil, fmt.Errorf("enums: %w", err)
		}
	}
	ok, err = present(src.DSLDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return cat, nil
	}
	raw, err := LoadAllEntities(src.DSLDir, src.Pattern)
	if err != nil {
		return nil, err
	}
	return Compile(raw, cat)
}
