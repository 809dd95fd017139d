package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// StandardFileName — "<prefix>_<entity>.json" либо "<entity>.json" при пустом префиксе.
func (e *Entity) StandardFileName(prefix string) string {
	name := strings.ToLower(e.name) + ".json"
	if prefix != "" {
		name = prefix + "_" + name
	}
	return name
}

// WriteStandardFile пишет core-запись в текущий каталог под стандартным именем.
func (r *Record) WriteStandardFile(prefix string) error {
	_, err := r.WriteStandardFileTo("", prefix)
	return err
}

// WriteStandardFileTo пишет core-запись в dir и возвращает путь к файлу.
func (r *Record) WriteStandardFileTo(dir, prefix string) (string, error) {
	if !r.entity.IsCore() {
		return "", fmt.Errorf("%s: %w", r.entity.name, ErrNotCore)
	}
	path := filepath.Join(dir, r.entity.StandardFileName(prefix))
	data, err := r.ToJSON()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", &IOError{Path: path, Err: err}
	}
	return path, nil
}
