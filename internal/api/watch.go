package api

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce — пауза, после которой пачка изменений вызывает одну перезагрузку.
const DefaultDebounce = 300 * time.Millisecond

// Watch следит за каталогами DSL и справочников и перезагружает каталог
// после серии изменений. Блокируется до отмены ctx.
func (s *Server) Watch(ctx context.Context, debounce time.Duration, dirs ...string) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	watched := 0
	for _, d := range dirs {
		if d == "" {
			continue
		}
		if err := addRecursive(fsw, d); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				s.log.Warn("watch: directory missing", "path", d)
				continue
			}
			return err
		}
		watched++
	}
	if watched == 0 {
		return errors.New("watch: nothing to watch")
	}
	s.log.Info("watching catalog sources", "dirs", dirs, "debounce", debounce)

	ticker := time.NewTicker(debounce)
	defer ticker.Stop()
	var pending bool
	var last time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() && !skipDir(ev.Name) {
					_ = fsw.Add(ev.Name)
				}
			}
			if !sourceFile(ev.Name) {
				continue
			}
			s.log.Debug("catalog source changed", "path", ev.Name, "op", ev.Op.String())
			pending = true
			last = time.Now()

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			s.log.Error("watcher error", "error", err)

		case <-ticker.C:
			if !pending || time.Since(last) < debounce {
				continue
			}
			pending = false
			// ошибки уже залогированы в Reload; прежний каталог остаётся
			_, _ = s.Reload(ctx)
		}
	}
}

func addRecursive(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDir(path) {
			return filepath.SkipDir
		}
		return fsw.Add(path)
	})
}

func skipDir(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

func sourceFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".dsl", ".yaml", ".yml":
		return true
	}
	return false
}
