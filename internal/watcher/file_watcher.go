package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"javacheck/internal/config"
)

const defaultDelay = 500 * time.Millisecond

type FileWatcher struct {
	watcher     *fsnotify.Watcher
	config      *config.Config
	logger      *slog.Logger
	watchedDirs map[string]bool
	debouncer   *debouncer
}

type FileChangeEvent struct {
	Path      string
	Operation string
	Timestamp time.Time
}

// FileChangeHandler receives the Java files changed since the last call,
// sorted by path.
type FileChangeHandler func(ctx context.Context, files []string) error

func NewFileWatcher(cfg *config.Config, logger *slog.Logger) (*FileWatcher, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &FileWatcher{
		watcher:     w,
		config:      cfg,
		logger:      logger,
		watchedDirs: make(map[string]bool),
		debouncer:   newDebouncer(defaultDelay, logger),
	}, nil
}

// Watch registers every directory under paths and delivers debounced
// batches of changed Java files to handler until ctx is done or the
// watcher is closed.
func (fw *FileWatcher) Watch(ctx context.Context, paths []string, handler FileChangeHandler) error {
	for _, path := range paths {
		if err := fw.addPath(path); err != nil {
			return fmt.Errorf("failed to watch path %s: %w", path, err)
		}
	}
	fw.logger.Info("watching for changes", "dirs", len(fw.watchedDirs))
	return fw.eventLoop(ctx, handler)
}

func (fw *FileWatcher) addPath(path string) error {
	return filepath.WalkDir(path, func(walkPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if walkPath != path && fw.shouldSkipDir(walkPath) {
			return filepath.SkipDir
		}
		if !fw.watchedDirs[walkPath] {
			if err := fw.watcher.Add(walkPath); err != nil {
				return fmt.Errorf("failed to add directory %s to watcher: %w", walkPath, err)
			}
			fw.watchedDirs[walkPath] = true
		}
		return nil
	})
}

func (fw *FileWatcher) eventLoop(ctx context.Context, handler FileChangeHandler) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			fw.handleEvent(ctx, event, handler)
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			fw.logger.Warn("file watcher error", "error", err)
		}
	}
}

func (fw *FileWatcher) handleEvent(ctx context.Context, event fsnotify.Event, handler FileChangeHandler) {
	// New packages show up as directories; start watching them too.
	if event.Has(fsnotify.Create) && !strings.HasSuffix(event.Name, ".java") {
		if err := fw.addPath(event.Name); err == nil {
			return
		}
	}
	if !fw.isJavaFile(event.Name) {
		return
	}
	fw.debouncer.add(ctx, FileChangeEvent{
		Path:      event.Name,
		Operation: fw.eventOpToString(event.Op),
		Timestamp: time.Now(),
	}, handler)
}

func (fw *FileWatcher) isJavaFile(path string) bool {
	if fw.shouldSkipFile(path) {
		return false
	}
	return fw.config.Files.ShouldAnalyze(path)
}

func (fw *FileWatcher) shouldSkipDir(path string) bool {
	switch filepath.Base(path) {
	case ".git", ".idea", ".vscode", ".gradle":
		return true
	}
	return fw.config.Files.ExcludesDir(path)
}

// shouldSkipFile drops editor backups and swap files.
func (fw *FileWatcher) shouldSkipFile(path string) bool {
	filename := filepath.Base(path)
	if strings.HasPrefix(filename, ".") {
		return true
	}
	for _, suffix := range []string{".tmp", "~", ".swp", ".swo"} {
		if strings.HasSuffix(filename, suffix) {
			return true
		}
	}
	return false
}

func (fw *FileWatcher) eventOpToString(op fsnotify.Op) string {
	switch {
	case op.Has(fsnotify.Create):
		return "CREATE"
	case op.Has(fsnotify.Write):
		return "WRITE"
	case op.Has(fsnotify.Remove):
		return "REMOVE"
	case op.Has(fsnotify.Rename):
		return "RENAME"
	case op.Has(fsnotify.Chmod):
		return "CHMOD"
	default:
		return "UNKNOWN"
	}
}

func (fw *FileWatcher) Close() error {
	fw.debouncer.stop()
	return fw.watcher.Close()
}

func (fw *FileWatcher) GetWatchedPaths() []string {
	paths := make([]string, 0, len(fw.watchedDirs))
	for path := range fw.watchedDirs {
		paths = append(paths, path)
	}
	return paths
}
