package watcher

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"javacheck/internal/config"
)

type batches struct {
	mu  sync.Mutex
	got [][]string
}

func (b *batches) handle(_ context.Context, files []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.got = append(b.got, files)
	return nil
}

func (b *batches) snapshot() [][]string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([][]string(nil), b.got...)
}

func TestDebouncer_CollapsesBurst(t *testing.T) {
	d := newDebouncer(20*time.Millisecond, slog.Default())
	var b batches
	ctx := context.Background()

	for _, p := range []string{"B.java", "A.java", "B.java"} {
		d.add(ctx, FileChangeEvent{Path: p, Operation: "WRITE"}, b.handle)
	}

	assert.Eventually(t, func() bool { return len(b.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"A.java", "B.java"}, b.snapshot()[0])
}

func TestDebouncer_StopDropsPending(t *testing.T) {
	d := newDebouncer(20*time.Millisecond, slog.Default())
	var b batches

	d.add(context.Background(), FileChangeEvent{Path: "A.java"}, b.handle)
	d.stop()
	d.add(context.Background(), FileChangeEvent{Path: "B.java"}, b.handle)

	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, b.snapshot())
}

func TestDebouncer_LogsHandlerError(t *testing.T) {
	var logs bytes.Buffer
	d := newDebouncer(time.Millisecond, slog.New(slog.NewTextHandler(&logs, nil)))

	failed := make(chan struct{})
	d.add(context.Background(), FileChangeEvent{Path: "A.java"}, func(context.Context, []string) error {
		defer close(failed)
		return errors.New("boom")
	})

	select {
	case <-failed:
	case <-time.After(time.Second):
		t.Fatal("handler was not called")
	}
	assert.Eventually(t, func() bool { return bytes.Contains(logs.Bytes(), []byte("change handler failed")) },
		time.Second, 5*time.Millisecond)
}

func TestFileWatcher_Filters(t *testing.T) {
	fw, err := NewFileWatcher(config.DefaultConfig(), nil)
	require.NoError(t, err)
	defer fw.Close()

	tests := []struct {
		path string
		want bool
	}{
		{"src/main/java/App.java", true},
		{"src/main/java/.App.java.swp", false},
		{"src/main/java/App.java~", false},
		{"src/main/java/notes.txt", false},
		{"src/test/java/AppTest.java", false},
		{"target/classes/Gen.java", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, fw.isJavaFile(tt.path))
		})
	}

	assert.True(t, fw.shouldSkipDir("project/.git"))
	assert.True(t, fw.shouldSkipDir("project/build"))
	assert.False(t, fw.shouldSkipDir("project/src"))
}

func TestFileWatcher_Watch(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "target"), 0755))

	fw, err := NewFileWatcher(config.DefaultConfig(), slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	require.NoError(t, err)
	defer fw.Close()
	fw.debouncer.delay = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var b batches
	done := make(chan error, 1)
	go func() { done <- fw.Watch(ctx, []string{root}, b.handle) }()

	require.Eventually(t, func() bool {
		_ = os.WriteFile(filepath.Join(root, "src", "App.java"), []byte("class App {}"), 0644)
		return len(b.snapshot()) > 0
	}, 2*time.Second, 50*time.Millisecond)

	assert.Equal(t, []string{filepath.Join(root, "src", "App.java")}, b.snapshot()[0])

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}
