package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDebounce = 20 * time.Millisecond

func TestWatcher_Watch(t *testing.T) {
	t.Run("reports a created pdf once per burst", func(t *testing.T) {
		dir := t.TempDir()
		w := New(dir).WithDebounce(testDebounce)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		paths, err := w.Watch(ctx)
		require.NoError(t, err)

		target := filepath.Join(dir, "manual.pdf")
		go func() {
			time.Sleep(50 * time.Millisecond)
			for i := 0; i < 3; i++ {
				os.WriteFile(target, []byte("%PDF"), 0o644) //nolint:errcheck
			}
		}()

		select {
		case path := <-paths:
			assert.Equal(t, target, path)
		case <-time.After(2 * time.Second):
			t.Fatal("timeout waiting for pdf")
		}

		select {
		case path := <-paths:
			t.Fatalf("unexpected second report: %s", path)
		case <-time.After(10 * testDebounce):
		}

		cancel()
		w.Close() //nolint:errcheck
	})

	t.Run("ignores other files", func(t *testing.T) {
		dir := t.TempDir()
		w := New(dir).WithDebounce(testDebounce)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		paths, err := w.Watch(ctx)
		require.NoError(t, err)

		go func() {
			time.Sleep(50 * time.Millisecond)
			os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644)     //nolint:errcheck
			os.WriteFile(filepath.Join(dir, ".draft.pdf"), []byte("x"), 0o644)    //nolint:errcheck
			os.WriteFile(filepath.Join(dir, "Guide.PDF"), []byte("%PDF"), 0o644) //nolint:errcheck
		}()

		select {
		case path := <-paths:
			assert.Equal(t, filepath.Join(dir, "Guide.PDF"), path)
		case <-time.After(2 * time.Second):
			t.Fatal("timeout waiting for pdf")
		}
	})

	t.Run("watches new subdirectories", func(t *testing.T) {
		dir := t.TempDir()
		w := New(dir).WithDebounce(testDebounce)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		paths, err := w.Watch(ctx)
		require.NoError(t, err)

		sub := filepath.Join(dir, "class-5")
		require.NoError(t, os.Mkdir(sub, 0o755))
		time.Sleep(100 * time.Millisecond)
		target := filepath.Join(sub, "maths.pdf")
		require.NoError(t, os.WriteFile(target, []byte("%PDF"), 0o644))

		select {
		case path := <-paths:
			assert.Equal(t, target, path)
		case <-time.After(2 * time.Second):
			t.Fatal("timeout waiting for pdf in subdirectory")
		}
	})

	t.Run("returns error for non-existent directory", func(t *testing.T) {
		w := New("/non/existent/path")

		paths, err := w.Watch(context.Background())

		assert.Error(t, err)
		assert.Nil(t, paths)
		assert.Contains(t, err.Error(), "root path error")
	})

	t.Run("returns error for a file root", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "a.pdf")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

		_, err := New(file).Watch(context.Background())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not a directory")
	})

	t.Run("closes channel when context is cancelled", func(t *testing.T) {
		w := New(t.TempDir())
		ctx, cancel := context.WithCancel(context.Background())

		paths, err := w.Watch(ctx)
		require.NoError(t, err)

		cancel()

		select {
		case _, ok := <-paths:
			assert.False(t, ok)
		case <-time.After(time.Second):
			t.Fatal("channel did not close after context cancellation")
		}
		w.Close() //nolint:errcheck
	})

	t.Run("returns error when watcher is closed", func(t *testing.T) {
		w := New(t.TempDir())
		require.NoError(t, w.Close())

		paths, err := w.Watch(context.Background())

		assert.ErrorIs(t, err, ErrClosed)
		assert.Nil(t, paths)
	})
}

func TestDebouncer(t *testing.T) {
	receive := func(t *testing.T, d *debouncer) tick {
		t.Helper()
		select {
		case tk := <-d.ready:
			return tk
		case <-time.After(time.Second):
			t.Fatal("timer did not fire")
			return tick{}
		}
	}

	t.Run("re-arm after the timer fired delivers once", func(t *testing.T) {
		d := newDebouncer(testDebounce)
		defer d.stop()

		assert.True(t, d.touch("a.pdf"))
		// The first timer fires and blocks on send while nobody is reading.
		time.Sleep(3 * testDebounce)
		assert.False(t, d.touch("a.pdf"))

		var settled []string
		for range 2 {
			if path, ok := d.settle(receive(t, d)); ok {
				settled = append(settled, path)
			}
		}
		assert.Equal(t, []string{"a.pdf"}, settled, "tick from the first arming is stale")

		select {
		case tk := <-d.ready:
			t.Fatalf("unexpected extra tick for %s", tk.path)
		case <-time.After(3 * testDebounce):
		}
	})

	t.Run("paths settle independently", func(t *testing.T) {
		d := newDebouncer(testDebounce)
		defer d.stop()

		d.touch("a.pdf")
		d.touch("b.pdf")

		var got []string
		for range 2 {
			path, ok := d.settle(receive(t, d))
			require.True(t, ok)
			got = append(got, path)
		}
		assert.ElementsMatch(t, []string{"a.pdf", "b.pdf"}, got)
		assert.Empty(t, d.pending)
	})
}

func TestWatcher_Close(t *testing.T) {
	w := New(t.TempDir())

	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestWatcher_Existing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".cache"), 0o755))
	for _, name := range []string{"a.pdf", "b.txt", "sub/c.PDF", ".cache/d.pdf", ".e.pdf"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	paths, err := New(dir).Existing()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "a.pdf"),
		filepath.Join(dir, "sub", "c.PDF"),
	}, paths)
}

// TestHandleFsEvent tests the handleFsEvent function with various event types.
func TestHandleFsEvent(t *testing.T) {
	tests := []struct {
		name      string
		file      string
		setupFile bool
		setupDir  bool
		operation fsnotify.Op
		want      bool
	}{
		{name: "create pdf", file: "m.pdf", setupFile: true, operation: fsnotify.Create, want: true},
		{name: "write pdf", file: "m.pdf", setupFile: true, operation: fsnotify.Write, want: true},
		{name: "upper case extension", file: "M.PDF", setupFile: true, operation: fsnotify.Write, want: true},
		{name: "remove pdf", file: "m.pdf", operation: fsnotify.Remove},
		{name: "rename pdf", file: "m.pdf", operation: fsnotify.Rename},
		{name: "chmod pdf", file: "m.pdf", setupFile: true, operation: fsnotify.Chmod},
		{name: "text file", file: "m.txt", setupFile: true, operation: fsnotify.Create},
		{name: "hidden pdf", file: ".m.pdf", setupFile: true, operation: fsnotify.Create},
		{name: "directory named like a pdf", file: "dir.pdf", setupDir: true, operation: fsnotify.Create},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, tt.file)
			if tt.setupFile {
				require.NoError(t, os.WriteFile(path, []byte("%PDF"), 0o644))
			}
			if tt.setupDir {
				require.NoError(t, os.Mkdir(path, 0o755))
			}

			got, ok := New(dir).handleFsEvent(fsnotify.Event{Name: path, Op: tt.operation})
			assert.Equal(t, tt.want, ok)
			if tt.want {
				assert.Equal(t, path, got)
			}
		})
	}
}
