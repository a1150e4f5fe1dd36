package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// readOnlyStore reads through to a FileStore but refuses every write.
type readOnlyStore struct {
	*FileStore
}

func (readOnlyStore) Write([]byte) error {
	return fs.ErrPermission
}

func newTestService(t *testing.T, store Store) (*Service, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.DebugLevel)
	return NewService(store, WithLogger(logger)), hook
}

func errorEntries(hook *test.Hook) int {
	n := 0
	for _, e := range hook.AllEntries() {
		if e.Level == log.ErrorLevel {
			n++
		}
	}
	return n
}

func TestLoadFresh(t *testing.T) {
	svc, hook := newTestService(t, NewFileStore(t.TempDir()))

	s := svc.Load()

	expected := Settings{Quality: 70, DeleteBaseImagesAfterProcessing: false, ParallelProcessingThreadsCount: 8}
	if !cmp.Equal(s, expected) {
		t.Fatalf("\n\n%s\n", cmp.Diff(expected, s))
	}

	if errorEntries(hook) > 0 {
		t.Fatalf("did not expect an error to be logged, got %s", hook.LastEntry().Message)
	}
}

func TestRoundTrip(t *testing.T) {
	values := []Settings{
		Default(),
		{},
		{Quality: 1, DeleteBaseImagesAfterProcessing: true, ParallelProcessingThreadsCount: 1},
		{Quality: 100, DeleteBaseImagesAfterProcessing: false, ParallelProcessingThreadsCount: 64},
		{Quality: -5, DeleteBaseImagesAfterProcessing: true, ParallelProcessingThreadsCount: 0},
	}

	for i, s := range values {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			svc, hook := newTestService(t, NewFileStore(t.TempDir()))

			svc.Save(s)
			loaded := svc.Load()

			if !cmp.Equal(loaded, s) {
				t.Fatalf("\n\n%s\n", cmp.Diff(s, loaded))
			}

			if errorEntries(hook) > 0 {
				t.Fatalf("did not expect an error to be logged, got %s", hook.LastEntry().Message)
			}
		})
	}
}

func TestSaveTwice(t *testing.T) {
	svc, _ := newTestService(t, NewFileStore(t.TempDir()))

	first := Settings{Quality: 10, DeleteBaseImagesAfterProcessing: true, ParallelProcessingThreadsCount: 3}
	second := Settings{Quality: 20, DeleteBaseImagesAfterProcessing: false, ParallelProcessingThreadsCount: 4}

	svc.Save(first)
	svc.Save(second)
	svc.Save(second)

	loaded := svc.Load()
	if !cmp.Equal(loaded, second) {
		t.Fatalf("\n\n%s\n", cmp.Diff(second, loaded))
	}
}

func TestLoadCorrupted(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}

	svc, hook := newTestService(t, NewFileStore(dir))

	s := svc.Load()
	if !cmp.Equal(s, Default()) {
		t.Fatalf("\n\n%s\n", cmp.Diff(Default(), s))
	}

	if errorEntries(hook) != 1 {
		t.Fatalf("expected exactly one error to be logged, got %d", errorEntries(hook))
	}

	if path := hook.LastEntry().Data["path"]; path != filepath.Join(dir, FileName) {
		t.Fatalf("expected logged path %q, got %v", filepath.Join(dir, FileName), path)
	}

	if _, err := svc.TryLoad(); !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
}

func TestLoadByteOrderMark(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("\xef\xbb\xbf{\"Quality\": 90}"), 0644); err != nil {
		t.Fatal(err)
	}

	svc, hook := newTestService(t, NewFileStore(dir))

	s, err := svc.TryLoad()
	if err != nil {
		t.Fatal(err)
	}

	expected := Settings{Quality: 90, DeleteBaseImagesAfterProcessing: false, ParallelProcessingThreadsCount: 8}
	if !cmp.Equal(s, expected) {
		t.Fatalf("\n\n%s\n", cmp.Diff(expected, s))
	}

	if errorEntries(hook) > 0 {
		t.Fatalf("did not expect an error to be logged, got %s", hook.LastEntry().Message)
	}
}

func TestLoadPartial(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(`{"Quality": 90}`), 0644); err != nil {
		t.Fatal(err)
	}

	svc, _ := newTestService(t, NewFileStore(dir))

	expected := Settings{Quality: 90, DeleteBaseImagesAfterProcessing: false, ParallelProcessingThreadsCount: 8}
	if s := svc.Load(); !cmp.Equal(s, expected) {
		t.Fatalf("\n\n%s\n", cmp.Diff(expected, s))
	}
}

func TestLoadEmptyFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), nil, 0644); err != nil {
		t.Fatal(err)
	}

	svc, _ := newTestService(t, NewFileStore(dir))

	s, err := svc.TryLoad()
	if err != nil {
		t.Fatal(err)
	}
	if !cmp.Equal(s, Default()) {
		t.Fatalf("\n\n%s\n", cmp.Diff(Default(), s))
	}
}

func TestSaveFailure(t *testing.T) {
	t.Run("keeps last persisted value", func(t *testing.T) {
		fileStore := NewFileStore(t.TempDir())
		persisted := Settings{Quality: 33, DeleteBaseImagesAfterProcessing: true, ParallelProcessingThreadsCount: 2}

		writable, _ := newTestService(t, fileStore)
		writable.Save(persisted)

		svc, hook := newTestService(t, readOnlyStore{fileStore})
		svc.Save(Settings{Quality: 99})

		if errorEntries(hook) != 1 {
			t.Fatalf("expected exactly one error to be logged, got %d", errorEntries(hook))
		}

		if path := hook.LastEntry().Data["path"]; path != fileStore.Path() {
			t.Fatalf("expected logged path %q, got %v", fileStore.Path(), path)
		}

		if err := svc.TrySave(Settings{Quality: 99}); !errors.Is(err, fs.ErrPermission) {
			t.Fatalf("expected fs.ErrPermission, got %v", err)
		}

		if s := svc.Load(); !cmp.Equal(s, persisted) {
			t.Fatalf("\n\n%s\n", cmp.Diff(persisted, s))
		}
	})

	t.Run("defaults when nothing was persisted", func(t *testing.T) {
		svc, _ := newTestService(t, readOnlyStore{NewFileStore(t.TempDir())})
		svc.Save(Settings{Quality: 99})

		if s := svc.Load(); !cmp.Equal(s, Default()) {
			t.Fatalf("\n\n%s\n", cmp.Diff(Default(), s))
		}
	})

	t.Run("destination is not a directory", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "blocker")
		if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}

		svc, hook := newTestService(t, NewFileStore(blocker))
		svc.Save(Settings{Quality: 99})

		if errorEntries(hook) != 1 {
			t.Fatalf("expected exactly one error to be logged, got %d", errorEntries(hook))
		}

		if s := svc.Load(); !cmp.Equal(s, Default()) {
			t.Fatalf("\n\n%s\n", cmp.Diff(Default(), s))
		}
	})

	t.Run("read-only file", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("file permissions are not enforced for root")
		}

		dir := t.TempDir()
		persisted := Settings{Quality: 44, ParallelProcessingThreadsCount: 6}

		svc, _ := newTestService(t, NewFileStore(dir))
		svc.Save(persisted)

		path := filepath.Join(dir, FileName)
		if err := os.Chmod(path, 0444); err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { os.Chmod(path, 0644) }) // nolint

		svc.Save(Settings{Quality: 1})

		if s := svc.Load(); !cmp.Equal(s, persisted) {
			t.Fatalf("\n\n%s\n", cmp.Diff(persisted, s))
		}
	})
}

func TestFileStore(t *testing.T) {
	t.Run("missing file is not found", func(t *testing.T) {
		store := NewFileStore(t.TempDir())
		if _, err := store.Read(); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("write creates data directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "app", "data")
		store := NewFileStore(dir)

		if err := store.Write([]byte(`{}`)); err != nil {
			t.Fatal(err)
		}

		if store.Path() != filepath.Join(dir, FileName) {
			t.Fatalf("unexpected path %s", store.Path())
		}

		if _, err := os.Stat(store.Path()); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("explicit path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "prefs.json")
		store := NewFileStoreAt(path)

		if err := store.Write([]byte(`{"Quality": 5}`)); err != nil {
			t.Fatal(err)
		}

		bs, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(bs) != `{"Quality": 5}` {
			t.Fatalf("unexpected content %q", bs)
		}
	})
}
