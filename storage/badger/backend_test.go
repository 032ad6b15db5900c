package badger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dgraph-io/badger/v4"
)

func TestBackendLifecycle(t *testing.T) {
	backend, err := OpenBackend("", true)
	if err != nil {
		t.Fatalf("Failed to open backend: %v", err)
	}

	err = backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set([]byte("k"), []byte("v")); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		t.Fatalf("Write transaction failed: %v", err)
	}

	err = backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte("k"))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if string(val) != "v" {
				t.Errorf("Expected value %q, got %q", "v", val)
			}
			return nil
		})
	}, false)
	if err != nil {
		t.Fatalf("Read transaction failed: %v", err)
	}

	if backend.IsClosed() {
		t.Error("Backend reported closed while open")
	}
	if err := backend.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if !backend.IsClosed() {
		t.Error("Backend reported open after Close")
	}
}

func TestBackendTxDiscardOnError(t *testing.T) {
	backend, err := OpenBackend("", true)
	if err != nil {
		t.Fatalf("Failed to open backend: %v", err)
	}
	defer backend.Close()

	wantErr := errors.New("abort")
	err = backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set([]byte("k"), []byte("v")); err != nil {
			return err
		}
		return wantErr
	}, true)
	if !errors.Is(err, wantErr) {
		t.Fatalf("Expected fn error to propagate, got %v", err)
	}

	err = backend.WithTx(func(tx *badger.Txn) error {
		_, err := tx.Get([]byte("k"))
		return err
	}, false)
	if !errors.Is(err, badger.ErrKeyNotFound) {
		t.Fatalf("Expected uncommitted write to be rolled back, got %v", err)
	}
}

func TestOpenBackendCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "store")

	backend, err := OpenBackend(dir, false)
	if err != nil {
		t.Fatalf("Failed to open backend at fresh path: %v", err)
	}
	backend.Close()

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("Expected store directory at %s", dir)
	}
}

func TestOpenBackendRejectsFilePath(t *testing.T) {
	file := filepath.Join(t.TempDir(), "occupied")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	if _, err := OpenBackend(file, false); err == nil {
		t.Fatal("Expected error opening backend at a file path")
	}
}
