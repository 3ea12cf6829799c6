package badgerstore_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sportiq/picoin/internal/adapter/repository/badgerstore"
)

func openStore(t *testing.T) *badgerstore.Store {
	t.Helper()
	store, err := badgerstore.Open(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	})
	return store
}

func TestPutGet(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, "pi_coin_data", []byte(`{"balance":100}`)); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.Get(ctx, "pi_coin_data")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `{"balance":100}` {
		t.Errorf("unexpected value: %s", got)
	}
}

func TestGetAbsentKey(t *testing.T) {
	store := openStore(t)

	got, err := store.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for absent key, got %v", got)
	}
}

func TestPutOverwrites(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, "k", []byte("old")); err != nil {
		t.Fatalf("first put: %v", err)
	}
	if err := store.Put(ctx, "k", []byte("new")); err != nil {
		t.Fatalf("second put: %v", err)
	}

	got, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "new" {
		t.Errorf("expected overwritten value, got %s", got)
	}
}

func TestValuesSurviveReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := badgerstore.Open(dir, zerolog.Nop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.Put(ctx, "k", []byte("persisted")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := badgerstore.Open(dir, zerolog.Nop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if string(got) != "persisted" {
		t.Errorf("expected value to survive reopen, got %s", got)
	}
}
