package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"src.elv.sh/rangebar/pkg/store"
	"src.elv.sh/rangebar/pkg/store/storetest"
)

func TestPayload(t *testing.T) {
	storetest.TestPayload(t, store.MustTempStore(t))
}

func TestNewStore_PersistsAcrossOpens(t *testing.T) {
	dbname := filepath.Join(t.TempDir(), "cache.db")
	st, err := store.NewStore(dbname)
	if err != nil {
		t.Fatal(err)
	}
	if err := st.SetPayload("k", []byte("v")); err != nil {
		t.Fatal(err)
	}
	st.Close()

	st, err = store.NewStore(dbname)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	if p, err := st.Payload("k"); err != nil || string(p.Data) != "v" {
		t.Errorf("Payload after reopening -> (%q, %v), want (%q, nil)", p.Data, err, "v")
	}
}

func TestNewStore_BadPath(t *testing.T) {
	dir := t.TempDir()
	// A directory cannot be opened as a database.
	if err := os.Mkdir(filepath.Join(dir, "db"), 0755); err != nil {
		t.Fatal(err)
	}
	if _, err := store.NewStore(filepath.Join(dir, "db")); err == nil {
		t.Errorf("NewStore on a directory succeeded")
	}
}
