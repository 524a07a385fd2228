// Package storetest keeps test suites against storedefs.Store.
package storetest

import (
	"errors"
	"reflect"
	"testing"

	"src.elv.sh/rangebar/pkg/store/storedefs"
)

// TestPayload tests the payload functionality of a Store.
func TestPayload(t *testing.T, store storedefs.Store) {
	const key = "normal:https://example.com/range"

	if _, err := store.Payload(key); !errors.Is(err, storedefs.ErrNoPayload) {
		t.Errorf("Payload of missing key -> error %v, want ErrNoPayload", err)
	}

	if err := store.SetPayload(key, []byte(`{"min":1,"max":2}`)); err != nil {
		t.Errorf("SetPayload -> error %v, want nil", err)
	}
	p, err := store.Payload(key)
	if err != nil || string(p.Data) != `{"min":1,"max":2}` {
		t.Errorf("Payload -> (%q, %v), want (%q, nil)", p.Data, err, `{"min":1,"max":2}`)
	}
	if p.Saved == 0 {
		t.Errorf("Payload has no save time")
	}

	// Overwrite.
	if err := store.SetPayload(key, []byte("[1,2]")); err != nil {
		t.Errorf("SetPayload -> error %v, want nil", err)
	}
	if p, _ := store.Payload(key); string(p.Data) != "[1,2]" {
		t.Errorf("Payload after overwrite -> %q, want %q", p.Data, "[1,2]")
	}

	if err := store.SetPayload("fixed:values.json", []byte("[3,4]")); err != nil {
		t.Errorf("SetPayload -> error %v, want nil", err)
	}
	wantKeys := []string{"fixed:values.json", key}
	if keys, err := store.Keys(); err != nil || !reflect.DeepEqual(keys, wantKeys) {
		t.Errorf("Keys -> (%v, %v), want (%v, nil)", keys, err, wantKeys)
	}

	if err := store.DelPayload(key); err != nil {
		t.Errorf("DelPayload -> error %v, want nil", err)
	}
	if _, err := store.Payload(key); !errors.Is(err, storedefs.ErrNoPayload) {
		t.Errorf("Payload after DelPayload -> error %v, want ErrNoPayload", err)
	}
}
