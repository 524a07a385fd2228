// Package storedefs contains definitions of the store API.
//
// It is a separate package so that packages that only depend on the store API
// does not need to depend on the concrete implementation.
package storedefs

import "errors"

// ErrNoPayload is returned by Store.Payload when there is no payload for the
// key.
var ErrNoPayload = errors.New("no such payload")

// Store is an interface satisfied by the storage service.
type Store interface {
	Payload(key string) (Payload, error)
	SetPayload(key string, data []byte) error
	DelPayload(key string) error
	Keys() ([]string, error)
}

// Payload is the last good payload fetched from a source.
type Payload struct {
	Data []byte
	// Unix time in seconds when the payload was stored.
	Saved int64
}
