package store

import (
	"encoding/binary"
	"time"

	bolt "go.etcd.io/bbolt"

	. "src.elv.sh/rangebar/pkg/store/storedefs"
)

const bucketPayload = "payload"

func init() {
	initDB["initialize payload table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketPayload))
		return err
	}
}

// Values are the save time as 8 big-endian bytes followed by the data.
func marshalPayload(data []byte, saved int64) []byte {
	v := make([]byte, 8+len(data))
	binary.BigEndian.PutUint64(v, uint64(saved))
	copy(v[8:], data)
	return v
}

func unmarshalPayload(v []byte) Payload {
	if len(v) < 8 {
		return Payload{Data: append([]byte(nil), v...)}
	}
	return Payload{
		Data:  append([]byte(nil), v[8:]...),
		Saved: int64(binary.BigEndian.Uint64(v)),
	}
}

// Payload gets the payload stored for a key.
func (s *dbStore) Payload(key string) (Payload, error) {
	var p Payload
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketPayload))
		v := b.Get([]byte(key))
		if v == nil {
			return ErrNoPayload
		}
		p = unmarshalPayload(v)
		return nil
	})
	return p, err
}

// SetPayload stores the payload for a key, replacing any earlier one.
func (s *dbStore) SetPayload(key string, data []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketPayload))
		return b.Put([]byte(key), marshalPayload(data, time.Now().Unix()))
	})
}

// DelPayload deletes the payload for a key.
func (s *dbStore) DelPayload(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketPayload))
		return b.Delete([]byte(key))
	})
}

// Keys returns all the keys with a payload, in byte order.
func (s *dbStore) Keys() ([]string, error) {
	var keys []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketPayload)).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys, err
}
