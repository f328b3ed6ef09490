package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("storage: key not found")

// Store persists small opaque state blobs keyed per session. Watch delivers
// blobs written by other writers of the same key, standing in for the
// cross-tab storage event: receivers replace their local state wholesale,
// last writer wins, no merging.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Watch(ctx context.Context, key string) (<-chan []byte, error)
	Close() error
}

// Envelope is the persisted layout: the consumer's state wrapped with a
// schema version so old blobs can be migrated on read.
type Envelope struct {
	State   json.RawMessage `json:"state"`
	Version int             `json:"version"`
}

// MigrateFunc converts a persisted state from an older version to the
// current one. The current migration is a passthrough.
type MigrateFunc func(state json.RawMessage, from, to int) (json.RawMessage, error)

// Passthrough returns the state unchanged regardless of version.
func Passthrough(state json.RawMessage, _, _ int) (json.RawMessage, error) {
	return state, nil
}

func EncodeEnvelope(state any, version int) ([]byte, error) {
	raw, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	data, err := json.Marshal(Envelope{State: raw, Version: version})
	if err != nil {
		return nil, fmt.Errorf("marshal envelope: %w", err)
	}
	return data, nil
}

// DecodeEnvelope unwraps a persisted blob, invoking migrate when the stored
// version differs from the expected one.
func DecodeEnvelope(data []byte, version int, migrate MigrateFunc) (json.RawMessage, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version != version {
		if migrate == nil {
			return nil, fmt.Errorf("unsupported state version %d", env.Version)
		}
		migrated, err := migrate(env.State, env.Version, version)
		if err != nil {
			return nil, fmt.Errorf("migrate state from version %d: %w", env.Version, err)
		}
		return migrated, nil
	}
	return env.State, nil
}
