package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Well-known storage keys. The whole game persists under a handful of keys;
// each value is one JSON envelope.
const (
	// KeySaveSlot holds the single save slot.
	KeySaveSlot = "astral_surveyor_save"
	// KeySettings holds the flat settings document.
	KeySettings = "astral_surveyor_settings"
	// KeyLogBuffer holds the bounded array of recent log entries kept for
	// post-mortem debugging.
	KeyLogBuffer = "astral_surveyor_logs"
)

// EnvelopeVersion is stamped on every stored value.
const EnvelopeVersion = "1"

// ErrUnavailable is returned by backends whose underlying medium failed the
// availability probe.
var ErrUnavailable = errors.New("storage unavailable")

// Envelope is the uniform wrapper written around every stored value.
type Envelope struct {
	Version   string          `json:"version"`
	Timestamp int64           `json:"timestamp"` // epoch milliseconds
	Data      json.RawMessage `json:"data"`
}

// Store is a thin versioned key-value wrapper over local persistent
// storage. Values are JSON-encoded and wrapped in an Envelope uniformly by
// the backend.
type Store interface {
	// Put serializes value and stores it under key, replacing any
	// previous value.
	Put(ctx context.Context, key string, value any) error

	// Get unmarshals the stored value into out. It returns false with a
	// nil error when the key does not exist.
	Get(ctx context.Context, key string, out any) (bool, error)

	// GetEnvelope returns the raw envelope for a key, for callers that
	// need the stored version or timestamp.
	GetEnvelope(ctx context.Context, key string) (*Envelope, bool, error)

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Available probes whether the backing medium is usable.
	Available() bool

	// Close releases the backing medium.
	Close() error
}

// wrap builds the envelope for a value at the given time.
func wrap(value any, now time.Time) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{
		Version:   EnvelopeVersion,
		Timestamp: now.UnixMilli(),
		Data:      data,
	})
}

// unwrap decodes an envelope and unmarshals its payload into out.
func unwrap(raw []byte, out any) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, err
		}
	}
	return &env, nil
}
