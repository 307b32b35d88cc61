// Package export dumps every stored document to a single YAML or JSON
// file and loads such a file back into a store.
package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/diacare/internal/constants"
	"github.com/julianstephens/diacare/internal/storage"
)

type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat accepts "yaml", "yml" or "json".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported export format %q (want yaml or json)", s)
}

// Snapshot is the file layout. Documents are keyed by their storage key.
type Snapshot struct {
	App        string         `json:"app" yaml:"app"`
	Version    string         `json:"version" yaml:"version"`
	ExportedAt string         `json:"exportedAt" yaml:"exportedAt"`
	Documents  map[string]any `json:"documents" yaml:"documents"`
}

// Take reads every document in store.
func Take(ctx context.Context, store storage.Provider, now time.Time) (Snapshot, error) {
	keys, err := store.Keys(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to list documents: %w", err)
	}

	snap := Snapshot{
		App:        constants.AppName,
		Version:    constants.Version,
		ExportedAt: now.UTC().Format(time.RFC3339),
		Documents:  make(map[string]any, len(keys)),
	}
	for _, key := range keys {
		if !slices.Contains(constants.AllKeys, key) {
			continue
		}
		raw, err := store.Get(ctx, key)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return Snapshot{}, fmt.Errorf("failed to read %s: %w", key, err)
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return Snapshot{}, fmt.Errorf("document %s is not valid JSON: %w", key, err)
		}
		snap.Documents[key] = doc
	}
	return snap, nil
}

// Write encodes snap to w.
func Write(w io.Writer, snap Snapshot, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported export format %q", format)
}

// Read decodes a snapshot written by Write.
func Read(r io.Reader, format Format) (Snapshot, error) {
	var snap Snapshot
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&snap)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&snap)
	default:
		return snap, fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return snap, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if snap.App != constants.AppName {
		return snap, fmt.Errorf("not a %s export", constants.AppName)
	}
	return snap, nil
}

// Apply writes every document of snap into store, replacing what is there.
// Any key the application does not store is rejected before anything is written.
func Apply(ctx context.Context, store storage.Provider, snap Snapshot) (int, error) {
	for key := range snap.Documents {
		if !strings.HasPrefix(key, constants.KeyPrefix) {
			return 0, fmt.Errorf("unexpected document key %q", key)
		}
		if !slices.Contains(constants.AllKeys, key) {
			return 0, fmt.Errorf("unknown document key %q", key)
		}
	}

	n := 0
	for _, key := range constants.AllKeys {
		doc, ok := snap.Documents[key]
		if !ok {
			continue
		}
		raw, err := json.Marshal(doc)
		if err != nil {
			return n, fmt.Errorf("failed to encode %s: %w", key, err)
		}
		if err := store.Set(ctx, key, raw); err != nil {
			return n, fmt.Errorf("failed to write %s: %w", key, err)
		}
		n++
	}
	return n, nil
}
