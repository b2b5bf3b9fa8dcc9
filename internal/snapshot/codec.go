// Package snapshot reads and writes model snapshots as YAML documents, the
// format used by the export and import commands.
package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"classmate/pkg/types"
)

// FormatVersion is written into every document and checked on read.
const FormatVersion = 1

var (
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
	ErrEmptyDocument      = errors.New("snapshot document is empty")
)

// document is the on-disk envelope around a snapshot.
type document struct {
	Version  int             `yaml:"version"`
	Snapshot *types.Snapshot `yaml:"snapshot"`
}

// Encode writes snap to w as a YAML document.
func Encode(w io.Writer, snap *types.Snapshot) error {
	if snap == nil {
		return fmt.Errorf("%w: snapshot is nil", types.ErrInvalidArgument)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(document{Version: FormatVersion, Snapshot: snap}); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush snapshot: %w", err)
	}
	return nil
}

// Marshal returns the YAML encoding of snap.
func Marshal(snap *types.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, snap); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads one YAML document from r. Unknown fields are rejected so a
// typo in a hand-edited file is reported rather than silently dropped.
func Decode(r io.Reader) (*types.Snapshot, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if doc.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}
	if doc.Snapshot == nil {
		return &types.Snapshot{}, nil
	}
	return doc.Snapshot, nil
}

// Unmarshal decodes a snapshot from data.
func Unmarshal(data []byte) (*types.Snapshot, error) {
	return Decode(bytes.NewReader(data))
}

// WriteFile writes snap to path, creating missing directories. The document is written to a temporary file
// in the same directory and renamed into place so readers never see a
// partial file.
func WriteFile(path string, snap *types.Snapshot) error {
	data, err := Marshal(snap)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".classmate-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move snapshot into place: %w", err)
	}
	return nil
}

// ReadFile reads a snapshot from path.
func ReadFile(path string) (*types.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()
	return Decode(f)
}
