package pitchprofile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"
)

// Marshal serializes a profile in canonical form: two-space indentation and
// the key order of the Profile types. Parse(Marshal(p)) yields p again.
func Marshal(profile Profile) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(profile); err != nil {
		return nil, fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode profile: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportJSON renders a profile as indented JSON, keeping ordered maps in
// document order.
func ExportJSON(profile Profile) ([]byte, error) {
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode profile as JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// Canonicalize parses data and returns its canonical serialization.
func Canonicalize(data []byte) ([]byte, error) {
	profile, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return Marshal(profile)
}

// IsCanonical reports whether data is already in canonical form.
func IsCanonical(data []byte) (bool, error) {
	canonical, err := Canonicalize(data)
	if err != nil {
		return false, err
	}
	return bytes.Equal(canonical, data), nil
}

// WriteFile atomically replaces path with the canonical form of profile.
func WriteFile(ctx context.Context, path string, profile Profile) error {
	data, err := Marshal(profile)
	if err != nil {
		return err
	}
	// renameio handles temp file creation, fsync and the atomic rename
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write profile %s: %w", path, err)
	}
	klog.FromContext(ctx).V(1).Info("wrote profile", "path", path, "bytes", len(data))
	return nil
}
