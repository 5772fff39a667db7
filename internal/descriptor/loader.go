package descriptor

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/hashicorp/go-version"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Schema versions.
const (
	CurrentVersion    = "1.1"
	SupportedVersions = ">= 1.0, < 2.0"
)

// ErrUnsupportedVersion is returned for descriptor files outside SupportedVersions.
var ErrUnsupportedVersion = errors.New("unsupported descriptor schema version")

// Format is a descriptor file encoding.
type Format string

const (
	FormatYAML    Format = "yaml"
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// FormatFromPath infers the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".msgpack", ".mpk":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("unknown descriptor file extension %q", filepath.Ext(path))
	}
}

// LoadFile loads and parses a descriptor file from the given path.
func LoadFile(path string) (*File, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptor file %s: %w", path, err)
	}

	f, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return f, nil
}

// LoadFiles loads every path and concatenates their classes in argument order.
func LoadFiles(paths ...string) ([]RawClass, error) {
	var classes []RawClass

	for _, p := range paths {
		f, err := LoadFile(p)
		if err != nil {
			return nil, err
		}

		classes = append(classes, f.Classes...)
	}

	return classes, nil
}

// Parse decodes data in the given format and checks its schema version.
func Parse(data []byte, format Format) (*File, error) {
	var f File

	var err error

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&f)
	case FormatJSON:
		err = json.Unmarshal(data, &f, json.RejectUnknownMembers(true))
	case FormatMsgpack:
		err = msgpack.Unmarshal(data, &f)
	default:
		return nil, fmt.Errorf("unsupported descriptor format %q", format)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to parse descriptor %s: %w", format, err)
	}

	applyDefaults(&f)

	if err := checkVersion(f.Version); err != nil {
		return nil, err
	}

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = CurrentVersion
	}
}

func checkVersion(v string) error {
	constraint, err := version.NewConstraint(SupportedVersions)
	if err != nil {
		return err
	}

	parsed, err := version.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnsupportedVersion, v, err)
	}

	if !constraint.Check(parsed) {
		return fmt.Errorf("%w: %s (supported %s)", ErrUnsupportedVersion, v, SupportedVersions)
	}

	return nil
}

// Marshal serializes a descriptor file in the given format.
func Marshal(f *File, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(f)
	case FormatJSON:
		return json.Marshal(f, jsontext.WithIndent("  "))
	case FormatMsgpack:
		return msgpack.Marshal(f)
	default:
		return nil, fmt.Errorf("unsupported descriptor format %q", format)
	}
}

// WriteFile writes a descriptor file, choosing the format from the extension.
func WriteFile(f *File, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	data, err := Marshal(f, format)
	if err != nil {
		return fmt.Errorf("failed to marshal descriptor: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write descriptor file %s: %w", path, err)
	}

	return nil
}
