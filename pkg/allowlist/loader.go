package allowlist

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is an on-disk allowlist encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
)

// FormatFromPath picks a format from the file extension. Anything that is not
// .json, .yaml or .yml is read as text.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatText
	}
}

// document is the object form accepted by the JSON and YAML loaders.
type document struct {
	Addresses []string `json:"addresses" yaml:"addresses"`
}

// Load reads an allowlist file.
func Load(path string) (*Allowlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read allowlist %s: %w", path, err)
	}
	return Parse(data, FormatFromPath(path))
}

// Parse decodes an allowlist.
//
// JSON and YAML accept either a bare list of addresses or an object with an
// "addresses" list. Text holds one address per line; blank lines and
// everything after '#' are ignored.
func Parse(data []byte, format Format) (*Allowlist, error) {
	var (
		entries []string
		err     error
	)

	switch format {
	case FormatJSON:
		entries, err = parseJSON(data)
	case FormatYAML:
		entries, err = parseYAML(data)
	case FormatText:
		entries, err = parseText(data)
	default:
		return nil, fmt.Errorf("unsupported allowlist format %q", format)
	}
	if err != nil {
		return nil, err
	}

	return New(entries)
}

func parseJSON(data []byte) ([]string, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []string
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("failed to decode JSON allowlist: %w", err)
		}
		return list, nil
	}

	var doc document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode JSON allowlist: %w", err)
	}
	return doc.Addresses, nil
}

func parseYAML(data []byte) ([]string, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to decode YAML allowlist: %w", err)
	}
	if len(node.Content) == 0 {
		return []string{}, nil
	}

	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		var list []string
		if err := root.Decode(&list); err != nil {
			return nil, fmt.Errorf("failed to decode YAML allowlist: %w", err)
		}
		return list, nil
	}

	var doc document
	if err := root.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode YAML allowlist: %w", err)
	}
	return doc.Addresses, nil
}

func parseText(data []byte) ([]string, error) {
	entries := make([]string, 0)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		entries = append(entries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read text allowlist: %w", err)
	}
	return entries, nil
}
