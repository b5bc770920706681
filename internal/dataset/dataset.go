// Package dataset reads test cases from JSON or YAML files.
package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/chatprobe/backend/internal/domain/testcase"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var ErrEmpty = errors.New("dataset has no cases")

// Set is a named list of test cases.
type Set struct {
	Name  string              `yaml:"name" json:"name"`
	Cases []testcase.TestCase `yaml:"cases" json:"cases"`
}

// LoadFile reads a dataset from disk, picking the format from the file
// extension. A set without a name is named after the file.
func LoadFile(path string) (*Set, error) {
	if path == "" {
		return nil, fmt.Errorf("dataset path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	set, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if set.Name == "" {
		set.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return set, nil
}

// FormatFromPath maps .yaml and .yml to FormatYAML and anything else to FormatJSON.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes data as either a bare list of cases or a {name, cases}
// document.
func Parse(data []byte, format string) (*Set, error) {
	var (
		set *Set
		err error
	)
	switch format {
	case FormatJSON, "":
		set, err = parseJSON(data)
	case FormatYAML, "yml":
		set, err = parseYAML(data)
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", format)
	}
	if err != nil {
		return nil, err
	}
	if err := validate(set); err != nil {
		return nil, err
	}
	return set, nil
}

func parseJSON(data []byte) (*Set, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrEmpty
	}

	var set Set
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &set.Cases); err != nil {
			return nil, fmt.Errorf("parse dataset: %w", err)
		}
		return &set, nil
	}
	if err := json.Unmarshal(trimmed, &set); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	return &set, nil
}

func parseYAML(data []byte) (*Set, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, ErrEmpty
	}

	root := doc.Content[0]
	var set Set
	if root.Kind == yaml.SequenceNode {
		if err := root.Decode(&set.Cases); err != nil {
			return nil, fmt.Errorf("parse dataset: %w", err)
		}
		return &set, nil
	}
	if err := root.Decode(&set); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	return &set, nil
}

func validate(set *Set) error {
	if len(set.Cases) == 0 {
		return ErrEmpty
	}
	for i := range set.Cases {
		if strings.TrimSpace(set.Cases[i].Question) == "" {
			return fmt.Errorf("case %d missing question", i)
		}
		if set.Cases[i].Keywords == nil {
			set.Cases[i].Keywords = []string{}
		}
	}
	return nil
}
