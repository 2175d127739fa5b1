package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/sunburst/pkg/hierarchy"
)

type node struct {
	Name     string         `json:"name" yaml:"name"`
	Value    float64        `json:"value,omitempty" yaml:"value,omitempty"`
	Meta     map[string]any `json:"meta,omitempty" yaml:"meta,omitempty"`
	Children []node         `json:"children,omitempty" yaml:"children,omitempty"`
}

func toWire(n *hierarchy.Node) node {
	out := node{Name: n.Name, Value: n.Value, Meta: n.Meta}
	for _, c := range n.Children {
		if c != nil {
			out.Children = append(out.Children, toWire(c))
		}
	}
	return out
}

// WriteJSON encodes root as flare-style JSON and writes it to w.
func WriteJSON(root *hierarchy.Node, w io.Writer) error {
	if root == nil {
		return fmt.Errorf("encode: nil hierarchy")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toWire(root)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteYAML encodes root as YAML and writes it to w.
func WriteYAML(root *hierarchy.Node, w io.Writer) error {
	if root == nil {
		return fmt.Errorf("encode: nil hierarchy")
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toWire(root)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// Export writes root to path, choosing the encoding from the extension.
// TOML output is not supported.
func Export(root *hierarchy.Node, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if format == FormatTOML {
		return fmt.Errorf("export %s: toml output is not supported", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if format == FormatYAML {
		return WriteYAML(root, f)
	}
	return WriteJSON(root, f)
}
