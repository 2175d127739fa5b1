package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	serrors "github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/hierarchy"
)

// Format identifies a hierarchy encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Reserved keys of a hierarchy object.
const (
	keyName     = "name"
	keyChildren = "children"
	keyValue    = "value"
	keySize     = "size"
	keyMeta     = "meta"
)

// maxDepth bounds nesting so hostile input cannot exhaust the stack.
const maxDepth = 512

// FormatFromPath returns the format implied by path's extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", serrors.New(serrors.ErrCodeInvalidFormat, "cannot infer format of %q (want .json, .yaml, .yml or .toml)", path)
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", serrors.New(serrors.ErrCodeInvalidFormat, "unknown input format %q", s)
}

// Import reads the hierarchy stored at path.
func Import(path string) (*hierarchy.Node, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, serrors.Wrap(serrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, format)
}

// Read decodes a hierarchy from r.
func Read(r io.Reader, format Format) (*hierarchy.Node, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatYAML:
		return ReadYAML(r)
	case FormatTOML:
		return ReadTOML(r)
	}
	return nil, serrors.New(serrors.ErrCodeInvalidFormat, "unknown input format %q", format)
}

// ReadJSON decodes a flare-style JSON hierarchy.
func ReadJSON(r io.Reader) (*hierarchy.Node, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, serrors.Wrap(serrors.ErrCodeInvalidFormat, err, "decode json")
	}
	return fromRaw(raw)
}

// ReadYAML decodes a flare-style YAML hierarchy.
func ReadYAML(r io.Reader) (*hierarchy.Node, error) {
	var raw any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, serrors.Wrap(serrors.ErrCodeInvalidFormat, err, "decode yaml")
	}
	return fromRaw(raw)
}

// ReadTOML decodes a flare-style TOML hierarchy.
func ReadTOML(r io.Reader) (*hierarchy.Node, error) {
	var raw map[string]any
	if _, err := toml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, serrors.Wrap(serrors.ErrCodeInvalidFormat, err, "decode toml")
	}
	return fromRaw(raw)
}

func fromRaw(raw any) (*hierarchy.Node, error) {
	return convert(raw, "", 0)
}

func convert(raw any, path string, depth int) (*hierarchy.Node, error) {
	if depth > maxDepth {
		return nil, serrors.New(serrors.ErrCodeInvalidFormat, "hierarchy nested deeper than %d levels", maxDepth)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, serrors.New(serrors.ErrCodeInvalidFormat, "%s: expected an object, got %T", where(path), raw)
	}

	n := &hierarchy.Node{}
	if v, ok := obj[keyName]; ok {
		name, ok := v.(string)
		if !ok {
			name = fmt.Sprint(v)
		}
		if err := serrors.ValidateNodeName(name); err != nil {
			return nil, err
		}
		n.Name = name
	}
	here := path + "/" + n.Name

	for _, key := range []string{keySize, keyValue} {
		v, ok := obj[key]
		if !ok {
			continue
		}
		f, err := number(v)
		if err != nil {
			return nil, serrors.Wrap(serrors.ErrCodeInvalidFormat, err, "%s: %s", where(here), key)
		}
		n.Value = f
	}

	for k, v := range obj {
		switch k {
		case keyName, keyChildren, keyValue, keySize:
			continue
		case keyMeta:
			if m, ok := v.(map[string]any); ok {
				for mk, mv := range m {
					setMeta(n, mk, mv)
				}
				continue
			}
		}
		setMeta(n, k, v)
	}

	if v, ok := obj[keyChildren]; ok && v != nil {
		list, err := children(v)
		if err != nil {
			return nil, serrors.Wrap(serrors.ErrCodeInvalidFormat, err, "%s: children", where(here))
		}
		n.Children = make([]*hierarchy.Node, 0, len(list))
		for _, c := range list {
			child, err := convert(c, here, depth+1)
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, child)
		}
	}
	return n, nil
}

func setMeta(n *hierarchy.Node, k string, v any) {
	if n.Meta == nil {
		n.Meta = map[string]any{}
	}
	if num, ok := v.(json.Number); ok {
		if f, err := num.Float64(); err == nil {
			v = f
		}
	}
	n.Meta[k] = v
}

func children(v any) ([]any, error) {
	switch l := v.(type) {
	case []any:
		return l, nil
	case []map[string]any:
		out := make([]any, len(l))
		for i, m := range l {
			out[i] = m
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected a list, got %T", v)
}

// number converts decoded scalars to float64. Strings holding numbers are
// accepted because spreadsheet exports often quote them.
func number(v any) (float64, error) {
	switch x := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	case json.Number:
		return x.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(x), 64)
	}
	return 0, fmt.Errorf("not a number: %v", v)
}

func where(path string) string {
	if path == "" {
		return "root"
	}
	return path
}
