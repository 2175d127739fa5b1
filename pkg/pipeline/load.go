package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/matzehuels/sunburst/pkg/cache"
	serrors "github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/hierarchy"
	"github.com/matzehuels/sunburst/pkg/httputil"
	sio "github.com/matzehuels/sunburst/pkg/io"
	"github.com/matzehuels/sunburst/pkg/partition"
)

// Source names reported for non-file inputs.
const (
	SourceSample  = "sample"
	SourceData    = "data"
	SourceRequest = "request"
)

// Source is a loaded hierarchy.
type Source struct {
	// Name is the input path or one of the Source* names.
	Name string
	// Root is the hierarchy.
	Root *hierarchy.Node
	// Hash is the SHA-256 of the hierarchy's canonical JSON encoding.
	Hash string
}

// Load reads the hierarchy selected by opts.
func Load(ctx context.Context, opts Options) (Source, error) {
	src := Source{}
	var err error

	switch {
	case httputil.IsURL(opts.Input):
		src.Name = opts.Input
		src.Root, err = loadURL(ctx, opts)
	case opts.Input != "":
		src.Name = opts.Input
		src.Root, err = loadFile(opts.Input, opts.Format)
	case len(opts.Data) > 0:
		src.Name = SourceData
		src.Root, err = loadData(opts.Data, opts.Format)
	case opts.Hierarchy != nil:
		src.Name = SourceRequest
		src.Root = opts.Hierarchy
		err = validateTree(src.Root)
	default:
		src.Name = SourceSample
		src.Root = hierarchy.Sample()
	}
	if err != nil {
		return Source{}, err
	}
	if err := ctx.Err(); err != nil {
		return Source{}, err
	}

	src.Hash, err = HashHierarchy(src.Root)
	if err != nil {
		return Source{}, err
	}
	return src, nil
}

func loadFile(path, format string) (*hierarchy.Node, error) {
	if format == "" {
		return sio.Import(path)
	}
	f, err := sio.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return sio.Read(bytes.NewReader(data), f)
}

func loadURL(ctx context.Context, opts Options) (*hierarchy.Node, error) {
	client := opts.Fetcher
	if client == nil {
		client = httputil.NewClient(nil, nil)
	}
	resp, err := client.Fetch(ctx, opts.Input, opts.Refresh)
	if err != nil {
		return nil, err
	}
	format := opts.Format
	if format == "" {
		format = resp.FormatHint()
	}
	return loadData(resp.Body, format)
}

func loadData(data []byte, format string) (*hierarchy.Node, error) {
	f := sio.FormatJSON
	if format != "" {
		var err error
		if f, err = sio.ParseFormat(format); err != nil {
			return nil, err
		}
	}
	return sio.Read(bytes.NewReader(data), f)
}

// validateTree checks names and rejects nodes reachable twice, which covers
// both cycles and shared children, before anything recurses over the tree.
func validateTree(root *hierarchy.Node) error {
	seen := map[*hierarchy.Node]bool{}
	var err error
	hierarchy.Walk(root, func(n *hierarchy.Node, _ int) bool {
		if err != nil {
			return false
		}
		if seen[n] {
			err = serrors.Wrap(serrors.ErrCodeInvalidHierarchy, partition.ErrInvalidHierarchy, "node %q is reachable more than once", n.Name)
			return false
		}
		seen[n] = true
		err = serrors.ValidateNodeName(n.Name)
		return err == nil
	})
	return err
}

// HashHierarchy returns the content hash used in cache keys.
func HashHierarchy(root *hierarchy.Node) (string, error) {
	var buf bytes.Buffer
	if err := sio.WriteJSON(root, &buf); err != nil {
		return "", fmt.Errorf("hash hierarchy: %w", err)
	}
	return cache.Hash(buf.Bytes()), nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, serrors.Wrap(serrors.ErrCodeFileNotFound, err, "read %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
