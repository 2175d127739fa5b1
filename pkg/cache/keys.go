package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"hash"
	"strings"
)

// LayoutKeyOpts holds every option that changes a layout.
type LayoutKeyOpts struct {
	Width       float64    `json:"w"`
	Height      float64    `json:"h"`
	Padding     [4]float64 `json:"pad"`
	InnerRadius float64    `json:"ir"`
	StartAngle  float64    `json:"sa"`
	EndAngle    float64    `json:"ea"`
	PadAngle    float64    `json:"pa"`
	RadialScale string     `json:"rs"`
	ValueMode   string     `json:"vm"`
	ValueField  string     `json:"vf"`
}

// ArtifactKeyOpts holds every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	View        string   `json:"v"`
	Format      string   `json:"f"`
	Style       string   `json:"s"`
	Stroke      string   `json:"st"`
	StrokeWidth float64  `json:"sw"`
	FontFamily  string   `json:"ff,omitempty"`
	FontSize    float64  `json:"fs,omitempty"`
	Palette     []string `json:"p,omitempty"`
	Labels      bool     `json:"l"`
	HideRoot    bool     `json:"hr"`
	Selected    int      `json:"sel"`
	Fragment    bool     `json:"frag"`
	Interactive bool     `json:"int"`
	Scale       float64  `json:"sc"`
}

// DefaultKeyer hashes options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(hierarchyHash string, opts LayoutKeyOpts) string {
	return digestKey("layout", hierarchyHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return digestKey("artifact", layoutHash, opts)
}

// ResultKey returns "result:<id>".
func (DefaultKeyer) ResultKey(id string) string {
	return "result:" + id
}

// Hash returns the hex SHA-256 of data. Content hashes of hierarchies and
// layouts feed the keys above.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// digestKey hashes the content hash followed by the JSON form of opts.
// Option structs only hold plain fields, so encoding cannot fail.
func digestKey(kind, contentHash string, opts any) string {
	h := sha256.New()
	h.Write([]byte(contentHash))
	h.Write([]byte{0})
	_ = json.NewEncoder(h).Encode(opts)
	return kind + ":" + hexSum(h)
}

func hexSum(h hash.Hash) string { return hex.EncodeToString(h.Sum(nil)) }

// ScopedKeyer namespaces every key of an inner Keyer, so several
// deployments can share one store:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging")
//
// A missing trailing ":" is added to the prefix.
type ScopedKeyer struct {
	Inner  Keyer
	Prefix string
}

// NewScopedKeyer returns inner scoped by prefix. A nil inner means the
// DefaultKeyer; an empty prefix returns inner unchanged.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	if prefix == "" {
		return inner
	}
	if !strings.HasSuffix(prefix, ":") {
		prefix += ":"
	}
	return ScopedKeyer{Inner: inner, Prefix: prefix}
}

func (k ScopedKeyer) LayoutKey(hierarchyHash string, opts LayoutKeyOpts) string {
	return k.Prefix + k.Inner.LayoutKey(hierarchyHash, opts)
}

func (k ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.Prefix + k.Inner.ArtifactKey(layoutHash, opts)
}

func (k ScopedKeyer) ResultKey(id string) string {
	return k.Prefix + k.Inner.ResultKey(id)
}
