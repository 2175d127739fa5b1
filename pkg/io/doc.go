// Package io reads and writes hierarchies in flare-style formats.
//
// # Format
//
// A hierarchy is a tree of objects. Each object has:
//
//   - name: display label
//   - children: optional ordered list of child objects
//   - value or size: optional number, used as the leaf weight
//   - meta: optional object of free-form metadata
//
// Any other key is kept in the node's metadata, so existing flare files with
// extra attributes load without loss:
//
//	{
//	  "name": "flare",
//	  "children": [
//	    {"name": "analytics", "children": [{"name": "cluster", "size": 3938}]},
//	    {"name": "vis", "size": 5000, "owner": "ui"}
//	  ]
//	}
//
// The same shape is accepted as YAML and as TOML (children as [[children]]
// arrays of tables).
//
// # Import
//
// [Import] picks the decoder from the file extension; [Read] takes an explicit
// [Format]. Node names are validated and malformed values are reported with
// code INVALID_FORMAT.
//
// # Export
//
// [WriteJSON] and [WriteYAML] emit the same shape with metadata gathered
// under "meta", so exported files import back to an equal tree.
package io
