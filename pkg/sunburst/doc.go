// Package sunburst composes partitioning and arc mapping into the records a
// renderer consumes.
//
// [Build] partitions a hierarchy and maps every node through an
// [arc.Mapper] configured from [Config]. The resulting [Layout] lists one
// [Slice] per node in pre-order; renderers colour slices by their index and
// use the parent indices to recover selection paths.
//
// Layouts serialize to JSON. A decoded layout no longer has partition node
// pointers, so [Layout.Ancestors] works on parent indices instead.
package sunburst
