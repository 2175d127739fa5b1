package hierarchy

// ValueFunc extracts the weight of a node. Results that are negative, NaN or
// infinite are treated as zero by the partitioner.
type ValueFunc func(n *Node) float64

// Constant returns a ValueFunc giving every node the same weight, so leaves
// share angles equally regardless of their declared size.
func Constant(v float64) ValueFunc {
	return func(*Node) float64 { return v }
}

// Declared returns the node's own Value field.
func Declared(n *Node) float64 {
	return n.Value
}

// Meta returns a ValueFunc reading a numeric metadata entry. Missing or
// non-numeric entries yield zero.
func Meta(key string) ValueFunc {
	return func(n *Node) float64 {
		switch v := n.Meta[key].(type) {
		case float64:
			return v
		case float32:
			return float64(v)
		case int:
			return float64(v)
		case int64:
			return float64(v)
		case uint64:
			return float64(v)
		}
		return 0
	}
}

// Value function names accepted by [ByName].
const (
	ValueCount    = "count"
	ValueDeclared = "value"
)

// ByName resolves a value function by name: "count" (constant 1), "value"
// (declared Value), or any other string as a metadata key.
func ByName(name string) ValueFunc {
	switch name {
	case "", ValueCount:
		return Constant(1)
	case ValueDeclared, "size":
		return Declared
	default:
		return Meta(name)
	}
}
