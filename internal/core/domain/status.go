package domain

// ComponentStatus reports the reachability of one pipeline dependency.
type ComponentStatus struct {
	Component string
	Err       error
}

// Healthy returns true when the component responded to its health check.
func (s ComponentStatus) Healthy() bool {
	return s.Err == nil
}

// Component names reported by status checks.
const (
	ComponentVector    = "vector"
	ComponentGraph     = "graph"
	ComponentExpansion = "expansion"
)
