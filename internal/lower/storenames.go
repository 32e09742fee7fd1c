package lower

import "github.com/loom-lang/loomc/internal/ir"

// storeNames collects the names of all buffers written by stores anywhere
// under s, including inside nested atomic regions.
func storeNames(s ir.Stmt) map[string]struct{} {
	names := make(map[string]struct{})
	ir.Walk(s, func(n ir.Node) bool {
		if st, ok := n.(*ir.Store); ok {
			names[st.Name] = struct{}{}
		}
		return true
	})
	return names
}
