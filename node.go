package animator

// --- ID counter ---

// nodeIDCounter is a plain counter (no atomic; animator is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is the scene-graph element a session animates. A single flat struct is
// used for groups and bones; Type tells them apart.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Local position, written by the mixer for bones.
	Position Vec3

	// Metadata
	UserData any

	disposed bool
}

// NewGroup creates a transform-only node.
func NewGroup(name string) *Node {
	return &Node{ID: nextNodeID(), Name: name, Type: NodeTypeGroup}
}

// NewBone creates a skeletal bone node at the given local position.
func NewBone(name string, pos Vec3) *Node {
	return &Node{ID: nextNodeID(), Name: name, Type: NodeTypeBone, Position: pos}
}

// IsBone reports whether the node is typed as a skeletal bone.
func (n *Node) IsBone() bool {
	return n != nil && n.Type == NodeTypeBone
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("animator: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("animator: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	if globalDebug {
		debugCheckTreeDepth(child)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChild (parent)")
		debugCheckDisposed(child, "RemoveChild (child)")
	}
	if child.Parent != n {
		panic("animator: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Search ---

// FindRootBone returns the first bone found in a depth-first, pre-order walk
// starting at root (root itself included), or nil if the tree holds no bone.
// The walk is iterative and visits each node at most once.
func FindRootBone(root *Node) *Node {
	return findFirst(root, (*Node).IsBone)
}

// FindBone returns the first bone named name under root, or nil.
func FindBone(root *Node, name string) *Node {
	return findFirst(root, func(n *Node) bool {
		return n.IsBone() && n.Name == name
	})
}

// Walk visits root and its descendants in depth-first pre-order.
func Walk(root *Node, fn func(*Node)) {
	findFirst(root, func(n *Node) bool {
		fn(n)
		return false
	})
}

func findFirst(root *Node, match func(*Node) bool) *Node {
	if root == nil {
		return nil
	}
	visited := make(map[*Node]struct{})
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, seen := visited[n]; seen {
			continue
		}
		visited[n] = struct{}{}
		if match(n) {
			return n
		}
		// Push in reverse so the first child is popped first.
		for i := len(n.children) - 1; i >= 0; i-- {
			stack = append(stack, n.children[i])
		}
	}
	return nil
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
