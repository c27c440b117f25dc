package animator

// WorldPosition returns n's position accumulated through every ancestor.
// Node positions are parent-relative translations.
func WorldPosition(n *Node) Vec3 {
	var p Vec3
	for cur := n; cur != nil; cur = cur.Parent {
		p = p.Add(cur.Position)
	}
	return p
}

// WorldPositions returns the world position of every bone under root,
// keyed by node, in one pass.
func WorldPositions(root *Node) map[*Node]Vec3 {
	out := make(map[*Node]Vec3)
	if root == nil {
		return out
	}
	origin := Vec3{}
	if root.Parent != nil {
		origin = WorldPosition(root.Parent)
	}
	updateWorld(root, origin, out)
	return out
}

func updateWorld(n *Node, parent Vec3, out map[*Node]Vec3) {
	world := parent.Add(n.Position)
	if n.IsBone() {
		out[n] = world
	}
	for _, c := range n.children {
		updateWorld(c, world, out)
	}
}

// ParentBone returns the nearest ancestor of n that is a bone, or nil.
func ParentBone(n *Node) *Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.IsBone() {
			return p
		}
	}
	return nil
}
