package menu

// Node is one item of the rendered menu tree.
type Node struct {
	// Item is the menu item of this node.
	Item *Item `json:"item"`

	// Children are the child nodes in input order.
	Children []*Node `json:"children,omitempty"`

	// IsActive is true when the node is the active item.
	IsActive bool `json:"is_active"`

	// IsParentActive is true when the node is the active item or one of its ancestors.
	IsParentActive bool `json:"is_parent_active"`
}

// Walk visits the node and its descendants depth-first, stopping when fn returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}

	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}

	return true
}

// BuildTree assembles the forest of items, flagging the active item and its ancestors.
// Items with a nil parent are roots; siblings keep their input order.
// Items whose parent is not part of items are unreachable and left out.
func BuildTree(items []Item, active *Item) []*Node {
	var roots []int
	children := make(map[int64][]int, len(items))
	byID := make(map[int64]*Item, len(items))

	for i := range items {
		item := &items[i]
		byID[item.ID] = item

		if item.IsRoot() {
			roots = append(roots, i)
			continue
		}

		children[*item.ParentID] = append(children[*item.ParentID], i)
	}

	lineage := activeLineage(active, byID)

	// visited bounds recursion on corrupted parent references
	visited := make(map[int64]bool, len(items))

	var build func(idx []int) []*Node
	build = func(idx []int) []*Node {
		nodes := make([]*Node, 0, len(idx))

		for _, i := range idx {
			item := &items[i]
			if visited[item.ID] {
				continue
			}
			visited[item.ID] = true

			nodes = append(nodes, &Node{
				Item:           item,
				Children:       build(children[item.ID]),
				IsActive:       active != nil && active.ID == item.ID,
				IsParentActive: lineage[item.ID],
			})
		}

		return nodes
	}

	return build(roots)
}

// activeLineage returns the IDs of the active item and all of its ancestors.
// The walk stops at a root, at a parent missing from byID, or on a repeated ID.
func activeLineage(active *Item, byID map[int64]*Item) map[int64]bool {
	lineage := make(map[int64]bool)
	if active == nil {
		return lineage
	}

	lineage[active.ID] = true

	for p := active.ParentID; p != nil; {
		if lineage[*p] {
			break
		}
		lineage[*p] = true

		parent, ok := byID[*p]
		if !ok {
			break
		}
		p = parent.ParentID
	}

	return lineage
}
