package tui

// Node kinds for type-specific rendering and key behavior.
const (
	NodeResource  = "resource"
	NodeOperation = "operation"
	NodeParameter = "parameter"
	NodeReturn    = "return"
)

// TreeNode is one row of the navigation tree.
type TreeNode struct {
	ID       string // unique within the tree; operations use "resource.nickname"
	Label    string
	Detail   string // dim annotation after the label
	Kind     string
	Children []*TreeNode
	Expanded bool
	Depth    int // set while flattening

	// Selectable marks leaves the cursor may stop on. Nodes with children
	// are always selectable.
	Selectable bool
}

// IsLeaf returns true if this node has no children.
func (n *TreeNode) IsLeaf() bool { return len(n.Children) == 0 }

func (n *TreeNode) selectable() bool { return n.Selectable || !n.IsLeaf() }

// TreeState is a navigable tree: the node forest plus the selected node.
// The cursor tracks the node itself, not a position, so expanding and
// collapsing elsewhere never moves the selection.
type TreeState struct {
	Roots []*TreeNode
	sel   *TreeNode
}

// NewTreeState builds the state and selects the first selectable node.
func NewTreeState(roots []*TreeNode) *TreeState {
	ts := &TreeState{Roots: roots}
	ts.MoveToFirst()
	return ts
}

// Selected returns the selected node, or nil for an empty tree.
func (ts *TreeState) Selected() *TreeNode { return ts.sel }

// Visible flattens the forest to the currently visible rows, refreshing
// each node's Depth.
func (ts *TreeState) Visible() []*TreeNode {
	var rows []*TreeNode
	var walk func(nodes []*TreeNode, depth int)
	walk = func(nodes []*TreeNode, depth int) {
		for _, n := range nodes {
			n.Depth = depth
			rows = append(rows, n)
			if n.Expanded && !n.IsLeaf() {
				walk(n.Children, depth+1)
			}
		}
	}
	walk(ts.Roots, 0)
	return rows
}

// SelectedIndex returns the selected node's position among the visible
// rows, or -1 when the selection is hidden or unset.
func (ts *TreeState) SelectedIndex() int {
	for i, n := range ts.Visible() {
		if n == ts.sel {
			return i
		}
	}
	return -1
}

// MoveDown selects the next selectable visible node.
func (ts *TreeState) MoveDown() bool {
	visible := ts.Visible()
	for i := ts.SelectedIndex() + 1; i < len(visible); i++ {
		if visible[i].selectable() {
			ts.sel = visible[i]
			return true
		}
	}
	return false
}

// MoveUp selects the previous selectable visible node.
func (ts *TreeState) MoveUp() bool {
	visible := ts.Visible()
	for i := ts.SelectedIndex() - 1; i >= 0; i-- {
		if visible[i].selectable() {
			ts.sel = visible[i]
			return true
		}
	}
	return false
}

// MoveToFirst selects the first selectable visible node.
func (ts *TreeState) MoveToFirst() bool {
	for _, n := range ts.Visible() {
		if n.selectable() {
			ts.sel = n
			return true
		}
	}
	return false
}

// MoveToLast selects the last selectable visible node.
func (ts *TreeState) MoveToLast() bool {
	visible := ts.Visible()
	for i := len(visible) - 1; i >= 0; i-- {
		if visible[i].selectable() {
			ts.sel = visible[i]
			return true
		}
	}
	return false
}

// Expand opens the selected node. Returns true if it changed.
func (ts *TreeState) Expand() bool {
	if ts.sel == nil || ts.sel.IsLeaf() || ts.sel.Expanded {
		return false
	}
	ts.sel.Expanded = true
	return true
}

// Collapse closes the selected node, or jumps to its parent when the node
// is already closed.
func (ts *TreeState) Collapse() bool {
	if ts.sel == nil {
		return false
	}
	if ts.sel.Expanded && !ts.sel.IsLeaf() {
		ts.sel.Expanded = false
		return true
	}
	if parent := ts.parentOf(ts.sel); parent != nil {
		ts.sel = parent
		return true
	}
	return false
}

// Toggle flips the selected node between open and closed.
func (ts *TreeState) Toggle() bool {
	if ts.sel == nil || ts.sel.IsLeaf() {
		return false
	}
	ts.sel.Expanded = !ts.sel.Expanded
	return true
}

// ExpandAll opens every node.
func (ts *TreeState) ExpandAll() { setExpanded(ts.Roots, true) }

// CollapseAll closes every node. A selection hidden by the collapse moves
// up to its top-level ancestor.
func (ts *TreeState) CollapseAll() {
	setExpanded(ts.Roots, false)
	if ts.sel != nil && ts.SelectedIndex() < 0 {
		for n := ts.parentOf(ts.sel); n != nil; n = ts.parentOf(n) {
			ts.sel = n
		}
	}
}

func setExpanded(nodes []*TreeNode, expanded bool) {
	for _, n := range nodes {
		if !n.IsLeaf() {
			n.Expanded = expanded
			setExpanded(n.Children, expanded)
		}
	}
}

// SelectID moves the selection to the node with the given ID.
func (ts *TreeState) SelectID(id string) bool {
	if n := findByID(ts.Roots, id); n != nil {
		ts.sel = n
		return true
	}
	return false
}

func findByID(nodes []*TreeNode, id string) *TreeNode {
	for _, n := range nodes {
		if n.ID == id {
			return n
		}
		if found := findByID(n.Children, id); found != nil {
			return found
		}
	}
	return nil
}

func (ts *TreeState) parentOf(target *TreeNode) *TreeNode {
	var find func(nodes []*TreeNode, parent *TreeNode) *TreeNode
	find = func(nodes []*TreeNode, parent *TreeNode) *TreeNode {
		for _, n := range nodes {
			if n == target {
				return parent
			}
			if found := find(n.Children, n); found != nil {
				return found
			}
		}
		return nil
	}
	return find(ts.Roots, nil)
}
