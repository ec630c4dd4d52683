package analyze

// Tree is the directory topology: anonymous branch markers keyed by path
// segment, auto-vivified on insert. Children keep insertion order so every
// walk is reproducible run to run. All statistics live in the Registry.
type Tree struct {
	children map[string]*Tree
	order    []string
}

// NewTree returns an empty tree root.
func NewTree() *Tree { return &Tree{} }

// Insert adds every segment along the path, creating intermediate branches
// as needed. Re-inserting an existing path is a no-op.
func (t *Tree) Insert(segments []string) {
	cur := t
	for _, seg := range segments {
		cur = cur.child(seg)
	}
}

func (t *Tree) child(seg string) *Tree {
	if c, ok := t.children[seg]; ok {
		return c
	}
	if t.children == nil {
		t.children = make(map[string]*Tree)
	}
	c := &Tree{}
	t.children[seg] = c
	t.order = append(t.order, seg)
	return c
}

// Len returns the number of direct children.
func (t *Tree) Len() int { return len(t.order) }

// Descendants counts every directory below t, at any depth. Iterative:
// forensic listings can nest deeper than a comfortable stack.
func (t *Tree) Descendants() int {
	n := 0
	stack := []*Tree{t}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n += len(cur.order)
		for _, seg := range cur.order {
			stack = append(stack, cur.children[seg])
		}
	}
	return n
}

// Walk visits every directory depth-first, children in insertion order,
// calling fn with the joined path (no leading separator) and the branch.
func (t *Tree) Walk(sep string, fn func(path string, node *Tree)) {
	type frame struct {
		node *Tree
		path string
		idx  int
	}
	stack := []frame{{node: t}}
	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		if f.idx >= len(f.node.order) {
			stack = stack[:len(stack)-1]
			continue
		}
		seg := f.node.order[f.idx]
		f.idx++
		child := f.node.children[seg]
		path := joinPath(f.path, seg, sep)
		fn(path, child)
		stack = append(stack, frame{node: child, path: path})
	}
}

func joinPath(base, seg, sep string) string {
	if base == "" {
		return seg
	}
	return base + sep + seg
}
