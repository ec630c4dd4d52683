package analyze

import (
	"sort"
	"strings"
	"unicode/utf8"

	"pathbatch/internal/model"
)

// Registry owns every Node for the run's lifetime. Nodes are addressed by
// canonical path string and by stable integer id; the id->path association
// is stored explicitly at creation time. A depth index drives the
// bottom-up aggregation sweep.
type Registry struct {
	byPath   map[string]*model.Node
	byID     map[int]*model.Node
	pathByID map[int]string
	// depth -> node ids in creation order
	depths map[int][]int
	ids    model.Counter
	sep    string
}

// NewRegistry creates an empty registry for paths using sep.
func NewRegistry(sep string) *Registry {
	return &Registry{
		byPath:   make(map[string]*model.Node),
		byID:     make(map[int]*model.Node),
		pathByID: make(map[int]string),
		depths:   make(map[int][]int),
		sep:      sep,
	}
}

// Lookup finds the node for a directory path.
func (r *Registry) Lookup(path string) (*model.Node, bool) {
	n, ok := r.byPath[path]
	return n, ok
}

// ByID finds a node by its stable id.
func (r *Registry) ByID(id int) *model.Node { return r.byID[id] }

// Path returns the canonical path stored for a node id.
func (r *Registry) Path(id int) string { return r.pathByID[id] }

// Len returns the number of registered directories.
func (r *Registry) Len() int { return len(r.byPath) }

// Create registers a new node for path, assigning the next run-scoped id.
// The caller must have checked the path is not yet registered.
func (r *Registry) Create(path string) *model.Node {
	depth := 0
	if path != "" {
		depth = len(strings.Split(path, r.sep))
	}
	n := &model.Node{
		ID:              r.ids.Next(),
		Depth:           depth,
		LocalPathLength: utf8.RuneCountInString(path),
	}
	r.byPath[path] = n
	r.byID[n.ID] = n
	r.pathByID[n.ID] = path
	r.depths[depth] = append(r.depths[depth], n.ID)
	return n
}

// Ensure returns the node for path, creating it (only) if missing.
func (r *Registry) Ensure(path string) *model.Node {
	if n, ok := r.byPath[path]; ok {
		return n
	}
	return r.Create(path)
}

// InsertAncestors registers path and every ancestor directory that is not
// yet known. Re-inserting an existing path is a no-op.
func (r *Registry) InsertAncestors(path string) {
	for path != "" {
		if _, ok := r.byPath[path]; !ok {
			r.Create(path)
		}
		i := strings.LastIndex(path, r.sep)
		if i < 0 {
			return
		}
		path = path[:i]
	}
}

// DepthsDescending returns every populated depth, deepest first.
func (r *Registry) DepthsDescending() []int {
	out := make([]int, 0, len(r.depths))
	for d := range r.depths {
		out = append(out, d)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// AtDepth returns node ids registered at a depth, in creation order.
func (r *Registry) AtDepth(d int) []int { return r.depths[d] }
