package model

// Counter hands out sequential integer ids for one record kind. Counters are
// owned by the run, never global, so every run (and every test) starts at 1.
type Counter struct {
	n int
}

// Next returns the next id in the sequence.
func (c *Counter) Next() int {
	c.n++
	return c.n
}

// Count returns how many ids have been handed out.
func (c *Counter) Count() int { return c.n }

// TriState is a yes/no decision that starts out undecided.
type TriState int8

const (
	TriUnknown TriState = iota
	TriTrue
	TriFalse
)

// Item is one input record: the header fields zipped against one line.
type Item struct {
	Fields map[string]string
}

// Get returns a field value, or "" when the field is absent.
func (it *Item) Get(name string) string { return it.Fields[name] }

// Category distinguishes folder listing entries from file entries.
func (it *Item) Category() string { return it.Fields["Category"] }

// ItemPath is the raw path column: <tool prefix><sep><relative path>.
func (it *Item) ItemPath() string { return it.Fields["Item_Path"] }

// Node holds the per-directory statistics. Nodes live in the Registry and
// are looked up by path or id; the tree topology itself carries no counts.
type Node struct {
	ID    int
	Depth int

	// File counts, excluding folders. TotalCnt == LocalCnt + SubdirCnt
	// holds after every update.
	LocalCnt  int
	SubdirCnt int
	TotalCnt  int

	// Counts with descendant folders included. Valid only after the
	// child-count pass has run.
	ChildNodeCnt       int
	LocalPlusChildCnt  int
	SubdirPlusChildCnt int
	TotalPlusChildCnt  int

	// LocalPathLength is the character length of this directory's path.
	LocalPathLength int
	// Longest filename / full path seen anywhere in the subtree.
	LongestFnLength int
	LongestFpLength int

	NumLocalOutliers1 int
	NumLocalOutliers2 int
	NumLocalOutliers3 int
	HasOutliers1      bool
	HasOutliers2      bool
	HasOutliers3      bool

	NumUnableToShorten int

	// Selection state.
	Batchable       TriState
	Trimmable       TriState
	Shortened       bool
	UnableToShorten bool
	CanShorten      bool
	Trimmed         bool
	// WroteOverLimit stops the same over-limit warning being emitted twice.
	WroteOverLimit bool
}

// Outlier1 is a file whose filename alone exceeds the limit.
type Outlier1 struct {
	ID       int
	NodeID   int
	Filename string
}

// Outlier2 is a file whose parent folder + filename exceeds the limit.
type Outlier2 struct {
	ID         int
	NodeID     int
	ParentFile string
}

// Outlier3 is a file whose full path exceeds the limit; it records the
// shortened form. One per directory, keyed by the owning node's id.
type Outlier3 struct {
	ID        int
	NodeID    int
	Shortened string
	File      string
}
