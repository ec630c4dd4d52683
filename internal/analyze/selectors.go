package analyze

import (
	"strings"

	"pathbatch/internal/model"
)

// yieldFn receives a selected directory; warnFn receives one whose local
// file count cannot be reduced any further by batching.
type yieldFn func(path string, node *model.Node)
type warnFn func(path string, node *model.Node)

// walkFrame drives the explicit-stack depth-first walks below. The walks
// visit children in tree insertion order, which fixes output order for
// byte-identical reruns.
type walkFrame struct {
	t    *Tree
	path string
	idx  int
}

// batchSearch selects the highest directories whose total file count (with
// descendant folders included) fits the file limit. A selected directory is
// yielded and its subtree skipped; anything over the limit is descended
// into. Directories whose local count alone is over the limit get a
// warning - batching cannot shrink those. A childless over-limit directory
// is re-checked where the descent bottoms out and warns again, an artifact
// of the original report format that golden files depend on.
func (a *Analyzer) batchSearch(yield yieldFn, warn warnFn) {
	sep := a.cfg.PathSep
	stack := []walkFrame{{t: a.tree}}
	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		if f.idx >= f.t.Len() {
			stack = stack[:len(stack)-1]
			continue
		}
		seg := f.t.order[f.idx]
		f.idx++
		child := f.t.children[seg]
		path := joinPath(f.path, seg, sep)
		node, ok := a.reg.Lookup(path)
		if !ok {
			continue
		}
		if node.TotalPlusChildCnt <= a.cfg.FileLimit {
			yield(path, node)
			continue
		}
		if node.LocalPlusChildCnt > a.cfg.FileLimit {
			warn(path, node)
		}
		if child.Len() == 0 {
			if node.LocalPlusChildCnt > a.cfg.FileLimit {
				warn(path, node)
			}
			continue
		}
		stack = append(stack, walkFrame{t: child, path: path})
	}
}

// searchBatchable yields the highest directories marked batchable by
// analyzeBatchable. Trimmed subtrees are skipped entirely: they leave as a
// unit when their shortened path is relocated.
func (a *Analyzer) searchBatchable(yield yieldFn, warn warnFn) {
	sep := a.cfg.PathSep
	stack := []walkFrame{{t: a.tree}}
	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		if f.idx >= f.t.Len() {
			stack = stack[:len(stack)-1]
			continue
		}
		seg := f.t.order[f.idx]
		f.idx++
		child := f.t.children[seg]
		path := joinPath(f.path, seg, sep)
		node, ok := a.reg.Lookup(path)
		if !ok {
			continue
		}
		if node.Trimmed {
			continue
		}
		if node.Batchable == model.TriTrue {
			yield(path, node)
			continue
		}
		if node.Batchable == model.TriFalse && !node.WroteOverLimit {
			warn(path, node)
			node.WroteOverLimit = true
		}
		if child.Len() > 0 {
			stack = append(stack, walkFrame{t: child, path: path})
		}
	}
}

// searchTrimmable yields the highest directories marked trimmable by
// analyzeTrimmable.
func (a *Analyzer) searchTrimmable(yield yieldFn) {
	a.searchFlagged(yield, func(n *model.Node) bool { return n.Trimmable == model.TriTrue })
}

// searchUnableShorten yields the highest directories holding a path that
// could not be shortened below the limit.
func (a *Analyzer) searchUnableShorten(yield yieldFn) {
	a.searchFlagged(yield, func(n *model.Node) bool { return n.UnableToShorten })
}

func (a *Analyzer) searchFlagged(yield yieldFn, match func(*model.Node) bool) {
	sep := a.cfg.PathSep
	stack := []walkFrame{{t: a.tree}}
	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		if f.idx >= f.t.Len() {
			stack = stack[:len(stack)-1]
			continue
		}
		seg := f.t.order[f.idx]
		f.idx++
		child := f.t.children[seg]
		path := joinPath(f.path, seg, sep)
		node, ok := a.reg.Lookup(path)
		if !ok {
			continue
		}
		if match(node) {
			yield(path, node)
			continue
		}
		if child.Len() > 0 {
			stack = append(stack, walkFrame{t: child, path: path})
		}
	}
}

// analyzeBatchable marks directories batchable or not, ascending from every
// leaf directory toward the root. Empty directories that were never
// shortened are skipped over; the climb stops at the first ancestor over
// the limit (or one already known to be over).
func (a *Analyzer) analyzeBatchable() {
	a.log.Info("analyzing for batchable nodes")
	sep := a.cfg.PathSep
	cnt := 0
	a.tree.Walk(sep, func(path string, t *Tree) {
		if t.Len() != 0 {
			return
		}
		segs := strings.Split(path, sep)
		for len(segs) > 0 {
			p := strings.Join(segs, sep)
			node, ok := a.reg.Lookup(p)
			if !ok {
				break
			}
			if node.LocalPlusChildCnt == 0 && !node.Shortened {
				segs = segs[:len(segs)-1]
				continue
			}
			if node.Batchable == model.TriFalse {
				break
			}
			if node.LocalPlusChildCnt <= a.cfg.FileLimit {
				node.Batchable = model.TriTrue
			} else {
				node.Batchable = model.TriFalse
				break
			}
			segs = segs[:len(segs)-1]
		}
		cnt++
	})
	a.log.Infof("analyze batchable: finished updating %d leaf chains", cnt)
}

// analyzeTrimmable is the same leaf-to-root climb, but an ancestor must
// also be shortenable; an eligible ancestor over the limit warns exactly
// once per directory.
func (a *Analyzer) analyzeTrimmable(warn warnFn) {
	a.log.Info("analyzing for trimmable nodes")
	sep := a.cfg.PathSep
	cnt := 0
	a.tree.Walk(sep, func(path string, t *Tree) {
		if t.Len() != 0 {
			return
		}
		segs := strings.Split(path, sep)
		for len(segs) > 0 {
			p := strings.Join(segs, sep)
			node, ok := a.reg.Lookup(p)
			if !ok {
				break
			}
			if node.LocalPlusChildCnt == 0 && !node.Shortened {
				segs = segs[:len(segs)-1]
				continue
			}
			if !node.CanShorten {
				break
			}
			if node.LocalPlusChildCnt <= a.cfg.FileLimit {
				node.Trimmable = model.TriTrue
			} else {
				node.Trimmable = model.TriFalse
				if !node.WroteOverLimit {
					warn(p, node)
					node.WroteOverLimit = true
				}
				break
			}
			segs = segs[:len(segs)-1]
		}
		cnt++
	})
	a.log.Infof("analyze trimmable: finished updating %d leaf chains", cnt)
}
