package analyze

import "strings"

// aggregateUp propagates counts, flags and longest-length watermarks from
// children to parents. Directories are processed strictly deepest depth
// first, so a node's own contributions are final before its parent reads
// them. One bounded sweep replaces unbounded per-node recursion: listing
// depth can exceed default stack limits.
func (a *Analyzer) aggregateUp() {
	sep := a.cfg.PathSep
	updated := 0
	for _, depth := range a.reg.DepthsDescending() {
		for _, id := range a.reg.AtDepth(depth) {
			node := a.reg.ByID(id)
			path := a.reg.Path(id)
			i := strings.LastIndex(path, sep)
			if i < 0 {
				continue // top-level directory, nothing above it
			}
			parent, ok := a.reg.Lookup(path[:i])
			if !ok {
				a.log.Warnf("aggregate: no parent node for %q", path)
				continue
			}
			parent.HasOutliers1 = parent.HasOutliers1 || node.HasOutliers1
			parent.HasOutliers2 = parent.HasOutliers2 || node.HasOutliers2
			parent.HasOutliers3 = parent.HasOutliers3 || node.HasOutliers3
			if parent.LongestFnLength < node.LongestFnLength {
				parent.LongestFnLength = node.LongestFnLength
			}
			if parent.LongestFpLength < node.LongestFpLength {
				parent.LongestFpLength = node.LongestFpLength
			}
			parent.SubdirCnt += node.TotalCnt
			parent.TotalCnt += node.TotalCnt
			parent.NumUnableToShorten += node.NumUnableToShorten

			updated++
			if updated%50000 == 0 {
				a.log.Infof("updated %d nodes", updated)
			}
		}
	}
	a.log.Infof("finished updating %d nodes", updated)
}

// childCounts is the second full tree walk: per directory, count the
// descendant directories (a structural count, independent of files) and
// derive the plus-child count variants the batch views use.
func (a *Analyzer) childCounts() {
	a.tree.Walk(a.cfg.PathSep, func(path string, t *Tree) {
		node, ok := a.reg.Lookup(path)
		if !ok {
			a.log.Warnf("child counts: no node registered for %q", path)
			return
		}
		cc := t.Descendants()
		node.ChildNodeCnt = cc
		node.LocalPlusChildCnt = node.LocalCnt + cc
		node.SubdirPlusChildCnt = node.SubdirCnt + cc
		node.TotalPlusChildCnt = node.LocalPlusChildCnt + node.SubdirPlusChildCnt
	})
}
