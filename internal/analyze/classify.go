package analyze

import (
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"pathbatch/internal/model"
)

// Classifier sorts each file into at most one outlier category, or counts
// it toward its directory's capacity when it is clean. Each category owns
// its own id allocator, scoped to the run.
type Classifier struct {
	cfg model.Config
	reg *Registry
	log *logrus.Logger

	outliers1 []*model.Outlier1
	outliers2 []*model.Outlier2
	// outliers3 keeps one entry per directory, the best shortening seen.
	outliers3        map[int]*model.Outlier3
	ids1, ids2, ids3 model.Counter
}

// NewClassifier creates a classifier over the registry.
func NewClassifier(cfg model.Config, reg *Registry, log *logrus.Logger) *Classifier {
	return &Classifier{
		cfg:       cfg,
		reg:       reg,
		log:       log,
		outliers3: make(map[int]*model.Outlier3),
	}
}

// Outliers1 returns category-1 records in discovery order.
func (c *Classifier) Outliers1() []*model.Outlier1 { return c.outliers1 }

// Outliers2 returns category-2 records in discovery order.
func (c *Classifier) Outliers2() []*model.Outlier2 { return c.outliers2 }

// Outlier3For returns the category-3 record owned by a node, if any.
func (c *Classifier) Outlier3For(nodeID int) *model.Outlier3 {
	return c.outliers3[nodeID]
}

// Classify applies the three length checks in priority order; exactly one
// category can match. A file only counts toward batch capacity when no
// category matched - outliers are tracked separately.
func (c *Classifier) Classify(node *model.Node, path string) {
	sep := c.cfg.PathSep
	segs := strings.Split(path, sep)
	file := segs[len(segs)-1]
	parentFile := file
	if len(segs) >= 2 {
		parentFile = strings.Join(segs[len(segs)-2:], sep)
	}

	switch {
	case utf8.RuneCountInString(file) > c.cfg.MaxFileLength:
		if n := len(c.outliers1); n != 0 && n%2000 == 0 {
			c.log.Infof("outlier1 count: %d", n)
		}
		c.outliers1 = append(c.outliers1, &model.Outlier1{
			ID:       c.ids1.Next(),
			NodeID:   node.ID,
			Filename: file,
		})
		node.NumLocalOutliers1++
		node.HasOutliers1 = true

	case utf8.RuneCountInString(parentFile) > c.cfg.MaxParentFileLength:
		if n := len(c.outliers2); n != 0 && n%1000 == 0 {
			c.log.Infof("outlier2 count: %d", n)
		}
		c.outliers2 = append(c.outliers2, &model.Outlier2{
			ID:         c.ids2.Next(),
			NodeID:     node.ID,
			ParentFile: parentFile,
		})
		node.NumLocalOutliers2++
		node.HasOutliers2 = true

	case utf8.RuneCountInString(path) > c.cfg.MaxPathLength:
		shortened := ShortenPath(path, c.cfg.MaxPathLength, sep)
		unable := shortened == UnableToShorten
		if c.needReplaceShortened(node, shortened) {
			c.outliers3[node.ID] = &model.Outlier3{
				ID:        c.ids3.Next(),
				NodeID:    node.ID,
				Shortened: shortened,
				File:      file,
			}
		}
		if unable {
			node.UnableToShorten = true
			node.NumUnableToShorten = 1
		} else {
			dirPath := strings.Join(segs[:len(segs)-1], sep)
			c.markCanShorten(dirPath, shortened)
		}
		node.NumLocalOutliers3++
		node.HasOutliers3 = true
		node.Shortened = true

	default:
		node.LocalCnt++
		node.TotalCnt++
	}
}

// needReplaceShortened decides whether a newly found shortening replaces the
// stored one for a directory. The tie-break is a plain string comparison,
// not a length comparison, kept for compatibility with the original
// reports: a longer candidate that sorts earlier still wins.
func (c *Classifier) needReplaceShortened(node *model.Node, shortened string) bool {
	cur, ok := c.outliers3[node.ID]
	if !ok {
		return true
	}
	return shortened < cur.Shortened
}

// markCanShorten walks the original directory path and the shortened path
// backward in lock-step, flagging each matched ancestor as shortenable.
// The shortened path is a suffix of the original, so the paired segments
// should always agree; a mismatch is logged but does not abort.
func (c *Classifier) markCanShorten(path, shortened string) {
	sep := c.cfg.PathSep
	tPath := strings.Split(path, sep)
	tShort := strings.Split(shortened, sep)
	for len(tShort) > 0 {
		if len(tPath) == 0 {
			c.log.Warnf("can_shorten: shortened path %q longer than original %q", shortened, path)
			return
		}
		sSeg := tShort[len(tShort)-1]
		tShort = tShort[:len(tShort)-1]
		pSeg := tPath[len(tPath)-1]
		if sSeg != pSeg {
			c.log.Warnf("can_shorten: unexpected values %q != %q", sSeg, pSeg)
		}
		full := strings.Join(tPath, sep)
		tPath = tPath[:len(tPath)-1]
		if n, ok := c.reg.Lookup(full); ok {
			n.CanShorten = true
		} else {
			c.log.Warnf("can_shorten: no node registered for %q", full)
		}
	}
}
