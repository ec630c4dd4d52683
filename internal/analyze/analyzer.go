package analyze

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"pathbatch/internal/model"
)

// Analyzer runs one single-threaded pass over a long-path listing and owns
// every structure built from it: the directory tree, the node registry and
// the outlier records. The whole model is discarded with the Analyzer.
type Analyzer struct {
	cfg    model.Config
	log    *logrus.Logger
	parser *LineParser
	tree   *Tree
	reg    *Registry
	cls    *Classifier

	linesRead       int
	dirsWithinLimit int
	dirsOverLimit   int
	trimmed         int
	unableToShorten int
}

// New creates an Analyzer for one run.
func New(cfg model.Config, log *logrus.Logger) *Analyzer {
	cfg.Normalize()
	reg := NewRegistry(cfg.PathSep)
	return &Analyzer{
		cfg:    cfg,
		log:    log,
		parser: NewLineParser(cfg.Delimiter, cfg.PathSep),
		tree:   NewTree(),
		reg:    reg,
		cls:    NewClassifier(cfg, reg, log),
	}
}

// Config returns the run parameters in effect.
func (a *Analyzer) Config() model.Config { return a.cfg }

// Registry exposes the node registry, mainly for tests.
func (a *Analyzer) Registry() *Registry { return a.reg }

// Process consumes the listing: the first line is the header, every further
// line one entry. After the stream ends it runs the bottom-up aggregation
// sweep and the child-count pass, leaving the model ready for selection.
func (a *Analyzer) Process(r io.Reader) error {
	a.log.Info("starting process")
	scanner := bufio.NewScanner(r)
	// Item paths routinely run past default token sizes.
	buf := make([]byte, 0, 1024*1024)
	scanner.Buffer(buf, 10*1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return err
		}
		a.log.Warn("empty input, nothing to analyze")
		return nil
	}
	a.parser.SetHeader(scanner.Text())
	a.linesRead = 1

	for scanner.Scan() {
		item := a.parser.ParseLine(scanner.Text())
		a.consume(item)
		a.linesRead++
		if a.linesRead%100000 == 0 {
			a.log.Infof("read lines: %d", a.linesRead)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	a.log.Infof("done reading %d lines", a.linesRead)

	a.log.Infof("number of nodes: %d", a.reg.Len())
	a.log.Info("updating parent node attributes lowest depth up")
	a.aggregateUp()
	a.log.Info("updating child (folder) counters")
	a.childCounts()
	return nil
}

// consume handles one parsed entry: tree insertion, node creation/update
// and classification. Malformed paths are skipped with a warning; a bad
// line must not abort the run.
func (a *Analyzer) consume(item *model.Item) {
	path := a.parser.SplitItemPath(item.ItemPath())
	if path == "" {
		a.log.Warnf("unable to find file path, Item_Path=%q", item.ItemPath())
		return
	}

	// Folder entries only seed a node for the directory itself; counts and
	// outliers are driven entirely by file entries.
	if item.Category() == "Folder" {
		a.reg.InsertAncestors(path)
		return
	}

	sep := a.cfg.PathSep
	file := path
	dirPath := ""
	if i := strings.LastIndex(path, sep); i >= 0 {
		file = path[i+len(sep):]
		dirPath = path[:i]
		a.tree.Insert(strings.Split(dirPath, sep))
	}

	fnLen := utf8.RuneCountInString(file)
	fpLen := utf8.RuneCountInString(path)
	node, ok := a.reg.Lookup(dirPath)
	if ok {
		if node.LongestFnLength < fnLen {
			node.LongestFnLength = fnLen
		}
		if node.LongestFpLength < fpLen {
			node.LongestFpLength = fpLen
		}
	} else {
		node = a.reg.Create(dirPath)
		node.LongestFnLength = fnLen
		node.LongestFpLength = fpLen
		a.reg.InsertAncestors(dirPath)
	}

	a.cls.Classify(node, path)
}

// Results holds everything the report writer and the UIs consume, with rows
// already in final emission order.
type Results struct {
	Config    model.Config  `json:"config"`
	Summary   Summary       `json:"summary"`
	Warnings  []WarningRow  `json:"warnings"`
	Trimmed   []TrimRow     `json:"trimmed"`
	Batches   []BatchRow    `json:"batches"`
	Outliers1 []Outlier1Row `json:"outliers1"`
	Outliers2 []Outlier2Row `json:"outliers2"`
}

// Summary is the end-of-run tally block.
type Summary struct {
	LinesProcessed     int `json:"lines_processed"`
	NumNodes           int `json:"num_nodes"`
	NumBatches         int `json:"num_batches"`
	NumOutliers1       int `json:"num_outliers1"`
	NumOutliers2       int `json:"num_outliers2"`
	NumTrimmed         int `json:"num_trimmed"`
	NumDirsOverLimit   int `json:"num_dirs_over_limit"`
	NumUnableToShorten int `json:"num_unable_to_shorten"`
}

// WarningRow is one row of the warnings report.
type WarningRow struct {
	Tag             string `json:"tag"`
	Message         string `json:"message"`
	FileLimit       int    `json:"file_limit"`
	Path            string `json:"path"`
	LocalPlusChild  int    `json:"local_plus_child_cnt"`
	SubdirPlusChild int    `json:"subdir_plus_child_cnt"`
	TotalPlusChild  int    `json:"total_plus_child_cnt"`
}

// BatchRow is one extraction batch: a directory whose contents fit the
// extraction tool's limit.
type BatchRow struct {
	Depth             int    `json:"depth"`
	FileLimit         int    `json:"file_limit"`
	Path              string `json:"path"`
	LocalPlusChild    int    `json:"local_plus_child_cnt"`
	SubdirPlusChild   int    `json:"subdir_plus_child_cnt"`
	TotalPlusChild    int    `json:"total_plus_child_cnt"`
	LocalPathLength   int    `json:"local_path_length"`
	LongestFnLength   int    `json:"longest_fn_length"`
	LongestFpLength   int    `json:"longest_fp_length"`
	HasOutliers1      bool   `json:"has_outliers1"`
	HasOutliers2      bool   `json:"has_outliers2"`
	HasShortened      bool   `json:"has_shortened"`
	NumLocalOutliers1 int    `json:"num_local_outliers1"`
	NumLocalOutliers2 int    `json:"num_local_outliers2"`
}

// TrimRow is one directory selected for physical relocation.
type TrimRow struct {
	Depth              int    `json:"depth"`
	FileLimit          int    `json:"file_limit"`
	Path               string `json:"path"`
	TrimmedFolder      string `json:"trimmed_folder"`
	NumUnableToShorten int    `json:"num_unable_to_shorten"`
	LocalPlusChild     int    `json:"local_plus_child_cnt"`
	SubdirPlusChild    int    `json:"subdir_plus_child_cnt"`
	TotalPlusChild     int    `json:"total_plus_child_cnt"`
	LocalPathLength    int    `json:"local_path_length"`
	LongestFnLength    int    `json:"longest_fn_length"`
	LongestFpLength    int    `json:"longest_fp_length"`
	HasOutliers1       bool   `json:"has_outliers1"`
	HasOutliers2       bool   `json:"has_outliers2"`
	NumLocalOutliers1  int    `json:"num_local_outliers1"`
	NumLocalOutliers2  int    `json:"num_local_outliers2"`
}

// Outlier1Row reports a filename over the limit.
type Outlier1Row struct {
	Depth    int    `json:"depth"`
	Length   int    `json:"length"`
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

// Outlier2Row reports a parent+filename pair over the limit.
type Outlier2Row struct {
	Depth      int    `json:"depth"`
	Length     int    `json:"length"`
	ParentFile string `json:"parent_file"`
	Path       string `json:"path"`
}

// BuildResults runs the selection passes in report order and collects the
// rows. Order matters twice over: the trim pass marks directories trimmed
// before the batch pass walks, and the warnings file interleaves rows from
// several passes exactly as they are discovered.
func (a *Analyzer) BuildResults() *Results {
	res := &Results{Config: a.cfg}
	sep := a.cfg.PathSep

	overLimit := func(path string, node *model.Node) {
		res.Warnings = append(res.Warnings, WarningRow{
			Tag:             "WARNING",
			Message:         "Directory local file count over limit",
			FileLimit:       a.cfg.FileLimit,
			Path:            path,
			LocalPlusChild:  node.LocalPlusChildCnt,
			SubdirPlusChild: node.SubdirPlusChildCnt,
			TotalPlusChild:  node.TotalPlusChildCnt,
		})
		a.dirsOverLimit++
	}

	// Paths that cannot be shortened below the limit at all.
	a.log.Info("collecting unable-to-shorten warnings")
	a.searchUnableShorten(func(path string, node *model.Node) {
		full := path
		if o := a.cls.Outlier3For(node.ID); o != nil {
			full = path + sep + o.File
		}
		res.Warnings = append(res.Warnings, WarningRow{
			Tag:             "WARNING",
			Message:         "Path cannot be shortened",
			FileLimit:       a.cfg.FileLimit,
			Path:            full,
			LocalPlusChild:  node.LocalPlusChildCnt,
			SubdirPlusChild: node.SubdirPlusChildCnt,
			TotalPlusChild:  node.TotalPlusChildCnt,
		})
		a.unableToShorten++
	})

	// Trim pass: analysis first (it sets trimmable), then selection.
	a.log.Info("collecting trimmed directories")
	a.analyzeTrimmable(overLimit)
	a.searchTrimmable(func(path string, node *model.Node) {
		folder := path
		if i := strings.LastIndex(path, sep); i >= 0 {
			folder = path[i+len(sep):]
		}
		res.Trimmed = append(res.Trimmed, TrimRow{
			Depth:              node.Depth,
			FileLimit:          a.cfg.FileLimit,
			Path:               path,
			TrimmedFolder:      folder,
			NumUnableToShorten: node.NumUnableToShorten,
			LocalPlusChild:     node.LocalPlusChildCnt,
			SubdirPlusChild:    node.SubdirPlusChildCnt,
			TotalPlusChild:     node.TotalPlusChildCnt,
			LocalPathLength:    node.LocalPathLength,
			LongestFnLength:    node.LongestFnLength,
			LongestFpLength:    node.LongestFpLength,
			HasOutliers1:       node.HasOutliers1,
			HasOutliers2:       node.HasOutliers2,
			NumLocalOutliers1:  node.NumLocalOutliers1,
			NumLocalOutliers2:  node.NumLocalOutliers2,
		})
		// Trimmed subtrees leave as a unit; the batchable search skips
		// them. The plain batch walk never reads this flag.
		node.Trimmed = true
		a.trimmed++
	})

	// Batch pass.
	a.log.Info("collecting batches")
	yieldBatch := func(path string, node *model.Node) {
		res.Batches = append(res.Batches, BatchRow{
			Depth:             node.Depth,
			FileLimit:         a.cfg.FileLimit,
			Path:              path,
			LocalPlusChild:    node.LocalPlusChildCnt,
			SubdirPlusChild:   node.SubdirPlusChildCnt,
			TotalPlusChild:    node.TotalPlusChildCnt,
			LocalPathLength:   node.LocalPathLength,
			LongestFnLength:   node.LongestFnLength,
			LongestFpLength:   node.LongestFpLength,
			HasOutliers1:      node.HasOutliers1,
			HasOutliers2:      node.HasOutliers2,
			HasShortened:      node.HasOutliers3,
			NumLocalOutliers1: node.NumLocalOutliers1,
			NumLocalOutliers2: node.NumLocalOutliers2,
		})
		a.dirsWithinLimit++
	}
	if a.cfg.SearchLocal {
		a.analyzeBatchable()
		a.searchBatchable(yieldBatch, overLimit)
	} else {
		a.batchSearch(yieldBatch, overLimit)
	}

	// Outlier lists, in discovery order.
	a.log.Info("collecting outlier rows")
	for _, o := range a.cls.Outliers1() {
		node := a.reg.ByID(o.NodeID)
		res.Outliers1 = append(res.Outliers1, Outlier1Row{
			Depth:    node.Depth,
			Length:   utf8.RuneCountInString(o.Filename),
			Filename: o.Filename,
			Path:     a.reg.Path(o.NodeID),
		})
	}
	for _, o := range a.cls.Outliers2() {
		node := a.reg.ByID(o.NodeID)
		res.Outliers2 = append(res.Outliers2, Outlier2Row{
			Depth:      node.Depth,
			Length:     utf8.RuneCountInString(o.ParentFile),
			ParentFile: o.ParentFile,
			Path:       a.reg.Path(o.NodeID),
		})
	}

	res.Summary = Summary{
		LinesProcessed:     a.linesRead,
		NumNodes:           a.reg.Len(),
		NumBatches:         a.dirsWithinLimit,
		NumOutliers1:       len(a.cls.Outliers1()),
		NumOutliers2:       len(a.cls.Outliers2()),
		NumTrimmed:         a.trimmed,
		NumDirsOverLimit:   a.dirsOverLimit,
		NumUnableToShorten: a.unableToShorten,
	}
	return res
}
