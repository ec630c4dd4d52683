package analyze

import (
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathbatch/internal/model"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// listing builds a tab-delimited input: header plus one File row per path.
// Paths are given with the synthetic tool prefix already attached.
func listing(paths ...string) string {
	lines := []string{"id\tCategory\tItem Path"}
	for i, p := range paths {
		lines = append(lines, strings.Join([]string{strconv.Itoa(i + 1), "File", p}, "\t"))
	}
	return strings.Join(lines, "\n") + "\n"
}

func runListing(t *testing.T, cfg model.Config, input string) *Results {
	t.Helper()
	a := New(cfg, testLogger())
	require.NoError(t, a.Process(strings.NewReader(input)))
	return a.BuildResults()
}

func TestProcessBuildsTreeAndCounts(t *testing.T) {
	cfg := model.DefaultConfig()
	a := New(cfg, testLogger())
	input := listing(
		`GRAB01\ROOT\A\f1.txt`,
		`GRAB01\ROOT\A\f2.txt`,
		`GRAB01\ROOT\B\f3.txt`,
	)
	require.NoError(t, a.Process(strings.NewReader(input)))

	reg := a.Registry()
	assert.Equal(t, 3, reg.Len())

	root, ok := reg.Lookup("ROOT")
	require.True(t, ok)
	assert.Equal(t, 0, root.LocalCnt)
	assert.Equal(t, 3, root.SubdirCnt)
	assert.Equal(t, 3, root.TotalCnt)

	nodeA, ok := reg.Lookup(`ROOT\A`)
	require.True(t, ok)
	assert.Equal(t, 2, nodeA.LocalCnt)
	assert.Equal(t, 2, nodeA.TotalCnt)
	assert.Equal(t, 6, nodeA.LongestFnLength)
	assert.Equal(t, 13, nodeA.LongestFpLength)
}

func TestProcessTotalIsLocalPlusSubdir(t *testing.T) {
	cfg := model.DefaultConfig()
	a := New(cfg, testLogger())
	input := listing(
		`G\X\f0.txt`,
		`G\X\A\f1.txt`,
		`G\X\A\B\f2.txt`,
		`G\X\A\B\f3.txt`,
		`G\X\C\f4.txt`,
	)
	require.NoError(t, a.Process(strings.NewReader(input)))

	reg := a.Registry()
	for _, depth := range reg.DepthsDescending() {
		for _, id := range reg.AtDepth(depth) {
			n := reg.ByID(id)
			assert.Equal(t, n.LocalCnt+n.SubdirCnt, n.TotalCnt, reg.Path(id))
		}
	}

	x, _ := reg.Lookup("X")
	assert.Equal(t, 1, x.LocalCnt)
	assert.Equal(t, 4, x.SubdirCnt)
	assert.Equal(t, 5, x.TotalCnt)

	// Plus-child variants add the descendant folder counts.
	assert.Equal(t, 3, x.ChildNodeCnt)
	assert.Equal(t, 4, x.LocalPlusChildCnt)
	assert.Equal(t, 7, x.SubdirPlusChildCnt)
	assert.Equal(t, 11, x.TotalPlusChildCnt)
}

func TestProcessFolderEntriesSeedNodesOnly(t *testing.T) {
	cfg := model.DefaultConfig()
	a := New(cfg, testLogger())
	input := "id\tCategory\tItem Path\n" +
		"1\tFolder\tG\\X\\EMPTY\n" +
		"2\tFile\tG\\X\\f.txt\n"
	require.NoError(t, a.Process(strings.NewReader(input)))

	reg := a.Registry()
	empty, ok := reg.Lookup(`X\EMPTY`)
	require.True(t, ok)
	assert.Zero(t, empty.LocalCnt)

	res := a.BuildResults()
	// Folder-only directories carry no files and are not batch candidates.
	require.Len(t, res.Batches, 1)
	assert.Equal(t, "X", res.Batches[0].Path)
}

func TestProcessSkipsMalformedPaths(t *testing.T) {
	cfg := model.DefaultConfig()
	a := New(cfg, testLogger())
	input := "id\tCategory\tItem Path\n" +
		"1\tFile\tnopathhere\n" +
		"2\tFile\tG\\X\\f.txt\n"
	require.NoError(t, a.Process(strings.NewReader(input)))
	assert.Equal(t, 1, a.Registry().Len())
}

func TestProcessEmptyInput(t *testing.T) {
	a := New(model.DefaultConfig(), testLogger())
	require.NoError(t, a.Process(strings.NewReader("")))
	assert.Zero(t, a.Registry().Len())
}

func TestBuildResultsFilenameOutlier(t *testing.T) {
	longName := strings.Repeat("a", 196) + ".txt" // 200 chars, limit 190
	res := runListing(t, model.DefaultConfig(), listing(
		`G\X\A\B\`+longName,
		`G\X\A\C\ok.txt`,
	))

	require.Len(t, res.Outliers1, 1)
	assert.Equal(t, 3, res.Outliers1[0].Depth)
	assert.Equal(t, 200, res.Outliers1[0].Length)
	assert.Equal(t, longName, res.Outliers1[0].Filename)
	assert.Equal(t, `X\A\B`, res.Outliers1[0].Path)

	// The outlier never counts toward batch capacity; X absorbs one file.
	require.Len(t, res.Batches, 1)
	assert.Equal(t, "X", res.Batches[0].Path)
	assert.True(t, res.Batches[0].HasOutliers1)
	assert.Equal(t, 1, res.Summary.NumOutliers1)
}

func TestBuildResultsUnableToShortenWarning(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.MaxFileLength = 50
	cfg.MaxParentFileLength = 60
	cfg.MaxPathLength = 20
	res := runListing(t, cfg, listing(`G\AVERYVERYLONGROOTDIR\file.txt`))

	require.Len(t, res.Warnings, 1)
	w := res.Warnings[0]
	assert.Equal(t, "WARNING", w.Tag)
	assert.Equal(t, "Path cannot be shortened", w.Message)
	assert.Equal(t, `AVERYVERYLONGROOTDIR\file.txt`, w.Path)
	assert.Equal(t, 1, res.Summary.NumUnableToShorten)
	assert.Empty(t, res.Trimmed)
}

func TestBuildResultsTrimsShortenableDirectory(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.MaxFileLength = 50
	cfg.MaxParentFileLength = 60
	cfg.MaxPathLength = 20
	res := runListing(t, cfg, listing(`G\ROOT123456\SUB\leaffile.txt`))

	require.Len(t, res.Trimmed, 1)
	tr := res.Trimmed[0]
	assert.Equal(t, `ROOT123456\SUB`, tr.Path)
	assert.Equal(t, "SUB", tr.TrimmedFolder)
	assert.Equal(t, 2, tr.Depth)
	assert.Empty(t, res.Warnings)

	// The shortened flag bubbles up to the enclosing batch.
	require.Len(t, res.Batches, 1)
	assert.Equal(t, "ROOT123456", res.Batches[0].Path)
	assert.True(t, res.Batches[0].HasShortened)
	assert.Equal(t, 1, res.Summary.NumTrimmed)
}

func TestBuildResultsRerunIsIdentical(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.FileLimit = 3
	input := listing(
		`G\ROOT\A\f1.txt`,
		`G\ROOT\A\f2.txt`,
		`G\ROOT\B\f3.txt`,
		`G\ROOT\B\f4.txt`,
	)
	first := runListing(t, cfg, input)
	second := runListing(t, cfg, input)
	assert.Equal(t, first, second)
}
