package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortenPathWithinLimitReturnsParent(t *testing.T) {
	assert.Equal(t, `A\B`, ShortenPath(`A\B\f.txt`, 250, `\`))
}

func TestShortenPathDropsLeadingSegments(t *testing.T) {
	// 18 chars; limit 12 drops AAAA, then BBBB, leaving CC\f.txt.
	assert.Equal(t, "CC", ShortenPath(`AAAA\BBBB\CC\f.txt`, 12, `\`))
}

func TestShortenPathExactLimit(t *testing.T) {
	path := `AAAA\BBBB\f.txt` // 15 chars
	assert.Equal(t, `AAAA\BBBB`, ShortenPath(path, 15, `\`))
}

func TestShortenPathUnable(t *testing.T) {
	// A bare filename has no parent to return.
	assert.Equal(t, UnableToShorten, ShortenPath("averylongfilename.txt", 4, `\`))
	// Only the filename survives the limit: nothing left to keep.
	assert.Equal(t, UnableToShorten, ShortenPath(`DIR\averylongfilename.txt`, 10, `\`))
}

func TestShortenPathCountsRunesNotBytes(t *testing.T) {
	// 5 runes but 8 bytes; a byte count would wrongly shorten.
	assert.Equal(t, "ééé", ShortenPath("ééé\\f", 5, `\`))
}
