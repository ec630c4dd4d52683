package analyze

import (
	"strings"
	"unicode/utf8"
)

// UnableToShorten is the sentinel returned when no suffix of a path fits
// the limit. The literal value appears in shortened-path report cells, so
// it must stay stable.
const UnableToShorten = "UNABLE_TO_SHORTEN"

// ShortenPath drops leading path segments until the remaining suffix fits
// within limit characters, then returns the parent directory of that
// suffix (the filename is stripped). Returns UnableToShorten when fewer
// than two segments survive. The search is a loop, not recursion: real
// listings nest deep enough to blow default stacks.
func ShortenPath(path string, limit int, sep string) string {
	for utf8.RuneCountInString(path) > limit {
		i := strings.Index(path, sep)
		if i < 0 {
			path = ""
			break
		}
		path = path[i+len(sep):]
	}
	segs := strings.Split(path, sep)
	if len(segs) < 2 {
		return UnableToShorten
	}
	return strings.Join(segs[:len(segs)-1], sep)
}
