// Package textenc handles input decoding: forensic tools export listings
// in whatever encoding the examiner's platform favored, frequently
// UTF-16. Detection mirrors the classic chardet behavior: trust only
// Unicode-family guesses at reasonable confidence, otherwise assume UTF-8.
package textenc

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// detectSample is how much of the file feeds the detector.
const detectSample = 64 * 1024

// minConfidence gates detection results, in chardet's 0-100 scale.
const minConfidence = 50

var unicodeFamily = regexp.MustCompile(
	`(?i)UTF|Big5|GB2312|EUC-TW|HZ-GB-2312|ISO-2022|EUC-JP|SHIFT_JIS|EUC-KR|TIS-620`)

// Detect guesses the charset of sample, defaulting to utf-8 when the
// detector is unsure or names a non-Unicode-family legacy charset.
func Detect(sample []byte) string {
	res, err := chardet.NewTextDetector().DetectBest(sample)
	if err != nil || res == nil {
		return "utf-8"
	}
	if res.Confidence >= minConfidence && unicodeFamily.MatchString(res.Charset) {
		return res.Charset
	}
	return "utf-8"
}

// NewReader wraps r in a decoder for the named encoding, detecting one
// from the leading bytes when name is empty. The returned reader yields
// UTF-8. The resolved encoding name is returned alongside.
func NewReader(r io.Reader, name string) (io.Reader, string, error) {
	br := bufio.NewReaderSize(r, detectSample)
	if name == "" {
		sample, _ := br.Peek(detectSample) // short reads are fine
		name = Detect(sample)
	}
	if isUTF8(name) {
		// Pass through, but strip a BOM if one is present.
		return transform.NewReader(br, unicode.UTF8BOM.NewDecoder()), name, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, name, fmt.Errorf("unsupported encoding %q: %w", name, err)
	}
	return transform.NewReader(br, unicode.BOMOverride(enc.NewDecoder())), name, nil
}

func isUTF8(name string) bool {
	switch strings.ToLower(name) {
	case "utf-8", "utf8":
		return true
	}
	return false
}
