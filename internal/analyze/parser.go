package analyze

import (
	"regexp"
	"strings"

	"pathbatch/internal/model"
)

// LineParser turns delimited input lines into Items using a cached header.
type LineParser struct {
	delimiter string
	pathSep   string
	header    []string
	ws        *regexp.Regexp
}

// NewLineParser creates a parser for the given field delimiter and path
// separator.
func NewLineParser(delimiter, pathSep string) *LineParser {
	return &LineParser{
		delimiter: delimiter,
		pathSep:   pathSep,
		ws:        regexp.MustCompile(`\s`),
	}
}

// SetHeader caches the header line. The first column is named "id" when it
// is unnamed, and whitespace inside field names becomes "_" so "Item Path"
// is addressable as Item_Path.
func (p *LineParser) SetHeader(line string) {
	fields := strings.Split(line, p.delimiter)
	hasID := false
	for _, f := range fields {
		if f == "id" {
			hasID = true
			break
		}
	}
	if !hasID && len(fields) > 0 && fields[0] == "" {
		fields[0] = "id"
	}
	for i, f := range fields {
		fields[i] = p.ws.ReplaceAllString(strings.TrimSpace(f), "_")
	}
	p.header = fields
}

// Header returns the cached field names.
func (p *LineParser) Header() []string { return p.header }

// ParseLine zips the cached header against one line's values. Extra values
// beyond the header are dropped; missing values stay absent.
func (p *LineParser) ParseLine(line string) *model.Item {
	values := strings.Split(line, p.delimiter)
	fields := make(map[string]string, len(p.header))
	for i, name := range p.header {
		if i >= len(values) {
			break
		}
		fields[name] = strings.TrimSpace(values[i])
	}
	return &model.Item{Fields: fields}
}

// SplitItemPath normalizes a raw Item_Path value into the relative path.
// The value looks like <tool prefix><sep><real path>; everything up to the
// first separator is a synthetic root prepended by the forensic tool, so we
// keep what follows and strip any leading separators. Returns "" when no
// path can be found.
func (p *LineParser) SplitItemPath(itemPath string) string {
	s := strings.TrimSpace(itemPath)
	i := strings.Index(s, p.pathSep)
	if i < 0 {
		return ""
	}
	return strings.TrimLeft(s[i:], p.pathSep)
}
