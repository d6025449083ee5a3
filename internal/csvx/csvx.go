// Package csvx implements the delimited-text codec used by the importer and
// exporter. The parser is hand-rolled rather than encoding/csv because the
// files we receive are frequently Excel exports with artifacts the standard
// reader rejects: a UTF-8 BOM, a "sep=;" directive line, stray quotes in
// unquoted fields, and Unicode line separators. The parser never fails; it
// produces the best row structure it can and leaves semantic validation to
// the caller.
package csvx

import (
	"strings"
)

// Candidate delimiters, in tie-break order. Comma wins any tie.
var delimiters = []rune{',', ';', '\t'}

// BOM is the UTF-8 byte-order mark some Excel exports prepend.
const BOM = "\uFEFF"

// StripBOM removes a leading UTF-8 byte-order mark, if present.
func StripBOM(s string) string {
	return strings.TrimPrefix(s, BOM)
}

// IsSepDirective reports whether the line is an Excel "sep=<char>" directive.
func IsSepDirective(line string) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < 4 {
		return false
	}
	return strings.EqualFold(trimmed[:4], "sep=")
}

// isLineBreak reports whether r terminates a row. Besides CR and LF we accept
// the Unicode next-line, line-separator, and paragraph-separator characters,
// which show up in text copied out of office software.
func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// DetectDelimiter inspects the first line that is neither blank nor a sep=
// directive and returns the candidate delimiter occurring most often on it.
// Comma is returned on a tie or when no candidate appears at all.
func DetectDelimiter(text string) rune {
	for _, line := range SplitLines(text) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || IsSepDirective(trimmed) {
			continue
		}

		best := delimiters[0]
		bestCount := strings.Count(line, string(best))
		for _, d := range delimiters[1:] {
			if c := strings.Count(line, string(d)); c > bestCount {
				best = d
				bestCount = c
			}
		}
		return best
	}
	return ','
}

// SplitLines splits text on any of the recognized line terminators, treating
// CRLF as a single break. Quoting is ignored; this is only used for
// line-oriented scans such as delimiter detection.
func SplitLines(text string) []string {
	var lines []string
	var b strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if !isLineBreak(r) {
			b.WriteRune(r)
			continue
		}
		if r == '\r' && i+1 < len(runes) && runes[i+1] == '\n' {
			i++
		}
		lines = append(lines, b.String())
		b.Reset()
	}
	if b.Len() > 0 {
		lines = append(lines, b.String())
	}
	return lines
}

// Parse splits text into rows of fields on the given delimiter.
//
// Quoted fields may contain the delimiter, line breaks, and doubled-quote
// escapes ("" becomes a literal quote). When ignoreQuotes is set, quote
// characters are treated as ordinary data; this is the fallback mode for
// files with unbalanced quoting.
func Parse(text string, delim rune, ignoreQuotes bool) [][]string {
	var rows [][]string
	var row []string
	var field strings.Builder
	inQuotes := false

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '"' && !ignoreQuotes:
			if inQuotes {
				if i+1 < len(runes) && runes[i+1] == '"' {
					field.WriteRune('"')
					i++
					continue
				}
				inQuotes = false
			} else if field.Len() == 0 {
				inQuotes = true
			} else {
				// Quote in the middle of an unquoted field: keep it.
				field.WriteRune(r)
			}

		case r == delim && !inQuotes:
			row = append(row, field.String())
			field.Reset()

		case isLineBreak(r) && !inQuotes:
			if r == '\r' && i+1 < len(runes) && runes[i+1] == '\n' {
				i++
			}
			row = append(row, field.String())
			field.Reset()
			rows = append(rows, row)
			row = nil

		default:
			field.WriteRune(r)
		}
	}

	if field.Len() > 0 || len(row) > 0 || inQuotes {
		row = append(row, field.String())
		rows = append(rows, row)
	}
	return rows
}

// IsBlankRow reports whether every field in the row is empty or whitespace.
func IsBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// EncodeRows renders rows as delimiter-separated text with RFC-4180 quoting:
// fields containing the delimiter, a quote, or a line break are wrapped in
// quotes with embedded quotes doubled. Rows end with \n.
func EncodeRows(rows [][]string, delim rune) []byte {
	var b strings.Builder
	for _, row := range rows {
		for i, f := range row {
			if i > 0 {
				b.WriteRune(delim)
			}
			b.WriteString(quoteField(f, delim))
		}
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

func quoteField(s string, delim rune) string {
	if !strings.ContainsAny(s, string(delim)+"\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
