package importer

import (
	"strconv"
	"strings"
	"time"
)

// coerce.go holds the lenient value parsers for optional CSV fields. Bad
// values never fail a row; they fall back to a safe default so a sloppy
// spreadsheet still imports.

// dateLayouts are tried after ISO-8601 forms, covering the M/d/yy[yy]
// variants spreadsheets produce, with and without a trailing time.
var dateLayouts = []string{
	"1/2/2006, 3:04 PM",
	"1/2/06, 3:04 PM",
	"1/2/2006 3:04 PM",
	"1/2/2006",
	"1/2/06",
	"01/02/2006",
	"01/02/06",
}

// parseBool accepts "true", "1", "yes", and "y" (case-insensitive) as true;
// anything else is false.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y":
		return true
	}
	return false
}

// parseExperience parses a non-negative integer year count, defaulting to 0
// for unparseable or negative input.
func parseExperience(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// parseDate tries ISO-8601 first, then the spreadsheet layouts.
// Returns nil when nothing matches.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	isoLayouts := []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// splitList splits a multi-value cell on commas or semicolons, trimming
// whitespace and dropping empties.
func splitList(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';'
	})
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
