// Package importer converts arbitrary delimited text, possibly exported from
// Excel and possibly malformed, into candidate records. The pipeline is:
// decode, strip BOM, detect delimiter, parse (with a lenient re-parse when
// quoting looks broken), locate the header row, map columns to logical
// fields, then compose one candidate per data row, skipping duplicates
// against both the store and rows earlier in the same file.
//
// Row-level problems never abort an import; they accumulate on the Result
// and the remaining rows are still processed.
package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Camblonie/recruiting-tracker/internal/csvx"
	"github.com/Camblonie/recruiting-tracker/internal/model"
	"github.com/Camblonie/recruiting-tracker/internal/store"
	"github.com/Camblonie/recruiting-tracker/internal/validate"
)

// ErrInvalidEncoding is returned when the file is not valid UTF-8.
var ErrInvalidEncoding = errors.New("file is not valid UTF-8 text")

// Options adjusts a single import run.
type Options struct {
	// Delimiter forces a field delimiter; zero means auto-detect.
	Delimiter rune

	// Mapping assigns CSV columns to logical fields; nil means derive a
	// default mapping from the header row.
	Mapping Mapping
}

// Result reports what an import run did.
type Result struct {
	Imported    int      `json:"imported"`
	Skipped     int      `json:"skipped"`
	Errors      []string `json:"errors,omitempty"`
	Diagnostics []string `json:"diagnostics,omitempty"`
}

// maxSummaryErrors caps how many row errors the user-facing summary shows.
const maxSummaryErrors = 5

// Summary renders the result for display: counts plus the first few errors
// and an indicator when more exist.
func (r *Result) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Imported %d, skipped %d", r.Imported, r.Skipped)
	for i, e := range r.Errors {
		if i == maxSummaryErrors {
			fmt.Fprintf(&b, "\n...and %d more", len(r.Errors)-maxSummaryErrors)
			break
		}
		b.WriteString("\n")
		b.WriteString(e)
	}
	return b.String()
}

// Preview decodes and parses raw, returning the header row and the data rows
// that follow it. Directive lines ("sep=;") and fully blank lines before the
// header are skipped. Both returns are nil when no usable rows remain.
func Preview(raw []byte) (headers []string, dataRows [][]string, err error) {
	text, err := decode(raw)
	if err != nil {
		return nil, nil, err
	}

	delim := csvx.DetectDelimiter(text)
	rows := parseRows(text, delim)

	headerIdx := locateHeader(rows)
	if headerIdx < 0 {
		return nil, nil, nil
	}
	return rows[headerIdx], rows[headerIdx+1:], nil
}

// ImportCandidates runs the full pipeline against the store. Returns an
// error only for file-level failures (bad encoding); row-level and
// persistence problems are reported on the Result.
func ImportCandidates(ctx context.Context, st store.Store, raw []byte, opts Options) (*Result, error) {
	result := &Result{}

	text, err := decode(raw)
	if err != nil {
		return nil, err
	}

	delim := opts.Delimiter
	if delim == 0 {
		delim = csvx.DetectDelimiter(text)
	}

	rows := parseRows(text, delim)
	headerIdx := locateHeader(rows)
	if headerIdx < 0 {
		result.Errors = append(result.Errors, "no header row detected")
		result.Diagnostics = diagnostics(delim, rows, -1, nil)
		return result, nil
	}

	headers := rows[headerIdx]
	dataRows := rows[headerIdx+1:]

	mapping := opts.Mapping
	if mapping == nil {
		mapping = DefaultFieldMapping(headers)
	}

	if len(dataRows) == 0 {
		result.Errors = append(result.Errors, "no data rows found below the header")
		result.Diagnostics = diagnostics(delim, rows, headerIdx, mapping)
		return result, nil
	}

	run, err := newImportRun(ctx, st)
	if err != nil {
		return nil, fmt.Errorf("reading existing records: %w", err)
	}

	for i, row := range dataRows {
		if csvx.IsBlankRow(row) {
			continue
		}
		rowNum := headerIdx + i + 2 // 1-based, counting the header and anything above it

		if err := run.importRow(ctx, row, mapping, rowNum); err != nil {
			if errors.Is(err, errDuplicateRow) {
				result.Skipped++
				continue
			}
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		result.Imported++
	}

	// One batched commit at the end. A failure here is reported but the
	// records composed above are not rolled back.
	if err := st.Save(ctx); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("saving imported candidates: %v", err))
	}

	if result.Imported == 0 && result.Skipped == 0 {
		result.Diagnostics = diagnostics(delim, rows, headerIdx, mapping)
	}
	return result, nil
}

// decode validates UTF-8 and strips a leading byte-order mark.
func decode(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", ErrInvalidEncoding
	}
	return csvx.StripBOM(string(raw)), nil
}

// parseRows parses with full quote handling, then falls back to treating
// quotes as literal data when the quoted parse collapses a multi-line file
// into a single row. That happens with unbalanced quoting, where an open
// quote swallows every following line break.
func parseRows(text string, delim rune) [][]string {
	rows := csvx.Parse(text, delim, false)
	if len(rows) <= 1 && strings.ContainsAny(text, "\r\n") {
		if retry := csvx.Parse(text, delim, true); len(retry) > len(rows) {
			return retry
		}
	}
	return rows
}

// locateHeader returns the index of the first row that is neither blank nor
// an Excel sep= directive, or -1 when no such row exists.
func locateHeader(rows [][]string) int {
	for i, row := range rows {
		if csvx.IsBlankRow(row) || isDirectiveRow(row) {
			continue
		}
		return i
	}
	return -1
}

func isDirectiveRow(row []string) bool {
	return len(row) > 0 && csvx.IsSepDirective(row[0])
}

// errDuplicateRow marks a row skipped by dedup; it never reaches the Result
// error list.
var errDuplicateRow = errors.New("duplicate row")

// importRun carries the per-run state: dedup keys seeded once from the
// store, plus find-or-create caches for companies and their default
// positions.
type importRun struct {
	st        store.Store
	seen      map[string]bool
	companies map[string]*model.Company
	positions map[string]*model.Position // company ID -> default position
}

func newImportRun(ctx context.Context, st store.Store) (*importRun, error) {
	run := &importRun{
		st:        st,
		seen:      make(map[string]bool),
		companies: make(map[string]*model.Company),
		positions: make(map[string]*model.Position),
	}

	existing, err := st.Candidates(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range existing {
		run.seen[dedupKey(c.Name, c.Phone)] = true
	}

	companies, err := st.Companies(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range companies {
		run.companies[strings.ToLower(c.Name)] = c
	}

	positions, err := st.Positions(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range positions {
		if p.CompanyID != nil && strings.EqualFold(p.Title, defaultPositionTitle) {
			run.positions[p.CompanyID.String()] = p
		}
	}
	return run, nil
}

// defaultPositionTitle is the position candidates are attached to when the
// import names a company but no specific role.
const defaultPositionTitle = "General"

func (r *importRun) importRow(ctx context.Context, row []string, mapping Mapping, rowNum int) error {
	name := composeName(row, mapping)
	if name == "" {
		return fmt.Errorf("Row %d: Missing required Name", rowNum)
	}

	phone := mapping.cell(row, FieldPhone)
	key := dedupKey(name, phone)
	if r.seen[key] {
		return errDuplicateRow
	}

	c := model.NewCandidate(name, phone, mapping.cell(row, FieldEmail))
	c.LeadSource = model.ParseLeadSource(mapping.cell(row, FieldLeadSource))
	c.YearsExperience = parseExperience(mapping.cell(row, FieldExperience))
	c.TechnicianLevel = model.ParseTechnicianLevel(mapping.cell(row, FieldTechnicianLevel))
	c.HiringStatus = model.ParseHiringStatus(mapping.cell(row, FieldHiringStatus))
	c.PreviousEmployers = splitList(mapping.cell(row, FieldPreviousEmployers))
	c.TechnicalFocus = splitList(mapping.cell(row, FieldTechnicalFocus))
	c.Hot = parseBool(mapping.cell(row, FieldHot))
	c.NeedsFollowUp = parseBool(mapping.cell(row, FieldNeedsFollowUp))
	c.NeedsInsurance = parseBool(mapping.cell(row, FieldNeedsInsurance))
	c.PayScale = mapping.cell(row, FieldPayScale)
	c.Notes = mapping.cell(row, FieldNotes)
	c.SetAvoid(parseBool(mapping.cell(row, FieldAvoid)), "imported")

	if t := parseDate(mapping.cell(row, FieldDateEntered)); t != nil {
		c.DateEntered = *t
	}

	if companyName := mapping.cell(row, FieldCompany); companyName != "" {
		pos, err := r.findOrCreatePosition(ctx, companyName)
		if err != nil {
			return fmt.Errorf("Row %d: attaching company %q: %v", rowNum, companyName, err)
		}
		c.PositionID = &pos.ID
	}

	// A mapped Contacted column overrides whatever the status column said.
	if mapping.mapped(FieldContacted) {
		if contacted := mapping.cell(row, FieldContacted); contacted != "" {
			if parseBool(contacted) {
				c.HiringStatus = model.StatusVisitForInterview
			} else {
				c.HiringStatus = model.StatusNotContacted
			}
		}
	}

	if err := r.st.InsertCandidate(ctx, c); err != nil {
		return fmt.Errorf("Row %d: inserting candidate: %v", rowNum, err)
	}
	r.seen[key] = true
	return nil
}

// findOrCreatePosition returns the company's default position, creating the
// company and the position as needed. Company matching is case-insensitive.
func (r *importRun) findOrCreatePosition(ctx context.Context, companyName string) (*model.Position, error) {
	company, ok := r.companies[strings.ToLower(companyName)]
	if !ok {
		company = model.NewCompany(companyName)
		if err := r.st.InsertCompany(ctx, company); err != nil {
			return nil, err
		}
		r.companies[strings.ToLower(companyName)] = company
	}

	if pos, ok := r.positions[company.ID.String()]; ok {
		return pos, nil
	}
	pos := model.NewPosition(defaultPositionTitle, "")
	pos.CompanyID = &company.ID
	if err := r.st.InsertPosition(ctx, pos); err != nil {
		return nil, err
	}
	r.positions[company.ID.String()] = pos
	return pos, nil
}

// composeName prefers split first/last columns and falls back to a legacy
// single Name column.
func composeName(row []string, mapping Mapping) string {
	first := mapping.cell(row, FieldFirstName)
	last := mapping.cell(row, FieldLastName)
	if first != "" || last != "" {
		return strings.TrimSpace(first + " " + last)
	}
	return mapping.cell(row, FieldFullName)
}

// dedupKey builds the composite duplicate-detection key: lowercased name and
// digits-only phone.
func dedupKey(name, phone string) string {
	return strings.ToLower(strings.TrimSpace(name)) + "|" + validate.DigitsOnly(phone)
}

// diagnostics explains an import that produced nothing, so the user sees
// what the parser made of the file instead of a silent zero.
func diagnostics(delim rune, rows [][]string, headerIdx int, mapping Mapping) []string {
	d := []string{fmt.Sprintf("detected delimiter %q", delim)}

	if headerIdx < 0 {
		d = append(d, fmt.Sprintf("parsed %d rows, none usable as a header", len(rows)))
		return d
	}

	headers := rows[headerIdx]
	d = append(d,
		fmt.Sprintf("header at row %d with %d columns, %d data rows below",
			headerIdx+1, len(headers), len(rows)-headerIdx-1),
		fmt.Sprintf("header labels: %s", strings.Join(headers, " | ")),
	)
	if mapping != nil {
		d = append(d, fmt.Sprintf(
			"column mapping: first=%d last=%d name=%d phone=%d email=%d company=%d",
			mapping[FieldFirstName], mapping[FieldLastName], mapping[FieldFullName],
			mapping[FieldPhone], mapping[FieldEmail], mapping[FieldCompany]))
	}
	return d
}
