// Package export serializes candidate records to CSV, JSON, or plain text.
// Fields are selected by canonical label and resolved through a lookup
// table, so callers can project any subset in any order. Serialization is
// one-directional: nothing here parses.
package export

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Camblonie/recruiting-tracker/internal/csvx"
	"github.com/Camblonie/recruiting-tracker/internal/model"
	"github.com/google/uuid"
)

// Format selects the output encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// ErrUnknownFormat is returned for a format Export does not produce.
var ErrUnknownFormat = fmt.Errorf("unknown export format")

// defaultFields is the canonical column order, favoring split name parts.
var defaultFields = []string{
	"First Name", "Last Name", "Email", "Phone", "Lead Source", "Company",
	"Experience", "Skill Level", "Previous Employers", "Technical Focus",
	"Hiring Status", "Contacted", "Hot Candidate", "Needs Follow-up",
	"Avoid", "Pay Scale", "Needs Insurance", "Notes", "Date Entered",
}

// DefaultFields returns the canonical field selection in order.
func DefaultFields() []string {
	out := make([]string, len(defaultFields))
	copy(out, defaultFields)
	return out
}

// Exporter resolves candidate fields to strings. It carries the company and
// position sets so the Company column can be derived from a candidate's
// position reference.
type Exporter struct {
	companyByPosition map[uuid.UUID]string
}

// NewExporter builds an exporter over the given companies and positions.
func NewExporter(companies []*model.Company, positions []*model.Position) *Exporter {
	companyNames := make(map[uuid.UUID]string, len(companies))
	for _, c := range companies {
		companyNames[c.ID] = c.Name
	}

	byPosition := make(map[uuid.UUID]string, len(positions))
	for _, p := range positions {
		if p.CompanyID != nil {
			byPosition[p.ID] = companyNames[*p.CompanyID]
		}
	}
	return &Exporter{companyByPosition: byPosition}
}

// Export serializes records in the given format, projecting each to the
// selected fields. A nil or empty field selection means DefaultFields.
// Unknown field labels resolve to empty values rather than failing.
func (e *Exporter) Export(records []*model.Candidate, format Format, fields []string) ([]byte, error) {
	if len(fields) == 0 {
		fields = DefaultFields()
	}

	switch format {
	case FormatCSV:
		return e.exportCSV(records, fields), nil
	case FormatJSON:
		return e.exportJSON(records, fields)
	case FormatText:
		return e.exportText(records, fields), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func (e *Exporter) exportCSV(records []*model.Candidate, fields []string) []byte {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, fields)
	for _, c := range records {
		rows = append(rows, e.row(c, fields))
	}
	return csvx.EncodeRows(rows, ',')
}

func (e *Exporter) exportJSON(records []*model.Candidate, fields []string) ([]byte, error) {
	out := make([]map[string]string, 0, len(records))
	for _, c := range records {
		obj := make(map[string]string, len(fields))
		for _, f := range fields {
			obj[f] = e.resolve(c, f)
		}
		out = append(out, obj)
	}
	return json.MarshalIndent(out, "", "  ")
}

func (e *Exporter) exportText(records []*model.Candidate, fields []string) []byte {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(fields, "\t"))
	for _, c := range records {
		fmt.Fprintln(w, strings.Join(e.row(c, fields), "\t"))
	}
	w.Flush()
	return []byte(b.String())
}

func (e *Exporter) row(c *model.Candidate, fields []string) []string {
	row := make([]string, len(fields))
	for i, f := range fields {
		row[i] = e.resolve(c, f)
	}
	return row
}

// resolve maps a canonical field label to the candidate's value for it.
func (e *Exporter) resolve(c *model.Candidate, field string) string {
	switch field {
	case "First Name":
		first, _ := splitName(c.Name)
		return first
	case "Last Name":
		_, last := splitName(c.Name)
		return last
	case "Email":
		return c.Email
	case "Phone":
		return c.Phone
	case "Lead Source":
		return string(c.LeadSource)
	case "Company":
		if c.PositionID != nil {
			return e.companyByPosition[*c.PositionID]
		}
		return ""
	case "Experience":
		return strconv.Itoa(c.YearsExperience)
	case "Skill Level":
		return string(c.TechnicianLevel)
	case "Previous Employers":
		return strings.Join(c.PreviousEmployers, ", ")
	case "Technical Focus":
		return strings.Join(c.TechnicalFocus, ", ")
	case "Hiring Status":
		return string(c.HiringStatus)
	case "Contacted":
		return yesNo(c.Contacted())
	case "Hot Candidate":
		return yesNo(c.Hot)
	case "Needs Follow-up":
		return yesNo(c.NeedsFollowUp)
	case "Avoid":
		return yesNo(c.Avoid)
	case "Pay Scale":
		return c.PayScale
	case "Needs Insurance":
		return yesNo(c.NeedsInsurance)
	case "Notes":
		return c.Notes
	case "Date Entered":
		return c.DateEntered.Format(time.RFC3339)
	}
	return ""
}

// splitName divides a full name at the first space: everything before is the
// first name, everything after the last name.
func splitName(name string) (first, last string) {
	name = strings.TrimSpace(name)
	if i := strings.IndexByte(name, ' '); i >= 0 {
		return name[:i], strings.TrimSpace(name[i+1:])
	}
	return name, ""
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
