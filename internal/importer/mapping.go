package importer

import "strings"

// Field identifies a logical candidate field a CSV column can map to.
type Field int

const (
	FieldFirstName Field = iota
	FieldLastName
	FieldFullName
	FieldPhone
	FieldEmail
	FieldLeadSource
	FieldExperience
	FieldTechnicianLevel
	FieldPreviousEmployers
	FieldTechnicalFocus
	FieldCompany
	FieldHiringStatus
	FieldContacted
	FieldHot
	FieldNeedsFollowUp
	FieldNeedsInsurance
	FieldAvoid
	FieldPayScale
	FieldNotes
	FieldDateEntered
	fieldCount
)

// Unmapped marks a logical field with no corresponding CSV column.
const Unmapped = -1

// String returns the field's canonical header label.
func (f Field) String() string {
	if labels := fieldLabels[f]; len(labels) > 0 {
		return labels[0]
	}
	return ""
}

// Mapping assigns a column index (or Unmapped) to every logical field.
type Mapping map[Field]int

// fieldLabels holds each field's canonical header label followed by accepted
// synonyms. Matching is case-insensitive. The canonical labels line up with
// the exporter's column headers so our own exports re-import cleanly.
var fieldLabels = map[Field][]string{
	FieldFirstName:       {"First Name", "First", "FirstName", "Given Name"},
	FieldLastName:        {"Last Name", "Last", "LastName", "Surname", "Family Name"},
	FieldFullName:        {"Name", "Full Name", "Candidate", "Candidate Name"},
	FieldPhone:           {"Phone", "Cell", "Mobile", "Tel", "Telephone", "Phone Number", "Cell Phone"},
	FieldEmail:           {"Email", "E-mail", "Email Address"},
	FieldLeadSource:      {"Lead Source", "Source", "Lead", "Referral Source"},
	FieldExperience:      {"Experience", "Years Experience", "Years of Experience", "YOE", "Exp"},
	FieldTechnicianLevel: {"Skill Level", "Technician Level", "Level", "Tier"},
	FieldPreviousEmployers: {"Previous Employers", "Past Employers", "Employment History",
		"Previous Employer"},
	FieldTechnicalFocus: {"Technical Focus", "Specialties", "Specialty", "Skills"},
	FieldCompany:        {"Company", "Employer", "Shop", "Dealership", "Current Employer"},
	FieldHiringStatus:    {"Hiring Status", "Status", "Stage", "Pipeline Stage"},
	FieldContacted:       {"Contacted", "Contacted?", "Reached"},
	FieldHot:             {"Hot Candidate", "Hot", "Priority"},
	FieldNeedsFollowUp:   {"Needs Follow-up", "Needs Follow Up", "Follow Up", "Follow-up"},
	FieldNeedsInsurance:  {"Needs Insurance", "Insurance"},
	FieldAvoid:           {"Avoid", "Do Not Hire", "Blacklist"},
	FieldPayScale:        {"Pay Scale", "Pay", "Wage", "Pay Rate"},
	FieldNotes:           {"Notes", "Comments", "Remarks"},
	FieldDateEntered:     {"Date Entered", "Date", "Entered", "Date Added", "Created"},
}

// DefaultFieldMapping matches each logical field against the header labels,
// trying the canonical label and its synonyms case-insensitively. Fields
// without a matching column map to Unmapped. The first matching column wins;
// a column is never assigned to more than one field.
func DefaultFieldMapping(headers []string) Mapping {
	cleaned := make([]string, len(headers))
	for i, h := range headers {
		cleaned[i] = strings.TrimSpace(h)
	}

	mapping := make(Mapping, fieldCount)
	used := make(map[int]bool, len(headers))

	for f := Field(0); f < fieldCount; f++ {
		mapping[f] = Unmapped
		for _, label := range fieldLabels[f] {
			idx := findHeader(cleaned, label, used)
			if idx != Unmapped {
				mapping[f] = idx
				used[idx] = true
				break
			}
		}
	}
	return mapping
}

func findHeader(headers []string, label string, used map[int]bool) int {
	for i, h := range headers {
		if !used[i] && strings.EqualFold(h, label) {
			return i
		}
	}
	return Unmapped
}

// cell returns the trimmed value of the mapped column for f, or "" when the
// field is unmapped or the row is short.
func (m Mapping) cell(row []string, f Field) string {
	idx, ok := m[f]
	if !ok || idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// mapped reports whether f has a column assigned.
func (m Mapping) mapped(f Field) bool {
	idx, ok := m[f]
	return ok && idx >= 0
}
