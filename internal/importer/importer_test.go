package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Camblonie/recruiting-tracker/internal/export"
	"github.com/Camblonie/recruiting-tracker/internal/model"
	"github.com/Camblonie/recruiting-tracker/internal/store"
)

func importText(t *testing.T, st store.Store, text string) *Result {
	t.Helper()
	result, err := ImportCandidates(context.Background(), st, []byte(text), Options{})
	if err != nil {
		t.Fatalf("ImportCandidates: %v", err)
	}
	return result
}

func allCandidates(t *testing.T, st store.Store) []*model.Candidate {
	t.Helper()
	out, err := st.Candidates(context.Background())
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	return out
}

func TestImportBasic(t *testing.T) {
	st := store.NewMemory()
	csv := "First Name,Last Name,Phone,Email\n" +
		"Alice,Smith,555-123-4567,alice@example.com\n" +
		"Bob,Jones,555-987-6543,bob@example.com\n" +
		"Carol,White,555-111-2222,carol@example.com\n"

	result := importText(t, st, csv)
	if result.Imported != 3 {
		t.Fatalf("Imported = %d, want 3; errors: %v", result.Imported, result.Errors)
	}
	if result.Skipped != 0 || len(result.Errors) != 0 {
		t.Fatalf("unexpected skips/errors: %+v", result)
	}

	got := allCandidates(t, st)
	if len(got) != 3 {
		t.Fatalf("stored %d candidates, want 3", len(got))
	}
	if got[0].Name != "Alice Smith" {
		t.Errorf("Name = %q, want %q", got[0].Name, "Alice Smith")
	}
	if got[0].Phone != "555-123-4567" {
		t.Errorf("Phone = %q", got[0].Phone)
	}
}

func TestImportFullRow(t *testing.T) {
	st := store.NewMemory()
	csv := "Name,Phone,Email,Lead Source,Experience,Skill Level,Company,Hiring Status," +
		"Hot Candidate,Needs Follow-up,Needs Insurance,Pay Scale,Notes,Date Entered\n" +
		"Alice Smith,5551234567,alice@example.com,Indeed,8,A Tech,Midtown Motors,Contacted," +
		"Yes,no,1,\"$40/hr\",Solid diagnostics background,2025-03-15\n"

	result := importText(t, st, csv)
	if result.Imported != 1 {
		t.Fatalf("Imported = %d, want 1; errors: %v", result.Imported, result.Errors)
	}

	c := allCandidates(t, st)[0]
	if c.LeadSource != model.LeadIndeed {
		t.Errorf("LeadSource = %q", c.LeadSource)
	}
	if c.YearsExperience != 8 {
		t.Errorf("YearsExperience = %d", c.YearsExperience)
	}
	if c.TechnicianLevel != model.LevelATech {
		t.Errorf("TechnicianLevel = %q", c.TechnicianLevel)
	}
	if c.HiringStatus != model.StatusContacted {
		t.Errorf("HiringStatus = %q", c.HiringStatus)
	}
	if !c.Hot || c.NeedsFollowUp {
		t.Errorf("Hot = %v, NeedsFollowUp = %v", c.Hot, c.NeedsFollowUp)
	}
	if !c.NeedsInsurance {
		t.Error("NeedsInsurance = false")
	}
	if c.PayScale != "$40/hr" {
		t.Errorf("PayScale = %q", c.PayScale)
	}
	if c.DateEntered.Format("2006-01-02") != "2025-03-15" {
		t.Errorf("DateEntered = %v", c.DateEntered)
	}

	// The company got a default position and the candidate points at it.
	if c.PositionID == nil {
		t.Fatal("PositionID is nil")
	}
	companies, _ := st.Companies(context.Background())
	if len(companies) != 1 || companies[0].Name != "Midtown Motors" {
		t.Fatalf("companies = %+v", companies)
	}
}

func TestImportQuotedNameRow(t *testing.T) {
	st := store.NewMemory()
	csv := "Name,Phone,Email,Lead Source\n\"Alice Smith\",1112223333,alice@example.com,Indeed\n"

	result := importText(t, st, csv)
	if result.Imported != 1 {
		t.Fatalf("Imported = %d, want 1; errors: %v", result.Imported, result.Errors)
	}

	c := allCandidates(t, st)[0]
	if c.Name != "Alice Smith" {
		t.Errorf("Name = %q", c.Name)
	}
	if c.LeadSource != model.LeadIndeed {
		t.Errorf("LeadSource = %q", c.LeadSource)
	}
}

func TestImportDedup(t *testing.T) {
	st := store.NewMemory()

	// Duplicate detection ignores name case/whitespace and phone punctuation.
	csv := "Name,Phone\n" +
		"Alice Smith,555-123-4567\n" +
		"  ALICE SMITH  ,(555) 123-4567\n" +
		"alice smith,5551234567\n"

	result := importText(t, st, csv)
	if result.Imported != 1 {
		t.Errorf("Imported = %d, want 1", result.Imported)
	}
	if result.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", result.Skipped)
	}
	if len(result.Errors) != 0 {
		t.Errorf("dedup must not produce errors: %v", result.Errors)
	}
}

func TestImportDedupAgainstStore(t *testing.T) {
	st := store.NewMemory()
	existing := model.NewCandidate("Alice Smith", "5551234567", "")
	if err := st.InsertCandidate(context.Background(), existing); err != nil {
		t.Fatal(err)
	}

	result := importText(t, st, "Name,Phone\nAlice Smith,(555) 123-4567\n")
	if result.Imported != 0 || result.Skipped != 1 {
		t.Errorf("result = %+v, want 0 imported 1 skipped", result)
	}
}

func TestImportMissingName(t *testing.T) {
	st := store.NewMemory()
	csv := "Name,Phone\n" +
		",5551234567\n" +
		"Bob Jones,5559876543\n"

	result := importText(t, st, csv)
	if result.Imported != 1 {
		t.Errorf("Imported = %d, want 1", result.Imported)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Errors = %v, want one", result.Errors)
	}
	if want := "Row 2: Missing required Name"; result.Errors[0] != want {
		t.Errorf("error = %q, want %q", result.Errors[0], want)
	}
}

func TestImportSemicolonDelimiter(t *testing.T) {
	st := store.NewMemory()
	result := importText(t, st, "Name;Phone\nAlice Smith;5551234567\n")
	if result.Imported != 1 {
		t.Fatalf("Imported = %d, want 1; errors: %v", result.Imported, result.Errors)
	}
}

func TestImportSepDirectiveAndBOM(t *testing.T) {
	st := store.NewMemory()
	text := "\uFEFFsep=;\nName;Phone\nAlice Smith;5551234567\n"
	result := importText(t, st, text)
	if result.Imported != 1 {
		t.Fatalf("Imported = %d, want 1; errors: %v", result.Imported, result.Errors)
	}
}

func TestImportBlankRowsSkipped(t *testing.T) {
	st := store.NewMemory()
	csv := "Name,Phone\n\n,,\nAlice Smith,5551234567\n  ,  \n"
	result := importText(t, st, csv)
	if result.Imported != 1 || result.Skipped != 0 || len(result.Errors) != 0 {
		t.Fatalf("result = %+v", result)
	}
}

func TestImportContactedOverride(t *testing.T) {
	st := store.NewMemory()
	csv := "Name,Hiring Status,Contacted\n" +
		"Alice Smith,Not Contacted,Yes\n" +
		"Bob Jones,Hired,No\n" +
		"Carol White,Hired,\n"

	result := importText(t, st, csv)
	if result.Imported != 3 {
		t.Fatalf("Imported = %d; errors: %v", result.Imported, result.Errors)
	}

	got := allCandidates(t, st)
	if got[0].HiringStatus != model.StatusVisitForInterview {
		t.Errorf("contacted=yes status = %q", got[0].HiringStatus)
	}
	if got[1].HiringStatus != model.StatusNotContacted {
		t.Errorf("contacted=no status = %q", got[1].HiringStatus)
	}
	// Empty Contacted cell leaves the status column's value alone.
	if got[2].HiringStatus != model.StatusHired {
		t.Errorf("empty contacted status = %q", got[2].HiringStatus)
	}
}

func TestImportEnumFallbacks(t *testing.T) {
	st := store.NewMemory()
	csv := "Name,Lead Source,Skill Level,Hiring Status\n" +
		"Alice Smith,Carrier Pigeon,Wizard,Limbo\n"

	result := importText(t, st, csv)
	if result.Imported != 1 {
		t.Fatalf("Imported = %d; errors: %v", result.Imported, result.Errors)
	}

	c := allCandidates(t, st)[0]
	if c.LeadSource != model.LeadInPerson {
		t.Errorf("LeadSource = %q", c.LeadSource)
	}
	if c.TechnicianLevel != model.LevelUnknown {
		t.Errorf("TechnicianLevel = %q", c.TechnicianLevel)
	}
	if c.HiringStatus != model.StatusNotContacted {
		t.Errorf("HiringStatus = %q", c.HiringStatus)
	}
}

func TestImportInvalidEncoding(t *testing.T) {
	st := store.NewMemory()
	_, err := ImportCandidates(context.Background(), st, []byte{0xff, 0xfe, 0x00}, Options{})
	if !errors.Is(err, ErrInvalidEncoding) {
		t.Fatalf("err = %v, want ErrInvalidEncoding", err)
	}
}

func TestImportNoHeader(t *testing.T) {
	st := store.NewMemory()
	result := importText(t, st, "\n\n   \n")
	if result.Imported != 0 || len(result.Errors) == 0 {
		t.Fatalf("result = %+v, want a no-header error", result)
	}
	if len(result.Diagnostics) == 0 {
		t.Error("expected diagnostics for an empty import")
	}
}

func TestImportSaveFailureReported(t *testing.T) {
	st := store.NewMemory()
	st.SaveErr = fmt.Errorf("disk full")

	result := importText(t, st, "Name,Phone\nAlice Smith,5551234567\n")
	if result.Imported != 1 {
		t.Fatalf("Imported = %d", result.Imported)
	}

	found := false
	for _, e := range result.Errors {
		if strings.Contains(e, "disk full") {
			found = true
		}
	}
	if !found {
		t.Errorf("save failure not reported: %v", result.Errors)
	}
}

func TestImportUnbalancedQuotesRecovered(t *testing.T) {
	st := store.NewMemory()
	// The unclosed quote swallows every line break in strict parsing,
	// collapsing the file to one row; the importer re-parses with quotes
	// treated as data and recovers the rows.
	csv := "Name,\"Phone\r\nAlice Smith,5551234567\r\n"
	result := importText(t, st, csv)
	if result.Imported != 1 {
		t.Fatalf("Imported = %d, want 1; errors: %v", result.Imported, result.Errors)
	}
	if got := allCandidates(t, st)[0].Name; got != "Alice Smith" {
		t.Errorf("Name = %q", got)
	}
}

func TestImportCompanyReuse(t *testing.T) {
	st := store.NewMemory()
	csv := "Name,Company\n" +
		"Alice Smith,Midtown Motors\n" +
		"Bob Jones,MIDTOWN MOTORS\n"

	result := importText(t, st, csv)
	if result.Imported != 2 {
		t.Fatalf("Imported = %d; errors: %v", result.Imported, result.Errors)
	}

	companies, _ := st.Companies(context.Background())
	if len(companies) != 1 {
		t.Fatalf("companies = %d, want 1 (case-insensitive match)", len(companies))
	}
	positions, _ := st.Positions(context.Background())
	if len(positions) != 1 {
		t.Fatalf("positions = %d, want 1 shared default position", len(positions))
	}
}

func TestImportSummary(t *testing.T) {
	r := &Result{Imported: 2, Skipped: 1}
	for i := 0; i < 7; i++ {
		r.Errors = append(r.Errors, fmt.Sprintf("Row %d: bad", i+2))
	}
	s := r.Summary()
	if !strings.HasPrefix(s, "Imported 2, skipped 1") {
		t.Errorf("summary = %q", s)
	}
	if !strings.Contains(s, "...and 2 more") {
		t.Errorf("summary should cap errors at 5: %q", s)
	}
}

func TestPreview(t *testing.T) {
	headers, rows, err := Preview([]byte("sep=;\n\nName;Phone\nAlice;555\nBob;666\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(headers) != 2 || headers[0] != "Name" {
		t.Errorf("headers = %v", headers)
	}
	if len(rows) != 2 {
		t.Errorf("rows = %v", rows)
	}
}

func TestPreviewEmpty(t *testing.T) {
	headers, rows, err := Preview([]byte("\n  \n"))
	if err != nil || headers != nil || rows != nil {
		t.Fatalf("Preview() = %v, %v, %v; want all nil", headers, rows, err)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	src := store.NewMemory()
	ctx := context.Background()

	a := model.NewCandidate("Alice Smith", "5551234567", "alice@example.com")
	a.LeadSource = model.LeadReferral
	a.YearsExperience = 12
	a.TechnicianLevel = model.LevelMaster
	// The exported Contacted column re-applies on import, so a status that
	// agrees with it survives the trip intact.
	a.HiringStatus = model.StatusVisitForInterview
	a.Hot = true
	a.NeedsInsurance = true
	a.PreviousEmployers = []string{"Shop A", "Shop B"}
	a.TechnicalFocus = []string{"Diesel"}
	a.PayScale = "$45/hr"
	a.Notes = "strong refs"
	a.DateEntered = time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	if err := src.InsertCandidate(ctx, a); err != nil {
		t.Fatal(err)
	}

	data, err := export.NewExporter(nil, nil).Export(allCandidates(t, src), export.FormatCSV, nil)
	if err != nil {
		t.Fatal(err)
	}

	dst := store.NewMemory()
	result, err := ImportCandidates(ctx, dst, data, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if result.Imported != 1 {
		t.Fatalf("Imported = %d; errors: %v", result.Imported, result.Errors)
	}

	got := allCandidates(t, dst)[0]
	if got.Name != a.Name || got.Phone != a.Phone || got.Email != a.Email {
		t.Errorf("identity fields differ: %+v", got)
	}
	if got.LeadSource != a.LeadSource || got.TechnicianLevel != a.TechnicianLevel ||
		got.HiringStatus != a.HiringStatus {
		t.Errorf("enum fields differ: %+v", got)
	}
	if got.YearsExperience != 12 || !got.Hot || !got.NeedsInsurance {
		t.Errorf("scalar fields differ: %+v", got)
	}
	if len(got.PreviousEmployers) != 2 || got.PreviousEmployers[0] != "Shop A" {
		t.Errorf("PreviousEmployers = %v", got.PreviousEmployers)
	}
	if got.PayScale != "$45/hr" {
		t.Errorf("PayScale = %q", got.PayScale)
	}
	if !got.DateEntered.Equal(a.DateEntered) {
		t.Errorf("DateEntered = %v, want %v", got.DateEntered, a.DateEntered)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string // 2006-01-02, or "" for nil
	}{
		{"2025-03-15", "2025-03-15"},
		{"2025-03-15T10:30:00", "2025-03-15"},
		{"2025-03-15T10:30:00Z", "2025-03-15"},
		{"3/15/2025", "2025-03-15"},
		{"3/15/25", "2025-03-15"},
		{"3/15/2025, 2:04 PM", "2025-03-15"},
		{"not a date", ""},
		{"", ""},
	}

	for _, tt := range tests {
		got := parseDate(tt.in)
		if tt.want == "" {
			if got != nil {
				t.Errorf("parseDate(%q) = %v, want nil", tt.in, got)
			}
			continue
		}
		if got == nil || got.Format("2006-01-02") != tt.want {
			t.Errorf("parseDate(%q) = %v, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"true", "TRUE", "1", "yes", "Y", " Yes "} {
		if !parseBool(s) {
			t.Errorf("parseBool(%q) = false", s)
		}
	}
	for _, s := range []string{"", "no", "0", "false", "maybe"} {
		if parseBool(s) {
			t.Errorf("parseBool(%q) = true", s)
		}
	}
}

func TestParseExperience(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"8", 8}, {" 12 ", 12}, {"-3", 0}, {"eight", 0}, {"", 0},
	}
	for _, tt := range tests {
		if got := parseExperience(tt.in); got != tt.want {
			t.Errorf("parseExperience(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDefaultFieldMapping(t *testing.T) {
	headers := []string{"first name", "LAST NAME", "Cell", "E-mail", "Shop", "Unrelated"}
	m := DefaultFieldMapping(headers)

	want := map[Field]int{
		FieldFirstName: 0,
		FieldLastName:  1,
		FieldPhone:     2,
		FieldEmail:     3,
		FieldCompany:   4,
		FieldFullName:  Unmapped,
		FieldNotes:     Unmapped,
	}
	for f, idx := range want {
		if m[f] != idx {
			t.Errorf("mapping[%d] = %d, want %d", f, m[f], idx)
		}
	}
}

func TestDefaultFieldMappingNoColumnReuse(t *testing.T) {
	// With duplicate headers, only the first column is claimed; the mapping
	// never assigns one column to a field twice.
	m := DefaultFieldMapping([]string{"Phone", "Phone"})
	if m[FieldPhone] != 0 {
		t.Errorf("FieldPhone = %d, want 0", m[FieldPhone])
	}
}

func TestSplitList(t *testing.T) {
	got := splitList("Shop A, Shop B; Shop C,, ")
	want := []string{"Shop A", "Shop B", "Shop C"}
	if len(got) != len(want) {
		t.Fatalf("splitList = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitList[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
