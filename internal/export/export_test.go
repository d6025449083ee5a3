package export

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Camblonie/recruiting-tracker/internal/csvx"
	"github.com/Camblonie/recruiting-tracker/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *model.Candidate {
	c := model.NewCandidate("Alice Smith", "5551234567", "alice@example.com")
	c.LeadSource = model.LeadIndeed
	c.YearsExperience = 8
	c.TechnicianLevel = model.LevelATech
	c.HiringStatus = model.StatusContacted
	c.Hot = true
	c.NeedsInsurance = true
	c.PreviousEmployers = []string{"Shop A", "Shop B"}
	c.TechnicalFocus = []string{"Diesel"}
	c.PayScale = "$40/hr"
	c.Notes = "solid"
	c.DateEntered = time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC)
	return c
}

func TestExportCSV(t *testing.T) {
	data, err := NewExporter(nil, nil).Export(
		[]*model.Candidate{sample()}, FormatCSV, nil)
	require.NoError(t, err)

	rows := csvx.Parse(string(data), ',', false)
	require.Len(t, rows, 2)
	assert.Equal(t, DefaultFields(), rows[0])

	byField := map[string]string{}
	for i, h := range rows[0] {
		byField[h] = rows[1][i]
	}
	assert.Equal(t, "Alice", byField["First Name"])
	assert.Equal(t, "Smith", byField["Last Name"])
	assert.Equal(t, "Indeed", byField["Lead Source"])
	assert.Equal(t, "8", byField["Experience"])
	assert.Equal(t, "A Tech", byField["Skill Level"])
	assert.Equal(t, "Shop A, Shop B", byField["Previous Employers"])
	assert.Equal(t, "Yes", byField["Contacted"])
	assert.Equal(t, "Yes", byField["Hot Candidate"])
	assert.Equal(t, "No", byField["Needs Follow-up"])
	assert.Equal(t, "No", byField["Avoid"])
	assert.Equal(t, "$40/hr", byField["Pay Scale"])
	assert.Equal(t, "2025-03-15T09:00:00Z", byField["Date Entered"])
}

func TestExportSelectedFields(t *testing.T) {
	fields := []string{"Last Name", "Phone"}
	data, err := NewExporter(nil, nil).Export(
		[]*model.Candidate{sample()}, FormatCSV, fields)
	require.NoError(t, err)

	rows := csvx.Parse(string(data), ',', false)
	require.Len(t, rows, 2)
	assert.Equal(t, fields, rows[0])
	assert.Equal(t, []string{"Smith", "5551234567"}, rows[1])
}

func TestExportJSON(t *testing.T) {
	data, err := NewExporter(nil, nil).Export(
		[]*model.Candidate{sample()}, FormatJSON, []string{"First Name", "Email"})
	require.NoError(t, err)

	var out []map[string]string
	require.NoError(t, json.Unmarshal(data, &out))
	require.Len(t, out, 1)
	assert.Equal(t, "Alice", out[0]["First Name"])
	assert.Equal(t, "alice@example.com", out[0]["Email"])
}

func TestExportText(t *testing.T) {
	data, err := NewExporter(nil, nil).Export(
		[]*model.Candidate{sample()}, FormatText, []string{"First Name", "Phone"})
	require.NoError(t, err)

	text := string(data)
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "First Name")
	assert.Contains(t, lines[1], "Alice")
	assert.Contains(t, lines[1], "5551234567")
}

func TestExportCompanyColumn(t *testing.T) {
	company := model.NewCompany("Midtown Motors")
	position := model.NewPosition("General", "")
	position.CompanyID = &company.ID

	c := sample()
	c.PositionID = &position.ID

	e := NewExporter([]*model.Company{company}, []*model.Position{position})
	data, err := e.Export([]*model.Candidate{c}, FormatCSV, []string{"Company"})
	require.NoError(t, err)

	rows := csvx.Parse(string(data), ',', false)
	assert.Equal(t, []string{"Midtown Motors"}, rows[1])
}

func TestExportNoPositionLeavesCompanyEmpty(t *testing.T) {
	data, err := NewExporter(nil, nil).Export(
		[]*model.Candidate{sample()}, FormatCSV, []string{"Company", "Notes"})
	require.NoError(t, err)

	rows := csvx.Parse(string(data), ',', false)
	assert.Equal(t, []string{"", "solid"}, rows[1])
}

func TestExportUnknownFieldResolvesEmpty(t *testing.T) {
	data, err := NewExporter(nil, nil).Export(
		[]*model.Candidate{sample()}, FormatCSV, []string{"Shoe Size", "First Name"})
	require.NoError(t, err)

	rows := csvx.Parse(string(data), ',', false)
	assert.Equal(t, []string{"", "Alice"}, rows[1])
}

func TestExportUnknownFormat(t *testing.T) {
	_, err := NewExporter(nil, nil).Export(nil, Format("xml"), nil)
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestExportQuotesEmbeddedDelimiters(t *testing.T) {
	c := sample()
	c.Notes = `likes "fast, loud" engines`

	data, err := NewExporter(nil, nil).Export(
		[]*model.Candidate{c}, FormatCSV, []string{"Notes"})
	require.NoError(t, err)

	rows := csvx.Parse(string(data), ',', false)
	assert.Equal(t, c.Notes, rows[1][0])
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		in, first, last string
	}{
		{"Alice Smith", "Alice", "Smith"},
		{"Alice", "Alice", ""},
		{"Alice Marie Smith", "Alice", "Marie Smith"},
		{"  Alice Smith  ", "Alice", "Smith"},
		{"", "", ""},
	}
	for _, tt := range tests {
		first, last := splitName(tt.in)
		if first != tt.first || last != tt.last {
			t.Errorf("splitName(%q) = %q, %q; want %q, %q", tt.in, first, last, tt.first, tt.last)
		}
	}
}
