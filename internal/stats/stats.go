// Package stats derives display counts and distributions from the candidate
// set. Everything here is read-only; correctness is just correct bucketing.
package stats

import (
	"sort"

	"github.com/Camblonie/recruiting-tracker/internal/model"
)

// MonthCount is the number of candidates entered during one calendar month.
type MonthCount struct {
	Month string `json:"month"` // formatted as 2006-01
	Count int    `json:"count"`
}

// Summary aggregates the candidate set for the dashboard.
type Summary struct {
	Total         int `json:"total"`
	Hot           int `json:"hot"`
	NeedsFollowUp int `json:"needsFollowUp"`
	Avoid         int `json:"avoid"`
	Contacted     int `json:"contacted"`

	ByHiringStatus    map[model.HiringStatus]int    `json:"byHiringStatus"`
	ByTechnicianLevel map[model.TechnicianLevel]int `json:"byTechnicianLevel"`
	ByLeadSource      map[model.LeadSource]int      `json:"byLeadSource"`

	AverageExperience float64      `json:"averageExperience"`
	EnteredByMonth    []MonthCount `json:"enteredByMonth"`
}

// Summarize computes a Summary over candidates. Distribution maps include
// every enum value, so empty buckets render as zero instead of disappearing.
func Summarize(candidates []*model.Candidate) *Summary {
	s := &Summary{
		Total:             len(candidates),
		ByHiringStatus:    make(map[model.HiringStatus]int, len(model.HiringStatuses)),
		ByTechnicianLevel: make(map[model.TechnicianLevel]int, len(model.TechnicianLevels)),
		ByLeadSource:      make(map[model.LeadSource]int, len(model.LeadSources)),
	}
	for _, v := range model.HiringStatuses {
		s.ByHiringStatus[v] = 0
	}
	for _, v := range model.TechnicianLevels {
		s.ByTechnicianLevel[v] = 0
	}
	for _, v := range model.LeadSources {
		s.ByLeadSource[v] = 0
	}

	months := make(map[string]int)
	totalExperience := 0

	for _, c := range candidates {
		if c.Hot {
			s.Hot++
		}
		if c.NeedsFollowUp {
			s.NeedsFollowUp++
		}
		if c.Avoid {
			s.Avoid++
		}
		if c.Contacted() {
			s.Contacted++
		}

		s.ByHiringStatus[c.HiringStatus]++
		s.ByTechnicianLevel[c.TechnicianLevel]++
		s.ByLeadSource[c.LeadSource]++

		totalExperience += c.YearsExperience
		months[c.DateEntered.Format("2006-01")]++
	}

	if len(candidates) > 0 {
		s.AverageExperience = float64(totalExperience) / float64(len(candidates))
	}

	s.EnteredByMonth = make([]MonthCount, 0, len(months))
	for m, n := range months {
		s.EnteredByMonth = append(s.EnteredByMonth, MonthCount{Month: m, Count: n})
	}
	sort.Slice(s.EnteredByMonth, func(i, j int) bool {
		return s.EnteredByMonth[i].Month < s.EnteredByMonth[j].Month
	})
	return s
}
