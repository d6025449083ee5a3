// Package filter implements in-memory candidate filtering and sorting.
//
// A Definition is applied as an intersection: every populated filter group
// must pass for a record to be included. Within the text query, terms are
// ANDed while the searched fields are ORed per term; within a categorical
// group, membership of any listed value suffices. This replaces the original
// store-level predicate queries with pure functions over a materialized
// slice, which is the right trade at single-user data volumes.
package filter

import (
	"sort"
	"strings"
	"time"

	"github.com/Camblonie/recruiting-tracker/internal/model"
)

// SortOrder selects the ordering of filtered results.
type SortOrder string

const (
	SortNameAsc        SortOrder = "name_asc"
	SortNameDesc       SortOrder = "name_desc"
	SortNewestFirst    SortOrder = "newest_first"
	SortOldestFirst    SortOrder = "oldest_first"
	SortExperienceDesc SortOrder = "experience_desc"
	SortExperienceAsc  SortOrder = "experience_asc"
)

// Definition is a transient set of filter criteria. Zero-valued groups are
// inactive; pointer fields distinguish "unset" from "filter on false/zero".
type Definition struct {
	Query string `json:"query,omitempty"`

	LeadSources       []model.LeadSource      `json:"leadSources,omitempty"`
	PreviousEmployers []string                `json:"previousEmployers,omitempty"`
	TechnicalFocus    []string                `json:"technicalFocus,omitempty"`
	TechnicianLevels  []model.TechnicianLevel `json:"technicianLevels,omitempty"`
	HiringStatuses    []model.HiringStatus    `json:"hiringStatuses,omitempty"`

	MinExperience *int `json:"minExperience,omitempty"`
	MaxExperience *int `json:"maxExperience,omitempty"`

	NeedsInsurance *bool `json:"needsInsurance,omitempty"`
	Hot            *bool `json:"hot,omitempty"`
	NeedsFollowUp  *bool `json:"needsFollowUp,omitempty"`
	Avoid          *bool `json:"avoid,omitempty"`

	EnteredFrom *time.Time `json:"enteredFrom,omitempty"`
	EnteredTo   *time.Time `json:"enteredTo,omitempty"`

	Sort SortOrder `json:"sort,omitempty"`
}

// Apply filters candidates by def and returns them in the requested order.
// The input slice is not modified. Ties keep store iteration order.
func Apply(candidates []*model.Candidate, def Definition) []*model.Candidate {
	out := make([]*model.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if matches(c, def) {
			out = append(out, c)
		}
	}
	sortCandidates(out, def.Sort)
	return out
}

func matches(c *model.Candidate, def Definition) bool {
	if !matchesQuery(c, def.Query) {
		return false
	}

	if len(def.LeadSources) > 0 && !containsLead(def.LeadSources, c.LeadSource) {
		return false
	}
	if len(def.TechnicianLevels) > 0 && !containsLevel(def.TechnicianLevels, c.TechnicianLevel) {
		return false
	}
	if len(def.HiringStatuses) > 0 && !containsStatus(def.HiringStatuses, c.HiringStatus) {
		return false
	}
	if len(def.PreviousEmployers) > 0 && !anyFold(c.PreviousEmployers, def.PreviousEmployers) {
		return false
	}
	if len(def.TechnicalFocus) > 0 && !anyFold(c.TechnicalFocus, def.TechnicalFocus) {
		return false
	}

	if def.MinExperience != nil && c.YearsExperience < *def.MinExperience {
		return false
	}
	if def.MaxExperience != nil && c.YearsExperience > *def.MaxExperience {
		return false
	}

	if def.NeedsInsurance != nil && c.NeedsInsurance != *def.NeedsInsurance {
		return false
	}
	if def.Hot != nil && c.Hot != *def.Hot {
		return false
	}
	if def.NeedsFollowUp != nil && c.NeedsFollowUp != *def.NeedsFollowUp {
		return false
	}
	if def.Avoid != nil && c.Avoid != *def.Avoid {
		return false
	}

	if def.EnteredFrom != nil && c.DateEntered.Before(*def.EnteredFrom) {
		return false
	}
	if def.EnteredTo != nil && c.DateEntered.After(*def.EnteredTo) {
		return false
	}

	return true
}

// matchesQuery requires every whitespace-separated term to appear as a
// case-insensitive substring of at least one of name, email, phone, or notes.
func matchesQuery(c *model.Candidate, query string) bool {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return true
	}

	haystacks := []string{
		strings.ToLower(c.Name),
		strings.ToLower(c.Email),
		strings.ToLower(c.Phone),
		strings.ToLower(c.Notes),
	}

	for _, term := range terms {
		term = strings.ToLower(term)
		found := false
		for _, h := range haystacks {
			if strings.Contains(h, term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func sortCandidates(list []*model.Candidate, order SortOrder) {
	switch order {
	case SortNameAsc:
		sort.SliceStable(list, func(i, j int) bool {
			return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name)
		})
	case SortNameDesc:
		sort.SliceStable(list, func(i, j int) bool {
			return strings.ToLower(list[i].Name) > strings.ToLower(list[j].Name)
		})
	case SortNewestFirst:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].DateEntered.After(list[j].DateEntered)
		})
	case SortOldestFirst:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].DateEntered.Before(list[j].DateEntered)
		})
	case SortExperienceDesc:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].YearsExperience > list[j].YearsExperience
		})
	case SortExperienceAsc:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].YearsExperience < list[j].YearsExperience
		})
	}
}

func containsLead(set []model.LeadSource, v model.LeadSource) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsLevel(set []model.TechnicianLevel, v model.TechnicianLevel) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsStatus(set []model.HiringStatus, v model.HiringStatus) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// anyFold reports whether any element of values matches any element of set,
// compared case-insensitively. Used for free-text category lists where
// capitalization drifts between imports.
func anyFold(values, set []string) bool {
	for _, v := range values {
		for _, s := range set {
			if strings.EqualFold(v, s) {
				return true
			}
		}
	}
	return false
}
