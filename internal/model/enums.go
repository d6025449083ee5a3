package model

import "strings"

// LeadSource is the channel through which a candidate was discovered.
type LeadSource string

const (
	LeadInPerson LeadSource = "In Person"
	LeadIndeed   LeadSource = "Indeed"
	LeadFacebook LeadSource = "Facebook"
	LeadReferral LeadSource = "Referral"
	LeadSchool   LeadSource = "School"
	LeadWebsite  LeadSource = "Website"
	LeadOther    LeadSource = "Other"
)

// LeadSources lists all values in display order.
var LeadSources = []LeadSource{
	LeadInPerson, LeadIndeed, LeadFacebook, LeadReferral, LeadSchool, LeadWebsite, LeadOther,
}

// ParseLeadSource matches s against the known labels, case-insensitively.
// Unrecognized text falls back to LeadInPerson.
func ParseLeadSource(s string) LeadSource {
	s = strings.TrimSpace(s)
	for _, v := range LeadSources {
		if strings.EqualFold(s, string(v)) {
			return v
		}
	}
	return LeadInPerson
}

// TechnicianLevel is the skill tier assigned to a candidate.
type TechnicianLevel string

const (
	LevelUnknown    TechnicianLevel = "Unknown"
	LevelLubeTech   TechnicianLevel = "Lube Tech"
	LevelApprentice TechnicianLevel = "Apprentice"
	LevelBTech      TechnicianLevel = "B Tech"
	LevelATech      TechnicianLevel = "A Tech"
	LevelMaster     TechnicianLevel = "Master Tech"
)

var TechnicianLevels = []TechnicianLevel{
	LevelUnknown, LevelLubeTech, LevelApprentice, LevelBTech, LevelATech, LevelMaster,
}

// ParseTechnicianLevel matches s case-insensitively, falling back to LevelUnknown.
func ParseTechnicianLevel(s string) TechnicianLevel {
	s = strings.TrimSpace(s)
	for _, v := range TechnicianLevels {
		if strings.EqualFold(s, string(v)) {
			return v
		}
	}
	return LevelUnknown
}

// HiringStatus is the stage of a candidate in the recruiting pipeline.
type HiringStatus string

const (
	StatusNotContacted      HiringStatus = "Not Contacted"
	StatusContacted         HiringStatus = "Contacted"
	StatusVisitForInterview HiringStatus = "Visit for Interview"
	StatusOfferMade         HiringStatus = "Offer Made"
	StatusHired             HiringStatus = "Hired"
	StatusNotInterested     HiringStatus = "Not Interested"
)

var HiringStatuses = []HiringStatus{
	StatusNotContacted, StatusContacted, StatusVisitForInterview,
	StatusOfferMade, StatusHired, StatusNotInterested,
}

// ParseHiringStatus matches s case-insensitively, falling back to StatusNotContacted.
func ParseHiringStatus(s string) HiringStatus {
	s = strings.TrimSpace(s)
	for _, v := range HiringStatuses {
		if strings.EqualFold(s, string(v)) {
			return v
		}
	}
	return StatusNotContacted
}
