package domain

import "time"

type Platform string

const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformAshby      Platform = "ashby"
	PlatformCustom     Platform = "custom"
	PlatformUnknown    Platform = "unknown"
)

type Seniority string

const (
	SeniorityEntry   Seniority = "Entry"
	SeniorityMid     Seniority = "Mid"
	SenioritySenior  Seniority = "Senior"
	SeniorityLead    Seniority = "Lead"
	SeniorityStaff   Seniority = "Staff/Principal"
	SeniorityUnknown Seniority = "Unknown"
)

type WorkArrangement string

const (
	WorkRemote  WorkArrangement = "Remote"
	WorkHybrid  WorkArrangement = "Hybrid"
	WorkOnsite  WorkArrangement = "Onsite"
	WorkUnknown WorkArrangement = "Unknown"
)

// NotSpecified is the terminal fallback for location/department.
const NotSpecified = "Not specified"

type SalaryRange struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency"`
}

// Midpoint is the bucket key for salary histograms.
func (s SalaryRange) Midpoint() int {
	return (s.Min + s.Max) / 2
}

// JobStub is a partially-parsed posting captured from a listing page,
// before normalization and detail enrichment. Absent hints are valid.
type JobStub struct {
	Title          string
	URL            string
	LocationHint   string
	DepartmentHint string
	// Text is the stub's full inline text; salary is scanned from it
	// at listing level before any detail fetch happens.
	Text string
}

type JobPosting struct {
	Title          string          `json:"title"`
	Location       string          `json:"location"`
	Department     string          `json:"department"`
	Seniority      Seniority       `json:"seniority_level"`
	Work           WorkArrangement `json:"work_arrangement"`
	Salary         *SalaryRange    `json:"salary,omitempty"`
	URL            string          `json:"url"`
	SourcePlatform Platform        `json:"source_platform"`
}

// CompanyJobSet is one company's scrape result. Postings keep listing
// discovery order; URL is the natural key within a set.
type CompanyJobSet struct {
	Company   string       `json:"company"`
	SourceURL string       `json:"source_url"`
	Platform  Platform     `json:"platform"`
	ScrapedAt time.Time    `json:"scraped_at"`
	Jobs      []JobPosting `json:"jobs"`
}
