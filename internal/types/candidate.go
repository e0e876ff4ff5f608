package types

import (
	"encoding/json"
	"regexp"
)

// Degree types accepted from the candidate extractor.
const (
	DegreeBachelors = "Bachelor's"
	DegreeMasters   = "Master's"
	DegreePhD       = "PhD"
)

// Date is a calendar date as extracted from free text. Any part may be missing.
// Day defaults to 1 when the extractor omits it, but an explicit null day
// leaves the date incomplete.
type Date struct {
	Day   Optional[int] `json:"day"`
	Month Optional[int] `json:"month"`
	Year  Optional[int] `json:"year"`
}

// NewDate builds a complete Date.
func NewDate(year, month, day int) Date {
	return Date{Day: Some(day), Month: Some(month), Year: Some(year)}
}

// UnmarshalJSON applies the day default before decoding.
func (d *Date) UnmarshalJSON(data []byte) error {
	type rawDate Date
	raw := rawDate{Day: Some(1)}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*d = Date(raw)
	return nil
}

// Complete reports whether day, month and year are all present.
func (d Date) Complete() bool {
	return d.Day.IsPresent() && d.Month.IsPresent() && d.Year.IsPresent()
}

// Degree is a Bachelor's, Master's or PhD entry from a résumé.
type Degree struct {
	DegreeType     Optional[string] `json:"degree_type"`
	Major          Optional[string] `json:"major"`
	University     Optional[string] `json:"university"`
	GraduationDate Optional[Date]   `json:"graduation_date"`
}

// Job is a position listed in a résumé's work experience section.
// An absent EndedAt means the job is ongoing.
type Job struct {
	Title       Optional[string] `json:"job_title"`
	Description Optional[string] `json:"job_description"`
	StartedAt   Optional[Date]   `json:"started_at"`
	EndedAt     Optional[Date]   `json:"ended_at"`
	CurrentJob  Optional[bool]   `json:"current_job"`
}

// Project is a project or publication listed in a résumé.
type Project struct {
	Title       Optional[string] `json:"project_title"`
	Description Optional[string] `json:"project_description"`
}

// CandidateProfile is the structured form of a résumé.
type CandidateProfile struct {
	FirstName        Optional[string] `json:"first_name"`
	LastName         Optional[string] `json:"last_name"`
	CountryPhoneCode Optional[string] `json:"country__phone_code"`
	PhoneNumber      Optional[int64]  `json:"phone_number"`
	Email            Optional[string] `json:"email"`
	Country          Optional[string] `json:"country"`
	Degrees          []Degree         `json:"degrees"`
	Jobs             []Job            `json:"jobs"`
	Skills           []string         `json:"skills"`
	Projects         []Project        `json:"projects"`
}

var emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)

// IsValidEmail performs a loose syntactic check on an email address.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
