// Package normalize converts extracted candidate and job profiles into flat,
// null-free records and builds the texts compared by the embedding facets.
package normalize

import (
	"strings"
	"time"

	"github.com/ayushk-1801/jobwise/internal/types"
)

// listSeparator joins list items and terminates narrative entries.
const listSeparator = " , "

// Job is a flattened résumé job with concrete dates.
type Job struct {
	Title       string
	Description string
	StartedAt   types.Optional[time.Time]
	EndedAt     types.Optional[time.Time]
	CurrentJob  bool
}

// Degree is a flattened résumé degree.
type Degree struct {
	DegreeType     string
	Major          string
	University     string
	GraduationDate types.Optional[time.Time]
}

// Project is a flattened résumé project.
type Project struct {
	Title       string
	Description string
}

// Candidate is the normalized form of a CandidateProfile. Slices are never nil.
type Candidate struct {
	Name     string
	Email    string
	Degrees  []Degree
	Jobs     []Job
	Skills   []string
	Projects []Project
}

// JobDescription is the normalized form of a JobProfile. Slices are never nil.
type JobDescription struct {
	Title       string
	Description string
	Skills      []string
	Experience  string
	Education   string
	MinYears    types.Optional[int]
}

// Normalize flattens both profiles. It does not modify its inputs and returns
// equal output for equal input.
func Normalize(candidate *types.CandidateProfile, job *types.JobProfile) (Candidate, JobDescription) {
	return NormalizeCandidate(candidate), NormalizeJob(job)
}

// NormalizeCandidate flattens a candidate profile. A nil profile yields an empty record.
func NormalizeCandidate(c *types.CandidateProfile) Candidate {
	out := Candidate{
		Degrees:  []Degree{},
		Jobs:     []Job{},
		Skills:   []string{},
		Projects: []Project{},
	}
	if c == nil {
		return out
	}

	out.Name = strings.TrimSpace(c.FirstName.OrZero() + " " + c.LastName.OrZero())
	out.Email = c.Email.OrZero()

	for _, d := range c.Degrees {
		out.Degrees = append(out.Degrees, Degree{
			DegreeType:     d.DegreeType.OrZero(),
			Major:          d.Major.OrZero(),
			University:     d.University.OrZero(),
			GraduationDate: optionalDate(d.GraduationDate),
		})
	}

	for _, j := range c.Jobs {
		out.Jobs = append(out.Jobs, Job{
			Title:       j.Title.OrZero(),
			Description: j.Description.OrZero(),
			StartedAt:   optionalDate(j.StartedAt),
			EndedAt:     optionalDate(j.EndedAt),
			CurrentJob:  j.CurrentJob.OrZero(),
		})
	}

	out.Skills = append(out.Skills, c.Skills...)

	for _, p := range c.Projects {
		out.Projects = append(out.Projects, Project{
			Title:       p.Title.OrZero(),
			Description: p.Description.OrZero(),
		})
	}

	return out
}

// NormalizeJob flattens a job profile. A nil profile yields an empty record.
func NormalizeJob(j *types.JobProfile) JobDescription {
	out := JobDescription{Skills: []string{}}
	if j == nil {
		return out
	}

	out.Title = j.Title.OrZero()
	out.Description = j.Description.OrZero()
	out.Skills = append(out.Skills, j.Skills...)
	out.Experience = j.Experience.OrZero()
	out.Education = j.Education.OrZero()
	out.MinYears = j.MinYears
	return out
}

// DateOf converts an extracted date into a calendar date. Dates missing any of
// day, month or year are absent: later arithmetic works at day granularity.
// Impossible dates such as February 30 are absent too rather than rolled over.
func DateOf(d types.Date) types.Optional[time.Time] {
	if !d.Complete() {
		return types.None[time.Time]()
	}
	day, month, year := d.Day.OrZero(), d.Month.OrZero(), d.Year.OrZero()

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return types.None[time.Time]()
	}
	return types.Some(t)
}

func optionalDate(d types.Optional[types.Date]) types.Optional[time.Time] {
	date, ok := d.Get()
	if !ok {
		return types.None[time.Time]()
	}
	return DateOf(date)
}
