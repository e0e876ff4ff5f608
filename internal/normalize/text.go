package normalize

import (
	"strings"
	"time"
)

// SkillsText joins the candidate's skills.
func (c Candidate) SkillsText() string {
	return strings.Join(c.Skills, listSeparator)
}

// ExperienceText concatenates every job and then every project as
// "title description , ".
func (c Candidate) ExperienceText() string {
	var sb strings.Builder
	for _, j := range c.Jobs {
		sb.WriteString(j.Title + " " + j.Description + listSeparator)
	}
	for _, p := range c.Projects {
		sb.WriteString(p.Title + " " + p.Description + listSeparator)
	}
	return sb.String()
}

// EducationText summarizes each degree as
// "type in major from university in date , ". Unknown dates render empty.
func (c Candidate) EducationText() string {
	var sb strings.Builder
	for _, d := range c.Degrees {
		date := ""
		if t, ok := d.GraduationDate.Get(); ok {
			date = t.Format(time.DateOnly)
		}
		sb.WriteString(d.DegreeType + " in " + d.Major + " from " + d.University + " in " + date + listSeparator)
	}
	return sb.String()
}

// SkillsText joins the job's required skills.
func (j JobDescription) SkillsText() string {
	return strings.Join(j.Skills, listSeparator)
}

// EducationText combines the education and experience requirements.
func (j JobDescription) EducationText() string {
	return j.Education + " in " + j.Experience
}
