package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_DayDefaultsToOneWhenMissing(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`{"month": 3, "year": 2021}`), &d))

	day, ok := d.Day.Get()
	assert.True(t, ok)
	assert.Equal(t, 1, day)
	assert.True(t, d.Complete())
}

func TestDate_ExplicitNullDayIsIncomplete(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`{"day": null, "month": 3, "year": 2021}`), &d))

	assert.False(t, d.Day.IsPresent())
	assert.False(t, d.Complete())
}

func TestDate_MissingYearIsIncomplete(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`{"day": 4, "month": 3, "year": null}`), &d))

	assert.False(t, d.Complete())
}

func TestCandidateProfile_UnmarshalNullableFields(t *testing.T) {
	payload := `{
		"first_name": "Ada",
		"last_name": null,
		"phone_number": 5551234,
		"degrees": [{"degree_type": "Master's", "major": "CS", "university": null, "graduation_date": null}],
		"jobs": [{"job_title": "Engineer", "job_description": null,
		          "started_at": {"month": 1, "year": 2020}, "ended_at": null, "current_job": true}],
		"skills": ["Go", "SQL"],
		"projects": null
	}`

	var c CandidateProfile
	require.NoError(t, json.Unmarshal([]byte(payload), &c))

	assert.Equal(t, "Ada", c.FirstName.OrZero())
	assert.False(t, c.LastName.IsPresent())
	assert.Equal(t, int64(5551234), c.PhoneNumber.OrZero())
	assert.False(t, c.Email.IsPresent())

	require.Len(t, c.Degrees, 1)
	assert.Equal(t, DegreeMasters, c.Degrees[0].DegreeType.OrZero())
	assert.False(t, c.Degrees[0].University.IsPresent())
	assert.False(t, c.Degrees[0].GraduationDate.IsPresent())

	require.Len(t, c.Jobs, 1)
	started, ok := c.Jobs[0].StartedAt.Get()
	require.True(t, ok)
	assert.True(t, started.Complete())
	assert.False(t, c.Jobs[0].EndedAt.IsPresent())
	assert.True(t, c.Jobs[0].CurrentJob.OrZero())

	assert.Equal(t, []string{"Go", "SQL"}, c.Skills)
	assert.Nil(t, c.Projects)
}

func TestJobProfile_MinYears(t *testing.T) {
	var j JobProfile
	require.NoError(t, json.Unmarshal([]byte(`{"job_title": "Data Scientist", "skills": ["python"], "N_YEARS_MIN": 3}`), &j))

	years, ok := j.MinYears.Get()
	assert.True(t, ok)
	assert.Equal(t, 3, years)
	assert.False(t, j.Education.IsPresent())
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"ada@example.com", true},
		{"first.last-name@mail.example.org", true},
		{"no-at-sign.example.com", false},
		{"ada@localhost", false},
		{"", false},
		{"ada lovelace@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidEmail(tt.email))
		})
	}
}

func TestFinalResult_ResponseFieldNames(t *testing.T) {
	data, err := json.Marshal(FinalResult{Similarity: 0.63, Reason: "r", TenureYears: 4, Skills: "Go", Projects: "p"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"similarity":0.63,"reason":"r","n_years":4,"skills":"Go","projects":"p"}`, string(data))
}
