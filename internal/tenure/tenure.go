// Package tenure estimates a candidate's total years of experience and scores
// it against a job's minimum-years requirement.
package tenure

import (
	"math"
	"time"

	"github.com/ayushk-1801/jobwise/internal/normalize"
	"github.com/ayushk-1801/jobwise/internal/types"
)

const daysPerYear = 365

// Clock returns the current time. Injected so "today" is fixed in tests.
type Clock func() time.Time

// EstimateYears sums the day spans of all jobs and floor-divides the total by
// 365. Ongoing jobs run until today. Overlapping jobs are counted twice and
// jobs without a start date contribute nothing.
func EstimateYears(jobs []normalize.Job, today time.Time) int {
	return floorDiv(TotalDays(jobs, today), daysPerYear)
}

// TotalDays returns the summed day spans of all jobs.
func TotalDays(jobs []normalize.Job, today time.Time) int {
	today = truncateToDay(today)

	total := 0
	for _, job := range jobs {
		start, ok := job.StartedAt.Get()
		if !ok {
			continue
		}
		end, ok := job.EndedAt.Get()
		if !ok {
			end = today
		}
		total += daysBetween(start, end)
	}
	return total
}

// FitScore scores candidateYears against required as 1 - |required-candidate|/required.
// The result is not clamped and goes negative once the gap exceeds the requirement.
// ok is false when required is absent or zero.
func FitScore(candidateYears int, required types.Optional[int]) (score float64, ok bool) {
	req, present := required.Get()
	if !present || req == 0 {
		return 0, false
	}
	gap := math.Abs(float64(req - candidateYears))
	return 1 - gap/float64(req), true
}

// daysBetween counts calendar days from a to b, negative when b precedes a.
func daysBetween(a, b time.Time) int {
	a = truncateToDay(a)
	b = truncateToDay(b)
	return int(math.Round(b.Sub(a).Hours() / 24))
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// floorDiv rounds toward negative infinity, unlike Go's truncating division.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
