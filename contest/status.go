package contest

import "time"

// Status is a projection of the clock onto the contest window, never a
// stored source of truth. A contest whose end has passed reads finished
// no matter what the cache column says.
type Status string

const (
	StatusUpcoming Status = "upcoming"
	StatusRunning  Status = "running"
	StatusFinished Status = "finished"
)

// DeriveStatus maps the current time onto the contest window.
func DeriveStatus(now time.Time, start time.Time, end time.Time) Status {
	if now.Before(start) {
		return StatusUpcoming
	}
	if now.Before(end) {
		return StatusRunning
	}
	return StatusFinished
}

// Status derives the contest status from the wall clock. Call it on
// every read path that exposes status.
func (c *Contest) Status(now time.Time) Status {
	return DeriveStatus(now, c.StartTime, c.EndTime)
}

// AcceptsSubmissions reports whether the contest window is open.
func (c *Contest) AcceptsSubmissions(now time.Time) bool {
	return c.Status(now) == StatusRunning
}
