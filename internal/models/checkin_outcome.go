package models

import "time"

// CheckinSnapshot is the per-user state read inside the check-in write
// transaction.
type CheckinSnapshot struct {
	User         User
	Latest       *Checkin
	CheckinCount int
	Milestones   []Milestone
}

// CheckinOutcome is written back in the same transaction that produced
// the snapshot.
type CheckinOutcome struct {
	Checkin       Checkin
	StreakCount   int
	LastCheckinAt time.Time
	Milestones    []Milestone
}
