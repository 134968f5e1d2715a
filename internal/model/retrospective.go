package model

import "time"

type RetroStatus string

const (
	RetroStatusActive   RetroStatus = "active"
	RetroStatusFinished RetroStatus = "finished"
)

// RetroState is either Active or Finished. A finished retro always carries its
// finish time and summary; an active one carries neither.
type RetroState interface {
	Status() RetroStatus
	isRetroState()
}

type Active struct{}

func (Active) Status() RetroStatus { return RetroStatusActive }
func (Active) isRetroState()       {}

type Finished struct {
	FinishedAt time.Time
	Summary    string
}

func (Finished) Status() RetroStatus { return RetroStatusFinished }
func (Finished) isRetroState()       {}

type Retrospective struct {
	CreatedAt time.Time  `json:"created_at"`
	State     RetroState `json:"-"`
	TeamID    string     `json:"team_id"`
	ID        int64      `json:"id"`
}

func (r Retrospective) Status() RetroStatus {
	if r.State == nil {
		return RetroStatusActive
	}
	return r.State.Status()
}

func (r Retrospective) IsActive() bool {
	return r.Status() == RetroStatusActive
}

// Finished returns the finish details, or false while the retro is still active.
func (r Retrospective) Finished() (Finished, bool) {
	f, ok := r.State.(Finished)
	return f, ok
}
