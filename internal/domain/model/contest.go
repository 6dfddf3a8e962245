package model

import (
	"time"
)

type ContestStatus string

const (
	StatusPending  ContestStatus = "pending"
	StatusApproved ContestStatus = "approved"
	StatusRejected ContestStatus = "rejected"
)

func (s ContestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type Contest struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	Slug              string        `json:"slug"`
	CreatorEmail      string        `json:"creator_email"`
	Image             string        `json:"image,omitempty"`
	Description       string        `json:"description,omitempty"`
	Price             float64       `json:"price"`
	Prize             string        `json:"prize,omitempty"`
	TaskInstruction   string        `json:"task_instruction,omitempty"`
	Type              string        `json:"type,omitempty"`
	Deadline          string        `json:"deadline,omitempty"`
	Status            ContestStatus `json:"status"`
	ParticipantsCount int           `json:"participants_count"`
	CreatedAt         time.Time     `json:"created_at"`
}
