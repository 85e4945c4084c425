package domain

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleContestant Role = "contestant"
	RoleJudge      Role = "judge"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleContestant, RoleJudge:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown participation role %q", s)
	}
}

// Participation is one user's relationship to one contest. A user holds at most
// one participation per contest across both roles.
type Participation struct {
	ID           uint      `json:"id"`
	ContestID    uint      `json:"contestId"`
	UserID       uint      `json:"userId"`
	User         *Profile  `json:"user,omitempty"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"isActive"`
	CurrentRank  int       `json:"currentRank"`
	PreviousRank int       `json:"previousRank"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (p Participation) IsRanked() bool {
	return p.CurrentRank > 0
}

type MemberApplication struct {
	Type      Role      `json:"type"`
	IsPending bool      `json:"isPending"`
	Date      time.Time `json:"date"`
}
