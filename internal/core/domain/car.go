package domain

import (
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
)

type Car struct {
	ID        uuid.UUID `json:"id"`
	Make      string    `json:"make"`
	Model     string    `json:"model"`
	Year      int       `json:"year"`
	ImageURL  string    `json:"image_url"`
	HotVotes  int64     `json:"hot_votes"`
	NotVotes  int64     `json:"not_votes"`
	CreatedAt time.Time `json:"created_at"`
}

func (c Car) TotalVotes() int64 {
	return c.HotVotes + c.NotVotes
}

// HotPercentage is the share of hot votes, rounded to one decimal place.
// A car nobody voted on scores 0.
func (c Car) HotPercentage() float64 {
	total := c.TotalVotes()
	if total == 0 {
		return 0
	}
	pct := float64(c.HotVotes) / float64(total) * 100
	return math.Round(pct*10) / 10
}

func (c Car) MarshalJSON() ([]byte, error) {
	type car Car
	return json.Marshal(struct {
		car
		TotalVotes    int64   `json:"total_votes"`
		HotPercentage float64 `json:"hot_percentage"`
	}{
		car:           car(c),
		TotalVotes:    c.TotalVotes(),
		HotPercentage: c.HotPercentage(),
	})
}

type VoteType string

const (
	VoteHot VoteType = "hot"
	VoteNot VoteType = "not"
)

func ParseVoteType(s string) (VoteType, error) {
	switch v := VoteType(s); v {
	case VoteHot, VoteNot:
		return v, nil
	}
	return "", ErrInvalidVoteType
}

// RanksAbove orders cars for the leaderboard: higher hot share first, then
// more votes, then alphabetically by make and model.
func RanksAbove(a, b Car) bool {
	// compare hot shares without dividing: a.hot/a.total vs b.hot/b.total
	lhs := a.HotVotes * b.TotalVotes()
	rhs := b.HotVotes * a.TotalVotes()
	if lhs != rhs {
		return lhs > rhs
	}
	if a.TotalVotes() != b.TotalVotes() {
		return a.TotalVotes() > b.TotalVotes()
	}
	if a.Make != b.Make {
		return a.Make < b.Make
	}
	return a.Model < b.Model
}
