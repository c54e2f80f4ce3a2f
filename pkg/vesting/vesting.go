// Package vesting implements the artist lockup: the artist's launch
// allocation cannot be sold until the vesting period ends. Fans are never
// subject to it.
package vesting

import (
	"time"

	"github.com/fanstake/curve-go-sdk/pkg/types"
)

// DefaultDuration is the production lockup period for artist allocations.
const DefaultDuration = 90 * 24 * time.Hour

// Schedule locks an artist's allocation until VestingEnd.
type Schedule struct {
	// Artist identifies the artist wallet the lockup applies to.
	Artist string `json:"artist"`

	// VestingEnd is when the allocation unlocks.
	VestingEnd time.Time `json:"vesting_end"`
}

// NewSchedule creates a lockup starting at start for the given duration.
func NewSchedule(artist string, start time.Time, duration time.Duration) Schedule {
	return Schedule{
		Artist:     artist,
		VestingEnd: start.Add(duration),
	}
}

// Unlocked reports whether the allocation is sellable at the given time.
func (s Schedule) Unlocked(now time.Time) bool {
	return !now.Before(s.VestingEnd)
}

// CheckSell returns ErrTokensStillVesting when the seller is the locked
// artist and the vesting period has not ended. Other sellers always pass.
func (s Schedule) CheckSell(seller string, now time.Time) error {
	if seller == s.Artist && !s.Unlocked(now) {
		return types.ErrTokensStillVesting
	}
	return nil
}
