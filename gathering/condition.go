package gathering

import (
	"time"
)

// SearchCondition holds the optional filters for the gathering search.
//
// Zero values mean "no constraint": an empty Category or Location text, a
// zero Date and a zero HostUserID each contribute no predicate.
// Category text that names the dallaemfit umbrella matches every member
// type; any other non-empty Category must resolve to exactly one Type.
// Location text that does not resolve is silently dropped as a filter.
type SearchCondition struct {
	Category   string
	Location   string
	Date       time.Time
	HostUserID int64
}

// HasDate reports whether the date filter is set.
func (c SearchCondition) HasDate() bool {
	return !c.Date.IsZero()
}

// ReviewSearchCondition holds the optional filters for the review listing.
// Zero values mean "no constraint", same as on SearchCondition.
type ReviewSearchCondition struct {
	GatheringType     string
	GatheringLocation string
	GatheringDate     time.Time
	RegistrationEnd   time.Time
	GatheringID       int64
	UserID            int64
}
