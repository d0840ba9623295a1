package gathering

import (
	"time"
)

// SearchResult is one row of the gathering search: the gathering's own
// columns plus the aggregated participant count.
type SearchResult struct {
	ID               int64
	Type             Type
	Name             string
	DateTime         time.Time
	RegistrationEnd  time.Time
	Location         Location
	ParticipantCount int64
	Capacity         int
	ImageURL         string
	HostUserID       int64
}

// HostedResult is one row of the hosted-gatherings listing.
// It carries the same projection as a search row.
type HostedResult = SearchResult

// ReviewDetails is one row of a review listing, joined with the reviewed
// gathering and the author.
type ReviewDetails struct {
	ReviewID          int64
	Score             int
	Comment           string
	CreatedDate       time.Time
	GatheringID       int64
	GatheringType     Type
	GatheringName     string
	GatheringLocation Location
	GatheringDateTime time.Time
	UserID            int64
	UserName          string
	UserProfileImage  string
}

// GatheringReviews is the aggregate response for one gathering's reviews:
// a page of reviews plus the gathering-level summary.
type GatheringReviews struct {
	Reviews      Slice[ReviewDetails]
	AverageScore float64
	TotalCount   int64
}

// ScoreCounts is the histogram of review scores for a set of gatherings
// selected by type, plus the overall average.
type ScoreCounts struct {
	TotalCount   int64
	AverageScore float64
	OneStar      int64
	TwoStars     int64
	ThreeStars   int64
	FourStars    int64
	FiveStars    int64
}
