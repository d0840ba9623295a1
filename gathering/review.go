package gathering

import (
	"time"
)

const (
	// MinScore and MaxScore bound the review score range.
	MinScore = 1
	MaxScore = 5
)

// Review is a user's review of a gathering they attended.
//
// While its properties are exported, new instances should be constructed
// with BuildReview, which enforces the score bounds.
type Review struct {
	ID          int64
	UserID      int64
	GatheringID int64
	Score       int
	Comment     string
	CreatedDate time.Time
}

// BuildReview is a factory method for Review.
// Returns ErrScoreOutOfRange unless MinScore <= score <= MaxScore.
func BuildReview(userID int64, gatheringID int64, score int, comment string, createdDate time.Time) (Review, error) {
	if score < MinScore || score > MaxScore {
		return Review{}, ErrScoreOutOfRange
	}

	return Review{
		UserID:      userID,
		GatheringID: gatheringID,
		Score:       score,
		Comment:     comment,
		CreatedDate: createdDate,
	}, nil
}
