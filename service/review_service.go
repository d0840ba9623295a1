package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/relaxtogether/gathering-service-go/gathering"
)

const (
	logMsgReviewWritten      = "review written"
	logMsgUserReviewsFetched = "user reviews fetched"
)

// ReviewStore defines the persistence operations the ReviewService needs.
type ReviewStore interface {
	SaveReview(ctx context.Context, review gathering.Review) error
	FindReviewsByUserID(
		ctx context.Context,
		userID int64,
		page gathering.PageRequest,
	) (gathering.Slice[gathering.ReviewDetails], error)
	FindReviewsByGatheringID(
		ctx context.Context,
		gatheringID int64,
		page gathering.PageRequest,
	) (gathering.GatheringReviews, error)
	FindReviewsByConditions(
		ctx context.Context,
		cond gathering.ReviewSearchCondition,
		page gathering.PageRequest,
	) (gathering.Slice[gathering.ReviewDetails], error)
	FindReviewScoreCounts(ctx context.Context, typeText string, typeDetailText string) (gathering.ScoreCounts, error)
}

// GatheringLookup resolves gatherings by id.
type GatheringLookup interface {
	FindGatheringByID(ctx context.Context, id int64) (gathering.Gathering, error)
}

// WriteReviewRequest carries the input for writing a review.
type WriteReviewRequest struct {
	GatheringID int64
	Score       int
	Comment     string
}

// ReviewService validates and persists reviews and forwards the read
// queries to the store.
type ReviewService struct {
	reviews    ReviewStore
	users      UserLookup
	gatherings GatheringLookup
	clock      func() time.Time
	logger     Logger
}

// ReviewServiceOption configures a ReviewService.
type ReviewServiceOption func(*ReviewService)

// WithReviewClock sets the time source; tests inject a fixed clock.
func WithReviewClock(clock func() time.Time) ReviewServiceOption {
	return func(s *ReviewService) {
		s.clock = clock
	}
}

// WithReviewLogger sets the logger.
func WithReviewLogger(logger Logger) ReviewServiceOption {
	return func(s *ReviewService) {
		s.logger = logger
	}
}

// NewReviewService creates a ReviewService with optional configuration.
func NewReviewService(
	reviews ReviewStore,
	users UserLookup,
	gatherings GatheringLookup,
	opts ...ReviewServiceOption,
) ReviewService {

	s := ReviewService{
		reviews:    reviews,
		users:      users,
		gatherings: gatherings,
		clock:      time.Now,
	}

	for _, opt := range opts {
		opt(&s)
	}

	return s
}

// Write validates and persists one review by the user behind loginEmail.
//
// The author must exist, the gathering must exist, and the author must not
// be the gathering's host (gathering.ErrCannotReviewOwnGathering).
// Validation failures abort before anything is written.
func (s ReviewService) Write(ctx context.Context, request WriteReviewRequest, loginEmail string) error {
	author, userErr := s.users.FindUserByEmail(ctx, loginEmail)
	if userErr != nil {
		return userErr
	}

	g, gatheringErr := s.gatherings.FindGatheringByID(ctx, request.GatheringID)
	if gatheringErr != nil {
		return gatheringErr
	}

	if g.HostUserID == author.ID {
		return gathering.ErrCannotReviewOwnGathering
	}

	review, buildErr := gathering.BuildReview(author.ID, g.ID, request.Score, request.Comment, s.clock().UTC())
	if buildErr != nil {
		return buildErr
	}

	if saveErr := s.reviews.SaveReview(ctx, review); saveErr != nil {
		return saveErr
	}

	s.logInfo(logMsgReviewWritten, logAttrGatheringID, g.ID, logAttrUserID, author.ID)

	return nil
}

// UserReviews returns one page of the reviews written by the user behind
// loginEmail, newest first.
func (s ReviewService) UserReviews(
	ctx context.Context,
	loginEmail string,
	page gathering.PageRequest,
) (gathering.Slice[gathering.ReviewDetails], error) {

	var empty gathering.Slice[gathering.ReviewDetails]

	user, userErr := s.users.FindUserByEmail(ctx, loginEmail)
	if userErr != nil {
		return empty, userErr
	}

	reviews, fetchErr := s.reviews.FindReviewsByUserID(ctx, user.ID, page)
	if fetchErr != nil {
		return empty, fetchErr
	}

	s.logInfo(logMsgUserReviewsFetched, logAttrUserID, user.ID, logAttrRowCount, reviews.NumberOfElements)

	return reviews, nil
}

// GatheringReviews returns one page of a gathering's reviews with the
// score summary. An unknown gathering id yields an empty page, not an error.
func (s ReviewService) GatheringReviews(
	ctx context.Context,
	gatheringID int64,
	page gathering.PageRequest,
) (gathering.GatheringReviews, error) {

	return s.reviews.FindReviewsByGatheringID(ctx, gatheringID, page)
}

// ReviewsByCondition returns one page of reviews matching the condition.
func (s ReviewService) ReviewsByCondition(
	ctx context.Context,
	cond gathering.ReviewSearchCondition,
	page gathering.PageRequest,
) (gathering.Slice[gathering.ReviewDetails], error) {

	return s.reviews.FindReviewsByConditions(ctx, cond, page)
}

// ScoreCounts returns the review score histogram for gatherings selected
// by category and type text.
func (s ReviewService) ScoreCounts(ctx context.Context, typeText string, typeDetailText string) (gathering.ScoreCounts, error) {
	return s.reviews.FindReviewScoreCounts(ctx, typeText, typeDetailText)
}

// logInfo logs at info level with a fresh operation correlation id.
func (s ReviewService) logInfo(msg string, args ...any) {
	if s.logger != nil {
		args = append([]any{logAttrOperationID, uuid.New().String()}, args...)
		s.logger.Info(msg, args...)
	}
}
