package service_test

import (
	"context"
	"time"

	"github.com/relaxtogether/gathering-service-go/gathering"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time {
	return fixedNow
}

// fakeUserLookup resolves users from a canned email map.
type fakeUserLookup struct {
	users map[string]gathering.User
}

func (f *fakeUserLookup) FindUserByEmail(_ context.Context, email string) (gathering.User, error) {
	user, ok := f.users[email]
	if !ok {
		return gathering.User{}, gathering.ErrUserNotFound
	}

	return user, nil
}

// fakeGatheringLookup resolves gatherings from a canned id map.
type fakeGatheringLookup struct {
	gatherings map[int64]gathering.Gathering
}

func (f *fakeGatheringLookup) FindGatheringByID(_ context.Context, id int64) (gathering.Gathering, error) {
	g, ok := f.gatherings[id]
	if !ok {
		return gathering.Gathering{}, gathering.ErrGatheringNotFound
	}

	return g, nil
}

// fakeGatheringStore records writes and serves canned listing results.
type fakeGatheringStore struct {
	savedGatherings []gathering.Gathering
	nextID          int64
	saveErr         error

	joinedUserIDs      []int64
	joinedGatheringIDs []int64
	joinErr            error

	searchResult     gathering.Slice[gathering.SearchResult]
	searchCondition  gathering.SearchCondition
	searchSort       gathering.SortSpec
	hostedResult     gathering.Slice[gathering.HostedResult]
	hostedHostUserID int64
}

func (f *fakeGatheringStore) SearchGatherings(
	_ context.Context,
	cond gathering.SearchCondition,
	sort gathering.SortSpec,
	_ gathering.PageRequest,
) (gathering.Slice[gathering.SearchResult], error) {

	f.searchCondition = cond
	f.searchSort = sort

	return f.searchResult, nil
}

func (f *fakeGatheringStore) FindHostedGatherings(
	_ context.Context,
	hostUserID int64,
	_ gathering.PageRequest,
) (gathering.Slice[gathering.HostedResult], error) {

	f.hostedHostUserID = hostUserID

	return f.hostedResult, nil
}

func (f *fakeGatheringStore) SaveGathering(_ context.Context, g gathering.Gathering) (int64, error) {
	if f.saveErr != nil {
		return 0, f.saveErr
	}

	f.savedGatherings = append(f.savedGatherings, g)

	return f.nextID, nil
}

func (f *fakeGatheringStore) AddParticipant(_ context.Context, userID int64, gatheringID int64) error {
	if f.joinErr != nil {
		return f.joinErr
	}

	f.joinedUserIDs = append(f.joinedUserIDs, userID)
	f.joinedGatheringIDs = append(f.joinedGatheringIDs, gatheringID)

	return nil
}

// fakeReviewStore records saved reviews and serves canned read results.
type fakeReviewStore struct {
	savedReviews []gathering.Review
	saveErr      error

	userReviews      gathering.Slice[gathering.ReviewDetails]
	queriedUserID    int64
	gatheringReviews gathering.GatheringReviews
	conditionReviews gathering.Slice[gathering.ReviewDetails]
	queriedCondition gathering.ReviewSearchCondition
	scoreCounts      gathering.ScoreCounts
	queriedTypeText  string
	queriedDetail    string
}

func (f *fakeReviewStore) SaveReview(_ context.Context, review gathering.Review) error {
	if f.saveErr != nil {
		return f.saveErr
	}

	f.savedReviews = append(f.savedReviews, review)

	return nil
}

func (f *fakeReviewStore) FindReviewsByUserID(
	_ context.Context,
	userID int64,
	_ gathering.PageRequest,
) (gathering.Slice[gathering.ReviewDetails], error) {

	f.queriedUserID = userID

	return f.userReviews, nil
}

func (f *fakeReviewStore) FindReviewsByGatheringID(
	_ context.Context,
	_ int64,
	_ gathering.PageRequest,
) (gathering.GatheringReviews, error) {

	return f.gatheringReviews, nil
}

func (f *fakeReviewStore) FindReviewsByConditions(
	_ context.Context,
	cond gathering.ReviewSearchCondition,
	_ gathering.PageRequest,
) (gathering.Slice[gathering.ReviewDetails], error) {

	f.queriedCondition = cond

	return f.conditionReviews, nil
}

func (f *fakeReviewStore) FindReviewScoreCounts(
	_ context.Context,
	typeText string,
	typeDetailText string,
) (gathering.ScoreCounts, error) {

	f.queriedTypeText = typeText
	f.queriedDetail = typeDetailText

	return f.scoreCounts, nil
}
