package postgresengine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaxtogether/gathering-service-go/gathering"
)

func searchRow(id int64, participantCount int64) []any {
	return []any{
		id,
		string(gathering.TypeMindfulness),
		"lunchtime mindfulness",
		testNow.Add(48 * time.Hour),
		testNow.Add(24 * time.Hour),
		string(gathering.LocationHongdae),
		participantCount,
		20,
		"https://img.example.com/1.png",
		int64(1),
	}
}

func gatheringRow(id int64, hostUserID int64, registrationEnd time.Time, capacity int) []any {
	return []any{
		id,
		string(gathering.TypeWorkation),
		"jeju workation",
		registrationEnd.Add(24 * time.Hour),
		registrationEnd,
		string(gathering.LocationSinrim),
		capacity,
		"https://img.example.com/2.png",
		hostUserID,
		string(gathering.StatusOngoing),
		testNow.Add(-24 * time.Hour),
	}
}

func Test_SearchGatherings_ScansRowsAndComputesHasNext(t *testing.T) {
	tests := []struct {
		name            string
		rowCount        int
		pageSize        int
		expectedHasNext bool
	}{
		{name: "exactly_full_page_reports_has_next", rowCount: 10, pageSize: 10, expectedHasNext: true},
		{name: "partial_page_reports_no_next", rowCount: 3, pageSize: 10, expectedHasNext: false},
		{name: "empty_page_reports_no_next", rowCount: 0, pageSize: 10, expectedHasNext: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rows := &fakeRows{}
			for i := 0; i < tc.rowCount; i++ {
				rows.rows = append(rows.rows, searchRow(int64(i+1), int64(i)))
			}

			db := &fakeDB{queued: []*fakeRows{rows}}
			store := newTestStore(db, testNow)

			result, err := store.SearchGatherings(
				context.Background(),
				gathering.SearchCondition{},
				nil,
				gathering.PageRequest{Page: 0, Size: tc.pageSize},
			)

			require.NoError(t, err)
			assert.Equal(t, tc.rowCount, result.NumberOfElements)
			assert.Equal(t, tc.expectedHasNext, result.HasNext)
		})
	}
}

func Test_SearchGatherings_MapsColumnsIntoResult(t *testing.T) {
	rows := &fakeRows{rows: [][]any{searchRow(7, 5)}}
	db := &fakeDB{queued: []*fakeRows{rows}}
	store := newTestStore(db, testNow)

	result, err := store.SearchGatherings(
		context.Background(),
		gathering.SearchCondition{},
		nil,
		gathering.PageRequest{Page: 0, Size: 10},
	)

	require.NoError(t, err)
	require.Len(t, result.Content, 1)

	row := result.Content[0]
	assert.Equal(t, int64(7), row.ID)
	assert.Equal(t, gathering.TypeMindfulness, row.Type)
	assert.Equal(t, "lunchtime mindfulness", row.Name)
	assert.Equal(t, gathering.LocationHongdae, row.Location)
	assert.Equal(t, int64(5), row.ParticipantCount)
	assert.Equal(t, 20, row.Capacity)
	assert.Equal(t, int64(1), row.HostUserID)
}

func Test_SearchGatherings_QueryFailureWrapsSentinel(t *testing.T) {
	db := &fakeDB{queryErr: errors.New("connection refused")}
	store := newTestStore(db, testNow)

	_, err := store.SearchGatherings(
		context.Background(),
		gathering.SearchCondition{},
		nil,
		gathering.PageRequest{Page: 0, Size: 10},
	)

	assert.ErrorIs(t, err, gathering.ErrQueryingFailed)
}

func Test_FindHostedGatherings_FullPageReportsHasNext(t *testing.T) {
	// 11 ongoing gatherings, page size 10: the store fetches 10 rows.
	rows := &fakeRows{}
	for i := 0; i < 10; i++ {
		rows.rows = append(rows.rows, searchRow(int64(i+1), 0))
	}

	db := &fakeDB{queued: []*fakeRows{rows}}
	store := newTestStore(db, testNow)

	result, err := store.FindHostedGatherings(context.Background(), 42, gathering.PageRequest{Page: 0, Size: 10})

	require.NoError(t, err)
	assert.Equal(t, 10, result.NumberOfElements)
	assert.True(t, result.HasNext)
}

func Test_FindUserByEmail(t *testing.T) {
	t.Run("existing_user_is_returned", func(t *testing.T) {
		rows := &fakeRows{rows: [][]any{
			{int64(3), "bob@x.com", "bob", "acme", "https://img.example.com/bob.png"},
		}}
		db := &fakeDB{queued: []*fakeRows{rows}}
		store := newTestStore(db, testNow)

		user, err := store.FindUserByEmail(context.Background(), "bob@x.com")

		require.NoError(t, err)
		assert.Equal(t, int64(3), user.ID)
		assert.Equal(t, "bob@x.com", user.Email)
		assert.Equal(t, "bob", user.Name)
		assert.Contains(t, db.queries[0], `"u"."email" = 'bob@x.com'`)
	})

	t.Run("missing_user_yields_not_found", func(t *testing.T) {
		db := &fakeDB{}
		store := newTestStore(db, testNow)

		_, err := store.FindUserByEmail(context.Background(), "nobody@x.com")

		assert.ErrorIs(t, err, gathering.ErrUserNotFound)
	})
}

func Test_FindGatheringByID_MissingGatheringYieldsNotFound(t *testing.T) {
	db := &fakeDB{}
	store := newTestStore(db, testNow)

	_, err := store.FindGatheringByID(context.Background(), 999)

	assert.ErrorIs(t, err, gathering.ErrGatheringNotFound)
}

func Test_SaveGathering_InsertsGatheringAndHostParticipationInOneTransaction(t *testing.T) {
	tx := &fakeTx{queued: []*fakeRows{{rows: [][]any{{int64(55)}}}}}
	db := &fakeDB{tx: tx}
	store := newTestStore(db, testNow)

	g, buildErr := gathering.BuildGathering(
		gathering.TypeOfficeStretching,
		"monday stretch",
		testNow.Add(72*time.Hour),
		testNow.Add(48*time.Hour),
		gathering.LocationKondae,
		15,
		"https://img.example.com/3.png",
		9,
		testNow,
	)
	require.NoError(t, buildErr)

	gatheringID, err := store.SaveGathering(context.Background(), g)

	require.NoError(t, err)
	assert.Equal(t, int64(55), gatheringID)
	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)

	require.Len(t, tx.queries, 1)
	assert.Contains(t, tx.queries[0], `INSERT INTO "gatherings"`)
	assert.Contains(t, tx.queries[0], `RETURNING "id"`)

	require.Len(t, tx.execs, 1)
	assert.Contains(t, tx.execs[0], `INSERT INTO "user_gatherings"`)
	assert.Contains(t, tx.execs[0], `55`)
	assert.Contains(t, tx.execs[0], `9`)
}

func Test_SaveGathering_RollsBackWhenParticipationInsertFails(t *testing.T) {
	tx := &fakeTx{
		queued:  []*fakeRows{{rows: [][]any{{int64(55)}}}},
		execErr: errors.New("constraint violation"),
	}
	db := &fakeDB{tx: tx}
	store := newTestStore(db, testNow)

	g, buildErr := gathering.BuildGathering(
		gathering.TypeWorkation,
		"jeju workation",
		testNow.Add(72*time.Hour),
		testNow.Add(48*time.Hour),
		gathering.LocationSinrim,
		15,
		"https://img.example.com/4.png",
		9,
		testNow,
	)
	require.NoError(t, buildErr)

	_, err := store.SaveGathering(context.Background(), g)

	assert.ErrorIs(t, err, gathering.ErrExecutingFailed)
	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)
}

func Test_AddParticipant(t *testing.T) {
	t.Run("open_gathering_with_room_gets_the_row", func(t *testing.T) {
		tx := &fakeTx{queued: []*fakeRows{
			{rows: [][]any{gatheringRow(5, 1, testNow.Add(24*time.Hour), 10)}},
			{rows: [][]any{{int64(4)}}},
		}}
		db := &fakeDB{tx: tx}
		store := newTestStore(db, testNow)

		err := store.AddParticipant(context.Background(), 3, 5)

		require.NoError(t, err)
		assert.True(t, tx.committed)
		require.Len(t, tx.execs, 1)
		assert.Contains(t, tx.execs[0], `INSERT INTO "user_gatherings"`)
	})

	t.Run("closed_registration_is_rejected", func(t *testing.T) {
		tx := &fakeTx{queued: []*fakeRows{
			{rows: [][]any{gatheringRow(5, 1, testNow.Add(-time.Hour), 10)}},
		}}
		db := &fakeDB{tx: tx}
		store := newTestStore(db, testNow)

		err := store.AddParticipant(context.Background(), 3, 5)

		assert.ErrorIs(t, err, gathering.ErrRegistrationClosed)
		assert.True(t, tx.rolledBack)
		assert.Empty(t, tx.execs)
	})

	t.Run("full_gathering_is_rejected", func(t *testing.T) {
		tx := &fakeTx{queued: []*fakeRows{
			{rows: [][]any{gatheringRow(5, 1, testNow.Add(24*time.Hour), 10)}},
			{rows: [][]any{{int64(10)}}},
		}}
		db := &fakeDB{tx: tx}
		store := newTestStore(db, testNow)

		err := store.AddParticipant(context.Background(), 3, 5)

		assert.ErrorIs(t, err, gathering.ErrGatheringFull)
		assert.True(t, tx.rolledBack)
		assert.Empty(t, tx.execs)
	})

	t.Run("missing_gathering_is_rejected", func(t *testing.T) {
		tx := &fakeTx{}
		db := &fakeDB{tx: tx}
		store := newTestStore(db, testNow)

		err := store.AddParticipant(context.Background(), 3, 999)

		assert.ErrorIs(t, err, gathering.ErrGatheringNotFound)
		assert.True(t, tx.rolledBack)
	})
}

func Test_SaveReview_InsertsOneRow(t *testing.T) {
	db := &fakeDB{}
	store := newTestStore(db, testNow)

	review, buildErr := gathering.BuildReview(3, 5, 5, "good", testNow)
	require.NoError(t, buildErr)

	err := store.SaveReview(context.Background(), review)

	require.NoError(t, err)
	require.Len(t, db.execs, 1)
	assert.Contains(t, db.execs[0], `INSERT INTO "reviews"`)
	assert.Contains(t, db.execs[0], `'good'`)
}

func Test_FindReviewsByGatheringID_MissingGatheringYieldsEmptyPageAndZeroSummary(t *testing.T) {
	db := &fakeDB{queued: []*fakeRows{
		{},
		{rows: [][]any{{int64(0), float64(0)}}},
	}}
	store := newTestStore(db, testNow)

	result, err := store.FindReviewsByGatheringID(context.Background(), 999, gathering.PageRequest{Page: 0, Size: 10})

	require.NoError(t, err)
	assert.Empty(t, result.Reviews.Content)
	assert.False(t, result.Reviews.HasNext)
	assert.Zero(t, result.TotalCount)
	assert.Zero(t, result.AverageScore)
}

func Test_FindReviewScoreCounts_ScansHistogram(t *testing.T) {
	db := &fakeDB{queued: []*fakeRows{
		{rows: [][]any{{int64(12), 4.25, int64(0), int64(1), int64(2), int64(2), int64(7)}}},
	}}
	store := newTestStore(db, testNow)

	counts, err := store.FindReviewScoreCounts(context.Background(), "dallaemfit", "")

	require.NoError(t, err)
	assert.Equal(t, int64(12), counts.TotalCount)
	assert.InDelta(t, 4.25, counts.AverageScore, 0.0001)
	assert.Equal(t, int64(7), counts.FiveStars)
	assert.Equal(t, int64(2), counts.ThreeStars)
}
