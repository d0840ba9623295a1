package gathering_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaxtogether/gathering-service-go/gathering"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func Test_BuildGathering(t *testing.T) {
	start := fixedNow.Add(72 * time.Hour)

	t.Run("valid_input_builds_an_ongoing_gathering", func(t *testing.T) {
		g, err := gathering.BuildGathering(
			gathering.TypeMindfulness,
			"lunchtime mindfulness",
			start,
			start.Add(-24*time.Hour),
			gathering.LocationHongdae,
			20,
			"https://img.example.com/1.png",
			7,
			fixedNow,
		)

		require.NoError(t, err)
		assert.Equal(t, gathering.StatusOngoing, g.Status)
		assert.Equal(t, int64(7), g.HostUserID)
		assert.Equal(t, fixedNow, g.CreatedDate)
	})

	t.Run("registration_end_after_start_is_rejected", func(t *testing.T) {
		_, err := gathering.BuildGathering(
			gathering.TypeMindfulness,
			"lunchtime mindfulness",
			start,
			start.Add(time.Hour),
			gathering.LocationHongdae,
			20,
			"https://img.example.com/1.png",
			7,
			fixedNow,
		)

		assert.ErrorIs(t, err, gathering.ErrRegistrationEndNotBeforeStart)
	})

	t.Run("registration_end_equal_to_start_is_rejected", func(t *testing.T) {
		_, err := gathering.BuildGathering(
			gathering.TypeMindfulness,
			"lunchtime mindfulness",
			start,
			start,
			gathering.LocationHongdae,
			20,
			"https://img.example.com/1.png",
			7,
			fixedNow,
		)

		assert.ErrorIs(t, err, gathering.ErrRegistrationEndNotBeforeStart)
	})
}

func Test_BuildReview(t *testing.T) {
	tests := []struct {
		name        string
		score       int
		expectedErr error
	}{
		{name: "lowest_score_is_accepted", score: gathering.MinScore},
		{name: "highest_score_is_accepted", score: gathering.MaxScore},
		{name: "zero_score_is_rejected", score: 0, expectedErr: gathering.ErrScoreOutOfRange},
		{name: "score_above_range_is_rejected", score: 6, expectedErr: gathering.ErrScoreOutOfRange},
		{name: "negative_score_is_rejected", score: -1, expectedErr: gathering.ErrScoreOutOfRange},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			review, err := gathering.BuildReview(3, 5, tc.score, "solid session", fixedNow)

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.score, review.Score)
			assert.Equal(t, fixedNow, review.CreatedDate)
		})
	}
}

func Test_PageRequest_OffsetAndLimit(t *testing.T) {
	tests := []struct {
		name           string
		page           gathering.PageRequest
		expectedOffset uint
		expectedLimit  uint
	}{
		{name: "first_page", page: gathering.PageRequest{Page: 0, Size: 10}, expectedOffset: 0, expectedLimit: 10},
		{name: "third_page", page: gathering.PageRequest{Page: 2, Size: 10}, expectedOffset: 20, expectedLimit: 10},
		{name: "odd_page_size", page: gathering.PageRequest{Page: 3, Size: 7}, expectedOffset: 21, expectedLimit: 7},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedOffset, tc.page.Offset())
			assert.Equal(t, tc.expectedLimit, tc.page.Limit())
		})
	}
}

func Test_BuildSlice_HasNextApproximation(t *testing.T) {
	page := gathering.PageRequest{Page: 0, Size: 3}

	t.Run("full_window_reports_has_next", func(t *testing.T) {
		slice := gathering.BuildSlice([]string{"a", "b", "c"}, page)

		assert.True(t, slice.HasNext)
		assert.Equal(t, 3, slice.NumberOfElements)
	})

	t.Run("partial_window_reports_no_next", func(t *testing.T) {
		slice := gathering.BuildSlice([]string{"a"}, page)

		assert.False(t, slice.HasNext)
		assert.Equal(t, 1, slice.NumberOfElements)
	})

	t.Run("empty_window_reports_no_next", func(t *testing.T) {
		slice := gathering.BuildSlice([]string{}, page)

		assert.False(t, slice.HasNext)
		assert.Zero(t, slice.NumberOfElements)
	})
}
