// Package httpapi shapes store and service results into the JSON response
// DTOs consumed by the HTTP layer. Routing, handlers and authentication
// live outside this repository.
package httpapi

import (
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/relaxtogether/gathering-service-go/gathering"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Marshal serializes a response DTO to JSON.
func Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// PagedResponse is the standard envelope for sliced listings.
type PagedResponse[T any] struct {
	Content          []T  `json:"content"`
	HasNext          bool `json:"hasNext"`
	NumberOfElements int  `json:"numberOfElements"`
}

// PagedResponseFrom converts a domain slice into the response envelope.
func PagedResponseFrom[D, T any](slice gathering.Slice[D], convert func(D) T) PagedResponse[T] {
	content := make([]T, len(slice.Content))
	for i, item := range slice.Content {
		content[i] = convert(item)
	}

	return PagedResponse[T]{
		Content:          content,
		HasNext:          slice.HasNext,
		NumberOfElements: slice.NumberOfElements,
	}
}

// SearchGatheringResponse is one row of the gathering search listing.
type SearchGatheringResponse struct {
	ID               int64     `json:"id"`
	Type             string    `json:"type"`
	Name             string    `json:"name"`
	DateTime         time.Time `json:"dateTime"`
	RegistrationEnd  time.Time `json:"registrationEnd"`
	Location         string    `json:"location"`
	ParticipantCount int64     `json:"participantCount"`
	Capacity         int       `json:"capacity"`
	ImageURL         string    `json:"image"`
	HostUserID       int64     `json:"createdBy"`
}

// HostedGatheringResponse is one row of the hosted gatherings listing;
// it carries the same projection as a search row.
type HostedGatheringResponse = SearchGatheringResponse

// SearchGatheringResponseFrom converts a search result row.
func SearchGatheringResponseFrom(result gathering.SearchResult) SearchGatheringResponse {
	return SearchGatheringResponse{
		ID:               result.ID,
		Type:             result.Type.Text(),
		Name:             result.Name,
		DateTime:         result.DateTime,
		RegistrationEnd:  result.RegistrationEnd,
		Location:         result.Location.Text(),
		ParticipantCount: result.ParticipantCount,
		Capacity:         result.Capacity,
		ImageURL:         result.ImageURL,
		HostUserID:       result.HostUserID,
	}
}

// ReviewDetailsResponse is one row of a review listing.
type ReviewDetailsResponse struct {
	ReviewID          int64     `json:"id"`
	Score             int       `json:"score"`
	Comment           string    `json:"comment"`
	CreatedDate       time.Time `json:"createdDate"`
	GatheringID       int64     `json:"gatheringId"`
	GatheringType     string    `json:"gatheringType"`
	GatheringName     string    `json:"gatheringName"`
	GatheringLocation string    `json:"gatheringLocation"`
	GatheringDateTime time.Time `json:"gatheringDateTime"`
	UserName          string    `json:"userName"`
	UserProfileImage  string    `json:"userProfileImage"`
}

// ReviewDetailsResponseFrom converts a review details row.
func ReviewDetailsResponseFrom(details gathering.ReviewDetails) ReviewDetailsResponse {
	return ReviewDetailsResponse{
		ReviewID:          details.ReviewID,
		Score:             details.Score,
		Comment:           details.Comment,
		CreatedDate:       details.CreatedDate,
		GatheringID:       details.GatheringID,
		GatheringType:     details.GatheringType.Text(),
		GatheringName:     details.GatheringName,
		GatheringLocation: details.GatheringLocation.Text(),
		GatheringDateTime: details.GatheringDateTime,
		UserName:          details.UserName,
		UserProfileImage:  details.UserProfileImage,
	}
}

// GatheringReviewsResponse is the aggregate response for one gathering's
// reviews.
type GatheringReviewsResponse struct {
	Reviews      PagedResponse[ReviewDetailsResponse] `json:"reviews"`
	AverageScore float64                              `json:"averageScore"`
	TotalCount   int64                                `json:"totalCount"`
}

// GatheringReviewsResponseFrom converts the aggregate review result.
func GatheringReviewsResponseFrom(reviews gathering.GatheringReviews) GatheringReviewsResponse {
	return GatheringReviewsResponse{
		Reviews:      PagedResponseFrom(reviews.Reviews, ReviewDetailsResponseFrom),
		AverageScore: reviews.AverageScore,
		TotalCount:   reviews.TotalCount,
	}
}

// ReviewScoreCountResponse is the review score histogram.
type ReviewScoreCountResponse struct {
	TotalCount   int64   `json:"totalCount"`
	AverageScore float64 `json:"averageScore"`
	OneStar      int64   `json:"oneStar"`
	TwoStars     int64   `json:"twoStars"`
	ThreeStars   int64   `json:"threeStars"`
	FourStars    int64   `json:"fourStars"`
	FiveStars    int64   `json:"fiveStars"`
}

// ReviewScoreCountResponseFrom converts the score histogram.
func ReviewScoreCountResponseFrom(counts gathering.ScoreCounts) ReviewScoreCountResponse {
	return ReviewScoreCountResponse{
		TotalCount:   counts.TotalCount,
		AverageScore: counts.AverageScore,
		OneStar:      counts.OneStar,
		TwoStars:     counts.TwoStars,
		ThreeStars:   counts.ThreeStars,
		FourStars:    counts.FourStars,
		FiveStars:    counts.FiveStars,
	}
}
