package dto

import (
	"github.com/allisson/deliverydash/internal/delivery"
	userDomain "github.com/allisson/deliverydash/internal/user/domain"
)

// WidgetFeedResponse is the public widget payload.
type WidgetFeedResponse struct {
	Config         delivery.Config `json:"config"`
	AvailableDates []string        `json:"availableDates"`
	SampleTags     []string        `json:"sampleTags"`
}

// MapWidgetFeedToResponse converts the feed to the response DTO.
func MapWidgetFeedToResponse(feed *userDomain.WidgetFeed) WidgetFeedResponse {
	return WidgetFeedResponse{
		Config:         feed.Config,
		AvailableDates: feed.AvailableDates,
		SampleTags:     feed.SampleTags,
	}
}
