package types

import (
	"net/http"
)

// BrowseEvent describes one rendered product page.
type BrowseEvent struct {
	Filters         *FilterCriteria `json:"filters,omitempty"`
	Sort            SortMode        `json:"sort"`
	Page            int             `json:"page"`
	NumberOfResults int             `json:"noi"`
	Stale           bool            `json:"stale,omitempty"`
}

type Tracking interface {
	TrackSession(sessionId string, r *http.Request)
	TrackBrowse(sessionId string, event BrowseEvent, r *http.Request)
	Close() error
}
