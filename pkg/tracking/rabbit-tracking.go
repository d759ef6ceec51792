package tracking

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/matst80/product-browser/pkg/messaging"
	"github.com/matst80/product-browser/pkg/types"
)

// Publisher delivers one tracking event.
type Publisher interface {
	Publish(ctx context.Context, data any) error
	Close() error
}

const (
	sessionEvent uint16 = 0
	browseEvent  uint16 = 1
)

type RabbitTracking struct {
	country   string
	publisher Publisher
	timeout   time.Duration
}

func NewRabbitTracking(url, country string) (*RabbitTracking, error) {
	p, err := messaging.NewTopicPublisher(url, messaging.GlobalPrefix, messaging.BrowseTopic)
	if err != nil {
		return nil, err
	}
	return NewTracking(p, country), nil
}

func NewTracking(p Publisher, country string) *RabbitTracking {
	return &RabbitTracking{country: country, publisher: p, timeout: 2 * time.Second}
}

func (rt *RabbitTracking) Close() error {
	return rt.publisher.Close()
}

func (rt *RabbitTracking) send(data any) error {
	ctx, cancel := context.WithTimeout(context.Background(), rt.timeout)
	defer cancel()
	return rt.publisher.Publish(ctx, data)
}

type BaseEvent struct {
	SessionId string `json:"session_id"`
	Country   string `json:"country,omitempty"`
	Context   string `json:"context,omitempty"`
	Event     uint16 `json:"event"`
}

type Session struct {
	*BaseEvent
	UserAgent    string `json:"user_agent,omitempty"`
	Ip           string `json:"ip,omitempty"`
	Language     string `json:"language,omitempty"`
	PragmaHeader string `json:"pragma,omitempty"`
}

func clientIp(r *http.Request) string {
	ip := r.Header.Get("X-Real-Ip")
	if ip == "" {
		ip = r.Header.Get("X-Forwarded-For")
	}
	if ip == "" {
		ip = r.RemoteAddr
	}
	return ip
}

func (rt *RabbitTracking) TrackSession(sessionId string, r *http.Request) {
	err := rt.send(Session{
		BaseEvent:    &BaseEvent{Event: sessionEvent, SessionId: sessionId, Country: rt.country, Context: "b2c"},
		Language:     r.Header.Get("Accept-Language"),
		UserAgent:    r.UserAgent(),
		Ip:           clientIp(r),
		PragmaHeader: r.Header.Get("Pragma"),
	})
	if err != nil {
		log.Printf("error sending session event: %v", err)
	}
}

type BrowseEventData struct {
	*BaseEvent
	types.BrowseEvent
	Referer string `json:"referer,omitempty"`
}

func (rt *RabbitTracking) TrackBrowse(sessionId string, event types.BrowseEvent, r *http.Request) {
	err := rt.send(&BrowseEventData{
		BaseEvent:   &BaseEvent{Event: browseEvent, SessionId: sessionId, Country: rt.country, Context: "b2c"},
		BrowseEvent: event,
		Referer:     r.Header.Get("Referer"),
	})
	if err != nil {
		log.Printf("error sending browse event: %v", err)
	}
}
