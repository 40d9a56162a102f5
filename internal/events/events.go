package events

import "time"

const (
	CalloutSubmitted     = "callout.submitted"
	CalloutViewed        = "callout.viewed"
	CalloutLiked         = "callout.liked"
	ContactReceived      = "contact.received"
	NewsletterSubscribed = "newsletter.subscribed"
)

// Event payloads
type CalloutSubmittedEvent struct {
	CalloutID  string    `json:"callout_id"`
	Title      string    `json:"title"`
	Person     string    `json:"person"`
	Categories []string  `json:"categories"`
	Submitter  string    `json:"submitter"`
	CreatedAt  time.Time `json:"created_at"`
}

type CalloutViewedEvent struct {
	CalloutID string `json:"callout_id"`
	Views     int    `json:"views"`
}

type CalloutLikedEvent struct {
	CalloutID string `json:"callout_id"`
	Likes     int    `json:"likes"`
	Liked     bool   `json:"liked"`
}

type ContactReceivedEvent struct {
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Message    string    `json:"message"`
	ReceivedAt time.Time `json:"received_at"`
}

type NewsletterSubscribedEvent struct {
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name,omitempty"`
	SubscribedAt time.Time `json:"subscribed_at"`
}
