package callouts

import "time"

// SampleCallouts returns the collection a fresh store starts with, dated
// one to five days before now.
func SampleCallouts(now time.Time) []*Callout {
	day := 24 * time.Hour
	at := func(days int) time.Time {
		return now.Add(-time.Duration(days) * day).UTC().Truncate(time.Millisecond)
	}
	return []*Callout{
		{
			ID:         "1",
			Title:      "My Amazing Sister Sarah",
			Person:     "Sarah",
			Reason:     "she always knows how to make me laugh when I'm feeling down",
			Categories: []string{"Caring", "Cheerful"},
			Submitter:  "Emma Johnson",
			Date:       at(1),
			Views:      15,
		},
		{
			ID:         "2",
			Title:      "The Best Guide Ever",
			Person:     "Mr. Rodriguez",
			Reason:     "he made math fun and helped me understand concepts I never thought I could",
			Categories: []string{"Patient", "Encouraging"},
			Submitter:  "Alex Chen",
			Date:       at(2),
			Views:      23,
		},
		{
			ID:         "3",
			Title:      "My Incredible Mom",
			Person:     "Mom",
			Reason:     "she works two jobs and still finds time to help me with my homework every night",
			Categories: []string{"Dedicated", "Loving"},
			Submitter:  "David Kim",
			Date:       at(3),
			Views:      31,
		},
		{
			ID:         "4",
			Title:      "My Brave Friend Jake",
			Person:     "Jake",
			Reason:     "he stood up for a kid who was being bullied at lunch",
			Categories: []string{"Brave", "Courage"},
			Submitter:  "Maya Patel",
			Date:       at(4),
			Views:      18,
		},
		{
			ID:         "5",
			Title:      "My Creative Art Guide",
			Person:     "Ms. Williams",
			Reason:     "she helped me discover my love for painting and never gave up on me",
			Categories: []string{"Creative", "Supportive"},
			Submitter:  "Jordan Smith",
			Date:       at(5),
			Views:      27,
		},
	}
}

// Traits is the catalogue of selectable character traits.
var Traits = []string{
	"Accepting", "Adventurous", "Ambitious", "Articulate", "Artistic", "Balanced",
	"Brave", "Calm", "Caring", "Cheerful", "Committed", "Compassionate",
	"Confident", "Considerate", "Cooperative", "Courageous", "Creative", "Curious",
	"Dedicated", "Diligent", "Driven", "Dynamic", "Eager", "Easy-going",
	"Efficient", "Empathetic", "Encouraging", "Energetic", "Enthusiastic", "Friendly",
	"Generous", "Gentle", "Genuine", "Helpful", "Honest", "Humble",
	"Imaginative", "Inclusive", "Independent", "Innovative", "Inquisitive", "Insightful",
	"Inspired", "Integrity", "Inventive", "Joyful", "Kind", "Leadership",
	"Loving", "Loyal", "Motivated", "Open-minded", "Optimistic", "Original",
	"Patient", "Peaceful", "Perseverant", "Positive", "Proactive", "Purposeful",
	"Receptive", "Reflective", "Resourceful", "Respectful", "Responsible", "Self-Assured",
	"Self-Disciplined", "Selfless", "Self-Motivated", "Sensitive", "Sincere", "Supportive",
	"Thoughtful", "Trustworthy", "Wise",
}
