package dto

import "time"

type CreateMassRequest struct {
	Title                       string    `json:"title"`
	ScheduledAt                 time.Time `json:"scheduledAt"`
	AvailableIntentionsSlots    int       `json:"availableIntentionsSlots"`
	AvailableThanksgivingsSlots int       `json:"availableThanksgivingsSlots"`
}

type BookIntentionRequest struct {
	MassID    string `json:"massId"`
	Name      string `json:"name"`
	Intention string `json:"intention"`
}

type BookThanksgivingRequest struct {
	MassID      string `json:"massId"`
	Description string `json:"description"`
}

type ReviewThanksgivingRequest struct {
	Approve bool `json:"approve"`
}
