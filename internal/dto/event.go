package dto

import "time"

type CreateEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"startsAt"`
	Capacity    int       `json:"capacity"`
}

type EventResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"startsAt"`
	Capacity    int       `json:"capacity"`
	Attendees   int64     `json:"attendees"`
	RSVPed      bool      `json:"rsvped"`
}

type CreateNotificationRequest struct {
	Message   string     `json:"message"`
	Audience  string     `json:"audience,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

type ChurchInfoRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	About   string `json:"about"`
}

type ServiceRequest struct {
	Title     string `json:"title"`
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
}
