package dto

import "time"

type CreatePaymentRequest struct {
	Type     string `json:"type"` // DONATION | OFFERING
	Category string `json:"category"`
	Amount   int64  `json:"amount"` // minor units
}

type InitiatePaymentResponse struct {
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorizationUrl"`
}

type VerifyPaymentResponse struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

type CreateGoalRequest struct {
	Title        string     `json:"title"`
	Category     string     `json:"category"`
	TargetAmount int64      `json:"targetAmount"`
	StartsAt     *time.Time `json:"startsAt,omitempty"`
	EndsAt       *time.Time `json:"endsAt,omitempty"`
}
