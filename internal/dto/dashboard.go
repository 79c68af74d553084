package dto

// AdminDashboard is returned to admins and superadmins.
type AdminDashboard struct {
	Members              int64 `json:"members"`
	Masses               int64 `json:"masses"`
	PendingThanksgivings int64 `json:"pendingThanksgivings"`
	TotalPaidAmount      int64 `json:"totalPaidAmount"`
}

// MemberDashboard is returned to parishioners.
type MemberDashboard struct {
	MyIntentions int64 `json:"myIntentions"`
	MyPayments   int   `json:"myPayments"`
	UnreadCount  int64 `json:"unreadCount"`
}

type SessionResponse struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}
