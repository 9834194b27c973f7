package requests

import "time"

// Statuses a pictogram request may hold. No transition graph is enforced
// server-side, any status may replace any other; the stricter lifecycle is a
// client policy.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCompleted = "completed"
)

var validStatuses = map[string]bool{
	StatusPending:   true,
	StatusApproved:  true,
	StatusRejected:  true,
	StatusCompleted: true,
}

// ValidStatus reports whether s is a member of the allowed status set.
func ValidStatus(s string) bool {
	return validStatuses[s]
}

// Request is stored in the picto_requests collection. User and CategoryInfo
// are derived joins added at read time, never persisted.
type Request struct {
	ID          string     `json:"id" firestore:"-"`
	Keyword     string     `json:"keyword" firestore:"keyword"`
	Category    string     `json:"category" firestore:"category"`
	Description *string    `json:"description" firestore:"description"`
	RequestedBy string     `json:"requestedBy" firestore:"requestedBy"`
	Status      string     `json:"status" firestore:"status"`
	AdminNote   *string    `json:"adminNote" firestore:"adminNote"`
	CreatedAt   *time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt" firestore:"updatedAt"`

	User         *UserInfo     `json:"user" firestore:"-"`
	CategoryInfo *CategoryInfo `json:"categoryInfo" firestore:"-"`
}

// UserInfo is the requester join. Email comes from the caregiver record when
// present there, not from the identity provider.
type UserInfo struct {
	Name  string  `json:"name"`
	Email *string `json:"email"`
}

// CategoryInfo is the category join.
type CategoryInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	NameEn string `json:"nameEn"`
	NameNl string `json:"nameNl"`
}
