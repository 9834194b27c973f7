package users

import "time"

// Caregiver is a read-only view over the caregivers collection. Email is not
// stored there; it is resolved live from the identity provider per record,
// and string fields missing from the document surface as "N/A".
type Caregiver struct {
	ID         string     `json:"id"`
	Email      string     `json:"email"`
	Name       string     `json:"name"`
	Role       string     `json:"role"`
	ClientName string     `json:"clientName"`
	AgeRange   string     `json:"ageRange"`
	Language   string     `json:"language"`
	CreatedAt  *time.Time `json:"createdAt"`
}
