package pictograms

import "time"

// Pictogram is stored in the custom_pictograms collection. Image bytes live in
// the storage bucket, imageUrl is the canonical download URL.
type Pictogram struct {
	ID          string     `json:"id" firestore:"-"`
	Keyword     string     `json:"keyword" firestore:"keyword"`
	Category    string     `json:"category" firestore:"category"`
	ImageURL    string     `json:"imageUrl" firestore:"imageUrl"`
	Description *string    `json:"description" firestore:"description"`
	IsActive    bool       `json:"isActive" firestore:"isActive"`
	UploadedAt  *time.Time `json:"uploadedAt" firestore:"uploadedAt"`
	UploadedBy  string     `json:"uploadedBy" firestore:"uploadedBy"`
}

// Patch carries the optional fields of a pictogram update. Nil means the field
// was absent from the request body.
type Patch struct {
	Keyword     *string `json:"keyword"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}
