package categories

import "time"

// Category is stored in the categories collection. PictogramCount is derived
// at read time and never persisted.
type Category struct {
	ID             string     `json:"id" firestore:"-"`
	Name           string     `json:"name" firestore:"name"`
	NameEn         string     `json:"nameEn" firestore:"nameEn"`
	NameNl         string     `json:"nameNl" firestore:"nameNl"`
	Description    *string    `json:"description" firestore:"description"`
	IsActive       bool       `json:"isActive" firestore:"isActive"`
	CreatedAt      *time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt      *time.Time `json:"updatedAt" firestore:"updatedAt"`
	PictogramCount int64      `json:"pictogramCount" firestore:"-"`
}

// ActiveCategory is the minimal shape served to selection widgets.
type ActiveCategory struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	NameEn string `json:"nameEn"`
	NameNl string `json:"nameNl"`
}

// Patch carries the optional fields of a category update. Nil means the field
// was absent from the request body.
type Patch struct {
	Name        *string `json:"name"`
	NameEn      *string `json:"nameEn"`
	NameNl      *string `json:"nameNl"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}
