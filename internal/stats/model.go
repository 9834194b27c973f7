package stats

import (
	"time"

	"github.com/caregiver-app/picto-admin-backend/internal/pictograms"
	"github.com/caregiver-app/picto-admin-backend/internal/requests"
)

// Totals is the counts block of the dashboard payload.
type Totals struct {
	TotalUsers      int64 `json:"totalUsers"`
	TotalPictograms int64 `json:"totalPictograms"`
	TotalSets       int64 `json:"totalSets"`
	TotalCategories int64 `json:"totalCategories"`
	PendingRequests int64 `json:"pendingRequests"`
}

// RecentUser is the trimmed caregiver shape on the dashboard.
type RecentUser struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	CreatedAt *time.Time `json:"createdAt"`
}

// Dashboard is the aggregate served by GET /stats/dashboard. The counts and
// lists are computed independently, with no transactional consistency.
type Dashboard struct {
	Stats            Totals                 `json:"stats"`
	RecentUsers      []RecentUser           `json:"recentUsers"`
	RecentPictograms []pictograms.Pictogram `json:"recentPictograms"`
	RecentRequests   []requests.Request     `json:"recentRequests"`
}
