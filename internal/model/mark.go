package model

import (
	"time"
)

// Mark is an existence-only relation between a user and a file within a
// scope. Favorites and trash share the shape; the backing table decides
// which relation a mark belongs to.
type Mark struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	OrgID     string    `db:"org_id" json:"orgId"`
	FileID    string    `db:"file_id" json:"fileId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
