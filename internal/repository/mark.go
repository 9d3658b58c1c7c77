package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/O-Gamal/FIlePlace/internal/model"
)

// MarkRepository backs one existence-only relation between users and files.
// Favorites and trash use the same implementation against different tables.
type MarkRepository interface {
	// Toggle inserts a mark if absent or deletes it if present, as one
	// transaction. Returns true when the mark was added.
	Toggle(userID, orgID, fileID string) (bool, error)
	ForUserOrg(userID, orgID string) ([]*model.Mark, error)
}

type markRepository struct {
	db    *sqlx.DB
	table string
}

func NewFavoriteRepository(db *sqlx.DB) MarkRepository {
	return &markRepository{db: db, table: "favorite_files"}
}

func NewTrashRepository(db *sqlx.DB) MarkRepository {
	return &markRepository{db: db, table: "trash_files"}
}

func (r *markRepository) Toggle(userID, orgID, fileID string) (bool, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return false, fmt.Errorf("failed to begin toggle: %w", err)
	}
	defer tx.Rollback()

	var id string
	query := fmt.Sprintf(`SELECT id FROM %s WHERE user_id = $1 AND org_id = $2 AND file_id = $3`, r.table)
	err = tx.Get(&id, query, userID, orgID, fileID)

	switch {
	case err == sql.ErrNoRows:
		// The unique index on (user_id, org_id, file_id) backstops two
		// concurrent toggles that both observed an absent mark.
		query = fmt.Sprintf(`INSERT INTO %s (id, user_id, org_id, file_id, created_at)
		                     VALUES ($1, $2, $3, $4, $5) ON CONFLICT DO NOTHING`, r.table)
		_, err = tx.Exec(query, uuid.New().String(), userID, orgID, fileID, time.Now())
		if err != nil {
			return false, fmt.Errorf("failed to insert mark: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return false, fmt.Errorf("failed to commit toggle: %w", err)
		}
		return true, nil

	case err != nil:
		return false, err

	default:
		query = fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table)
		_, err = tx.Exec(query, id)
		if err != nil {
			return false, fmt.Errorf("failed to delete mark: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return false, fmt.Errorf("failed to commit toggle: %w", err)
		}
		return false, nil
	}
}

func (r *markRepository) ForUserOrg(userID, orgID string) ([]*model.Mark, error) {
	var marks []*model.Mark
	query := fmt.Sprintf(`SELECT * FROM %s WHERE user_id = $1 AND org_id = $2`, r.table)

	err := r.db.Select(&marks, query, userID, orgID)
	if err != nil {
		return nil, err
	}

	return marks, nil
}
