package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/O-Gamal/FIlePlace/internal/model"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

type UserRepository interface {
	Create(user *model.User) error
	ByID(id string) (*model.User, error)
	ByTokenIdentifier(tokenIdentifier string) (*model.User, error)
	UpdateProfile(tokenIdentifier, name, image string) error
	UpdateOrgIDs(id string, orgIDs model.OrgIDs) error
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	query := `INSERT INTO users (id, token_identifier, name, image, org_ids, created_at) VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query, user.ID, user.TokenIdentifier, user.Name, user.Image, user.OrgIDs, user.CreatedAt)
	if err != nil {
		// Check for unique constraint violation (works for both SQLite and PostgreSQL)
		errStr := err.Error()
		if strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "duplicate key value") {
			return ErrUserExists
		}
		return err
	}

	return nil
}

func (r *userRepository) ByID(id string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE id = $1`

	err := r.db.Get(user, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) ByTokenIdentifier(tokenIdentifier string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE token_identifier = $1`

	err := r.db.Get(user, query, tokenIdentifier)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}

	return user, err
}

func (r *userRepository) UpdateProfile(tokenIdentifier, name, image string) error {
	query := `UPDATE users SET name = $1, image = $2 WHERE token_identifier = $3`

	result, err := r.db.Exec(query, name, image, tokenIdentifier)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *userRepository) UpdateOrgIDs(id string, orgIDs model.OrgIDs) error {
	query := `UPDATE users SET org_ids = $1 WHERE id = $2`

	result, err := r.db.Exec(query, orgIDs, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}
