package database

import (
	"database/sql"
	"errors"
	"time"

	"github.com/dantetesta/estacionamento/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserRepo handles user database operations
type UserRepo struct{}

// NewUserRepo creates a new user repository
func NewUserRepo() *UserRepo {
	return &UserRepo{}
}

// Create creates a new user
func (r *UserRepo) Create(user *models.User) error {
	result, err := DB.Exec(`
		INSERT INTO users (username, display_name, email, password_hash)
		VALUES (?, ?, ?, ?)
	`, user.Username, user.DisplayName, user.Email, user.PasswordHash)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = id

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepo) GetByID(id int64) (*models.User, error) {
	return r.get("SELECT id, username, display_name, COALESCE(email, ''), password_hash, created_at, last_login FROM users WHERE id = ?", id)
}

// GetByUsername retrieves a user by exact username match
func (r *UserRepo) GetByUsername(username string) (*models.User, error) {
	return r.get("SELECT id, username, display_name, COALESCE(email, ''), password_hash, created_at, last_login FROM users WHERE username = ?", username)
}

func (r *UserRepo) get(query string, arg any) (*models.User, error) {
	user := &models.User{}
	var lastLogin sql.NullTime

	err := DB.QueryRow(query, arg).Scan(
		&user.ID, &user.Username, &user.DisplayName, &user.Email,
		&user.PasswordHash, &user.CreatedAt, &lastLogin,
	)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if lastLogin.Valid {
		user.LastLogin = lastLogin.Time
	}

	return user, nil
}

// Update updates a user's profile fields
func (r *UserRepo) Update(user *models.User) error {
	result, err := DB.Exec(`
		UPDATE users SET display_name = ?, email = ?, password_hash = ? WHERE id = ?
	`, user.DisplayName, user.Email, user.PasswordHash, user.ID)
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

// UpdateLastLogin updates the user's last login timestamp
func (r *UserRepo) UpdateLastLogin(id int64) error {
	_, err := DB.Exec("UPDATE users SET last_login = ? WHERE id = ?", time.Now(), id)
	return err
}

// Count returns the total number of users
func (r *UserRepo) Count() (int, error) {
	var count int
	err := DB.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}
