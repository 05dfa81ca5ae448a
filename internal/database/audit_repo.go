package database

import (
	"github.com/dantetesta/estacionamento/internal/models"
)

// AuditRepo handles audit log database operations
type AuditRepo struct{}

// NewAuditRepo creates a new audit repository
func NewAuditRepo() *AuditRepo {
	return &AuditRepo{}
}

// Record writes one audit entry. A zero userID is stored as NULL.
func (r *AuditRepo) Record(userID int64, username, action, details, ipAddress string) error {
	var uid any
	if userID != 0 {
		uid = userID
	}
	_, err := DB.Exec(`
		INSERT INTO audit_logs (user_id, username, action, details, ip_address)
		VALUES (?, ?, ?, ?, ?)
	`, uid, username, action, details, ipAddress)
	return err
}

// List retrieves audit entries, newest first
func (r *AuditRepo) List(limit, offset int) ([]*models.AuditLog, error) {
	rows, err := DB.Query(`
		SELECT id, timestamp, user_id, COALESCE(username, ''), action, COALESCE(details, ''), COALESCE(ip_address, '')
		FROM audit_logs ORDER BY timestamp DESC, id DESC LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.AuditLog
	for rows.Next() {
		entry := &models.AuditLog{}
		var userID *int64
		err := rows.Scan(&entry.ID, &entry.Timestamp, &userID, &entry.Username,
			&entry.Action, &entry.Details, &entry.IPAddress)
		if err != nil {
			return nil, err
		}
		entry.UserID = userID
		logs = append(logs, entry)
	}

	return logs, rows.Err()
}
