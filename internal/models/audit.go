package models

import "time"

// AuditLog records a security-relevant event
type AuditLog struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	UserID    *int64    `json:"user_id,omitempty"`
	Username  string    `json:"username,omitempty"`
	Action    string    `json:"action"`
	Details   string    `json:"details,omitempty"`
	IPAddress string    `json:"ip_address,omitempty"`
}

// Audit actions
const (
	AuditLogin             = "login"
	AuditLogout            = "logout"
	AuditSecurityViolation = "security_violation"
)
