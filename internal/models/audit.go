package models

import (
	"encoding/json"
	"time"
)

// ModerationAudit records one admin action against the moderation queue.
type ModerationAudit struct {
	ID           string          `db:"id" json:"id"`
	Action       string          `db:"action" json:"action"`
	SubmissionID *int64          `db:"submission_id" json:"submission_id,omitempty"`
	AdminUser    string          `db:"admin_user" json:"admin_user"`
	IPAddress    string          `db:"ip_address" json:"ip_address"`
	UserAgent    string          `db:"user_agent" json:"user_agent"`
	Detail       json.RawMessage `db:"detail" json:"detail,omitempty"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
}
