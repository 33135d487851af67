package models

import "github.com/lib/pq"

// University is a Canadian university offered in the submission form's
// suggestion list, with its known email domains.
type University struct {
	ID      int64          `db:"id" json:"id"`
	Name    string         `db:"name" json:"name"`
	Domains pq.StringArray `db:"domains" json:"domains"`
}

// Role is a curated internship role name.
type Role struct {
	ID       int64  `db:"id" json:"id"`
	RoleName string `db:"role_name" json:"role_name"`
}
