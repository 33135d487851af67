package models

import "time"

// SubmissionStatus tracks a pending report through moderation.
type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "pending"
	StatusApproved SubmissionStatus = "approved"
	StatusRejected SubmissionStatus = "rejected"
)

// PendingSalary is a user submission awaiting moderation. It carries the
// full report plus the intake metadata admins review before approving.
type PendingSalary struct {
	ID          int64            `db:"id" json:"id"`
	Company     string           `db:"company" json:"company"`
	Role        string           `db:"role" json:"role"`
	Salary      float64          `db:"salary" json:"salary"`
	Year        int              `db:"year" json:"year"`
	University  string           `db:"university" json:"university"`
	Location    string           `db:"location" json:"location"`
	Bonus       *float64         `db:"bonus" json:"bonus,omitempty"`
	Term        *int             `db:"term" json:"term,omitempty"`
	Arrangement Arrangement      `db:"arrangement" json:"arrangement,omitempty"`
	Status      SubmissionStatus `db:"status" json:"status"`
	IPAddress   string           `db:"ip_address" json:"ip_address"`
	SubmittedAt time.Time        `db:"submitted_at" json:"submitted_at"`
}

// Report strips the moderation metadata, leaving the publishable record.
func (p PendingSalary) Report() ReportedSalary {
	return ReportedSalary{
		Company:     p.Company,
		Role:        p.Role,
		Salary:      p.Salary,
		Year:        p.Year,
		University:  p.University,
		Location:    p.Location,
		Bonus:       p.Bonus,
		Term:        p.Term,
		Arrangement: p.Arrangement,
	}
}
