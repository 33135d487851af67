package dto

import "github.com/scoperhq/scoper-api/internal/models"

// SubmitSalaryRequest captures POST /submit-salary payload. Validation
// happens as one pass over the whole record in SalaryService so the
// arrangement/location dependency stays a single cross-field rule.
type SubmitSalaryRequest struct {
	Company     string             `json:"company" validate:"required"`
	Role        string             `json:"role" validate:"required"`
	Salary      float64            `json:"salary" validate:"required,gt=0"`
	Year        int                `json:"year" validate:"required,gt=0"`
	University  string             `json:"university" validate:"required"`
	Location    string             `json:"location"`
	Bonus       *float64           `json:"bonus,omitempty" validate:"omitempty,gt=0"`
	Term        *int               `json:"term,omitempty" validate:"omitempty,min=1,max=7"`
	Arrangement models.Arrangement `json:"arrangement"`
}

// SubmissionAccepted acknowledges a queued submission.
type SubmissionAccepted struct {
	ID     int64                   `json:"id"`
	Status models.SubmissionStatus `json:"status"`
}

// FieldError annotates a single invalid field in a submitted payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
