package models

// Arrangement classifies the work mode of a reported internship. Hybrid
// and in-office reports must carry a location; remote reports may omit it.
type Arrangement string

const (
	ArrangementHybrid   Arrangement = "Hybrid"
	ArrangementInOffice Arrangement = "In-Office"
	ArrangementRemote   Arrangement = "Remote"
)

// Valid reports whether the value is one of the known arrangements.
func (a Arrangement) Valid() bool {
	switch a {
	case ArrangementHybrid, ArrangementInOffice, ArrangementRemote:
		return true
	}
	return false
}

// RequiresLocation reports whether the arrangement implies on-site presence.
func (a Arrangement) RequiresLocation() bool {
	return a == ArrangementHybrid || a == ArrangementInOffice
}

// ReportedSalary is a published internship compensation record. Rows only
// enter this table through moderation approval or seed imports.
type ReportedSalary struct {
	ID          int64       `db:"id" json:"id"`
	Company     string      `db:"company" json:"company"`
	Role        string      `db:"role" json:"role"`
	Salary      float64     `db:"salary" json:"salary"`
	Year        int         `db:"year" json:"year"`
	University  string      `db:"university" json:"university"`
	Location    string      `db:"location" json:"location"`
	Bonus       *float64    `db:"bonus" json:"bonus,omitempty"`
	Term        *int        `db:"term" json:"term,omitempty"`
	Arrangement Arrangement `db:"arrangement" json:"arrangement,omitempty"`
}

// SalaryFilter scopes paginated salary listings. A nil Limit means the
// full set, which the home table tolerates as a bare-array fallback.
type SalaryFilter struct {
	Offset int
	Limit  int
}
