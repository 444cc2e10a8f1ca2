package archive

import (
	"time"

	"github.com/medresus/medresus/internal/domain/caselog"
)

// ArchivedCase is a closed case preserved for review. The event log is
// stored oldest-first.
type ArchivedCase struct {
	ID        string          `json:"id"`
	CaseID    string          `json:"case_id"`
	StartedAt int64           `json:"started_at"` // ms since epoch
	EndedAt   int64           `json:"ended_at"`
	Log       []caselog.Event `json:"log"`
	CreatedAt time.Time       `json:"created_at"`
}

// Month returns the "YYYY-MM" bucket of the case start, in UTC.
func (a *ArchivedCase) Month() string {
	return time.UnixMilli(a.StartedAt).UTC().Format("2006-01")
}

// MonthGroup is one bucket of the by-month archive listing.
type MonthGroup struct {
	Month string         `json:"month"`
	Cases []ArchivedCase `json:"cases"`
}
