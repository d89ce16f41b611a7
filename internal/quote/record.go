// Package quote defines the canonical quote-request record produced by the
// intake pipeline and the builder that constructs it from raw form input.
package quote

import "time"

// Status is the lifecycle state of a quote request. Transitions happen via
// the administrative surface only; the intake pipeline always writes
// StatusPending.
type Status string

const (
	StatusPending   Status = "pending"
	StatusContacted Status = "contacted"
	StatusQuoted    Status = "quoted"
	StatusConverted Status = "converted"
	StatusRejected  Status = "rejected"
)

// ValidStatus reports whether s is one of the known lifecycle states.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusContacted, StatusQuoted, StatusConverted, StatusRejected:
		return true
	}
	return false
}

// CompanyNotProvided is the sentinel stored when the optional company field
// is left empty. Part of the row-sink column contract.
const CompanyNotProvided = "N/A"

// Record is the canonical quote request. It is immutable once built; all
// free-text fields have been sanitized and email/phone have passed format
// validation before a Record exists.
type Record struct {
	// ID is issued by the primary sink (empty until persisted).
	ID string

	SubmittedAt time.Time
	// DisplayTime is SubmittedAt rendered in the configured display
	// timezone, used in responses, emails, and the row sink.
	DisplayTime string

	Name    string
	Email   string
	Phone   string
	Company string

	Product  string
	Quantity string
	Unit     string

	Message      string
	Location     string
	RequiredDate string
	Notes        string

	Status Status

	// Provenance metadata, never validated, used for diagnostics only.
	ClientIP  string
	UserAgent string
}
