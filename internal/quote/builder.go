package quote

import (
	"regexp"
	"strings"
	"time"

	"github.com/kapasiraj84-beep/bhavya-steel-industries/platform/apperr"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/platform/phone"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/platform/sanitize"
)

// Submission carries the raw form fields of a quote request before
// sanitization and validation.
type Submission struct {
	Name         string
	Email        string
	Phone        string
	Company      string
	Product      string
	Quantity     string
	Unit         string
	Message      string
	Location     string
	RequiredDate string
	Notes        string

	ClientIP  string
	UserAgent string
}

// DisplayTimeLayout renders timestamps the way the quote spreadsheet and
// notification emails have always shown them (day-first, 12-hour clock).
const DisplayTimeLayout = "02/01/2006, 03:04:05 pm"

// emailPattern accepts local@domain.tld shapes; full RFC 5322 compliance
// is deliberately not attempted.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether value has a plausible address shape.
func ValidEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// Builder constructs immutable Records from raw submissions. The clock and
// display location are injected so tests control timestamps.
type Builder struct {
	now func() time.Time
	loc *time.Location
}

// NewBuilder creates a Builder rendering display times in the named
// timezone. An unknown timezone falls back to UTC.
func NewBuilder(timezone string, now func() time.Time) *Builder {
	if now == nil {
		now = time.Now
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	return &Builder{now: now, loc: loc}
}

// Build sanitizes every field, enforces required-field presence and
// email/phone format, and returns a fully populated Record. On failure it
// returns an apperr.Validation naming the offending field(s); no Record is
// ever constructed from invalid required fields.
func (b *Builder) Build(in Submission) (Record, error) {
	name := sanitize.Field(in.Name)
	email := sanitize.Field(in.Email)
	phoneField := sanitize.Field(in.Phone)
	product := sanitize.Field(in.Product)

	var missing []string
	if name == "" {
		missing = append(missing, "name")
	}
	if email == "" {
		missing = append(missing, "email")
	}
	if phoneField == "" {
		missing = append(missing, "phone")
	}
	if product == "" {
		missing = append(missing, "product")
	}
	if len(missing) > 0 {
		return Record{}, apperr.Validation("Missing required fields: " + strings.Join(missing, ", "))
	}

	if !ValidEmail(email) {
		return Record{}, apperr.Validation("Invalid email format")
	}
	if !phone.IsValidMobile(phoneField) {
		return Record{}, apperr.Validation("Invalid phone number. Must be 10 digits starting with 6-9")
	}

	company := sanitize.Field(in.Company)
	if company == "" {
		company = CompanyNotProvided
	}

	submittedAt := b.now().UTC()

	return Record{
		SubmittedAt:  submittedAt,
		DisplayTime:  submittedAt.In(b.loc).Format(DisplayTimeLayout),
		Name:         name,
		Email:        email,
		Phone:        phoneField,
		Company:      company,
		Product:      product,
		Quantity:     sanitize.Field(in.Quantity),
		Unit:         sanitize.Field(in.Unit),
		Message:      sanitize.Field(in.Message),
		Location:     sanitize.Field(in.Location),
		RequiredDate: sanitize.Field(in.RequiredDate),
		Notes:        sanitize.Field(in.Notes),
		Status:       StatusPending,
		ClientIP:     in.ClientIP,
		UserAgent:    in.UserAgent,
	}, nil
}
