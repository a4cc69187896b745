package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("not authenticated")
	ErrInternal        = errors.New("internal error")
)

// InvalidInputError reports validation failures with one message per field.
type InvalidInputError struct {
	Fields map[string]string
}

func (e *InvalidInputError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid input"
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid input: " + strings.Join(names, ", ")
}

// amountPattern allows a whole number with up to two decimal places.
var amountPattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

type (
	// Date is a calendar date without a time component. The zero value
	// means "not set" and marshals to JSON null.
	Date struct {
		time.Time
	}

	User struct {
		ID           int64  `json:"id"`
		Username     string `json:"username"`
		Email        string `json:"email"`
		PasswordHash string `json:"-"`
		AvatarURL    string `json:"avatarUrl,omitempty"`
		IsAdmin      bool   `json:"isAdmin"`
	}

	// NewUser carries the fields the store needs to create a User.
	NewUser struct {
		Username     string
		Email        string
		PasswordHash string
		AvatarURL    string
		IsAdmin      bool
	}

	// Identity is the resolved caller, produced once by the identity gate
	// and passed explicitly through every service call.
	Identity struct {
		ID        int64  `json:"id"`
		Email     string `json:"email"`
		Name      string `json:"name"`
		AvatarURL string `json:"avatarUrl,omitempty"`
		IsAdmin   bool   `json:"isAdmin"`
	}

	DrawingEntry struct {
		ID                 int64     `json:"id"`
		UserID             int64     `json:"userId"`
		ClientName         string    `json:"clientName"`
		DrawingTitle       string    `json:"drawingTitle"`
		DrawingDescription string    `json:"drawingDescription,omitempty"`
		Deadline           Date      `json:"deadline"`
		Amount             string    `json:"amount"`
		DateCreated        time.Time `json:"dateCreated"`
		Completed          bool      `json:"completed"`
		Favorite           bool      `json:"favorite"`
	}

	// NewEntry is the validated create input. Deadline arrives as the raw
	// request string so validation stays in one place.
	NewEntry struct {
		ClientName         string
		DrawingTitle       string
		DrawingDescription string
		Deadline           string
		Amount             string
		Completed          bool
		Favorite           bool
	}

	// EntryPatch is a partial update; nil fields are left untouched.
	// ID, UserID and DateCreated are never patchable.
	EntryPatch struct {
		ClientName         *string
		DrawingTitle       *string
		DrawingDescription *string
		Deadline           *Date
		Amount             *string
		Completed          *bool
		Favorite           *bool
	}
)

const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// NewDate builds a Date from year, month and day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// IsEmpty reports whether the date was never set.
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(dateLayout))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil || *s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(*s)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", *s, err)
	}
	*d = parsed
	return nil
}

// Validate checks the create-input constraints: non-empty client name and
// title, amount limited to two decimal places, deadline (when present) a
// valid calendar date. Returns an *InvalidInputError listing every failing
// field, or nil.
func (e NewEntry) Validate() error {
	fields := map[string]string{}
	if strings.TrimSpace(e.ClientName) == "" {
		fields["clientName"] = "client name is required"
	}
	if strings.TrimSpace(e.DrawingTitle) == "" {
		fields["drawingTitle"] = "drawing title is required"
	}
	if !amountPattern.MatchString(strings.TrimSpace(e.Amount)) {
		fields["amount"] = "amount must be a number with at most two decimal places"
	}
	if strings.TrimSpace(e.Deadline) != "" {
		if _, err := ParseDate(strings.TrimSpace(e.Deadline)); err != nil {
			fields["deadline"] = "deadline must be a date in YYYY-MM-DD format"
		}
	}
	if len(fields) > 0 {
		return &InvalidInputError{Fields: fields}
	}
	return nil
}

// Entry converts validated create input into a DrawingEntry owned by userID.
// The store assigns ID and DateCreated. Validate must have passed.
func (e NewEntry) Entry(userID int64) DrawingEntry {
	var deadline Date
	if s := strings.TrimSpace(e.Deadline); s != "" {
		deadline, _ = ParseDate(s)
	}
	return DrawingEntry{
		UserID:             userID,
		ClientName:         strings.TrimSpace(e.ClientName),
		DrawingTitle:       strings.TrimSpace(e.DrawingTitle),
		DrawingDescription: strings.TrimSpace(e.DrawingDescription),
		Deadline:           deadline,
		Amount:             strings.TrimSpace(e.Amount),
		Completed:          e.Completed,
		Favorite:           e.Favorite,
	}
}

// Apply merges the provided fields onto the entry and returns the result.
func (p EntryPatch) Apply(entry DrawingEntry) DrawingEntry {
	if p.ClientName != nil {
		entry.ClientName = *p.ClientName
	}
	if p.DrawingTitle != nil {
		entry.DrawingTitle = *p.DrawingTitle
	}
	if p.DrawingDescription != nil {
		entry.DrawingDescription = *p.DrawingDescription
	}
	if p.Deadline != nil {
		entry.Deadline = *p.Deadline
	}
	if p.Amount != nil {
		entry.Amount = *p.Amount
	}
	if p.Completed != nil {
		entry.Completed = *p.Completed
	}
	if p.Favorite != nil {
		entry.Favorite = *p.Favorite
	}
	return entry
}

// IsEmpty reports whether the patch would change nothing.
func (p EntryPatch) IsEmpty() bool {
	return p.ClientName == nil && p.DrawingTitle == nil && p.DrawingDescription == nil &&
		p.Deadline == nil && p.Amount == nil && p.Completed == nil && p.Favorite == nil
}
