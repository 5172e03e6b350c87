package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"scheduling/pkg/apperror"
)

// Rule is one predicate over a payload. Rules bound to a Field are skipped by
// ValidatePresent when that field was not sent.
type Rule struct {
	Field   string
	Message string
	Check   func(Payload) bool
	// Explain, when set, builds the failure message from the payload.
	Explain func(Payload) string

	// skipBlank also skips the rule on update when the field is null or "".
	skipBlank bool
}

func (r Rule) fail(p Payload) error {
	if r.Explain != nil {
		return apperror.BadInput("%s", r.Explain(p))
	}
	return apperror.BadInput("%s", r.Message)
}

// Validate runs every rule in order and returns the first failure.
func Validate(p Payload, rules []Rule) error {
	for _, r := range rules {
		if !r.Check(p) {
			return r.fail(p)
		}
	}
	return nil
}

// ValidatePresent is the partial-update flavour of Validate: field-bound rules only run
// when the field was supplied.
func ValidatePresent(p Payload, rules []Rule) error {
	for _, r := range rules {
		if r.Field != "" {
			if !p.Has(r.Field) || (r.skipBlank && p.Blank(r.Field)) {
				continue
			}
		}
		if !r.Check(p) {
			return r.fail(p)
		}
	}
	return nil
}

// RequireTruthy fails with message unless every field is truthy.
func RequireTruthy(message string, fields ...string) Rule {
	return Rule{
		Message: message,
		Check: func(p Payload) bool {
			for _, f := range fields {
				if !p.Truthy(f) {
					return false
				}
			}
			return true
		},
	}
}

// RequirePresent fails with message unless every field is present and non-null.
func RequirePresent(message string, fields ...string) Rule {
	return Rule{
		Message: message,
		Check: func(p Payload) bool {
			return len(missing(p, fields)) == 0
		},
	}
}

// RequireFields lists every absent or null field in the failure message.
func RequireFields(fields ...string) Rule {
	return Rule{
		Check: func(p Payload) bool {
			return len(missing(p, fields)) == 0
		},
		Explain: func(p Payload) string {
			return "Missing required fields: " + strings.Join(missing(p, fields), ", ")
		},
	}
}

func missing(p Payload, fields []string) []string {
	var out []string
	for _, f := range fields {
		if !p.Present(f) {
			out = append(out, f)
		}
	}
	return out
}

var phonePattern = regexp.MustCompile(`^\+\d{10,15}$`)

// PhoneMessage is returned for a malformed phone number.
const PhoneMessage = "Invalid phone number format (e.g., +1234567890)"

// Phone requires an E.164 style number: a plus sign and 10 to 15 digits.
func Phone(field string) Rule {
	return Rule{
		Field:     field,
		Message:   PhoneMessage,
		skipBlank: true,
		Check: func(p Payload) bool {
			s, ok := p.String(field)
			return ok && phonePattern.MatchString(s)
		},
	}
}

// OneOf requires a string from a fixed set.
func OneOf(field, message string, allowed ...string) Rule {
	return Rule{
		Field:     field,
		Message:   message,
		skipBlank: true,
		Check: func(p Payload) bool {
			s, ok := p.String(field)
			return ok && contains(allowed, s)
		},
	}
}

// NonNegative requires a JSON number >= 0. Numeric strings are rejected.
func NonNegative(field, message string) Rule {
	return Rule{
		Field:   field,
		Message: message,
		Check: func(p Payload) bool {
			return IsNonNegativeNumber(p.Raw(field))
		},
	}
}

// NumberOrKeyword accepts a non-negative number or one of the listed keywords.
func NumberOrKeyword(field, message string, keywords ...string) Rule {
	return Rule{
		Field:   field,
		Message: message,
		Check: func(p Payload) bool {
			if s, ok := p.String(field); ok {
				return contains(keywords, s)
			}
			return IsNonNegativeNumber(p.Raw(field))
		},
	}
}

// Boolean requires a JSON boolean when the field is sent. null is not a boolean.
func Boolean(field, message string) Rule {
	return Rule{
		Field:   field,
		Message: message,
		Check: func(p Payload) bool {
			_, ok := p.Bool(field)
			return ok || !p.Has(field)
		},
	}
}

// Date requires a value ParseDate accepts.
func Date(field, message string) Rule {
	return Rule{
		Field:     field,
		Message:   message,
		skipBlank: true,
		Check: func(p Payload) bool {
			_, ok := ParseDate(p.Raw(field))
			return ok
		},
	}
}

// TimeRangeMessage is returned when a well formed range does not start before it ends.
const TimeRangeMessage = "Start time must be before end time"

// TimeRange returns the two ordered rules for "HH:MM:SS - HH:MM:SS": the format check,
// then the strict start < end check.
func TimeRange(field, formatMessage string) []Rule {
	return []Rule{
		{
			Field:     field,
			Message:   formatMessage,
			skipBlank: true,
			Check: func(p Payload) bool {
				s, ok := p.String(field)
				return ok && timeRangePattern.MatchString(s)
			},
		},
		{
			Field:     field,
			Message:   TimeRangeMessage,
			skipBlank: true,
			Check: func(p Payload) bool {
				s, _ := p.String(field)
				start, end, ok := ParseTimeRange(s)
				return ok && start < end
			},
		},
	}
}

// IsNonNegativeNumber reports whether v is a JSON number >= 0.
func IsNonNegativeNumber(v interface{}) bool {
	n, ok := v.(float64)
	return ok && n >= 0
}

var timeRangePattern = regexp.MustCompile(
	`^([01]\d|2[0-3]):([0-5]\d):([0-5]\d) - ([01]\d|2[0-3]):([0-5]\d):([0-5]\d)$`)

// ParseTimeRange returns both ends of the range as seconds since midnight.
func ParseTimeRange(s string) (start, end time.Duration, ok bool) {
	m := timeRangePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}
	clock := func(h, mi, sec string) time.Duration {
		hh, _ := strconv.Atoi(h)
		mm, _ := strconv.Atoi(mi)
		ss, _ := strconv.Atoi(sec)
		return time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute + time.Duration(ss)*time.Second
	}
	return clock(m[1], m[2], m[3]), clock(m[4], m[5], m[6]), true
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	time.RFC1123,
	time.RFC1123Z,
}

// ParseDate accepts an ISO date or timestamp, a few common calendar layouts, or a number
// of milliseconds since the epoch.
func ParseDate(v interface{}) (time.Time, bool) {
	switch d := v.(type) {
	case float64:
		return time.UnixMilli(int64(d)).UTC(), true
	case string:
		s := strings.TrimSpace(d)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), true
			}
		}
	}
	return time.Time{}, false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
