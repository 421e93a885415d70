package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// WorkSchedule is one user's recurring attendance window at one office.
// Times are stored as HH:mm strings (24-hour clock, minute precision);
// ordering of start vs end is deliberately not enforced.
type WorkSchedule struct {
	ID         string    `json:"id" db:"id"`
	UserID     string    `json:"user_id" db:"user_id"`
	OfficeID   string    `json:"office_id" db:"office_id"`
	StartTime  string    `json:"start_time" db:"start_time"`
	EndTime    string    `json:"end_time" db:"end_time"`
	DaysOfWeek string    `json:"days_of_week" db:"days_of_week"` // canonical "1,2,3"
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// Default schedule applied when set-office creates a row.
const (
	DefaultStartTime  = "09:00"
	DefaultEndTime    = "17:00"
	DefaultDaysOfWeek = "1,2,3,4,5" // Mon-Fri
)

// ValidateTimeOfDay checks a 24-hour HH:mm wall-clock string.
func ValidateTimeOfDay(s string) error {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return nil
}

// ParseDaysOfWeek validates a comma-separated list of weekdays (1=Monday ..
// 7=Sunday) and returns the canonical form: sorted, deduplicated.
func ParseDaysOfWeek(s string) (string, error) {
	fields := strings.Split(s, ",")
	seen := make(map[int]bool)
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			return "", fmt.Errorf("%w: %q", ErrInvalidDays, s)
		}
		d, err := strconv.Atoi(f)
		if err != nil || d < 1 || d > 7 {
			return "", fmt.Errorf("%w: %q", ErrInvalidDays, s)
		}
		seen[d] = true
	}
	if len(seen) == 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidDays, s)
	}
	days := make([]int, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Ints(days)
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = strconv.Itoa(d)
	}
	return strings.Join(out, ","), nil
}
