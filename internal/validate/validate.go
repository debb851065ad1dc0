package validate

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"companyviz/internal/domain"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
)

// UUID validates an opaque entity identifier (version-4 style string).
func UUID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if _, err := uuid.Parse(s); err != nil {
		return "", false
	}
	return s, true
}

// Name validates a displayable entity name: non-empty after trimming.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 200 {
		return "", false
	}
	return s, true
}

// Rating checks the fixed 1..5 rating domain.
func Rating(n int) bool {
	return n >= 1 && n <= 5
}

// Status validates the availability enum, trimming but not case-folding:
// the wire value is exact.
func Status(s string) (domain.AvailabilityStatus, bool) {
	switch domain.AvailabilityStatus(strings.TrimSpace(s)) {
	case domain.StatusAvailable:
		return domain.StatusAvailable, true
	case domain.StatusNotAvailable:
		return domain.StatusNotAvailable, true
	case domain.StatusUnknown:
		return domain.StatusUnknown, true
	}
	return "", false
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 100 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Password enforces a simple length window for login checks.
func Password(s string) bool {
	l := len(s)
	return l >= 8 && l <= 64
}
