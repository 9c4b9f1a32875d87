package domain

import (
	"errors"
	"fmt"
	"time"
)

// Status is the terminal outcome of a single check.
type Status int

const (
	StatusPass Status = iota + 1
	StatusFail
	StatusWarning
	StatusSkip
)

// ErrUnknownStatus is returned when decoding a status outside the closed set.
var ErrUnknownStatus = errors.New("unknown check status")

// Statuses lists every status in report order.
var Statuses = []Status{StatusPass, StatusFail, StatusWarning, StatusSkip}

func (s Status) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusFail:
		return "fail"
	case StatusWarning:
		return "warning"
	case StatusSkip:
		return "skip"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// ParseStatus converts the wire form back into a Status.
func ParseStatus(text string) (Status, error) {
	for _, s := range Statuses {
		if s.String() == text {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStatus, text)
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	switch s {
	case StatusPass, StatusFail, StatusWarning, StatusSkip:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownStatus, int(s))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// CheckResult captures a single diagnostic outcome.
type CheckResult struct {
	Name       string    `json:"name"`
	Status     Status    `json:"status"`
	Message    string    `json:"message"`
	Details    Details   `json:"details"`
	DurationMS int64     `json:"duration_ms"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewResult creates a result stamped with the current time.
func NewResult(name string, status Status, message string) CheckResult {
	return CheckResult{
		Name:      name,
		Status:    status,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Pass creates a passing result.
func Pass(name, message string) CheckResult {
	return NewResult(name, StatusPass, message)
}

// Fail creates a failing result.
func Fail(name, message string) CheckResult {
	return NewResult(name, StatusFail, message)
}

// Warn creates a warning result.
func Warn(name, message string) CheckResult {
	return NewResult(name, StatusWarning, message)
}

// Skip creates a skipped result.
func Skip(name, message string) CheckResult {
	return NewResult(name, StatusSkip, message)
}

// WithDetails returns a copy of the result carrying details.
func (r CheckResult) WithDetails(details Details) CheckResult {
	r.Details = details
	return r
}

// WithDuration returns a copy of the result carrying the elapsed time in whole milliseconds.
func (r CheckResult) WithDuration(d time.Duration) CheckResult {
	r.DurationMS = d.Milliseconds()
	return r
}
