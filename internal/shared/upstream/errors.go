package upstream

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnavailable marks transport-level failures: the service never produced a
// response. Callers surface these as connectivity problems, not as upstream
// verdicts.
var ErrUnavailable = errors.New("service unavailable")

// Error is a non-2xx verdict from an upstream service, carrying whatever
// message the service returned.
type Error struct {
	Service    string
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s service: %s (status %d)", e.Service, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s service returned status %d", e.Service, e.StatusCode)
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	var ue *Error
	return errors.As(err, &ue) && ue.StatusCode == http.StatusNotFound
}

// IsUnavailable reports whether err is a transport-level failure.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
