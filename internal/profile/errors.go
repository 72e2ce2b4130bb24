package profile

import (
	"errors"
	"fmt"
	"net/http"
)

// unknownProfileError marks a lookup by an id the store does not hold. It
// carries its HTTP status so the API surface maps it without inspecting the
// message.
type unknownProfileError struct {
	id string
}

func (e *unknownProfileError) Error() string {
	return fmt.Sprintf("unknown profile %q", e.id)
}

func (e *unknownProfileError) StatusCode() int { return http.StatusNotFound }

// IsUnknown reports whether err marks a missing profile id.
func IsUnknown(err error) bool {
	var u *unknownProfileError
	return errors.As(err, &u)
}
