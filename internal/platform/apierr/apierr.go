package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// Rule maps errors matching Target to a status and code.
type Rule struct {
	Target error
	Status int
	Code   string
}

// Classifier turns arbitrary errors into *Error using ordered rules.
type Classifier struct {
	rules []Rule
}

func NewClassifier(rules ...Rule) *Classifier {
	return &Classifier{rules: append([]Rule(nil), rules...)}
}

// From returns err unchanged when it already carries an *Error, the first
// matching rule otherwise, and a 500 "internal_error" as a last resort.
func (c *Classifier) From(err error) *Error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	if c != nil {
		for _, r := range c.rules {
			if errors.Is(err, r.Target) {
				return New(r.Status, r.Code, err)
			}
		}
	}
	return New(http.StatusInternalServerError, "internal_error", err)
}
