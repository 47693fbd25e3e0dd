package validate

import (
	"regexp"
	"strings"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors holds every violated field in the order the checks ran.
type Errors []FieldError

func (e Errors) Error() string { // error interface
	return strings.Join(e.Messages(), ", ")
}

func (e Errors) Messages() []string {
	out := make([]string, 0, len(e))
	for _, fe := range e {
		out = append(out, fe.Message)
	}
	return out
}

// Fields maps field name to its message, for form display.
func (e Errors) Fields() map[string]string {
	out := make(map[string]string, len(e))
	for _, fe := range e {
		out[fe.Field] = fe.Message
	}
	return out
}

// Helpers
func Required(field, value, msg string) *FieldError {
	if strings.TrimSpace(value) == "" {
		return &FieldError{Field: field, Message: msg}
	}
	return nil
}

// Present is Required without trimming: whitespace counts as a value.
func Present(field, value, msg string) *FieldError {
	if value == "" {
		return &FieldError{Field: field, Message: msg}
	}
	return nil
}

// Match skips empty values; pair it with Required.
func Match(field, value string, re *regexp.Regexp, msg string) *FieldError {
	if value == "" || re.MatchString(value) {
		return nil
	}
	return &FieldError{Field: field, Message: msg}
}

// First returns the first non-nil check so a field reports one message.
func First(checks ...*FieldError) *FieldError {
	for _, c := range checks {
		if c != nil {
			return c
		}
	}
	return nil
}

type Collector struct{ errs Errors }

func (c *Collector) Add(fe *FieldError) {
	if fe != nil {
		c.errs = append(c.errs, *fe)
	}
}

func (c *Collector) Err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return c.errs
}
