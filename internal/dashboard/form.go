// Package dashboard holds the view logic shared by the contactctl commands
// and the terminal dashboard: form checks, search, sort, stats and CSV export.
package dashboard

import (
	"regexp"
	"strings"

	"github.com/baharkarakas/contact-manager/internal/models"
	"github.com/baharkarakas/contact-manager/internal/validate"
)

var (
	formEmailRe = regexp.MustCompile(`\S+@\S+\.\S+`)
	formPhoneRe = regexp.MustCompile(`^\d{10}$`)
)

// ValidateForm is the pre-submit check of the public form. It returns one
// message per offending field and an empty map when the form may be sent.
// The server remains the authority; this only saves a round trip.
func ValidateForm(in models.ContactInput) map[string]string {
	var v validate.Collector
	v.Add(validate.Required("name", in.Name, "Name is required"))
	v.Add(validate.First(
		validate.Present("email", in.Email, "Email is required"),
		validate.Match("email", in.Email, formEmailRe, "Email is invalid"),
	))
	v.Add(validate.First(
		validate.Present("phone", in.Phone, "Phone is required"),
		validate.Match("phone", in.Phone, formPhoneRe, "Phone must be 10 digits"),
	))

	errs, _ := v.Err().(validate.Errors)
	return errs.Fields()
}

// FormatErrors renders the map in field order for a single-line flash.
func FormatErrors(errs map[string]string) string {
	var parts []string
	for _, f := range []string{"name", "email", "phone"} {
		if m, ok := errs[f]; ok {
			parts = append(parts, m)
		}
	}
	return strings.Join(parts, ", ")
}
