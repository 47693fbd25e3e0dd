package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/baharkarakas/contact-manager/internal/validate"
)

var ErrNotFound = errors.New("contact not found")

var (
	emailRe = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phoneRe = regexp.MustCompile(`^\d{10}$`)
)

type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// ContactInput is the create body.
type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message,omitempty"`
}

// ContactPatch is the update body; nil fields were not supplied.
type ContactPatch struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Message *string `json:"message,omitempty"`
}

func NewContact(in ContactInput) (Contact, error) {
	c := Contact{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Phone:   in.Phone,
		Message: strings.TrimSpace(in.Message),
	}
	if err := c.Validate(); err != nil {
		return Contact{}, err
	}
	return c, nil
}

// Validate checks every field and reports all violations, one per field,
// in name, email, phone order.
func (c Contact) Validate() error {
	var v validate.Collector
	v.Add(validate.Required("name", c.Name, "Name is required"))
	v.Add(validate.First(
		validate.Required("email", c.Email, "Email is required"),
		validate.Match("email", c.Email, emailRe, "Please use a valid email address"),
	))
	v.Add(validate.First(
		validate.Present("phone", c.Phone, "Phone number is required"),
		validate.Match("phone", c.Phone, phoneRe, "Phone number must be 10 digits"),
	))
	return v.Err()
}

// Apply overlays the supplied fields onto c. id and createdAt are never touched.
func (p ContactPatch) Apply(c *Contact) {
	if p.Name != nil {
		c.Name = strings.TrimSpace(*p.Name)
	}
	if p.Email != nil {
		c.Email = strings.TrimSpace(*p.Email)
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Message != nil {
		c.Message = strings.TrimSpace(*p.Message)
	}
}

func (p ContactPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil && p.Message == nil
}

// PatchFrom builds a patch that replaces every editable field.
func PatchFrom(in ContactInput) ContactPatch {
	return ContactPatch{Name: &in.Name, Email: &in.Email, Phone: &in.Phone, Message: &in.Message}
}

// contactFields is the wire form shared by ContactInput and ContactPatch.
// Fields hold the raw value so numbers and booleans can be read as text.
type contactFields struct {
	Name    json.RawMessage `json:"name"`
	Email   json.RawMessage `json:"email"`
	Phone   json.RawMessage `json:"phone"`
	Message json.RawMessage `json:"message"`
}

// UnmarshalJSON accepts strings, numbers and booleans for every field, so
// {"phone": 1234567890} reads as "1234567890". null reads as "".
func (in *ContactInput) UnmarshalJSON(b []byte) error {
	var f contactFields
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	var out ContactInput
	for _, fld := range []struct {
		raw json.RawMessage
		dst *string
	}{
		{f.Name, &out.Name}, {f.Email, &out.Email}, {f.Phone, &out.Phone}, {f.Message, &out.Message},
	} {
		v, err := scalarText(fld.raw)
		if err != nil {
			return err
		}
		if v != nil {
			*fld.dst = *v
		}
	}
	*in = out
	return nil
}

// UnmarshalJSON reads fields as ContactInput does. An absent field stays nil;
// null clears the field to "".
func (p *ContactPatch) UnmarshalJSON(b []byte) error {
	var f contactFields
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	var out ContactPatch
	for _, fld := range []struct {
		raw json.RawMessage
		dst **string
	}{
		{f.Name, &out.Name}, {f.Email, &out.Email}, {f.Phone, &out.Phone}, {f.Message, &out.Message},
	} {
		v, err := scalarText(fld.raw)
		if err != nil {
			return err
		}
		*fld.dst = v
	}
	*p = out
	return nil
}

// scalarText returns nil for an absent value. Objects and arrays are rejected.
func scalarText(raw json.RawMessage) (*string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var s string
	switch raw[0] {
	case '"':
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
	case 'n':
	case '{', '[':
		return nil, fmt.Errorf("expected a string, got %s", raw)
	default:
		s = string(raw)
	}
	return &s, nil
}
