package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/contact-manager/internal/validate"
)

func TestNewContact_TrimsFields(t *testing.T) {
	c, err := NewContact(ContactInput{
		Name:    "  Jane Doe ",
		Email:   " jane@x.com ",
		Phone:   "1234567890",
		Message: "  hi  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", c.Name)
	assert.Equal(t, "jane@x.com", c.Email)
	assert.Equal(t, "1234567890", c.Phone)
	assert.Equal(t, "hi", c.Message)
	assert.Empty(t, c.ID)
}

func TestContactValidate(t *testing.T) {
	valid := Contact{Name: "Jane", Email: "jane@x.com", Phone: "1234567890"}

	tests := []struct {
		name   string
		mutate func(c *Contact)
		want   []string
	}{
		{name: "valid", mutate: func(c *Contact) {}},
		{name: "message optional", mutate: func(c *Contact) { c.Message = "" }},
		{name: "empty name", mutate: func(c *Contact) { c.Name = "" }, want: []string{"Name is required"}},
		{name: "missing email", mutate: func(c *Contact) { c.Email = "" }, want: []string{"Email is required"}},
		{name: "email without at", mutate: func(c *Contact) { c.Email = "bad" }, want: []string{"Please use a valid email address"}},
		{name: "email without tld", mutate: func(c *Contact) { c.Email = "a@b" }, want: []string{"Please use a valid email address"}},
		{name: "email with space", mutate: func(c *Contact) { c.Email = "a b@c.d" }, want: []string{"Please use a valid email address"}},
		{name: "missing phone", mutate: func(c *Contact) { c.Phone = "" }, want: []string{"Phone number is required"}},
		{name: "short phone", mutate: func(c *Contact) { c.Phone = "123" }, want: []string{"Phone number must be 10 digits"}},
		{name: "long phone", mutate: func(c *Contact) { c.Phone = "12345678901" }, want: []string{"Phone number must be 10 digits"}},
		{name: "non-digit phone", mutate: func(c *Contact) { c.Phone = "123456789a" }, want: []string{"Phone number must be 10 digits"}},
		{name: "padded phone", mutate: func(c *Contact) { c.Phone = " 1234567890" }, want: []string{"Phone number must be 10 digits"}},
		{name: "blank phone", mutate: func(c *Contact) { c.Phone = "   " }, want: []string{"Phone number must be 10 digits"}},
		{
			name: "all three",
			mutate: func(c *Contact) {
				c.Name, c.Email, c.Phone = "", "bad", "123"
			},
			want: []string{"Name is required", "Please use a valid email address", "Phone number must be 10 digits"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			var verr validate.Errors
			require.True(t, errors.As(err, &verr), "want validate.Errors, got %T", err)
			assert.Equal(t, tt.want, verr.Messages())
			assert.Equal(t, strings.Join(tt.want, ", "), err.Error())
		})
	}
}

func TestNewContact_TrimsBeforeChecking(t *testing.T) {
	_, err := NewContact(ContactInput{Name: "   ", Email: "jane@x.com", Phone: "1234567890"})
	require.Error(t, err)
	assert.Equal(t, "Name is required", err.Error())
}

func TestContactPatchApply(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	c := Contact{ID: "abc", Name: "Jane", Email: "jane@x.com", Phone: "1234567890", CreatedAt: created}

	msg := "  hello "
	ContactPatch{Message: &msg}.Apply(&c)

	assert.Equal(t, "hello", c.Message)
	assert.Equal(t, "Jane", c.Name)
	assert.Equal(t, "abc", c.ID)
	assert.Equal(t, created, c.CreatedAt)
}

func TestContactPatchEmpty(t *testing.T) {
	assert.True(t, ContactPatch{}.Empty())
	name := "x"
	assert.False(t, ContactPatch{Name: &name}.Empty())
}

func TestPatchFrom(t *testing.T) {
	p := PatchFrom(ContactInput{Name: "A", Email: "a@b.co", Phone: "1234567890"})
	require.NotNil(t, p.Message)
	assert.Equal(t, "", *p.Message)
	assert.Equal(t, "A", *p.Name)
}

func TestContactInputUnmarshal_ScalarsReadAsText(t *testing.T) {
	var in ContactInput
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Jane","email":"jane@x.com","phone":1234567890,"message":true}`), &in))
	assert.Equal(t, "1234567890", in.Phone)
	assert.Equal(t, "true", in.Message)

	require.NoError(t, json.Unmarshal([]byte(`{"name":null,"phone":"0123456789"}`), &in))
	assert.Equal(t, "", in.Name)
	assert.Equal(t, "0123456789", in.Phone)
	assert.Equal(t, "", in.Email, "fields from an earlier decode are reset")
}

func TestContactInputUnmarshal_RejectsObjects(t *testing.T) {
	var in ContactInput
	assert.Error(t, json.Unmarshal([]byte(`{"name":{"first":"Jane"}}`), &in))
	assert.Error(t, json.Unmarshal([]byte(`{"phone":[1,2]}`), &in))
	assert.Error(t, json.Unmarshal([]byte(`"Jane"`), &in))
}

func TestContactPatchUnmarshal(t *testing.T) {
	var p ContactPatch
	require.NoError(t, json.Unmarshal([]byte(`{"phone":1234567890,"message":null}`), &p))
	assert.Nil(t, p.Name)
	assert.Nil(t, p.Email)
	require.NotNil(t, p.Phone)
	assert.Equal(t, "1234567890", *p.Phone)
	require.NotNil(t, p.Message)
	assert.Equal(t, "", *p.Message)

	assert.Error(t, json.Unmarshal([]byte(`{"email":{}}`), &p))
}
