package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteMessage(rec, http.StatusNotFound, "Contact not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"Contact not found"}`, rec.Body.String())
}

func TestWriteServerError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteServerError(rec, errors.New("connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Server Error","error":"connection refused"}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Name string `json:"name"`
	}
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "object", in: `{"name":"Jane"}`, want: "Jane"},
		{name: "empty body", in: ``, want: ""},
		{name: "unknown fields ignored", in: `{"name":"Jane","id":"x"}`, want: "Jane"},
		{name: "syntax error", in: `{"name":`, wantErr: true},
		{name: "wrong type", in: `{"name":5}`, wantErr: true},
		{name: "trailing data", in: `{"name":"a"}{"name":"b"}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.in))
			var b body
			err := DecodeJSON(req, &b)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBadBody)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, b.Name)
		})
	}
}

func TestWriteJSON_EncodesValue(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, []int{1, 2})

	var got []int
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, []int{1, 2}, got)
	assert.Equal(t, http.StatusCreated, rec.Code)
}
