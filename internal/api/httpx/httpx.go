package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

type MessageBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

var ErrBadBody = errors.New("invalid request body")

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteMessage(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, MessageBody{Message: msg})
}

// WriteServerError is the 500 body for store/infrastructure failures: a fixed
// message plus the short diagnostic from err.
func WriteServerError(w http.ResponseWriter, err error) {
	WriteJSON(w, http.StatusInternalServerError, MessageBody{
		Message: "Server Error",
		Error:   err.Error(),
	})
}

// DecodeJSON reads one JSON value from the body into v. Empty bodies decode to
// the zero value; syntax errors, trailing data and oversized bodies return ErrBadBody.
func DecodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return ErrBadBody
	}
	if dec.More() {
		return ErrBadBody
	}
	return nil
}
