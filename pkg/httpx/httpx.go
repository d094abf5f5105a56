// Package httpx carries the response envelope every endpoint speaks:
// {"errors": null|[...], "message": "...", "data": ...}.
package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
)

const maxBodyBytes = 1 << 20

type Envelope struct {
	Errors  []string `json:"errors"`
	Message string   `json:"message"`
	Data    any      `json:"data"`
}

func JSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("write response failed", slog.Any("err", err))
	}
}

func OK(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusOK, Envelope{Message: message, Data: data})
}

func Fail(w http.ResponseWriter, status int, message string, errs ...string) {
	JSON(w, status, Envelope{Errors: errs, Message: message})
}

var ErrBadBody = errors.New("invalid request body")

// Decode reads a JSON body into v, bounding the body size so a client
// cannot feed the server an unbounded payload.
func Decode(r *http.Request, v any) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		return ErrBadBody
	}
	// Trailing garbage is a malformed body too.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return ErrBadBody
	}
	return nil
}
