package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/vovakirdan/tetris-net/internal/tetris"
	"github.com/vovakirdan/tetris-net/internal/wire"
)

// MaxBodyBytes caps request bodies.
const MaxBodyBytes = 1 << 20

// ErrBadBody wraps request bodies that are not valid JSON.
var ErrBadBody = errors.New("malformed request body")

// WriteJSON writes payload as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(payload)
}

// ReadJSON decodes the request body into dst. An empty body leaves dst
// untouched.
func ReadJSON(r *http.Request, dst any) error {
	err := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes)).Decode(dst)
	if err == nil || err == io.EOF {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrBadBody, err)
}

// StatusFor maps a request error to its HTTP status: 400 for malformed
// bodies and tetris validation errors, 500 otherwise.
func StatusFor(err error) int {
	if errors.Is(err, ErrBadBody) || tetris.IsValidation(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Fail writes {"exito":false,"motivo":msg}.
func Fail(w http.ResponseWriter, status int, msg string) {
	//nolint:errcheck // Headers are already out.
	WriteJSON(w, status, wire.Failure{Exito: false, Motivo: msg})
}

// FailErr writes err with the status chosen by StatusFor.
func FailErr(w http.ResponseWriter, err error) {
	Fail(w, StatusFor(err), err.Error())
}

// Health answers GET /healthz for the named service.
func Health(service string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		//nolint:errcheck // Best-effort write.
		WriteJSON(w, http.StatusOK, wire.Health{Status: "ok", Service: service})
	}
}
