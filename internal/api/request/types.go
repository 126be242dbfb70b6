package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/padelmixer/padelmixer-admin/internal/api/apierr"
	"github.com/padelmixer/padelmixer-admin/internal/model"
)

// MaxBodyBytes bounds every request body the API reads
const MaxBodyBytes = 1 << 20

// Login is the request body for POST /auth/login
type Login = model.Credentials

// CreatePlayer is the request body for POST /players
type CreatePlayer = model.PlayerForm

// UpdatePlayer is the request body for PUT /players/{id}
type UpdatePlayer = model.PlayerPatch

// Decode reads a JSON body into dst. Unknown fields, trailing data and
// oversized bodies are rejected as invalid requests.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return apierr.NewInvalidRequestError("request body too large")
		case errors.Is(err, io.EOF):
			return apierr.NewInvalidRequestError("request body is required")
		default:
			return apierr.NewInvalidRequestError(fmt.Sprintf("invalid request body: %v", err))
		}
	}
	if dec.More() {
		return apierr.NewInvalidRequestError("request body must hold a single JSON object")
	}
	return nil
}
