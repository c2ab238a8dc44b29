package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/mcoot/cwrules/internal/api/apierr"
)

const maxBodyBytes = 1 << 20

// WriteError maps err onto its API envelope and status
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// decodeBody reads a JSON request body into dst. On failure it writes an
// INVALID_REQUEST response and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		var msg string
		switch {
		case errors.Is(err, io.EOF):
			msg = "request body is empty"
		case errors.As(err, &tooLarge):
			msg = fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit)
		default:
			msg = fmt.Sprintf("invalid request body: %v", err)
		}
		WriteError(w, apierr.NewInvalidRequestError(msg))
		return false
	}
	return true
}
