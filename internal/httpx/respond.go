package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"ShaftGear/internal/calcerr"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error      string              `json:"error"`
	Violations []calcerr.Violation `json:"violations,omitempty"`
	RequestID  string              `json:"request_id,omitempty"`
}

// ErrUnauthorized and ErrConflict are mapped here so handlers outside the
// calculator packages share one status table.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrBadRequest   = errors.New("bad request")
)

const maxBody = 1 << 20

// DecodeJSON reads a single JSON object from the request body, rejecting
// unknown fields.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Join(ErrBadRequest, err)
	}
	return nil
}

// JSON encodes data before writing the header, so a value that cannot be
// encoded is reported as a 500 instead of an empty success.
func JSON(w http.ResponseWriter, status int, data any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		fallbackLogger.WithError(err).WithField("status_code", status).Error("encode response")
		buf.Reset()
		buf.WriteString(`{"error":"Internal server error"}` + "\n")
		status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// StatusFor maps an error to the HTTP status it should be reported with.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, calcerr.ErrValidation),
		errors.Is(err, calcerr.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, calcerr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// SafeMessage returns the message shown to the client for err. Calculation
// errors are the user's own input and are shown verbatim; anything else is
// hidden behind a generic message.
func SafeMessage(err error) string {
	switch StatusFor(err) {
	case http.StatusBadRequest:
		if errors.Is(err, ErrBadRequest) {
			return "Invalid request payload"
		}
		return err.Error()
	case http.StatusNotFound:
		return err.Error()
	case http.StatusUnauthorized:
		return "Unauthorized"
	case http.StatusConflict:
		return "Already exists"
	default:
		return "Internal server error"
	}
}

// Error writes err as a JSON error response and logs it.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	reqID := RequestID(r.Context())

	entry := Logger(r.Context()).WithFields(logrus.Fields{
		"status_code": status,
		"path":        r.URL.Path,
		"method":      r.Method,
		"error":       err.Error(),
	})
	if status >= http.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Debug("request rejected")
	}

	JSON(w, status, ErrorResponse{
		Error:      SafeMessage(err),
		Violations: calcerr.Violations(err),
		RequestID:  reqID,
	})
}
