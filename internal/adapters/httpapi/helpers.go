package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/example/fleetdesk/internal/core/errs"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code   errs.Code `json:"code"`
	Reason string    `json:"reason"`
}

func (h *Handlers) jsonOK(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.WithError(err).Warn("failed to encode response")
	}
}

// jsonError maps an error code to an HTTP status and writes {code, reason}.
func (h *Handlers) jsonError(w http.ResponseWriter, r *http.Request, err error) {
	code := errs.CodeOf(err)
	reason := errs.ReasonOf(err)

	status := statusFor(code)
	if status == http.StatusInternalServerError {
		h.logger.WithFields(log.Fields{"method": r.Method, "path": r.URL.Path}).WithError(err).Error("request failed")
		reason = "internal error"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Code: code, Reason: reason})
}

func statusFor(code errs.Code) int {
	switch code {
	case errs.CodeNotFound:
		return http.StatusNotFound
	case errs.CodeInvalidTransition, errs.CodeResourceConflict:
		return http.StatusConflict
	case errs.CodeInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// decode reads a JSON body into dst. An empty body leaves dst untouched.
func decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return errs.InvalidInput("malformed request body: " + err.Error())
	}
	return nil
}

func queryBool(r *http.Request, key string) (bool, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errs.InvalidInput("invalid " + key + " value " + strconv.Quote(v))
	}
	return b, nil
}

func queryInt(r *http.Request, key string) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, errs.InvalidInput("invalid " + key + " value " + strconv.Quote(v))
	}
	return n, nil
}
