package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/stylehub/catalog/internal/http/apierr"
)

// responder centralizes response encoding and error-to-status mapping.
type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) *responder {
	return &responder{logger: logger}
}

func (rp *responder) JSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		rp.logger.ErrorContext(r.Context(), "error encoding response",
			slog.Any("error", err))
	}
}

func (rp *responder) Error(w http.ResponseWriter, r *http.Request, err error) {
	res := apierr.New(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.StatusCode)

	logLevel := slog.LevelInfo
	if res.StatusCode >= 500 {
		logLevel = slog.LevelError
	} else if res.StatusCode >= 400 {
		logLevel = slog.LevelWarn
	}
	rp.logger.Log(r.Context(), logLevel, "http response error", slog.Any("error", err))

	if err := json.NewEncoder(w).Encode(res); err != nil {
		rp.logger.ErrorContext(r.Context(), "error encoding error response",
			slog.Any("error", err))
	}
}
