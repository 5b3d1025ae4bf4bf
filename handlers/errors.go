// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/weekly-pick/auth"
	"github.com/danielhkuo/weekly-pick/middleware"
	"github.com/danielhkuo/weekly-pick/models"
)

// domainError writes the status for a domain error. Anything unrecognized is
// logged and reported as a 500 with fallback as the message.
func domainError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, models.ErrRaceLost),
		errors.Is(err, models.ErrRolloverNotDue):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrAuthRequired):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Member login or vote cookie required")
	default:
		slog.Error(fallback, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, fallback)
	}
}
