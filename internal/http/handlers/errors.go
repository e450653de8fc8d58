package handlers

import (
	"context"
	"errors"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/juris-ledger/internal/services"
)

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeForbidden        = "forbidden"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeTooLarge         = "payload_too_large"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodeUnavailable      = "unavailable"
	ErrCodeInternal         = "internal_error"

	// Ledger specific.
	ErrCodeValidation    = "validation_failed"
	ErrCodeInvalidBackup = "invalid_backup"
	ErrCodeRestoreFailed = "restore_failed"
	ErrCodeStorage       = "storage_error"
	ErrCodeCancelled     = "request_cancelled"
)

// failErr maps a service error onto status and code:
//
//	*ValidationError  400 validation_failed
//	*FormatError      400 invalid_backup
//	*ConstraintError  409 conflict
//	*RestoreError     500 restore_failed
//	*StorageError     500 storage_error (404 when the file does not exist)
func failErr(c *gin.Context, err error) {
	var (
		ve  *services.ValidationError
		fe  *services.FormatError
		ce  *services.ConstraintError
		re  *services.RestoreError
		se  *services.StorageError
		mbe *http.MaxBytesError
	)
	switch {
	case errors.As(err, &ve):
		fail(c, http.StatusBadRequest, ErrCodeValidation, ve.Error())
	case errors.As(err, &fe):
		fail(c, http.StatusBadRequest, ErrCodeInvalidBackup, fe.Error())
	case errors.As(err, &ce):
		fail(c, http.StatusConflict, ErrCodeConflict, ce.Error())
	case errors.As(err, &re):
		fail(c, http.StatusInternalServerError, ErrCodeRestoreFailed, re.Error())
	case errors.As(err, &mbe):
		fail(c, http.StatusRequestEntityTooLarge, ErrCodeTooLarge, "request body too large")
	case errors.As(err, &se) && errors.Is(err, fs.ErrNotExist):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "backup file not found")
	case errors.As(err, &se):
		fail(c, http.StatusInternalServerError, ErrCodeStorage, se.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		fail(c, http.StatusServiceUnavailable, ErrCodeCancelled, err.Error())
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}
