package v1

import (
	"consultant-tracker-backend/pkg/apperror"
	"consultant-tracker-backend/pkg/validation"
)

// bindError turns a request binding failure into a 400 with readable
// per-field messages instead of the raw validator dump.
func bindError(err error) *apperror.AppError {
	return apperror.BadRequest(validation.Summarize(err))
}
