package api

import (
	"errors"
	"net/http"

	"github.com/yourorg/catalogadmin/internal/apperrors"
)

func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var notFoundErr *apperrors.NotFoundError
	if errors.As(err, &notFoundErr) {
		NotFound(w, r, err, err.Error())
		return
	}

	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		BadRequest(w, r, err, validationErr.Message, validationErr.Field)
		return
	}

	var timeoutErr *apperrors.TimeoutError
	if errors.As(err, &timeoutErr) {
		GatewayTimeout(w, r, err, "the catalog server did not answer in time")
		return
	}

	var upstreamErr *apperrors.UpstreamError
	if errors.As(err, &upstreamErr) {
		if upstreamErr.StatusCode == http.StatusNotFound {
			NotFound(w, r, err, upstreamErr.Message)
			return
		}
		BadGateway(w, r, err, upstreamErr.Message)
		return
	}

	InternalError(w, r, err, "internal server error")
}
