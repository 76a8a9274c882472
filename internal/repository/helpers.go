package repository

import (
	"context"
	"errors"
	"net"

	"github.com/yourorg/catalogadmin/internal/apperrors"
)

func isStatus(err error, status int) bool {
	var upstreamErr *apperrors.UpstreamError
	return errors.As(err, &upstreamErr) && upstreamErr.StatusCode == status
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
