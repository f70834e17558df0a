package http

import (
	"context"
	"database/sql/driver"
	"errors"
	"net/http"

	domainApproval "contract-manager-backend/internal/domain/approval"
	domainContract "contract-manager-backend/internal/domain/contract"

	"github.com/labstack/echo/v4"
)

// ---- helpers ----

// writeDomainError maps engine errors to the external contract. Not-found,
// permission failures and already-resolved all share the same opaque 404 so
// callers cannot probe for rows they may not act on.
func writeDomainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domainContract.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "contract not found or access denied"})
	case errors.Is(err, domainApproval.ErrNotFound),
		errors.Is(err, domainApproval.ErrAlreadyResolved):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "approval not found or already processed"})
	case errors.Is(err, domainApproval.ErrDuplicate),
		errors.Is(err, domainApproval.ErrInvalidApprover),
		errors.Is(err, domainApproval.ErrInvalidDecision),
		errors.Is(err, domainApproval.ErrInvalidLevel),
		errors.Is(err, domainContract.ErrDuplicateNumber),
		errors.Is(err, domainContract.ErrInvalidState),
		errors.Is(err, domainContract.ErrDeleteRestricted):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, driver.ErrBadConn),
		errors.Is(err, context.DeadlineExceeded):
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "store unavailable, retry the request"})
	default:
		// never leak raw store errors
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
