package api

import (
	"errors"
	"net/http"

	"ticket-checkout/internal/domain/inventory"
	"ticket-checkout/internal/handler/httperr"
	"ticket-checkout/internal/pkg/errs"
	"ticket-checkout/internal/usecase/commands"
	"ticket-checkout/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type shortfallDetail struct {
	EventID   uuid.UUID `json:"event"`
	Requested int32     `json:"requested"`
	Status    string    `json:"status"`
}

func abortWithUseCaseError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, commands.ErrCartNotFound), errs.Is(err, commands.ErrCartNotOwned):
		// other buyers' carts answer like missing ones
		httperr.AbortWithError(c, http.StatusNotFound, err, "Cart not found", nil)
	case errs.Is(err, commands.ErrBookingNotFound), errs.Is(err, queries.ErrBookingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
	case errs.Is(err, commands.ErrBuyerNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "User not found", nil)
	case errs.Is(err, commands.ErrEventNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Event not found", shortfalls(err))
	case errs.Is(err, commands.ErrInsufficientInventory):
		httperr.AbortWithError(c, http.StatusConflict, err, "Insufficient inventory", shortfalls(err))
	case errs.Is(err, commands.ErrCartEmpty):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Cart is empty", nil)
	case errs.Is(err, commands.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Domain validation failed", nil)
	case errs.Is(err, commands.ErrGatewayUnavailable):
		httperr.AbortWithError(c, http.StatusBadGateway, err, "Payment gateway unavailable", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func shortfalls(err error) []shortfallDetail {
	var se *inventory.ShortfallError
	if !errors.As(err, &se) {
		return nil
	}
	out := make([]shortfallDetail, len(se.Lines))
	for i, ln := range se.Lines {
		out[i] = shortfallDetail{EventID: ln.EventID, Requested: ln.Requested, Status: string(ln.Status)}
	}
	return out
}
