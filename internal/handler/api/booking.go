package api

import (
	"net/http"
	"strings"

	"ticket-checkout/internal/domain/booking"
	reqdto "ticket-checkout/internal/handler/dto/request"
	resdto "ticket-checkout/internal/handler/dto/response"
	"ticket-checkout/internal/handler/httperr"
	"ticket-checkout/internal/handler/middleware"
	"ticket-checkout/internal/infra/metrics"
	"ticket-checkout/internal/usecase/commands"
	"ticket-checkout/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	checkout commands.CheckoutCommands
	status   commands.BookingStatusCommands
	q        queries.BookingQueries
	metrics  *metrics.Metrics
}

func NewBookingHandler(
	checkout commands.CheckoutCommands,
	status commands.BookingStatusCommands,
	q queries.BookingQueries,
	m *metrics.Metrics,
) *BookingHandler {
	return &BookingHandler{
		checkout: checkout,
		status:   status,
		q:        q,
		metrics:  m,
	}
}

// @Summary Create checkout session
// @Description Create a hosted card checkout session for the buyer's cart
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param cartId path string true "Cart ID"
// @Param request body reqdto.CheckoutRequest true "Shipping address"
// @Success 200 {object} resdto.SessionEnvelope
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /bookings/checkout-session/{cartId} [post]
func (h *BookingHandler) CreateCheckoutSession(c *gin.Context) {
	buyerID, cartID, addr, ok := h.bindCheckout(c)
	if !ok {
		return
	}

	session, err := h.checkout.CreateCheckoutSession(c.Request.Context(), buyerID, cartID, addr, requestOrigin(c))
	if err != nil {
		h.metrics.CheckoutSessions.WithLabelValues("error").Inc()
		abortWithUseCaseError(c, err)
		return
	}
	h.metrics.CheckoutSessions.WithLabelValues("created").Inc()
	c.JSON(http.StatusOK, resdto.FromSession(session))
}

// @Summary Create cash booking
// @Description Convert the buyer's cart into a cash booking
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param cartId path string true "Cart ID"
// @Param request body reqdto.CheckoutRequest true "Shipping address"
// @Success 201 {object} resdto.BookingEnvelope
// @Success 200 {object} resdto.BookingEnvelope "Replay of an earlier conversion"
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{cartId} [post]
func (h *BookingHandler) CreateCashBooking(c *gin.Context) {
	buyerID, cartID, addr, ok := h.bindCheckout(c)
	if !ok {
		return
	}

	result, err := h.checkout.CreateCashBooking(c.Request.Context(), buyerID, cartID, addr)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	} else {
		h.metrics.BookingsCreated.WithLabelValues(string(booking.PaymentMethodCash)).Inc()
	}
	h.respondBooking(c, status, result.Booking)
}

// @Summary List bookings
// @Description Users see their own bookings; admins and managers see all
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size 1..100 (default 50)"
// @Param userId query string false "Filter by user (staff only)"
// @Param isPaid query bool false "Filter by paid flag"
// @Param isDelivered query bool false "Filter by delivered flag"
// @Param paymentMethodType query string false "cash or card"
// @Success 200 {object} resdto.BookingListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var q reqdto.ListBookingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}

	page, err := h.q.List(c.Request.Context(), actor, q.Filter(), q.PageRequest())
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	res, err := resdto.FromBookingPage(page)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Get booking
// @Description Get a booking by ID
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingEnvelope
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "Invalid booking ID format")
	if !ok {
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	h.respondBooking(c, http.StatusOK, view)
}

// @Summary Mark booking paid
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingEnvelope
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id}/pay [put]
func (h *BookingHandler) MarkPaid(c *gin.Context) {
	id, ok := pathUUID(c, "id", "Invalid booking ID format")
	if !ok {
		return
	}
	view, err := h.status.MarkPaid(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	h.respondBooking(c, http.StatusOK, view)
}

// @Summary Mark booking delivered
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingEnvelope
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response "Booking is short on inventory"
// @Router /bookings/{id}/deliver [put]
func (h *BookingHandler) MarkDelivered(c *gin.Context) {
	id, ok := pathUUID(c, "id", "Invalid booking ID format")
	if !ok {
		return
	}
	view, err := h.status.MarkDelivered(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	h.respondBooking(c, http.StatusOK, view)
}

func (h *BookingHandler) bindCheckout(c *gin.Context) (uuid.UUID, uuid.UUID, booking.ShippingAddress, bool) {
	buyerID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return uuid.Nil, uuid.Nil, booking.ShippingAddress{}, false
	}
	cartID, ok := pathUUID(c, "cartId", "Invalid cart ID format")
	if !ok {
		return uuid.Nil, uuid.Nil, booking.ShippingAddress{}, false
	}

	var req reqdto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return uuid.Nil, uuid.Nil, booking.ShippingAddress{}, false
	}
	addr, err := req.ToDomain()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Shipping address requires details, phone and city", nil)
		return uuid.Nil, uuid.Nil, booking.ShippingAddress{}, false
	}
	return buyerID, cartID, addr, true
}

func (h *BookingHandler) respondBooking(c *gin.Context, status int, view *queries.BookingView) {
	res, err := resdto.FromBookingView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(status, resdto.BookingEnvelope{Status: resdto.StatusSuccess, Data: res})
}

func actorFrom(c *gin.Context) (queries.Actor, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return queries.Actor{}, false
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return queries.Actor{}, false
	}
	return queries.Actor{UserID: userID, Role: role}, true
}

func pathUUID(c *gin.Context, name, msg string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, msg, nil)
		return uuid.Nil, false
	}
	return id, true
}

// requestOrigin rebuilds scheme://host the way the client reached us.
func requestOrigin(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	switch fwd := strings.ToLower(strings.TrimSpace(c.GetHeader("X-Forwarded-Proto"))); fwd {
	case "http", "https":
		scheme = fwd
	}
	return scheme + "://" + c.Request.Host
}
