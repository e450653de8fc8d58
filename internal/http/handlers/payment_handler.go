package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/juris-ledger/internal/services"
)

// CreatePayment godoc
// @ID          createPayment
// @Summary     Record a payment
// @Description client_id is taken from the action. When sent it must match.
// @Tags        Payments
// @Accept      json
// @Produce     json
// @Param       body  body      services.PaymentInput  true  "Payment"
// @Success     201   {object}  domain.Payment
// @Failure     400   {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     409   {object}  handlers.ErrorResponse  "Unknown action"
// @Router      /payments [post]
func (h *Handlers) CreatePayment(c *gin.Context) {
	var in services.PaymentInput
	if !bindJSON(c, &in) {
		return
	}
	p, err := h.payments.Create(c.Request.Context(), in)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, p)
}

// ListPayments godoc
// @ID          listPayments
// @Summary     List every payment with client and action details
// @Tags        Payments
// @Produce     json
// @Success     200  {array}   domain.PaymentDetail
// @Router      /payments [get]
func (h *Handlers) ListPayments(c *gin.Context) {
	list, err := h.payments.ListAll(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, list)
}

// GetPayment godoc
// @ID          getPayment
// @Summary     Get a payment
// @Tags        Payments
// @Produce     json
// @Param       id   path      int  true  "Payment ID"  minimum(1)
// @Success     200  {object}  domain.Payment
// @Failure     404  {object}  handlers.ErrorResponse  "Payment not found"
// @Router      /payments/{id} [get]
func (h *Handlers) GetPayment(c *gin.Context) {
	id, valid := idParam(c, "id")
	if !valid {
		return
	}
	p, found, err := h.payments.Get(c.Request.Context(), id)
	switch {
	case err != nil:
		failErr(c, err)
	case !found:
		fail(c, http.StatusNotFound, ErrCodeNotFound, "payment not found")
	default:
		ok(c, http.StatusOK, p)
	}
}

// UpdatePayment godoc
// @ID          updatePayment
// @Summary     Update a payment
// @Description May move the payment to another action; client_id follows the new action.
// @Tags        Payments
// @Accept      json
// @Produce     json
// @Param       id    path      int                    true  "Payment ID"  minimum(1)
// @Param       body  body      services.PaymentInput  true  "Payment"
// @Success     200   {object}  handlers.ChangesResponse
// @Failure     400   {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     409   {object}  handlers.ErrorResponse  "Unknown action"
// @Router      /payments/{id} [put]
func (h *Handlers) UpdatePayment(c *gin.Context) {
	id, valid := idParam(c, "id")
	if !valid {
		return
	}
	var in services.PaymentInput
	if !bindJSON(c, &in) {
		return
	}
	n, err := h.payments.Update(c.Request.Context(), id, in)
	if err != nil {
		failErr(c, err)
		return
	}
	changes(c, n)
}

// DeletePayment godoc
// @ID          deletePayment
// @Summary     Delete a payment
// @Tags        Payments
// @Produce     json
// @Param       id   path      int  true  "Payment ID"  minimum(1)
// @Success     200  {object}  handlers.ChangesResponse
// @Router      /payments/{id} [delete]
func (h *Handlers) DeletePayment(c *gin.Context) {
	id, valid := idParam(c, "id")
	if !valid {
		return
	}
	n, err := h.payments.Delete(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	changes(c, n)
}
