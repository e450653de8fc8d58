package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/juris-ledger/internal/services"
)

// CreateAction godoc
// @ID          createAction
// @Summary     Register a legal action
// @Tags        Actions
// @Accept      json
// @Produce     json
// @Param       body  body      services.ActionInput  true  "Action"
// @Success     201   {object}  domain.LegalAction
// @Failure     400   {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     409   {object}  handlers.ErrorResponse  "Unknown client"
// @Router      /actions [post]
func (h *Handlers) CreateAction(c *gin.Context) {
	var in services.ActionInput
	if !bindJSON(c, &in) {
		return
	}
	a, err := h.actions.Create(c.Request.Context(), in)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, a)
}

// GetAction godoc
// @ID          getAction
// @Summary     Get a legal action with its totals
// @Tags        Actions
// @Produce     json
// @Param       id   path      int  true  "Action ID"  minimum(1)
// @Success     200  {object}  domain.ActionSummary
// @Failure     404  {object}  handlers.ErrorResponse  "Action not found"
// @Router      /actions/{id} [get]
func (h *Handlers) GetAction(c *gin.Context) {
	id, valid := idParam(c, "id")
	if !valid {
		return
	}
	a, found, err := h.actions.Get(c.Request.Context(), id)
	switch {
	case err != nil:
		failErr(c, err)
	case !found:
		fail(c, http.StatusNotFound, ErrCodeNotFound, "action not found")
	default:
		ok(c, http.StatusOK, a)
	}
}

// UpdateAction godoc
// @ID          updateAction
// @Summary     Update a legal action
// @Description The owning client never changes; client_id in the body is ignored.
// @Tags        Actions
// @Accept      json
// @Produce     json
// @Param       id    path      int                   true  "Action ID"  minimum(1)
// @Param       body  body      services.ActionInput  true  "Action"
// @Success     200   {object}  handlers.ChangesResponse
// @Failure     400   {object}  handlers.ErrorResponse  "Validation failed"
// @Router      /actions/{id} [put]
func (h *Handlers) UpdateAction(c *gin.Context) {
	id, valid := idParam(c, "id")
	if !valid {
		return
	}
	var in services.ActionInput
	if !bindJSON(c, &in) {
		return
	}
	n, err := h.actions.Update(c.Request.Context(), id, in)
	if err != nil {
		failErr(c, err)
		return
	}
	changes(c, n)
}

// DeleteAction godoc
// @ID          deleteAction
// @Summary     Delete a legal action and its payments
// @Tags        Actions
// @Produce     json
// @Param       id   path      int  true  "Action ID"  minimum(1)
// @Success     200  {object}  handlers.ChangesResponse
// @Router      /actions/{id} [delete]
func (h *Handlers) DeleteAction(c *gin.Context) {
	id, valid := idParam(c, "id")
	if !valid {
		return
	}
	n, err := h.actions.Delete(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	changes(c, n)
}

// ActionTotals godoc
// @ID          actionTotals
// @Summary     Paid and remaining amounts of one action
// @Tags        Actions
// @Produce     json
// @Param       id   path      int  true  "Action ID"  minimum(1)
// @Success     200  {object}  domain.ActionTotals
// @Failure     404  {object}  handlers.ErrorResponse  "Action not found"
// @Router      /actions/{id}/totals [get]
func (h *Handlers) ActionTotals(c *gin.Context) {
	id, valid := idParam(c, "id")
	if !valid {
		return
	}
	t, found, err := h.balance.ActionTotals(c.Request.Context(), id)
	switch {
	case err != nil:
		failErr(c, err)
	case !found:
		fail(c, http.StatusNotFound, ErrCodeNotFound, "action not found")
	default:
		ok(c, http.StatusOK, t)
	}
}

// ListActionPayments godoc
// @ID          listActionPayments
// @Summary     List the payments of an action
// @Tags        Actions
// @Produce     json
// @Param       id   path      int  true  "Action ID"  minimum(1)
// @Success     200  {array}   domain.Payment
// @Router      /actions/{id}/payments [get]
func (h *Handlers) ListActionPayments(c *gin.Context) {
	id, valid := idParam(c, "id")
	if !valid {
		return
	}
	list, err := h.payments.ListByAction(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, list)
}
