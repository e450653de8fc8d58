package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/juris-ledger/internal/services"
)

// CreateClient godoc
// @ID          createClient
// @Summary     Register a client
// @Description Blank tax ids are stored as null; a tax id already in use is rejected.
// @Tags        Clients
// @Accept      json
// @Produce     json
// @Param       body  body      services.ClientInput  true  "Client"
// @Success     201   {object}  domain.Client
// @Failure     400   {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     409   {object}  handlers.ErrorResponse  "Tax id already registered"
// @Failure     500   {object}  handlers.ErrorResponse  "Internal error"
// @Router      /clients [post]
func (h *Handlers) CreateClient(c *gin.Context) {
	var in services.ClientInput
	if !bindJSON(c, &in) {
		return
	}
	cl, err := h.clients.Create(c.Request.Context(), in)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, cl)
}

// ListClients godoc
// @ID          listClients
// @Summary     List clients with totals
// @Description Newest first. Each entry carries total_value, total_paid and outstanding.
// @Tags        Clients
// @Produce     json
// @Success     200  {array}   domain.ClientSummary
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /clients [get]
func (h *Handlers) ListClients(c *gin.Context) {
	list, err := h.clients.ListWithTotals(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, list)
}

// GetClient godoc
// @ID          getClient
// @Summary     Get a client
// @Tags        Clients
// @Produce     json
// @Param       id   path      int  true  "Client ID"  minimum(1)
// @Success     200  {object}  domain.Client
// @Failure     400  {object}  handlers.ErrorResponse  "Bad id"
// @Failure     404  {object}  handlers.ErrorResponse  "Client not found"
// @Router      /clients/{id} [get]
func (h *Handlers) GetClient(c *gin.Context) {
	id, valid := idParam(c, "id")
	if !valid {
		return
	}
	cl, found, err := h.clients.Get(c.Request.Context(), id)
	switch {
	case err != nil:
		failErr(c, err)
	case !found:
		fail(c, http.StatusNotFound, ErrCodeNotFound, "client not found")
	default:
		ok(c, http.StatusOK, cl)
	}
}

// UpdateClient godoc
// @ID          updateClient
// @Summary     Update a client
// @Description Replaces every editable field. Responds with the number of rows changed (0 when the id does not exist).
// @Tags        Clients
// @Accept      json
// @Produce     json
// @Param       id    path      int                   true  "Client ID"  minimum(1)
// @Param       body  body      services.ClientInput  true  "Client"
// @Success     200   {object}  handlers.ChangesResponse
// @Failure     400   {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     409   {object}  handlers.ErrorResponse  "Tax id already registered"
// @Router      /clients/{id} [put]
func (h *Handlers) UpdateClient(c *gin.Context) {
	id, valid := idParam(c, "id")
	if !valid {
		return
	}
	var in services.ClientInput
	if !bindJSON(c, &in) {
		return
	}
	n, err := h.clients.Update(c.Request.Context(), id, in)
	if err != nil {
		failErr(c, err)
		return
	}
	changes(c, n)
}

// DeleteClient godoc
// @ID          deleteClient
// @Summary     Delete a client
// @Description Also deletes the client's actions and payments.
// @Tags        Clients
// @Produce     json
// @Param       id   path      int  true  "Client ID"  minimum(1)
// @Success     200  {object}  handlers.ChangesResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad id"
// @Router      /clients/{id} [delete]
func (h *Handlers) DeleteClient(c *gin.Context) {
	id, valid := idParam(c, "id")
	if !valid {
		return
	}
	n, err := h.clients.Delete(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	changes(c, n)
}

// ClientTotals godoc
// @ID          clientTotals
// @Summary     Money totals for one client
// @Tags        Clients
// @Produce     json
// @Param       id   path      int  true  "Client ID"  minimum(1)
// @Success     200  {object}  domain.ClientTotals
// @Failure     404  {object}  handlers.ErrorResponse  "Client not found"
// @Router      /clients/{id}/totals [get]
func (h *Handlers) ClientTotals(c *gin.Context) {
	id, valid := idParam(c, "id")
	if !valid {
		return
	}
	t, found, err := h.balance.ClientTotals(c.Request.Context(), id)
	switch {
	case err != nil:
		failErr(c, err)
	case !found:
		fail(c, http.StatusNotFound, ErrCodeNotFound, "client not found")
	default:
		ok(c, http.StatusOK, t)
	}
}

// ListClientActions godoc
// @ID          listClientActions
// @Summary     List a client's legal actions
// @Tags        Clients
// @Produce     json
// @Param       id   path      int  true  "Client ID"  minimum(1)
// @Success     200  {array}   domain.ActionSummary
// @Router      /clients/{id}/actions [get]
func (h *Handlers) ListClientActions(c *gin.Context) {
	id, valid := idParam(c, "id")
	if !valid {
		return
	}
	list, err := h.actions.ListByClient(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, list)
}

// ListClientPayments godoc
// @ID          listClientPayments
// @Summary     List a client's payments
// @Description Most recent payment date first.
// @Tags        Clients
// @Produce     json
// @Param       id   path      int  true  "Client ID"  minimum(1)
// @Success     200  {array}   domain.PaymentDetail
// @Router      /clients/{id}/payments [get]
func (h *Handlers) ListClientPayments(c *gin.Context) {
	id, valid := idParam(c, "id")
	if !valid {
		return
	}
	list, err := h.payments.ListByClient(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, list)
}
