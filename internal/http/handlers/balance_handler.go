package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/tbourn/juris-ledger/internal/services"
	"github.com/tbourn/juris-ledger/internal/utils"
)

const maxRevenueMonths = 60

// ReceivableResponse carries the firm-wide amount still to be received.
type ReceivableResponse struct {
	GlobalReceivable decimal.Decimal `json:"global_receivable" swaggertype:"string" example:"18250.75"`
}

// GlobalReceivable godoc
// @ID          globalReceivable
// @Summary     Total still to be received
// @Description Sum of every action's nominal value minus every payment.
// @Tags        Balance
// @Produce     json
// @Success     200  {object}  handlers.ReceivableResponse
// @Router      /balance/receivable [get]
func (h *Handlers) GlobalReceivable(c *gin.Context) {
	v, err := h.balance.GlobalReceivable(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ReceivableResponse{GlobalReceivable: v})
}

// Reconcile godoc
// @ID          reconcile
// @Summary     Cross-check the global and per-client figures
// @Tags        Balance
// @Produce     json
// @Success     200  {object}  services.Reconciliation
// @Router      /balance/reconcile [get]
func (h *Handlers) Reconcile(c *gin.Context) {
	r, err := h.balance.Reconcile(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, r)
}

// Revenue godoc
// @ID          revenue
// @Summary     Revenue dashboard figures
// @Description Current-month daily totals and trailing monthly totals.
// @Tags        Balance
// @Produce     json
// @Param       months  query     int  false  "Trailing months"  minimum(1) maximum(60) default(6)
// @Success     200     {object}  services.RevenueSummary
// @Router      /balance/revenue [get]
func (h *Handlers) Revenue(c *gin.Context) {
	months := utils.AtoiDefault(c.Query("months"), services.DefaultRevenueMonths)
	if months < 1 {
		months = 1
	}
	if months > maxRevenueMonths {
		months = maxRevenueMonths
	}
	s, err := h.balance.RevenueSummary(c.Request.Context(), h.now(), months)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, s)
}
