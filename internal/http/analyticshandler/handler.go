package analyticshandler

import (
	"net/http"

	"auctiondata/internal/services/analytics"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc analytics.IAnalyticsService
}

func New(svc analytics.IAnalyticsService) *Handler { return &Handler{svc: svc} }

func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/analytics/top-sellers", h.topSellers)
	r.GET("/analytics/average-lot-duration", h.averageLotDuration)
	r.GET("/analytics/payment-stats", h.paymentStats)
	r.GET("/analytics/lot-durations", h.lotDurations)
	r.GET("/analytics/average-lot-price", h.averageLotPrice)
	r.GET("/analytics/top-lots", h.topLots)
}

// @Summary		Top sellers
// @Description	Sellers ranked by the total amount of their lots' WON bids.
// @Tags			Analytics
// @Param			limit	query		int	false	"Max results"	minimum(1)	maximum(100)	default(5)
// @Success		200		{array}		analytics.TopSellerDTO
// @Failure		400		{object}	ErrorResponse
// @Router			/analytics/top-sellers [get]
func (h *Handler) topSellers(c *gin.Context) {
	var q TopSellersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	out, err := h.svc.TopSellers(c.Request.Context(), q.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary		Average lot duration
// @Description	Mean lot lifetime in days over lots with an expiry; 0 when none have one.
// @Tags			Analytics
// @Success		200	{object}	AverageLotDurationResponse
// @Router			/analytics/average-lot-duration [get]
func (h *Handler) averageLotDuration(c *gin.Context) {
	avg, err := h.svc.AverageLotDuration(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, AverageLotDurationResponse{AverageDurationDays: avg})
}

// @Summary		Payment statistics
// @Description	Payment counts per status with percentages of the total.
// @Tags			Analytics
// @Success		200	{array}	analytics.PaymentStatDTO
// @Router			/analytics/payment-stats [get]
func (h *Handler) paymentStats(c *gin.Context) {
	stats, err := h.svc.PaymentStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// @Summary		Average lot price
// @Description	Mean of the current highest bids over lots with at least one bid; 0 when none have bids.
// @Tags			Analytics
// @Success		200	{object}	AverageLotPriceResponse
// @Router			/analytics/average-lot-price [get]
func (h *Handler) averageLotPrice(c *gin.Context) {
	avg, err := h.svc.AverageLotPrice(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, AverageLotPriceResponse{AveragePrice: avg})
}

// @Summary		Top active lots
// @Description	The n most recently created lots in state ACTIVE.
// @Tags			Analytics
// @Param			n	query		int	false	"Max results"	minimum(1)	maximum(100)	default(5)
// @Success		200	{array}		analytics.ActiveLotDTO
// @Failure		400	{object}	ErrorResponse
// @Router			/analytics/top-lots [get]
func (h *Handler) topLots(c *gin.Context) {
	var q TopLotsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	out, err := h.svc.TopActiveLots(c.Request.Context(), q.N)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary		Lot durations
// @Description	Per-lot lifetime in days for lots with an expiry.
// @Tags			Analytics
// @Success		200	{array}	analytics.LotDurationDTO
// @Router			/analytics/lot-durations [get]
func (h *Handler) lotDurations(c *gin.Context) {
	durations, err := h.svc.LotDurations(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, durations)
}
