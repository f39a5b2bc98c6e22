package bidhandler

import (
	"errors"
	"net/http"

	"auctiondata/internal/services/bid"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc bid.IBidService
}

func New(svc bid.IBidService) *Handler { return &Handler{svc: svc} }

func (h *Handler) Register(r gin.IRoutes) {
	r.POST("/bids", h.place)
}

// @Summary		Place a bid
// @Description	Records a bid when it meets the floor (greater of the lot minimum and the current max bid).
// @Tags			Bids
// @Param			body	body		PlaceBidBody	true	"Bid payload"
// @Success		201		{object}	bid.BidDTO
// @Failure		400		{object}	ErrorResponse
// @Failure		404		{object}	ErrorResponse
// @Router			/bids [post]
func (h *Handler) place(c *gin.Context) {
	var body PlaceBidBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	dto, err := h.svc.PlaceBid(c.Request.Context(), body.LotID, body.BidderID, body.Amount)
	if err != nil {
		var tooLow *bid.BidTooLowError
		switch {
		case errors.Is(err, bid.ErrLotNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		case errors.As(err, &tooLow):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: tooLow.Error()})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, dto)
}
