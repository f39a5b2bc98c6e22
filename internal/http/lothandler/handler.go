package lothandler

import (
	"errors"
	"net/http"

	"auctiondata/internal/services/bid"
	"auctiondata/internal/services/lot"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	lots lot.ILotService
	bids bid.IBidService
}

func New(lots lot.ILotService, bids bid.IBidService) *Handler {
	return &Handler{lots: lots, bids: bids}
}

func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/lots", h.list)
	r.GET("/lots/:id", h.get)
	r.GET("/lots/:id/bids", h.listBids)
	r.POST("/lots", h.create)
	r.PUT("/lots/:id", h.update)
	r.DELETE("/lots/:id", h.remove)
}

// @Summary		List lots
// @Description	Lists lots with seller identity and current max bid, filtered and sorted.
// @Tags			Lots
// @Param			state			query		[]string	false	"Lot states"	Enums(DRAFT,ACTIVE,CLOSED,CANCELLED)
// @Param			seller_id		query		string		false	"Seller ID"
// @Param			min_amount		query		number		false	"Lower bound on minimum bet"
// @Param			max_amount		query		number		false	"Upper bound on minimum bet"
// @Param			created_from	query		string		false	"Created on or after (YYYY-MM-DD)"
// @Param			created_to		query		string		false	"Created on or before (YYYY-MM-DD)"
// @Param			max_bid			query		number		false	"Upper bound on current max bid"
// @Param			search			query		string		false	"Substring match on name/description"
// @Param			order_by		query		string		false	"Sort key"	Enums(created_at,minimum_bet_amount,name,state,max_bid)
// @Param			order_dir		query		string		false	"Sort direction"	Enums(ASC,DESC)
// @Success		200	{array}		lot.ListedLotDTO
// @Failure		400	{object}	ErrorResponse
// @Router			/lots [get]
func (h *Handler) list(c *gin.Context) {
	var q ListLotsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	out, err := h.lots.ListLots(c.Request.Context(), lot.ListFilter{
		States:      q.State,
		SellerID:    q.SellerID,
		MinAmount:   q.MinAmount,
		MaxAmount:   q.MaxAmount,
		CreatedFrom: q.CreatedFrom,
		CreatedTo:   q.CreatedTo,
		MaxBid:      q.MaxBid,
		Search:      q.Search,
		OrderBy:     q.OrderBy,
		OrderDir:    q.OrderDir,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary		Get a lot
// @Tags			Lots
// @Param			id	path		string	true	"Lot ID"
// @Success		200	{object}	lot.LotDTO
// @Failure		404	{object}	ErrorResponse
// @Router			/lots/{id} [get]
func (h *Handler) get(c *gin.Context) {
	dto, err := h.lots.GetLot(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, lot.ErrLotNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto)
}

// @Summary		List bids for a lot
// @Description	Returns the lot's bids, oldest first.
// @Tags			Lots
// @Param			id	path		string	true	"Lot ID"
// @Success		200	{array}		bid.BidDTO
// @Failure		500	{object}	ErrorResponse
// @Router			/lots/{id}/bids [get]
func (h *Handler) listBids(c *gin.Context) {
	bids, err := h.bids.ListByLot(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, bids)
}

// @Summary		Create a lot
// @Description	Creates a lot. The state always starts as DRAFT.
// @Tags			Lots
// @Param			body	body		CreateLotBody	true	"Lot payload"
// @Success		201		{object}	lot.LotDTO
// @Failure		400		{object}	ErrorResponse
// @Router			/lots [post]
func (h *Handler) create(c *gin.Context) {
	var body CreateLotBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	dto, err := h.lots.CreateLot(c.Request.Context(), lot.NewLot{
		Name:             body.Name,
		Description:      body.Description,
		MinimumBetAmount: body.MinimumBetAmount,
		SellerID:         body.SellerID,
		ActiveTill:       body.ActiveTill,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dto)
}

// @Summary		Update a lot
// @Description	Applies only the fields present in the payload; at least one is required.
// @Tags			Lots
// @Param			id		path		string			true	"Lot ID"
// @Param			body	body		UpdateLotBody	true	"Sparse update payload"
// @Success		200		{object}	lot.LotDTO
// @Failure		400		{object}	ErrorResponse
// @Failure		404		{object}	ErrorResponse
// @Router			/lots/{id} [put]
func (h *Handler) update(c *gin.Context) {
	var body UpdateLotBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	dto, err := h.lots.UpdateLot(c.Request.Context(), c.Param("id"), lot.LotPatch{
		Name:             body.Name,
		Description:      body.Description,
		MinimumBetAmount: body.MinimumBetAmount,
		ActiveTill:       body.ActiveTill,
		State:            body.State,
	})
	if err != nil {
		switch {
		case errors.Is(err, lot.ErrLotNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		case errors.Is(err, lot.ErrNoFieldsToUpdate):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, dto)
}

// @Summary		Delete a lot
// @Tags			Lots
// @Param			id	path		string	true	"Lot ID"
// @Success		200	{object}	DeletedResponse
// @Failure		404	{object}	ErrorResponse
// @Router			/lots/{id} [delete]
func (h *Handler) remove(c *gin.Context) {
	id := c.Param("id")
	if err := h.lots.DeleteLot(c.Request.Context(), id); err != nil {
		if errors.Is(err, lot.ErrLotNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, DeletedResponse{DeletedID: id})
}
