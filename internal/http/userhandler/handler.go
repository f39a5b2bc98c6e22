package userhandler

import (
	"errors"
	"net/http"

	"auctiondata/internal/services/bid"
	"auctiondata/internal/services/user"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	users user.IUserService
	bids  bid.IBidService
}

func New(users user.IUserService, bids bid.IBidService) *Handler {
	return &Handler{users: users, bids: bids}
}

func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/users", h.list)
	r.GET("/users/:id", h.get)
	r.GET("/users/:id/bids", h.listBids)
}

// @Summary		List users
// @Description	Returns all users, newest first.
// @Tags			Users
// @Success		200	{array}		user.UserDTO
// @Failure		500	{object}	ErrorResponse
// @Router			/users [get]
func (h *Handler) list(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, users)
}

// @Summary		Get a user
// @Tags			Users
// @Param			id	path		string	true	"User ID"
// @Success		200	{object}	user.UserDTO
// @Failure		404	{object}	ErrorResponse
// @Router			/users/{id} [get]
func (h *Handler) get(c *gin.Context) {
	dto, err := h.users.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto)
}

// @Summary		List a user's bids
// @Description	Returns the user's bids with an embedded lot summary, newest first.
// @Tags			Users
// @Param			id	path		string	true	"User ID"
// @Success		200	{array}		bid.UserBidDTO
// @Failure		404	{object}	ErrorResponse
// @Router			/users/{id}/bids [get]
func (h *Handler) listBids(c *gin.Context) {
	id := c.Param("id")

	// the user must exist; an unknown id is a 404, not an empty list
	if _, err := h.users.GetUser(c.Request.Context(), id); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	bids, err := h.bids.ListByBidder(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, bids)
}
