package lothandler

import "time"

type ListLotsQuery struct {
	State       []string `form:"state"         binding:"omitempty,dive,oneof=DRAFT ACTIVE CLOSED CANCELLED"`
	SellerID    string   `form:"seller_id"`
	MinAmount   *float64 `form:"min_amount"    binding:"omitempty,gte=0"`
	MaxAmount   *float64 `form:"max_amount"    binding:"omitempty,gte=0"`
	CreatedFrom string   `form:"created_from"  binding:"omitempty,datetime=2006-01-02"`
	CreatedTo   string   `form:"created_to"    binding:"omitempty,datetime=2006-01-02"`
	MaxBid      *float64 `form:"max_bid"       binding:"omitempty,gte=0"`
	Search      string   `form:"search"`
	// unknown sort keys/directions fall back to created_at DESC, never error
	OrderBy  string `form:"order_by,default=created_at"`
	OrderDir string `form:"order_dir,default=DESC"`
} // @name ListLotsQuery

type CreateLotBody struct {
	Name             string     `json:"name"               binding:"required,min=1"  example:"Antique clock"`
	Description      string     `json:"description"        binding:"required,min=1"`
	SellerID         string     `json:"seller_id"          binding:"required"`
	MinimumBetAmount float64    `json:"minimum_bet_amount" binding:"required,gt=0"   example:"50"`
	ActiveTill       *time.Time `json:"active_till"`
} // @name CreateLotRequest

type UpdateLotBody struct {
	Name             *string    `json:"name"               binding:"omitempty,min=1"`
	Description      *string    `json:"description"        binding:"omitempty,min=1"`
	MinimumBetAmount *float64   `json:"minimum_bet_amount" binding:"omitempty,gt=0"`
	ActiveTill       *time.Time `json:"active_till"`
	State            *string    `json:"state"              binding:"omitempty,oneof=DRAFT ACTIVE CLOSED CANCELLED"`
} // @name UpdateLotRequest

type DeletedResponse struct {
	DeletedID string `json:"deleted_id"`
} // @name DeletedResponse

type ErrorResponse struct {
	Error string `json:"error"`
} // @name ErrorResponse
