package bidhandler

type PlaceBidBody struct {
	LotID    string  `json:"lot_id"    binding:"required"      example:"lot123"`
	BidderID string  `json:"bidder_id" binding:"required"      example:"user123"`
	Amount   float64 `json:"amount"    binding:"required,gt=0" example:"75"`
} // @name PlaceBidRequest

type ErrorResponse struct {
	Error string `json:"error"`
} // @name ErrorResponse
