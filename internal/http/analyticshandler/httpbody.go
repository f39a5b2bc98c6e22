package analyticshandler

type TopSellersQuery struct {
	Limit int `form:"limit,default=5" binding:"gte=1,lte=100"`
} // @name TopSellersQuery

type TopLotsQuery struct {
	N int `form:"n,default=5" binding:"gte=1,lte=100"`
} // @name TopLotsQuery

type AverageLotDurationResponse struct {
	AverageDurationDays float64 `json:"average_duration_days"`
} // @name AverageLotDurationResponse

type AverageLotPriceResponse struct {
	AveragePrice float64 `json:"average_price"`
} // @name AverageLotPriceResponse

type ErrorResponse struct {
	Error string `json:"error"`
} // @name ErrorResponse
