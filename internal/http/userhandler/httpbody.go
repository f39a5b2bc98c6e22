package userhandler

type ErrorResponse struct {
	Error string `json:"error"`
} // @name ErrorResponse
