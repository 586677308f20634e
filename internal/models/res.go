package models

// ErrorBody is the payload of every failed request.
type ErrorBody struct {
	Error string `json:"error"`
}

func ErrorResponse(err string) ErrorBody {
	return ErrorBody{Error: err}
}
