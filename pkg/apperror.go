package pkg

// AppError is the HTTP-facing error envelope: a stable machine code, a
// human message and the status the handler should answer with.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
}

func (e *AppError) Error() string {
	return e.Code + ": " + e.Message
}

// NewDomainErrorSimple builds an AppError with no extra context.
func NewDomainErrorSimple(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

// HTTPError is the JSON body written for failed requests.
type HTTPError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) ToHTTPError() HTTPError {
	return HTTPError{Code: e.Code, Message: e.Message}
}
