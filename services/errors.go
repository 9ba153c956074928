package services

// ServiceError is a typed error with an HTTP status code.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string { return e.Message }

func configurationError(msg string) *ServiceError {
	return &ServiceError{StatusCode: 500, Message: msg}
}

func upstreamError(msg string) *ServiceError {
	return &ServiceError{StatusCode: 502, Message: msg}
}

func validationError(msg string) *ServiceError {
	return &ServiceError{StatusCode: 400, Message: msg}
}
