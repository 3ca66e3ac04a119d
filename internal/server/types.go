package server

// ParamError reports an invalid query parameter together with the HTTP
// status to answer with.
type ParamError struct {
	Message    string
	StatusCode int
}

// Error implements the error interface.
func (e ParamError) Error() string {
	return e.Message
}
