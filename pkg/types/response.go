package types

// ErrorBody is the shape the backend uses for rejected requests. Message is
// surfaced to the operator verbatim when present.
type ErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Text returns the best human-readable message the body carries.
func (e ErrorBody) Text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// TokenResponse is returned by the backend login endpoint.
type TokenResponse struct {
	Token string `json:"token"`
}
