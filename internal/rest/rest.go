package rest

// ErrorResponse is the JSON envelope returned by API handlers on failure.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
