package types

// APIError is the wire shape of every non-2xx response. Message is always
// populated; Details only for codes that allow them.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}
