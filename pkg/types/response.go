package types

// SuccessEnvelope wraps every 2xx body. Meta is only set on list endpoints.
type SuccessEnvelope struct {
	Data any       `json:"data"`
	Meta *PageMeta `json:"meta,omitempty"`
}

// PageMeta echoes the pagination window a list was read with.
type PageMeta struct {
	Skip    int  `json:"skip"`
	Limit   int  `json:"limit"`
	Count   int  `json:"count"`
	HasMore bool `json:"has_more"`
}

type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
	Details   any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
