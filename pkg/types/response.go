package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	// LoginURL is set on UNAUTHORIZED responses so views can redirect to sign-in.
	LoginURL string `json:"login_url,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
