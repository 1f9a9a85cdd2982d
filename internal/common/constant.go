package common

const (
	// TokenStorageKey is the key the session token is persisted under.
	TokenStorageKey = "auth_token"

	// AuthorizationHeaderName carries the bearer token on outbound requests.
	AuthorizationHeaderName = "Authorization"

	// RequestIDHeaderName correlates a client call with backend logs.
	RequestIDHeaderName = "X-Request-ID"
)
