package common

// Keys of the persistent client store.
const (
	TokenKey           = "token"
	RememberedEmailKey = "rememberedEmail"
)

// AuthorizationHeader carries the bearer token on mutating requests.
const AuthorizationHeader = "Authorization"

// RequestIDHeader correlates client log lines with backend requests.
const RequestIDHeader = "X-Request-ID"
