package types

const ContextUserKey = "user"

// AuthCookieName is the httpOnly cookie carrying the session token.
const AuthCookieName = "auth-token"

const RequestIDHeader = "X-Request-ID"

const ContextRequestIDKey = "request_id"
