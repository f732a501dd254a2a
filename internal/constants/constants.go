package constants

// Context keys
const (
	ContextKeyIdentity = "identity"
	ContextKeyUserID   = "user_id"
	ContextKeyIDParam  = "id_param"
)

// Session and cookies
const (
	SessionCookieName = "apm_session"
	AccessTokenCookie = "access_token"
	FlashErrorKey     = "login_error"
	TokenType         = "bearer"
)

// Validation
const (
	MinUsernameLength = 3
	MinPasswordLength = 6
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Pages
const (
	LoginPagePath  = "/users/login-page"
	OrdersPagePath = "/orders/page"
)
