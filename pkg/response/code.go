package response

// Business status codes.
const (
	CodeSuccess = 0
	CodeError   = 1

	// user / profile errors 100xx
	ErrUserExists   = 10001
	ErrUserNotFound = 10002
	ErrAuthFailed   = 10003
	ErrTokenInvalid = 10004
	ErrNoPermission = 10005
	ErrSelfFollow   = 10006

	// post / interaction errors 200xx
	ErrPostNotFound    = 20001
	ErrCommentEmpty    = 20002
	ErrAlreadyReported = 20003

	// system errors 500xx
	ErrServerInternal  = 50001
	ErrInvalidParam    = 50002
	ErrTooManyRequests = 50003
	ErrSchemaNotReady  = 50004
)
