package apierr

// Code is a machine-readable error code returned in API responses and in
// GraphQL error extensions.
type Code string

const (
	CodeUnauthenticated  Code = "UNAUTHENTICATED"
	CodeBadUserInput     Code = "BAD_USER_INPUT"
	CodeInternalError    Code = "INTERNAL_ERROR"
	CodeDatabaseNotReady Code = "DATABASE_NOT_READY"
)
