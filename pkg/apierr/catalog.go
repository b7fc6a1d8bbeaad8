package apierr

import "net/http"

// --- Auth ---

func Unauthenticated() *Error {
	return New(CodeUnauthenticated, http.StatusUnauthorized, "not authenticated")
}

// WrongCredentials deliberately uses one message for both an unknown username
// and a bad password so callers cannot enumerate accounts.
func WrongCredentials() *Error {
	return New(CodeBadUserInput, http.StatusBadRequest, "wrong credentials")
}

// --- Input ---

// InvalidInput reports a store-level validation or persistence failure. The
// original mutation arguments travel in the invalidArgs extension for caller
// diagnostics.
func InvalidInput(message string, cause error, args map[string]interface{}) *Error {
	e := Wrap(CodeBadUserInput, http.StatusBadRequest, message, cause)
	if args != nil {
		e.WithExtension("invalidArgs", args)
	}
	return e
}

// --- Common ---

func InternalError(cause error) *Error {
	return Wrap(CodeInternalError, http.StatusInternalServerError, "Internal server error", cause)
}

// --- Health ---

func DatabaseNotReady() *Error {
	return New(CodeDatabaseNotReady, http.StatusServiceUnavailable, "Database not ready")
}
