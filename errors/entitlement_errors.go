// errors/entitlement_errors.go
package errors

import "errors"

var (
	ErrMissingParameters = errors.New("api_key and match_id are required")
	ErrClusterNotFound   = errors.New("no cluster associated with the given api key")
	ErrRecordNotFound    = errors.New("entitlement record not found")
	ErrDatabaseOperation = errors.New("database operation failed")
	ErrCacheOperation    = errors.New("cache operation failed")
	ErrInternalServer    = errors.New("internal server error")
)
