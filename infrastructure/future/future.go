package future

import (
	"time"
)

// Error codes follow the http status family so transport layers can map
// them without translation tables:
// 400 - Bad Request - request not parsable or missing required fields
// 403 - Forbidden - actor role not allowed to perform the action
// 404 - Not Found - requested entity does not exist
// 406 - Not Accepted - an expired or timed-out action, e.g. cancelling an
//       order which cannot be cancelled any more
// 409 - Conflict - state conflicts, duplicate entities, lost races
// 422 - Validation Error - field level validation failures

type ErrorCode int32

const (
	BadRequest      ErrorCode = 400
	Forbidden       ErrorCode = 403
	NotFound        ErrorCode = 404
	NotAccepted     ErrorCode = 406
	Conflict        ErrorCode = 409
	ValidationError ErrorCode = 422
	InternalError   ErrorCode = 500
)

type IFuture interface {
	Get() IDataFuture
	GetTimeout(duration time.Duration) IDataFuture
	Count() int
	Capacity() int
}

type IDataFuture interface {
	Data() interface{}
	Error() IErrorFuture
}

type IErrorFuture interface {
	Code() ErrorCode
	Message() string
	Reason() error
}
