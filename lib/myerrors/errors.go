package myerrors

import (
	"fmt"
	"net/http"
)

type httpErrorCoder interface {
	error
	GetHTTPErrorCode() int
}

type httpError struct {
	httpCode int
	err      error
}

func (e httpError) Error() string {
	return fmt.Sprintf("status: %d, err: %s", e.httpCode, e.err.Error())
}

func (e httpError) Unwrap() error {
	return e.err
}

func (e httpError) GetHTTPErrorCode() int {
	return e.httpCode
}

func newError(httpCode int, err error) *httpError {
	return &httpError{
		httpCode: httpCode,
		err:      err,
	}
}

func NewInvalidInputError(err error) *httpError {
	return newError(http.StatusBadRequest, err)
}

func NewInvalidInputErrorf(format string, args ...interface{}) *httpError {
	return NewInvalidInputError(fmt.Errorf(format, args...))
}

func NewNotFoundError(err error) *httpError {
	return newError(http.StatusNotFound, err)
}

func NewAuthenticationError(err error) *httpError {
	return newError(http.StatusForbidden, err)
}

// NewConflictError marks failures caused by local state that no longer
// matches the gateway's (stale checkout-token or locale data).
func NewConflictError(err error) *httpError {
	return newError(http.StatusConflict, err)
}

// NewBusyError marks a mutating operation that overlaps with one still in flight.
func NewBusyError(err error) *httpError {
	return newError(http.StatusTooManyRequests, err)
}

func NewInternalError(err error) *httpError {
	return newError(http.StatusInternalServerError, err)
}

func NewNotImplementedError(err error) *httpError {
	return newError(http.StatusNotImplemented, err)
}

// NewUnavailableError marks network-level failures: gateway unreachable or timed out.
func NewUnavailableError(err error) *httpError {
	return newError(http.StatusServiceUnavailable, err)
}

func GetHttpStatus(err error) int {
	if err != nil {
		myError, ok := err.(httpErrorCoder)
		if ok {
			return myError.GetHTTPErrorCode()
		}
	}

	return http.StatusInternalServerError
}

func IsInvalidInput(err error) bool {
	return GetHttpStatus(err) == http.StatusBadRequest
}

func IsNotFound(err error) bool {
	return GetHttpStatus(err) == http.StatusNotFound
}

func IsConflict(err error) bool {
	return GetHttpStatus(err) == http.StatusConflict
}

func IsBusy(err error) bool {
	return GetHttpStatus(err) == http.StatusTooManyRequests
}

func IsUnavailable(err error) bool {
	return GetHttpStatus(err) == http.StatusServiceUnavailable
}
