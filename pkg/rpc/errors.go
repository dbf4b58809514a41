package rpc

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// APIError is an error body returned by the remote API with a non-200
// status. The nested code/name pair identifies the chain-side failure.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  struct {
		Code int64  `json:"code"`
		Name string `json:"name"`
		What string `json:"what"`
	} `json:"error"`
}

func (e *APIError) Error() string {
	if e.Detail.Name != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.Detail.Code, e.Detail.Name, e.Detail.What)
	}
	return fmt.Sprintf("api error %d: %s", e.Code, e.Message)
}

// IsTimeout reports whether err is a per-request deadline or network
// timeout, the one failure class the scanners retry forever.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// IsAPIError reports whether err is a chain-side application error, as
// opposed to a transport failure.
func IsAPIError(err error) bool {
	var ae *APIError
	return errors.As(err, &ae)
}
