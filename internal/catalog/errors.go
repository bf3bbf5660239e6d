package catalog

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed fetch.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindTransport
	KindHTTPStatus
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindHTTPStatus:
		return "http_status"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// TransportError reports that the request could not be executed or its body
// could not be read.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPStatusError reports a non-2xx response.
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.URL, e.StatusCode)
}

// DecodeError reports a body that could not be shaped into a Response.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return "decode response: " + e.Reason
	}
	if e.Reason == "" {
		return fmt.Sprintf("decode response: %v", e.Err)
	}
	return fmt.Sprintf("decode response: %s: %v", e.Reason, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// KindOf maps an error returned by Fetch onto its ErrorKind.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	var transport *TransportError
	if errors.As(err, &transport) {
		return KindTransport
	}
	var status *HTTPStatusError
	if errors.As(err, &status) {
		return KindHTTPStatus
	}
	var decode *DecodeError
	if errors.As(err, &decode) {
		return KindDecode
	}
	return KindUnknown
}
