package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/erp/client/internal/domain/shared"
)

// maxErrorBody caps how much of an error response body is read.
const maxErrorBody = 1 << 20

// Error is a server-reported request failure: the HTTP status plus whatever
// machine code and human-readable detail the payload carried.
type Error struct {
	Status int    `json:"status"`
	Code   string `json:"code,omitempty"`
	Detail string `json:"detail"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// errorPayload covers the two error body shapes the backend produces: the
// bare auth shape {"detail": "..."} and the envelope {"error": {code,message}}.
type errorPayload struct {
	Detail string `json:"detail"`
	Error  *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// parseError turns a non-2xx response into an *Error. The body is consumed.
func parseError(resp *http.Response) *Error {
	apiErr := &Error{Status: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return apiErr
	}

	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return apiErr
	}
	if payload.Detail != "" {
		apiErr.Detail = payload.Detail
	}
	if payload.Error != nil {
		apiErr.Code = payload.Error.Code
		if apiErr.Detail == "" {
			apiErr.Detail = payload.Error.Message
		}
	}
	return apiErr
}

// asDomainError maps well-known statuses onto the shared error taxonomy so
// callers can match with errors.Is while keeping the server detail.
func (e *Error) asDomainError() error {
	switch e.Status {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", shared.ErrNotFound, e.Error())
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
		return fmt.Errorf("%w: %s", shared.ErrServer, e.Error())
	}
	return e
}
