package net

import (
	"net/http"

	perr "scanwedge/internal/platform/errors"
)

// Wire is the JSON envelope. Success envelopes carry Data, failures carry Code and Error.
type Wire struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

func head(status int, reqID string) Wire {
	return Wire{StatusCode: status, Status: http.StatusText(status), RequestID: reqID}
}

// Reply builds a success envelope for status
func Reply(status int, data any, reqID string) Wire {
	w := head(status, reqID)
	w.Data = data
	return w
}

// Error maps err to its status and error envelope. A nil error is a 200.
func Error(err error, reqID string) (int, Wire) {
	if err == nil {
		return http.StatusOK, head(http.StatusOK, reqID)
	}
	status := perr.HTTPStatus(err)
	e := perr.WireFrom(err)
	w := head(status, reqID)
	w.Code, w.Error, w.Field = e.Code, e.Message, e.Field
	return status, w
}
