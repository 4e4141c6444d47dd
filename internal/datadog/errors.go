package datadog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	dd "github.com/DataDog/datadog-api-client-go/v2/api/datadog"

	"alertstate/internal/monitor"
)

type errorBody struct {
	Errors []string `json:"errors"`
}

// classify turns an SDK error into a *monitor.APIError, reading the status
// from the response and the messages from the {"errors": [...]} body.
// Cancellation is returned unchanged.
func classify(err error, resp *http.Response) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	apiErr := &monitor.APIError{Err: err}
	if resp != nil {
		apiErr.StatusCode = resp.StatusCode
	}

	var openAPIErr dd.GenericOpenAPIError
	if errors.As(err, &openAPIErr) {
		var body errorBody
		if json.Unmarshal(openAPIErr.Body(), &body) == nil {
			apiErr.Errors = body.Errors
		}
	}
	return apiErr
}
