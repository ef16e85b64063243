package util

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/bwise1/lifegroup_locator/util/tracing"
	"github.com/bwise1/lifegroup_locator/util/values"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// StatusCode returns the status code represented
// by the specified status. Note that this function
// returns a status code of 200 by default
func StatusCode(status string) int {
	switch status {
	case values.Error, values.SystemErr:
		return http.StatusInternalServerError
	case values.Created:
		return http.StatusCreated
	case values.BadRequestBody, values.ValidationFailed:
		return http.StatusBadRequest
	case values.Unprocessable:
		return http.StatusUnprocessableEntity
	case values.NotAllowed:
		return http.StatusForbidden
	case values.Conflict:
		return http.StatusConflict
	case values.NotFound, values.AddressNotFound:
		return http.StatusNotFound
	case values.NotAuthorised:
		return http.StatusUnauthorized
	case values.DataUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusOK
	}
}

// DecodeJSONBody ...
func DecodeJSONBody(tc *tracing.Context, body io.ReadCloser, target interface{}) error {
	if body == nil {
		return fmt.Errorf("missing request body for request: %v", tc)
	}
	defer func() {
		_ = body.Close()
	}()

	if err := json.NewDecoder(body).Decode(target); err != nil {
		return errors.Wrapf(err, "Error parsing json body for request: %v", tc)
	}

	return nil
}

func GenerateUUID() uuid.UUID {
	return uuid.New()
}
