package util

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/odezzy/wall_api/util/tracing"
	"github.com/odezzy/wall_api/util/values"
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
	case values.BadRequestBody:
		return http.StatusBadRequest
	case values.Unprocessable:
		return http.StatusUnprocessableEntity
	case values.NotAllowed:
		return http.StatusForbidden
	case values.Conflict:
		return http.StatusConflict
	case values.NotFound:
		return http.StatusNotFound
	case values.NotAuthorised, values.TokenExpired:
		return http.StatusUnauthorized
	default:
		return http.StatusOK
	}
}

// DecodeJSONBody ...
func DecodeJSONBody(tc *tracing.Context, body io.ReadCloser, target interface{}) error {
	defer func() {
		_ = body.Close()
	}()

	if body == nil {
		return fmt.Errorf("missing request body for request: %v", tc)
	}

	if err := json.NewDecoder(body).Decode(&target); err != nil {
		return errors.Wrapf(err, "Error parsing json body for request: %v", tc)
	}

	return nil
}

func NotBlank(value string) bool {
	return strings.TrimSpace(value) != ""
}

func IsURL(value string) bool {
	u, err := url.ParseRequestURI(value)
	if err != nil {
		return false
	}

	return u.Scheme != "" && u.Host != ""
}

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

// string to UUID
func StringToUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}
