package handlers

import (
	"errors"
	"sync"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink/internal/shortener"
	"go.uber.org/zap"
)

// ErrorBody is the JSON error envelope shared by every JSON endpoint.
type ErrorBody struct {
	Status  int      `doc:"HTTP status code"           example:"400"                            json:"status"`
	Message string   `doc:"Human readable message"     example:"invalid url: must not be empty" json:"error"`
	Details []string `doc:"Individual problem reports"                                          json:"details,omitempty"`
}

func (e *ErrorBody) Error() string {
	return e.Message
}

func (e *ErrorBody) GetStatus() int {
	return e.Status
}

var installEnvelope sync.Once

// UseErrorEnvelope makes huma render every error as an ErrorBody.
// It replaces huma.NewError process wide, so call it once while building the API.
func UseErrorEnvelope() {
	installEnvelope.Do(func() {
		huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
			body := &ErrorBody{Status: status, Message: msg}

			for _, err := range errs {
				if err != nil {
					body.Details = append(body.Details, err.Error())
				}
			}

			return body
		}
	})
}

// toHTTPError maps service errors onto HTTP status codes.
func toHTTPError(err error, logger *zap.Logger) error {
	var verr *shortener.ValidationError

	switch {
	case errors.As(err, &verr):
		return huma.Error400BadRequest(verr.Error())
	case errors.Is(err, shortener.ErrNotFound):
		return huma.Error404NotFound("short link not found")
	case errors.Is(err, shortener.ErrGenerationExhausted):
		return huma.Error500InternalServerError("could not allocate a short id")
	default:
		logger.Error("request failed", zap.Error(err))

		return huma.Error500InternalServerError("internal server error")
	}
}
