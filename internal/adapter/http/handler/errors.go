package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ErrorResponse represents a structured error response
type ErrorResponse struct {
	StatusCode int
	Code       string
	Message    string
}

// MapRequestError maps request decoding and validation errors to HTTP
// error responses.
func MapRequestError(err error) ErrorResponse {
	var (
		maxBytesErr   *http.MaxBytesError
		syntaxErr     *json.SyntaxError
		typeErr       *json.UnmarshalTypeError
		validationErr validator.ValidationErrors
	)

	switch {
	case errors.As(err, &maxBytesErr):
		return ErrorResponse{
			StatusCode: http.StatusRequestEntityTooLarge,
			Code:       "PAYLOAD_TOO_LARGE",
			Message:    "request body too large",
		}
	case errors.As(err, &validationErr):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       "INVALID_REQUEST",
			Message:    describeValidation(validationErr),
		}
	case errors.As(err, &typeErr):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       "INVALID_REQUEST",
			Message:    typeErr.Field + " must be a " + typeErr.Type.String(),
		}
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       "INVALID_JSON",
			Message:    "request body must be valid JSON",
		}
	default:
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       "INVALID_REQUEST",
			Message:    "invalid request",
		}
	}
}

// HandleRequestError sends the mapped error response for err
func HandleRequestError(c *gin.Context, err error) {
	_ = c.Error(err)
	errResp := MapRequestError(err)
	respondError(c, errResp.StatusCode, errResp.Code, errResp.Message)
}

func describeValidation(errs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		default:
			msgs = append(msgs, field+" failed "+fe.Tag()+" validation")
		}
	}
	return strings.Join(msgs, "; ")
}
