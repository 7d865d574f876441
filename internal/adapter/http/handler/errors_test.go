package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijayakumarsahana16-san/phishproof/internal/usecase"
)

// bindError runs body through the same binding as the analyze handler
func bindError(t *testing.T, body string) error {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("POST", "/analyze", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var input usecase.AnalyzeInput
	err := c.ShouldBindJSON(&input)
	require.Error(t, err)
	return err
}

func TestMapRequestError(t *testing.T) {
	tests := []struct {
		name               string
		body               string
		expectedStatusCode int
		expectedCode       string
		expectedMessage    string
	}{
		{
			name:               "missing text",
			body:               `{}`,
			expectedStatusCode: http.StatusBadRequest,
			expectedCode:       "INVALID_REQUEST",
			expectedMessage:    "text is required",
		},
		{
			name:               "null text",
			body:               `{"text": null}`,
			expectedStatusCode: http.StatusBadRequest,
			expectedCode:       "INVALID_REQUEST",
			expectedMessage:    "text is required",
		},
		{
			name:               "wrong type",
			body:               `{"text": 42}`,
			expectedStatusCode: http.StatusBadRequest,
			expectedCode:       "INVALID_REQUEST",
			expectedMessage:    "text must be a string",
		},
		{
			name:               "malformed json",
			body:               `{"text": `,
			expectedStatusCode: http.StatusBadRequest,
			expectedCode:       "INVALID_JSON",
			expectedMessage:    "request body must be valid JSON",
		},
		{
			name:               "empty body",
			body:               ``,
			expectedStatusCode: http.StatusBadRequest,
			expectedCode:       "INVALID_JSON",
			expectedMessage:    "request body must be valid JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MapRequestError(bindError(t, tt.body))

			assert.Equal(t, tt.expectedStatusCode, result.StatusCode)
			assert.Equal(t, tt.expectedCode, result.Code)
			assert.Equal(t, tt.expectedMessage, result.Message)
		})
	}

	t.Run("body too large", func(t *testing.T) {
		result := MapRequestError(&http.MaxBytesError{Limit: 10})

		assert.Equal(t, http.StatusRequestEntityTooLarge, result.StatusCode)
		assert.Equal(t, "PAYLOAD_TOO_LARGE", result.Code)
	})

	t.Run("unknown error", func(t *testing.T) {
		result := MapRequestError(errors.New("something"))

		assert.Equal(t, http.StatusBadRequest, result.StatusCode)
		assert.Equal(t, "invalid request", result.Message)
	})
}

func TestHandleRequestError(t *testing.T) {
	router := gin.New()
	router.GET("/test", func(c *gin.Context) {
		HandleRequestError(c, &http.MaxBytesError{Limit: 1})
	})

	req, _ := http.NewRequest("GET", "/test", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	var response Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "PAYLOAD_TOO_LARGE", response.Error.Code)
}
