package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gatherly/event-manager/internal/errdef"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{
			name:           "bad request",
			err:            errdef.NewBadRequest("field is required"),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unauthorized",
			err:            errdef.NewUnauthorized("token not valid"),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "forbidden",
			err:            errdef.NewForbidden("administrator access denied"),
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "not found",
			err:            errdef.NewNotFound("failed to find event with id %d", 42),
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "duplicated",
			err:            errdef.NewDuplicated("user with email %q already exists", "ann@example.com"),
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "conflict",
			err:            errdef.NewConflict("event has already started"),
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "unsupported media type",
			err:            errdef.NewUnsupportedMediaType("content type text/plain is not supported"),
			expectedStatus: http.StatusUnsupportedMediaType,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			_, r := gin.CreateTestContext(recorder)
			r.Use(ErrorHandler())
			r.GET("/fail", func(c *gin.Context) {
				_ = c.Error(test.err)
			})

			r.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/fail", nil))

			assert.Equal(t, test.expectedStatus, recorder.Code)
			assert.Contains(t, recorder.Body.String(), `"success":false`)
			assert.Contains(t, recorder.Body.String(), test.err.Error())
		})
	}
}

func TestErrorHandler_UnknownErrorCarriesCorrelationID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	_, r := gin.CreateTestContext(recorder)
	r.Use(CorrelationID())
	r.Use(ErrorHandler())
	r.GET("/fail", func(c *gin.Context) {
		_ = c.Error(assert.AnError)
	})

	r.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/fail", nil))

	require.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "an unexpected error occurred, mention id ")
	assert.NotContains(t, recorder.Body.String(), assert.AnError.Error())
}

func TestErrorHandler_NoError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	_, r := gin.CreateTestContext(recorder)
	r.Use(ErrorHandler())
	r.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	r.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"success":true`)
}
