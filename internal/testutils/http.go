package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonContentType = "application/json; charset=utf-8"

// HTTPTestSuite drives a gin router in-process
type HTTPTestSuite struct {
	Router *gin.Engine
}

// RequestOption customizes a request built by MakeRequest
type RequestOption func(*http.Request)

// WithHeader sets a request header
func WithHeader(key, value string) RequestOption {
	return func(req *http.Request) { req.Header.Set(key, value) }
}

// WithCookie attaches a cookie, e.g. a session cookie from a previous response
func WithCookie(cookie *http.Cookie) RequestOption {
	return func(req *http.Request) {
		if cookie != nil {
			req.AddCookie(cookie)
		}
	}
}

// SetupHTTPTest returns a suite over an empty router in test mode
func SetupHTTPTest() *HTTPTestSuite {
	gin.SetMode(gin.TestMode)
	return &HTTPTestSuite{Router: gin.New()}
}

// MakeRequest serves one request; a non-nil body is sent as JSON
func (s *HTTPTestSuite) MakeRequest(method, url string, body interface{}, opts ...RequestOption) *httptest.ResponseRecorder {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, url, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, opt := range opts {
		opt(req)
	}

	recorder := httptest.NewRecorder()
	s.Router.ServeHTTP(recorder, req)
	return recorder
}

// AssertJSONResponse checks the status and content type, then decodes the body into target when non-nil
func AssertJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, expectedStatus int, target interface{}) {
	t.Helper()
	assert.Equal(t, expectedStatus, recorder.Code, recorder.Body.String())
	assert.Equal(t, jsonContentType, recorder.Header().Get("Content-Type"))

	if target != nil {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), target))
	}
}

// AssertErrorResponse checks an {"error": ...} body; an empty message only checks the status
func AssertErrorResponse(t *testing.T, recorder *httptest.ResponseRecorder, expectedStatus int, expectedMessage string) {
	t.Helper()
	assert.Equal(t, expectedStatus, recorder.Code, recorder.Body.String())

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	if expectedMessage != "" {
		assert.Contains(t, body.Error, expectedMessage)
	}
}

// AssertValidationDetails checks for a 400 whose details name every given field
func AssertValidationDetails(t *testing.T, recorder *httptest.ResponseRecorder, fields ...string) {
	t.Helper()
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var body struct {
		Details []struct {
			Field string `json:"field"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	got := make([]string, 0, len(body.Details))
	for _, d := range body.Details {
		got = append(got, d.Field)
	}
	for _, field := range fields {
		assert.Contains(t, got, field)
	}
}
