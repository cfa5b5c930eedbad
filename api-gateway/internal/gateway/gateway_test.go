package gateway_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"restaurant-reviews/api-gateway/internal/gateway"
	"restaurant-reviews/api-gateway/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func okResponse(status int, body string) *http.Response {
	resp := &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
	resp.Header.Set("Content-Type", "application/json")
	return resp
}

func TestGateway_HealthCheck(t *testing.T) {
	gw := gateway.NewGateway(gateway.Config{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	gw.HealthCheck(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var body map[string]string
	json.NewDecoder(rr.Body).Decode(&body)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "api-gateway", body["service"])
}

func TestGateway_RouteHandler_ReviewServicePaths(t *testing.T) {
	tests := []struct {
		name         string
		method       string
		path         string
		expectedURL  string
		expectedCode int
	}{
		{
			name:         "restaurant_list",
			method:       http.MethodGet,
			path:         "/api/restaurants",
			expectedURL:  "http://review-svc/api/restaurants",
			expectedCode: http.StatusOK,
		},
		{
			name:         "restaurant_qrcode",
			method:       http.MethodGet,
			path:         "/api/restaurants/2/qrcode",
			expectedURL:  "http://review-svc/api/restaurants/2/qrcode",
			expectedCode: http.StatusOK,
		},
		{
			name:         "create_review",
			method:       http.MethodPost,
			path:         "/api/reviews",
			expectedURL:  "http://review-svc/api/reviews",
			expectedCode: http.StatusCreated,
		},
		{
			name:         "purge_user",
			method:       http.MethodDelete,
			path:         "/api/identity/users/bob",
			expectedURL:  "http://review-svc/api/identity/users/bob",
			expectedCode: http.StatusOK,
		},
		{
			name:         "short_alias",
			method:       http.MethodGet,
			path:         "/api/r/7",
			expectedURL:  "http://review-svc/api/restaurants/7",
			expectedCode: http.StatusOK,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockClient := mocks.NewHTTPClient(t)
			gw := gateway.NewGateway(gateway.Config{ReviewSvcURL: "http://review-svc"}, mockClient)

			mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
				return req.Method == testCase.method && req.URL.String() == testCase.expectedURL
			})).Return(okResponse(testCase.expectedCode, `{}`), nil).Once()

			req := httptest.NewRequest(testCase.method, testCase.path, strings.NewReader(`{}`))
			rr := httptest.NewRecorder()

			gw.RouteHandler(rr, req)

			assert.Equal(t, testCase.expectedCode, rr.Code)
		})
	}
}

func TestGateway_RouteHandler_ForwardsHeadersAndQuery(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(gateway.Config{ReviewSvcURL: "http://review-svc"}, mockClient)

	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.URL.RawQuery == "page=2" &&
			req.Header.Get("Authorization") == "Bearer abc" &&
			req.Header.Get("Idempotency-Key") == "k1"
	})).Return(okResponse(http.StatusOK, `[{"id":1,"name":"The Italian Kitchen"}]`), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/restaurants?page=2", nil)
	req.Header.Set("Authorization", "Bearer abc")
	req.Header.Set("Idempotency-Key", "k1")
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "The Italian Kitchen")
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

func TestGateway_RouteHandler_UnknownAPI(t *testing.T) {
	gw := gateway.NewGateway(gateway.Config{}, nil)

	for _, path := range []string{"/api/unknown", "/api/restaurantsx", "/api/r/"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()

		gw.RouteHandler(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code, path)
	}
}

func TestGateway_RouteHandler_ProxyError(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(gateway.Config{ReviewSvcURL: "http://invalid"}, mockClient)

	mockClient.On("Do", mock.Anything).Return(nil, errors.New("connection failed")).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/restaurants", nil)
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
}
