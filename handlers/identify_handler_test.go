package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"snaphistory/middleware"
	"snaphistory/models"
	"snaphistory/services"
)

const testAPIKey = "test-key"

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	logger := zap.NewNop()

	visionService, err := services.NewVisionService(context.Background(), "", logger)
	require.NoError(t, err)

	identifyService := services.NewIdentifyService(
		services.NewExifService(logger),
		visionService,
		services.NewGeocodeService(logger),
		services.NewWikiService(logger),
		services.NewNarrativeService(services.DefaultQuoteBank()),
		services.NewHistoryService(nil, logger),
		nil,
		logger,
	)
	identifyHandler := NewIdentifyHandler(identifyService)
	historyHandler := NewHistoryHandler(services.NewHistoryService(nil, logger))

	auth := middleware.APIKeyMiddleware(map[string]struct{}{testAPIKey: {}})

	r := mux.NewRouter()
	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/health", HealthCheck).Methods("GET")
	v1.Handle("/identify", auth(http.HandlerFunc(identifyHandler.IdentifyPlace))).Methods("POST")
	v1.Handle("/history", auth(http.HandlerFunc(historyHandler.GetHistory))).Methods("GET")
	return r
}

func multipartImageRequest(t *testing.T, image []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image_file", "photo.jpg")
	require.NoError(t, err)
	_, err = part.Write(image)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/identify", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestIdentifyRejectsMissingAPIKey(t *testing.T) {
	router := newTestRouter(t)

	req := multipartImageRequest(t, []byte("jpeg"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "UNAUTHORIZED", payload["code"])
}

func TestIdentifyRejectsUnknownAPIKey(t *testing.T) {
	router := newTestRouter(t)

	req := multipartImageRequest(t, []byte("jpeg"))
	req.Header.Set("X-API-Key", "wrong-key")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestIdentifyRequiresImage(t *testing.T) {
	router := newTestRouter(t)

	form := url.Values{}
	req := httptest.NewRequest(http.MethodPost, "/v1/identify", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-API-Key", testAPIKey)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "INVALID_INPUT", payload["code"])
}

func TestIdentifyDegradedUpload(t *testing.T) {
	router := newTestRouter(t)

	// Garbage bytes and no recognition key: the endpoint still answers 200
	// with the placeholder narrative rather than failing.
	req := multipartImageRequest(t, []byte("definitely not a jpeg"))
	req.Header.Set("X-API-Key", testAPIKey)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var record models.PlaceRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &record))
	assert.Nil(t, record.Title)
	assert.Nil(t, record.Coordinates)
	assert.Equal(t, "I found this place, but couldn't locate a detailed history.", record.Description)
	assert.Equal(t, "neutral", record.Mood)
	assert.NotEmpty(t, record.EchoOfTime)
	assert.Equal(t, []string{}, record.Sources)
}

func TestIdentifyNullFieldsSerializeAsNull(t *testing.T) {
	router := newTestRouter(t)

	req := multipartImageRequest(t, []byte("garbage"))
	req.Header.Set("X-API-Key", testAPIKey)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	for _, field := range []string{"title", "country", "coordinates", "confidence", "wiki_url", "image_credit", "year_built", "architect"} {
		value, present := payload[field]
		assert.True(t, present, "field %s missing from response", field)
		assert.Nil(t, value, "field %s should be null", field)
	}
}

func TestHistoryUnavailableWithoutStore(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/history", nil)
	req.Header.Set("X-API-Key", testAPIKey)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "HISTORY_UNAVAILABLE", payload["code"])
}
