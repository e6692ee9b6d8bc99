package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"softskill-server/internal/apperr"
	"softskill-server/internal/clients"
	"softskill-server/internal/metrics"
)

func TestRequireIdentity(t *testing.T) {
	e := echo.New()
	e.GET("/whoami", func(c echo.Context) error {
		return c.String(http.StatusOK, requestEmail(c))
	}, requireIdentity)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(identityHeader, "dev@example.com")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dev@example.com", rec.Body.String())
}

func TestHTTPErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{apperr.InvalidArgumentf("bad input"), http.StatusBadRequest},
		{apperr.ErrUnauthenticated, http.StatusUnauthorized},
		{apperr.NotFoundf("no such interview"), http.StatusNotFound},
		{apperr.Upstreamf("model down"), http.StatusBadGateway},
		{assert.AnError, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, httpError(tc.err).Code)
	}
}

func TestHealth(t *testing.T) {
	s := New(nil, nil, nil, nil, metrics.New(), logrus.New())
	e := echo.New()
	s.Register(e)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestProcessAudio(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transcribe", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"text": "I think um tests matter",
			"language": "en",
			"segments": [{"start": 0.0, "end": 10.0, "text": "I think um tests matter"}]
		}`))
	}))
	defer backend.Close()

	s := New(nil, nil, clients.NewTranscriber(backend.URL), nil, metrics.New(), logrus.New())
	e := echo.New()
	s.Register(e)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("audio", "answer.wav")
	require.NoError(t, err)
	_, err = fw.Write([]byte("fake-audio"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/processAudio", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "en", body["language"])
	assert.Equal(t, "I think um tests matter", body["transcript"])
	// 5 words over 10s is 30 words per minute, one filler out of five words.
	assert.InDelta(t, 30.0, body["speechRateWPM"].(float64), 1e-9)
	assert.InDelta(t, 0.2, body["fillerRate"].(float64), 1e-9)
	assert.EqualValues(t, 1, body["fillerCount"])
}

func TestProcessAudioMissingFile(t *testing.T) {
	s := New(nil, nil, nil, nil, metrics.New(), logrus.New())
	e := echo.New()
	s.Register(e)

	req := httptest.NewRequest(http.MethodPost, "/processAudio", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
