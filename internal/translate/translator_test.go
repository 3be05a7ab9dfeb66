package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_Translate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/translate", r.URL.Path)
		var req translateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Olá mundo", req.Text)
		assert.Equal(t, "pt", req.SourceLanguageCode)
		assert.Equal(t, "en", req.TargetLanguageCode)
		_ = json.NewEncoder(w).Encode(translateResponse{TranslatedText: "Hello world"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second, 0)
	got, err := c.Translate(context.Background(), "Olá mundo", "pt", "en")

	require.NoError(t, err)
	assert.Equal(t, "Hello world", got)
}

func TestHTTPClient_EmptyTranslation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"translated_text":""}`))
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL, time.Second, 0).Translate(context.Background(), "x", "pt", "en")
	assert.ErrorContains(t, err, "empty translation")
}

func TestHTTPClient_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL, time.Second, 0).Translate(context.Background(), "x", "pt", "en")
	assert.ErrorContains(t, err, "502")
}
