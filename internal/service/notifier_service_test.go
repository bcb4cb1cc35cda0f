package service

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

func newTestNotifier(url string, timeout time.Duration) *webhookNotifier {
	return &webhookNotifier{url: url, client: &http.Client{Timeout: timeout}}
}

func testPayload() *DeploymentPayload {
	scheduled := time.Date(2026, time.April, 1, 8, 0, 0, 0, time.UTC)
	return &DeploymentPayload{
		ContentID:        7,
		Filename:         "abc123.png",
		FilePath:         "uploads/abc123.png",
		ContentType:      "image",
		Caption:          "hello",
		OriginalFilename: "photo.png",
		ScheduledTime:    &scheduled,
	}
}

func TestNotifySuccessOn2xx(t *testing.T) {
	var received DeploymentPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := newTestNotifier(server.URL, time.Second)

	result, err := notifier.Notify(context.Background(), testPayload())
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, http.StatusOK, result.StatusCode)

	assert.Equal(t, int64(7), received.ContentID)
	assert.Equal(t, "abc123.png", received.Filename)
	assert.Equal(t, "photo.png", received.OriginalFilename)
	assert.Equal(t, "image", received.ContentType)
}

func TestNotifyErrorCodeIsNotAGoError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	notifier := newTestNotifier(server.URL, time.Second)

	result, err := notifier.Notify(context.Background(), testPayload())
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, http.StatusBadGateway, result.StatusCode)
}

func TestNotifyTimeoutSurfacesTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	notifier := newTestNotifier(server.URL, 20*time.Millisecond)

	result, err := notifier.Notify(context.Background(), testPayload())
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestNotifyUnreachableEndpoint(t *testing.T) {
	notifier := newTestNotifier("http://127.0.0.1:1/webhook", 200*time.Millisecond)

	result, err := notifier.Notify(context.Background(), testPayload())
	assert.Error(t, err)
	assert.Nil(t, result)
}
