package expo_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/beacon-api/external/expo"
)

func TestPush(t *testing.T) {
	var received []map[string]interface{}
	var authorization string
	requests := 0

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		authorization = r.Header.Get("Authorization")
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		b, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(b, &received))

		_, _ = w.Write([]byte(`{"data": [
			{"status": "ok", "id": "ticket-1"},
			{"status": "error", "message": "not registered", "details": {"error": "DeviceNotRegistered"}}
		]}`))
	}))
	defer ts.Close()

	c := expo.NewClient(ts.Client(), ts.URL, "secret")
	tickets, err := c.Push(context.Background(), []expo.Message{
		{
			To:        "ExponentPushToken[a]",
			Title:     "Emergency: Fire",
			Body:      "Location: 1.0000, 2.0000",
			Data:      map[string]interface{}{"id": "e1"},
			Sound:     expo.SoundDefault,
			Priority:  expo.PriorityHigh,
			ChannelID: "emergency",
		},
		{To: "ExponentPushToken[b]"},
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, requests)
	assert.Equal(t, "Bearer secret", authorization)

	assert.Len(t, received, 2)
	assert.Equal(t, "ExponentPushToken[a]", received[0]["to"])
	assert.Equal(t, "Emergency: Fire", received[0]["title"])
	assert.Equal(t, "emergency", received[0]["channelId"])
	assert.Equal(t, "high", received[0]["priority"])
	assert.Equal(t, "default", received[0]["sound"])
	assert.Equal(t, map[string]interface{}{"id": "e1"}, received[0]["data"])

	assert.Len(t, tickets, 2)
	assert.True(t, tickets[0].OK())
	assert.Equal(t, "ticket-1", tickets[0].ID)
	assert.False(t, tickets[1].OK())
	assert.Equal(t, "DeviceNotRegistered", tickets[1].Details["error"])
}

func TestPushGatewayError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors": [{"code": "VALIDATION_ERROR", "message": "\"to\" is required"}]}`))
	}))
	defer ts.Close()

	_, err := expo.NewClient(nil, ts.URL, "").Push(context.Background(), []expo.Message{{}})
	assert.True(t, errors.Is(err, expo.ErrResponseStatus))
	assert.Contains(t, err.Error(), "VALIDATION_ERROR")
}

func TestPushUnexpectedStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("bad gateway"))
	}))
	defer ts.Close()

	_, err := expo.NewClient(nil, ts.URL, "").Push(context.Background(), []expo.Message{{To: "t"}})
	assert.True(t, errors.Is(err, expo.ErrResponseStatus))
}

func TestPushNoMessages(t *testing.T) {
	_, err := expo.NewClient(nil, "http://127.0.0.1:1", "").Push(context.Background(), nil)
	assert.Equal(t, expo.ErrEmptyMessages, err)
}
