package notify

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

func TestClientSend(t *testing.T) {
	var got sendRequest
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/send", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		BaseURL:      srv.URL,
		APIKey:       "test-key",
		ChannelID:    "chan-1",
		Namespace:    "ns-1",
		TemplateName: "service_notification",
	}, srv.Client())

	msg := Message{
		Date:           time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC),
		ScooterID:      "EBC 123",
		CurrentKm:      12500,
		NextKm:         16500,
		ServiceDetails: "oil change",
		CategoryName:   "125cc",
	}
	require.NoError(t, client.Send(context.Background(), msg, "+35799000001"))

	assert.Equal(t, "AccessKey test-key", gotAuth)
	assert.Equal(t, "+35799000001", got.To)
	assert.Equal(t, "chan-1", got.ChannelID)
	assert.Equal(t, "hsm", got.Type)

	hsm := got.Content.HSM
	assert.Equal(t, "ns-1", hsm.Namespace)
	assert.Equal(t, "service_notification", hsm.TemplateName)
	assert.Equal(t, "en", hsm.Language.Code)
	assert.Equal(t, "deterministic", hsm.Language.Policy)

	require.Len(t, hsm.Components, 1)
	params := hsm.Components[0].Parameters
	require.Len(t, params, 5)
	assert.Equal(t, "07/03/2025", params[0].Text)
	assert.Equal(t, "EBC 123", params[1].Text)
	assert.Equal(t, "12,500", params[2].Text)
}

func TestClientSend_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"errors": []map[string]string{{"description": "template not found"}},
		})
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL, APIKey: "k"}, srv.Client())

	err := client.Send(context.Background(), testMessage("EBC 123", "125cc"), "+35799000001")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template not found")
	assert.Contains(t, err.Error(), "422")
}
