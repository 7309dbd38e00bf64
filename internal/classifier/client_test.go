package classifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testFeatureList() *FeatureList {
	return &FeatureList{Names: []string{"Mean_Fixation_Duration", "Num_of_Fixations", "Mean_Saccade_Duration", "Bpm"}}
}

func newTestClient(t *testing.T, handler http.Handler, retries int) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(ClientConfig{
		BaseURL:    srv.URL,
		Timeout:    2 * time.Second,
		MaxRetries: retries,
		RetryDelay: time.Millisecond,
	}, testFeatureList(), zap.NewNop())
}

func TestPredictSuccess(t *testing.T) {
	var received map[string]float64
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/predict", r.URL.Path)

		var req struct {
			Features map[string]float64 `json:"features"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		received = req.Features

		json.NewEncoder(w).Encode(map[string]int{"state_id": 2})
	}), 0)

	prediction, err := client.Predict(context.Background(), map[string]float64{
		"Mean_Fixation_Duration": 150,
		"num_of_fixations":       3,
		"Click_Count":            1, // not in the persisted list, must not be sent
	})
	require.NoError(t, err)

	assert.Equal(t, 2, prediction.StateID)
	assert.Equal(t, "Confusion", prediction.Label)
	assert.True(t, prediction.InterventionNeeded)

	// The wire payload covers exactly the persisted list, zero-filled.
	assert.Equal(t, map[string]float64{
		"Mean_Fixation_Duration": 150,
		"Num_of_Fixations":       3,
		"Mean_Saccade_Duration":  0,
		"Bpm":                    0,
	}, received)
}

func TestPredictRetriesTransientFailure(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "overloaded", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]int{"state_id": 1})
	}), 2)

	prediction, err := client.Predict(context.Background(), map[string]float64{"Bpm": 70})
	require.NoError(t, err)
	assert.Equal(t, 1, prediction.StateID)
	assert.False(t, prediction.InterventionNeeded)
	assert.Equal(t, int32(2), calls.Load())
}

func TestPredictExhaustsRetries(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}), 1)

	_, err := client.Predict(context.Background(), map[string]float64{"Bpm": 70})
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	healthy := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}), 0)
	assert.NoError(t, healthy.Health(context.Background()))

	sick := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}), 0)
	assert.Error(t, sick.Health(context.Background()))
}
