package dto

import (
	"encoding/json"
	"testing"

	"run-tracker-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberAcceptsNumbersAndStrings(t *testing.T) {
	var req CreateRunRequest
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2025-10-25","distance_km":"5.2","duration_min":32}`), &req))

	require.NotNil(t, req.DistanceKm)
	assert.Equal(t, 5.2, req.DistanceKm.Float())
	n, err := req.DurationMin.Int()
	require.NoError(t, err)
	assert.Equal(t, 32, n)

	assert.Error(t, json.Unmarshal([]byte(`{"distance_km":"five"}`), &req))
	assert.Error(t, json.Unmarshal([]byte(`{"distance_km":true}`), &req))
}

func TestNumberInt(t *testing.T) {
	n, err := NewNumber(32.5).Int()
	require.NoError(t, err)
	assert.Equal(t, 32, n, "JSON numbers truncate toward zero")

	n, err = NewNumber(-3).Int()
	require.NoError(t, err)
	assert.Equal(t, -3, n)

	_, err = NewNumber(1e20).Int()
	var ne *NumberError
	assert.ErrorAs(t, err, &ne)
}

func TestNumberIntQuotedFraction(t *testing.T) {
	var req CreateRunRequest
	require.NoError(t, json.Unmarshal([]byte(`{"duration_min":"32.5"}`), &req))

	_, err := req.DurationMin.Int()
	var ne *NumberError
	assert.ErrorAs(t, err, &ne)

	require.NoError(t, json.Unmarshal([]byte(`{"duration_min":"32"}`), &req))
	n, err := req.DurationMin.Int()
	require.NoError(t, err)
	assert.Equal(t, 32, n)
}

func TestNumberDecodeErrorIsTyped(t *testing.T) {
	var req CreateRunRequest
	err := json.Unmarshal([]byte(`{"distance_km":"five"}`), &req)

	var ne *NumberError
	assert.ErrorAs(t, err, &ne)
}

func TestGPSRunRequestPath(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		want   string
		wantOK bool
	}{
		{"encoded string", `{"path_coordinates":"[[1,2],[3,4]]"}`, "[[1,2],[3,4]]", true},
		{"inline array", `{"path_coordinates":[[1, 2], [3, 4]]}`, "[[1,2],[3,4]]", true},
		{"missing", `{}`, "", false},
		{"null", `{"path_coordinates":null}`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req GPSRunRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			got, ok, err := req.Path()
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewRunResponseRoundsDistance(t *testing.T) {
	res := NewRunResponse(&domain.Run{ID: 1, UserID: 2, Date: "2025-10-25", DistanceKm: 3.136, DurationMin: 20})

	assert.Equal(t, 3.14, res.DistanceKm)
	assert.Equal(t, "06:23 / km", res.Pace)
	assert.Nil(t, res.PathCoordinates)
}
