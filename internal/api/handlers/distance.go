package handlers

import (
	"net/http"
	"run-tracker-service/internal/api/dto"
	"run-tracker-service/internal/domain"
	"run-tracker-service/internal/geo"
	"strconv"
	"strings"
)

// Distance serves GET /api/distance?lat1=&lon1=&lat2=&lon2= with the
// great-circle distance in kilometers. Coordinates must be in range.
func Distance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	q := r.URL.Query()
	var vals [4]float64
	for i, key := range []string{"lat1", "lon1", "lat2", "lon2"} {
		raw := strings.TrimSpace(q.Get(key))
		if raw == "" {
			writeError(w, r, http.StatusBadRequest, key+" is required")
			return
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, key+" must be a number")
			return
		}
		vals[i] = v
	}

	a := domain.Coordinates{Lat: vals[0], Lon: vals[1]}
	b := domain.Coordinates{Lat: vals[2], Lon: vals[3]}
	for _, c := range []domain.Coordinates{a, b} {
		if err := geo.Validate(c); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
	}

	writeJSON(w, r, http.StatusOK, dto.DistanceResponse{DistanceKm: geo.Distance(a, b)})
}
