package api

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/cityair/cityair-server/internal/aqi"
	"github.com/cityair/cityair-server/internal/database"
	"github.com/cityair/cityair-server/pkg/config"
)

// Server exposes the latest AQI data over HTTP. It serves plain data
// records; all presentation (colors, charts, maps) is the client's concern.
type Server struct {
	db       *database.DB
	forecast config.ForecastConfig
	port     int
}

// NewServer creates a new API server
func NewServer(db *database.DB, apiCfg config.APIConfig, forecastCfg config.ForecastConfig) *Server {
	return &Server{
		db:       db,
		forecast: forecastCfg,
		port:     apiCfg.Port,
	}
}

// ListenAndServe starts the HTTP listener (blocking)
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf(":%d", s.port)
	fmt.Printf("API server listening on %s\n", addr)
	return fasthttp.ListenAndServe(addr, s.handleRequest)
}

func (s *Server) handleRequest(ctx *fasthttp.RequestCtx) {
	if !ctx.IsGet() {
		s.writeError(ctx, fasthttp.StatusMethodNotAllowed, "only GET is supported")
		return
	}

	switch string(ctx.Path()) {
	case "/aqi":
		s.handleAQI(ctx)
	case "/healthrisk":
		s.handleHealthRisk(ctx)
	case "/forecast":
		s.handleForecast(ctx)
	default:
		s.writeError(ctx, fasthttp.StatusNotFound, "unknown path")
	}
}

// AQIResponse is the payload for GET /aqi
type AQIResponse struct {
	Zone      string    `json:"zone"`
	Timestamp time.Time `json:"timestamp"`
	Value     int       `json:"value"`
	Category  string    `json:"category"`
	Dominant  string    `json:"dominant"`
}

func (s *Server) handleAQI(ctx *fasthttp.RequestCtx) {
	snapshot, ok := s.latestSnapshot(ctx)
	if !ok {
		return
	}

	s.writeJSON(ctx, &AQIResponse{
		Zone:      snapshot.Zone,
		Timestamp: snapshot.Timestamp,
		Value:     snapshot.Value,
		Category:  snapshot.Category,
		Dominant:  snapshot.Dominant,
	})
}

func (s *Server) handleHealthRisk(ctx *fasthttp.RequestCtx) {
	group, err := aqi.ParseGroup(string(ctx.QueryArgs().Peek("group")))
	if err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	snapshot, ok := s.latestSnapshot(ctx)
	if !ok {
		return
	}

	result := snapshotResult(snapshot)
	profile, err := aqi.HealthRisk(result, group)
	if err != nil {
		s.writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(ctx, profile)
}

// ForecastResponse is the payload for GET /forecast
type ForecastResponse struct {
	Zone   string              `json:"zone"`
	Based  time.Time           `json:"based_on"`
	Points []aqi.ForecastPoint `json:"points"`
}

func (s *Server) handleForecast(ctx *fasthttp.RequestCtx) {
	hours := s.forecast.HorizonHours
	if raw := string(ctx.QueryArgs().Peek("hours")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > s.forecast.HorizonHours {
			s.writeError(ctx, fasthttp.StatusBadRequest,
				fmt.Sprintf("hours must be an integer in [1,%d]", s.forecast.HorizonHours))
			return
		}
		hours = parsed
	}

	snapshot, ok := s.latestSnapshot(ctx)
	if !ok {
		return
	}

	result := snapshotResult(snapshot)
	noise := aqi.RandomNoise(rand.New(rand.NewSource(time.Now().UnixNano())), s.forecast.NoiseAmplitude)

	points, err := aqi.Forecast(result, hours, time.Now().Hour(), noise)
	if err != nil {
		s.writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(ctx, &ForecastResponse{
		Zone:   snapshot.Zone,
		Based:  snapshot.Timestamp,
		Points: points,
	})
}

// latestSnapshot resolves the zone query arg to its most recent snapshot,
// writing the error response itself on failure
func (s *Server) latestSnapshot(ctx *fasthttp.RequestCtx) (*database.AQISnapshot, bool) {
	zone := string(ctx.QueryArgs().Peek("zone"))
	if zone == "" {
		s.writeError(ctx, fasthttp.StatusBadRequest, "zone is required")
		return nil, false
	}

	snapshot, err := s.db.GetLatestAQISnapshot(zone)
	if err != nil {
		s.writeError(ctx, fasthttp.StatusInternalServerError, "failed to load snapshot")
		return nil, false
	}
	if snapshot == nil {
		s.writeError(ctx, fasthttp.StatusNotFound, fmt.Sprintf("no data for zone %s", zone))
		return nil, false
	}

	return snapshot, true
}

func snapshotResult(snapshot *database.AQISnapshot) *aqi.Result {
	return &aqi.Result{
		Value:    snapshot.Value,
		Category: aqi.Category(snapshot.Category),
		Dominant: aqi.Pollutant(snapshot.Dominant),
	}
}

// ErrorResponse is the error payload for all endpoints
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (s *Server) writeJSON(ctx *fasthttp.RequestCtx, v interface{}) {
	ctx.SetContentType("application/json")
	data, err := json.Marshal(v)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetBody(data)
}

func (s *Server) writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	data, _ := json.Marshal(&ErrorResponse{Status: status, Message: message})
	ctx.SetBody(data)
}
