package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sessiond/internal/ar"
	"sessiond/internal/engine"
	"sessiond/internal/session"
	"sessiond/pkg/types"
)

// Service defines the coordinator methods required by the HTTP API layer.
type Service interface {
	Status() types.StatusResponse
	Engines() []types.EngineInfo
	RequestSwitch(ctx context.Context, target engine.Selection) error
	Reset() error
	Place() (engine.Placement, error)
	Ready() bool
}

// EventSource provides the event feed for /events subscribers.
type EventSource interface {
	Subscribe() (<-chan session.Event, func())
}

func NewMux(svc Service, events EventSource) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints (text/event-stream is not compressed)
	r.Use(middleware.Compress(5))
	r.Use(MetricsMiddleware)
	// The browser shell is served from a different origin.
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(svc.Status()); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
	})

	r.Get("/engines", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(types.EnginesResponse{Engines: svc.Engines()}); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
	})

	r.Post("/switch", func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var req types.SwitchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		start := time.Now()
		// Join server base context with request context so shutdown cancels
		// an in-flight switch too.
		ctx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		err := svc.RequestSwitch(ctx, engine.Selection{Mode: req.Mode, Engine: req.Engine})
		if err != nil {
			// Client went away or the server is shutting down mid-switch.
			// Still emit a status so the response is never an empty 200.
			if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
				writeJSONError(w, http.StatusServiceUnavailable, "switch canceled")
				logEnd(r, "switch", http.StatusServiceUnavailable, start, err)
				return
			}
			status := switchErrorStatus(err)
			writeJSONError(w, status, err.Error())
			logEnd(r, "switch", status, start, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(svc.Status())
		logEnd(r, "switch", http.StatusOK, start, nil)
	})

	r.Post("/reset", func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Reset(); err != nil {
			writeJSONError(w, opErrorStatus(err), err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(svc.Status())
	})

	r.Post("/place", func(w http.ResponseWriter, r *http.Request) {
		placed, err := svc.Place()
		if err != nil {
			writeJSONError(w, opErrorStatus(err), err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(types.PlaceResponse{Placements: placed.Seq, Pose: placed.Pose})
	})

	r.Get("/events", func(w http.ResponseWriter, r *http.Request) {
		serveEvents(w, r, events)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("switching"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// switchErrorStatus maps coordinator/engine errors for POST /switch.
func switchErrorStatus(err error) int {
	switch {
	case session.IsBusy(err):
		return http.StatusConflict
	case session.IsInvalidMode(err):
		return http.StatusBadRequest
	case engine.IsNotFound(err):
		return http.StatusNotFound
	case engine.IsPermissionDenied(err):
		return http.StatusForbidden
	case engine.IsUnsupportedDevice(err):
		return http.StatusNotImplemented
	case engine.IsNetworkUnavailable(err), engine.IsAssetLoad(err):
		return http.StatusBadGateway
	default:
		if he, ok := err.(HTTPError); ok {
			return he.StatusCode()
		}
		return http.StatusBadGateway
	}
}

// opErrorStatus maps errors for the /reset and /place session operations.
func opErrorStatus(err error) int {
	switch {
	case session.IsNoSession(err):
		return http.StatusConflict
	case session.IsUnsupportedOp(err):
		return http.StatusBadRequest
	case errors.Is(err, ar.ErrNoSurface):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
