package httpapi

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"completiond/pkg/types"
)

// Service defines the engine methods required by the HTTP API layer.
type Service interface {
	ProvideCompletion(ctx context.Context, snap types.DocumentSnapshot) (types.Suggestion, bool)
	RecordAccepted(text string, pos types.Position)
	Status() types.StatusResponse
}

// ProfileStore defines the profile registry methods required by the HTTP API.
type ProfileStore interface {
	List() ([]types.Profile, string)
	Active() *types.Profile
	Add(p types.Profile) (types.Profile, error)
	Update(p types.Profile) error
	Remove(id string) error
	SetActive(id string) error
}

func NewMux(svc Service, profiles ProfileStore) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}
	r.Use(MetricsMiddleware)
	if rateLimitRPS > 0 {
		r.Use(RateLimitMiddleware(rateLimitRPS, rateLimitBurst))
	}

	r.Post("/v1/completion", func(w http.ResponseWriter, r *http.Request) {
		if !requireJSON(w, r) {
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var req types.CompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.Snapshot.Cursor.Line < 0 || req.Snapshot.Cursor.Col < 0 {
			writeJSONError(w, http.StatusBadRequest, "cursor position out of range")
			return
		}

		start := time.Now()
		lvl := requestLogLevel(r)
		// Join server base context with request context so shutdown cancels work too.
		joinedCtx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		sug, ok := svc.ProvideCompletion(joinedCtx, req.Snapshot)
		if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
			return
		}
		if ok {
			observeOutcome("resolved")
		} else {
			observeOutcome("empty")
		}
		if lvl >= LevelInfo {
			if zlog != nil {
				z := zlog.Info().Bool("suggestion", ok).Dur("dur", time.Since(start))
				if rid := middleware.GetReqID(r.Context()); rid != "" {
					z = z.Str("request_id", rid)
				}
				z.Msg("completion")
			} else {
				log.Printf("completion suggestion=%v dur=%s", ok, time.Since(start))
			}
		}
		resp := types.CompletionResponse{}
		if ok {
			resp.Suggestion = &sug
		}
		writeJSON(w, http.StatusOK, resp)
	})

	r.Post("/v1/accept", func(w http.ResponseWriter, r *http.Request) {
		if !requireJSON(w, r) {
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var req types.AcceptRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if strings.TrimSpace(req.Text) == "" {
			writeJSONError(w, http.StatusBadRequest, "text is required")
			return
		}
		svc.RecordAccepted(req.Text, req.Position)
		w.WriteHeader(http.StatusNoContent)
	})

	r.Get("/v1/profiles", func(w http.ResponseWriter, r *http.Request) {
		ps, active := profiles.List()
		if ps == nil {
			ps = []types.Profile{}
		}
		writeJSON(w, http.StatusOK, types.ProfilesResponse{Profiles: ps, ActiveID: active})
	})

	r.Post("/v1/profiles", func(w http.ResponseWriter, r *http.Request) {
		if !requireJSON(w, r) {
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var p types.Profile
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		stored, err := profiles.Add(p)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, stored)
	})

	r.Put("/v1/profiles/active", func(w http.ResponseWriter, r *http.Request) {
		if !requireJSON(w, r) {
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var req types.ActiveProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if err := profiles.SetActive(req.ID); err != nil {
			writeStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	r.Put("/v1/profiles/{id}", func(w http.ResponseWriter, r *http.Request) {
		if !requireJSON(w, r) {
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var p types.Profile
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		p.ID = chi.URLParam(r, "id")
		if err := profiles.Update(p); err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	})

	r.Delete("/v1/profiles/{id}", func(w http.ResponseWriter, r *http.Request) {
		if err := profiles.Remove(chi.URLParam(r, "id")); err != nil {
			writeStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Status())
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if profiles.Active() != nil {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("no active profile"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	// Swagger UI (no-op unless built with -tags=swagger)
	MountSwagger(r)

	return r
}

func requireJSON(w http.ResponseWriter, r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}
