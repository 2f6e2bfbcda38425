// ============================================================================
// internal/server/routes.go
// Chi router, middleware stack and route definitions
// ============================================================================

package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"resultportal/internal/auth"
	"resultportal/internal/metrics"
	"resultportal/internal/server/handlers"
	"resultportal/internal/server/util"
	"resultportal/internal/shared"
	"resultportal/internal/students"
)

// Deps carries everything the router needs.
type Deps struct {
	Config         *shared.ServiceConfig
	AuthService    *auth.Service
	StudentService *students.Service
	// Pinger checks storage reachability for /healthz. Nil disables the check.
	Pinger func(ctx context.Context) error
}

// MongoPinger adapts a mongo client ping for the health check.
func MongoPinger(client interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		start := time.Now()
		err := client.Ping(ctx, readpref.Primary())
		metrics.ObserveDBPing(time.Since(start))
		return err
	}
}

// SetupRoutes configures the Chi router, middleware, and route handlers.
func SetupRoutes(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	// 1. Global Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(metricsMiddleware)

	// CORS Configuration (Allow SPA frontend)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.CORS.AllowedOrigins,
		AllowedMethods:   deps.Config.CORS.AllowedMethods,
		AllowedHeaders:   deps.Config.CORS.AllowedHeaders,
		AllowCredentials: deps.Config.CORS.AllowCredentials,
		MaxAge:           deps.Config.CORS.MaxAge,
	}))

	// 2. Initialize Handlers
	authHandler := &handlers.AuthHandler{AuthService: deps.AuthService}
	resultHandler := &handlers.ResultHandler{AuthService: deps.AuthService, StudentService: deps.StudentService}
	adminHandler := &handlers.AdminHandler{StudentService: deps.StudentService}

	// 3. Operational endpoints
	r.Get("/healthz", healthzHandler(deps.Pinger))
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// 4. Define Routes (grouped by prefix)
	r.Route("/api", func(r chi.Router) {

		// --- Public Routes ---

		// Admin auth
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/logout", authHandler.Logout) // Logout handles its own token extraction, safe to be public-ish

		// Student gate: POST so credentials stay out of URLs and logs
		r.Post("/results", resultHandler.GetResult)
		r.Post("/results/markscard", resultHandler.DownloadMarkscard)

		// --- Protected Routes (Require Valid Token) ---
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(deps.AuthService))

			r.Get("/auth/validate", authHandler.ValidateToken)

			r.Route("/admin", func(r chi.Router) {
				r.Get("/stats", adminHandler.GetStats)

				r.Route("/students", func(r chi.Router) {
					r.Post("/", adminHandler.CreateStudent)
					r.Get("/", adminHandler.ListStudents)
					r.Get("/{id}", adminHandler.GetStudent)
					r.Put("/{id}", adminHandler.UpdateStudent)
					r.Delete("/{id}", adminHandler.DeleteStudent)
					r.Put("/{id}/marks/{subject}", adminHandler.SetMark)
				})
			})
		})
	})

	return r
}

// AuthMiddleware validates the bearer token and injects the admin claims.
func AuthMiddleware(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Extract Token
			tokenStr, err := util.ExtractToken(r)
			if err != nil {
				util.WriteJSONError(w, http.StatusUnauthorized, "Authorization token required")
				return
			}

			// 2. Validate signature + live session
			ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
			defer cancel()

			claims, err := authService.ValidateToken(ctx, tokenStr)
			if err != nil {
				util.WriteJSONError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			// 3. Inject claims into context
			next.ServeHTTP(w, r.WithContext(handlers.WithClaims(r.Context(), claims)))
		})
	}
}

func healthzHandler(pinger func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if pinger != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
			defer cancel()
			if err := pinger(ctx); err != nil {
				util.WriteJSONError(w, http.StatusServiceUnavailable, "storage unreachable")
				return
			}
		}
		util.WriteJSON(w, http.StatusOK, map[string]interface{}{"status": "ok"})
	}
}

// metricsMiddleware records request counts and latency per route pattern.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(ww.Status()/100) + "xx"
		metrics.ObserveHTTPRequest(route, status, time.Since(start))
	})
}
