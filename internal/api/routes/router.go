package routes

import (
	"net/http"

	"github.com/devtrails/bootcamp-directory/internal/api/handlers"
	"github.com/devtrails/bootcamp-directory/internal/api/middleware"
)

// Router holds all route handlers

type Router struct {
	mux *http.ServeMux

	bootcampHandler *handlers.BootcampHandler

	reviewHandler *handlers.ReviewHandler

	userHandler *handlers.UserHandler
}

// NewRouter creates a new router
func NewRouter(
	bootcampHandler *handlers.BootcampHandler,
	reviewHandler *handlers.ReviewHandler,
	userHandler *handlers.UserHandler,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		bootcampHandler: bootcampHandler,
		reviewHandler:   reviewHandler,
		userHandler:     userHandler,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {

	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)

		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Bootcamp endpoints

	r.mux.HandleFunc("GET /api/v1/bootcamps", r.bootcampHandler.ListBootcamps)
	r.mux.HandleFunc("POST /api/v1/bootcamps", r.bootcampHandler.CreateBootcamp)

	r.mux.HandleFunc("GET /api/v1/bootcamps/radius/{zipcode}/{distance}", r.bootcampHandler.GetBootcampsInRadius)

	r.mux.HandleFunc("GET /api/v1/bootcamps/{id}", r.bootcampHandler.GetBootcamp)
	r.mux.HandleFunc("PUT /api/v1/bootcamps/{id}", r.bootcampHandler.UpdateBootcamp)
	r.mux.HandleFunc("DELETE /api/v1/bootcamps/{id}", r.bootcampHandler.DeleteBootcamp)

	r.mux.HandleFunc("PUT /api/v1/bootcamps/{id}/photo", r.bootcampHandler.UploadBootcampPhoto)

	// Review endpoints

	r.mux.HandleFunc("GET /api/v1/bootcamps/{id}/reviews", r.reviewHandler.ListReviews)
	r.mux.HandleFunc("POST /api/v1/bootcamps/{id}/reviews", r.reviewHandler.CreateReview)

	r.mux.HandleFunc("GET /api/v1/reviews", r.reviewHandler.ListReviews)
	r.mux.HandleFunc("GET /api/v1/reviews/{id}", r.reviewHandler.GetReview)
	r.mux.HandleFunc("PUT /api/v1/reviews/{id}", r.reviewHandler.UpdateReview)
	r.mux.HandleFunc("DELETE /api/v1/reviews/{id}", r.reviewHandler.DeleteReview)

	// User administration endpoints

	r.mux.HandleFunc("GET /api/v1/users", r.userHandler.ListUsers)
	r.mux.HandleFunc("POST /api/v1/users", r.userHandler.CreateUser)
	r.mux.HandleFunc("GET /api/v1/users/{id}", r.userHandler.GetUser)
	r.mux.HandleFunc("PUT /api/v1/users/{id}", r.userHandler.UpdateUser)
	r.mux.HandleFunc("DELETE /api/v1/users/{id}", r.userHandler.DeleteUser)

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS is outermost so even early rejections carry its headers.

	var handler http.Handler = r.mux
	handler = middleware.ActorMiddleware(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
