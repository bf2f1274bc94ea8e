package routes

import (
	"net/http"

	"bramble/app/auth"
	"bramble/app/cache"
	"bramble/app/config"
	"bramble/app/controllers"
	"bramble/app/middleware"
	"bramble/app/monitoring"
	"bramble/app/repositories"
	"bramble/app/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes wires repositories, services and controllers around the
// given Badger DB and returns the application's router.
func SetupRoutes(db *badger.DB, cfg config.Config) *mux.Router {
	userRepo := repositories.NewBadgerUserRepository(db)
	groupRepo := repositories.NewBadgerGroupRepository(db)
	postRepo := repositories.NewBadgerPostRepository(db)
	commentRepo := repositories.NewBadgerCommentRepository(db)
	followRepo := repositories.NewBadgerFollowRepository(db)

	pageCache := cache.NewPageCache(db, cfg.CacheTTL)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	feedService := services.NewFeedService(postRepo, groupRepo, userRepo, followRepo, pageCache, cfg.PageSize)
	followService := services.NewFollowService(userRepo, followRepo)
	postService := services.NewPostService(postRepo, groupRepo, commentRepo)
	commentService := services.NewCommentService(commentRepo, postRepo)
	userService := services.NewUserService(userRepo, postRepo, followRepo)

	feedController := controllers.NewFeedController(feedService)
	postController := controllers.NewPostController(postService)
	commentController := controllers.NewCommentController(commentService)
	profileController := controllers.NewProfileController(followService)
	authController := controllers.NewAuthController(userService, tokens)

	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.CurrentViewer(tokens))

	// Observability
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Auth endpoints
	router.HandleFunc("/auth/signup", authController.Signup).Methods("POST")
	router.HandleFunc("/auth/login", authController.Login).Methods("POST")

	// Feed endpoints
	router.HandleFunc("/", feedController.Index).Methods("GET")
	router.HandleFunc("/posts", feedController.Index).Methods("GET")
	router.HandleFunc("/group/{slug}", feedController.Group).Methods("GET")
	router.HandleFunc("/profile/{username}", feedController.Profile).Methods("GET")

	// Post detail
	router.HandleFunc("/posts/{id:[0-9]+}", postController.Show).Methods("GET")
	router.HandleFunc("/posts/{id:[0-9]+}/comments", commentController.Index).Methods("GET")

	// Authenticated endpoints
	authed := router.PathPrefix("/").Subrouter()
	authed.Use(middleware.RequireAuth)
	authed.HandleFunc("/follow", feedController.FollowIndex).Methods("GET")
	authed.HandleFunc("/posts", postController.Create).Methods("POST")
	authed.HandleFunc("/posts/{id:[0-9]+}/edit", postController.Edit).Methods("POST")
	authed.HandleFunc("/posts/{id:[0-9]+}/comments", commentController.Create).Methods("POST")
	authed.HandleFunc("/profile/{username}/follow", profileController.Follow).Methods("POST")
	authed.HandleFunc("/profile/{username}/unfollow", profileController.Unfollow).Methods("POST")

	return router
}

// StartServer starts the HTTP server on the specified address with the
// given router wrapped in request metrics collection.
func StartServer(addr string, router http.Handler) error {
	return http.ListenAndServe(addr, monitoring.NewPrometheusMiddleware(router))
}
