package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
	"yatube/auth"
	"yatube/feeds"
	"yatube/follows"
	"yatube/monitoring/middleware"
	"yatube/storage"
	"yatube/storage/cache"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const loginURL = "/auth/login/"

type Options struct {
	PageSize   int
	MediaRoot  string
	LoginRate  int
	LoginBurst int
}

type Server struct {
	store         storage.Store
	feed          *feeds.Feed
	follows       *follows.Manager
	pageCache     cache.PageCache
	sessions      *auth.Sessions
	authenticator *auth.Authenticator
	throttle      *auth.Throttle
	templates     templates
	mediaRoot     string

	handler http.Handler
}

func NewServer(
	store storage.Store,
	pageCache cache.PageCache,
	sessions *auth.Sessions,
	options Options,
) (*Server, error) {
	pages, err := loadTemplates()
	if err != nil {
		return nil, err
	}

	loginRate := rate.Every(time.Minute / time.Duration(max(options.LoginRate, 1)))
	s := &Server{
		store:         store,
		feed:          feeds.NewFeed(store, options.PageSize),
		follows:       follows.NewManager(store),
		pageCache:     pageCache,
		sessions:      sessions,
		authenticator: auth.NewAuthenticator(sessions, store, loginURL),
		throttle:      auth.NewThrottle(loginRate, max(options.LoginBurst, 1)),
		templates:     pages,
		mediaRoot:     options.MediaRoot,
	}
	s.handler = s.routes()
	return s, nil
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	login := s.authenticator.RequireLogin

	mux.Handle("GET /{$}", s.cachePage(cache.IndexPageKey, http.HandlerFunc(s.getIndex)))
	mux.HandleFunc("GET /group/{slug}/{$}", s.getGroup)
	mux.HandleFunc("GET /profile/{username}/{$}", s.getProfile)
	mux.HandleFunc("GET /profile/{username}/follow/{$}", login(s.followAuthor))
	mux.HandleFunc("GET /profile/{username}/unfollow/{$}", login(s.unfollowAuthor))
	mux.HandleFunc("GET /follow/{$}", login(s.getFollowing))

	mux.HandleFunc("GET /posts/{id}/{$}", s.getPost)
	mux.HandleFunc("GET /create/{$}", login(s.getCreatePost))
	mux.HandleFunc("POST /create/{$}", login(s.createPost))
	mux.HandleFunc("GET /posts/{id}/edit/{$}", login(s.getEditPost))
	mux.HandleFunc("POST /posts/{id}/edit/{$}", login(s.editPost))
	mux.HandleFunc("POST /posts/{id}/comment/{$}", login(s.addComment))

	mux.HandleFunc("GET /auth/signup/{$}", s.getSignup)
	mux.HandleFunc("POST /auth/signup/{$}", s.signup)
	mux.HandleFunc("GET /auth/login/{$}", s.getLogin)
	mux.HandleFunc("POST /auth/login/{$}", s.login)
	mux.HandleFunc("/auth/logout/{$}", s.logout)

	mux.Handle("GET /media/", s.mediaHandler())
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("/", s.sendNotFound)

	var handler http.Handler = middleware.NewServerMiddleware(mux)
	handler = s.authenticator.Middleware(handler)
	handler = middleware.NewLoggingMiddleware(handler)
	return handler
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// LoginThrottle exposes the login limiter so its buckets can be pruned.
func (s *Server) LoginThrottle() *auth.Throttle {
	return s.throttle
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Listening on %s", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("error starting server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	log.Info("Server closed")
	return nil
}
