// Package server exposes mood entries over HTTP.
package server

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/storage"
)

//go:embed templates/*.html
var templateFS embed.FS

// Config holds server options
type Config struct {
	Addr  string
	Moods []string
	// Now is the clock used to stamp new entries
	Now func() time.Time
}

type Server struct {
	store  storage.Provider
	cfg    Config
	engine *gin.Engine
}

// New builds a server over a loaded store
func New(store storage.Provider, cfg Config) (*Server, error) {
	if cfg.Addr == "" {
		cfg.Addr = constants.DefaultAddr
	}
	if len(cfg.Moods) == 0 {
		cfg.Moods = constants.DefaultMoodIDs()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	s := &Server{store: store, cfg: cfg}
	s.engine = s.routes(tmpl)
	return s, nil
}

func (s *Server) routes(tmpl *template.Template) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.SetHTMLTemplate(tmpl)

	r.Use(RequestLogger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}))

	r.GET("/", s.handleIndex)
	r.GET(constants.PathHealth, s.handleHealth)

	api := r.Group("/api")
	{
		api.POST("/mood", s.handleAddMood)
		api.GET("/moods", s.handleListMoods)
		api.GET("/strategies", s.handleStrategies)
	}
	return r
}

// Handler returns the HTTP handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) validMood(id string) bool {
	return slices.Contains(s.cfg.Moods, id)
}

// Run listens on the configured address until ctx is cancelled. onListen is
// called with the bound address once the listener is open.
func (s *Server) Run(ctx context.Context, onListen func(addr *net.TCPAddr)) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:      s.engine,
		ReadTimeout:  constants.ServerReadTimeout,
		WriteTimeout: constants.ServerWriteTimeout,
	}

	if onListen != nil {
		onListen(ln.Addr().(*net.TCPAddr))
	}
	logger.Info("Server listening", "addr", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ServerShutdownPeriod)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
