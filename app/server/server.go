package server

import (
	"time"

	"finqa/app/agent"
	"finqa/app/api"
	"finqa/app/middleware"
	"finqa/config"
	"finqa/loader"
	"finqa/model"
	"finqa/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const sweepInterval = time.Minute

type Server struct {
	listenAddr string
	cfg        *config.Config
	logger     *zap.Logger
	sessions   *store.MemoryStore
	app        *fiber.App
	done       chan struct{}
}

func NewServer(cfg *config.Config, logger *zap.Logger) *Server {
	s := &Server{
		listenAddr: cfg.ServerAddr,
		cfg:        cfg,
		logger:     logger,
		sessions:   store.NewMemoryStore(),
		done:       make(chan struct{}),
	}
	s.app = s.routes()
	return s
}

func (s *Server) routes() *fiber.App {
	var (
		app = fiber.New(fiber.Config{
			ErrorHandler:          api.NewErrorHandler(s.logger),
			BodyLimit:             s.cfg.BodyLimit(),
			DisableStartupMessage: true,
		})
		generator       = model.NewOllamaClient(s.cfg.LLM(), s.logger)
		qa              = agent.NewAgent(generator, s.cfg.MaxContextChars, s.cfg.LogPromptTokens, s.logger)
		checkHandler    = api.NewCheckHandler()
		uiHandler       = api.NewUIHandler()
		documentHandler = api.NewDocumentHandler(loader.NewLoader(s.logger, nil), s.cfg.PreviewChars, s.logger)
		questionHandler = api.NewQuestionHandler(qa)
		statusHandler   = api.NewStatusHandler(generator.Config())
	)

	app.Use(middleware.RequestLogger(s.logger), middleware.IgnoreProbes())

	check := app.Group("/check")
	check.Get("/healthy", checkHandler.HandleHealthy)

	app.Get("/", middleware.Sessions(s.sessions), uiHandler.HandleIndex)

	apiv1 := app.Group("/api/v1", middleware.Sessions(s.sessions))
	apiv1.Post("/document", documentHandler.HandleUpload)
	apiv1.Post("/question", questionHandler.HandleQuestion)
	apiv1.Get("/messages", questionHandler.HandleMessages)
	apiv1.Get("/status", statusHandler.HandleStatus)

	return app
}

func (s *Server) App() *fiber.App {
	return s.app
}

// Run blocks serving HTTP until Stop is called or the listener fails.
func (s *Server) Run() error {
	go s.sweepSessions()

	s.logger.Info("server started",
		zap.String("addr", s.listenAddr),
		zap.String("model", s.cfg.Model),
		zap.String("ollama_url", s.cfg.OllamaURL),
	)
	return s.app.Listen(s.listenAddr)
}

func (s *Server) Stop() {
	close(s.done)
	if err := s.app.ShutdownWithTimeout(10 * time.Second); err != nil {
		s.logger.Error("error to stop server", zap.Error(err))
		return
	}
	s.logger.Info("server stopped")
}

func (s *Server) sweepSessions() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			if n := s.sessions.Expire(s.cfg.SessionIdle()); n > 0 {
				s.logger.Info("[SESSION] expired idle sessions", zap.Int("count", n))
			}
		}
	}
}
