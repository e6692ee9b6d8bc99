package server

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"softskill-server/internal/clients"
	"softskill-server/internal/interview"
	"softskill-server/internal/metrics"
	"softskill-server/internal/resume"
)

// Server binds the application services to HTTP routes.
type Server struct {
	resume      *resume.Service
	interview   *interview.Service
	transcriber *clients.Transcriber
	emotion     *clients.EmotionClassifier
	stats       *metrics.Metrics
	log         *logrus.Logger
}

func New(res *resume.Service, iv *interview.Service, tr *clients.Transcriber, em *clients.EmotionClassifier, stats *metrics.Metrics, log *logrus.Logger) *Server {
	return &Server{
		resume:      res,
		interview:   iv,
		transcriber: tr,
		emotion:     em,
		stats:       stats,
		log:         log,
	}
}

// Register installs middleware and routes on the given Echo instance.
func (s *Server) Register(e *echo.Echo) {
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	e.GET("/healthz", s.health)

	// Standalone analysis endpoints, no identity required.
	e.POST("/processAudio", s.processAudio)
	e.POST("/analyzeFrame", s.analyzeFrame)

	api := e.Group("/api", requireIdentity)
	api.POST("/resume", s.analyzeResume)
	api.POST("/extractSkills", s.extractSkills)
	api.POST("/startInterview", s.startInterview)
	api.POST("/submitAnswer", s.submitAnswer)
	api.POST("/logEmotion", s.logEmotion)
	api.POST("/finalizeInterview", s.finalizeInterview)
	api.POST("/getAnalysis", s.getAnalysis)
	api.POST("/getAssessment", s.getAssessment)
}
