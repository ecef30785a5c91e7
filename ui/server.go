// Package ui exposes the analysis pipeline over HTTP: a gin API for
// creating and reading analyses, and a small chi ops server for health
// checks and diagnostics.
package ui

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pregame/app"
	"pregame/internal/config"
	"pregame/internal/errors"
	"pregame/models"
	"pregame/ports"
)

// Server is the public HTTP API
type Server struct {
	service *app.AnalysisService
	router  *gin.Engine
	cfg     config.ServerConfig
}

// NewServer creates the API server and registers routes
func NewServer(service *app.AnalysisService, cfg config.ServerConfig) *Server {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	s := &Server{service: service, router: router, cfg: cfg}
	s.registerRoutes()
	return s
}

// Run starts the server and blocks
func (s *Server) Run() error {
	addr := ":" + s.cfg.Port
	log.Printf("[Server] Listening on %s", addr)
	return s.router.Run(addr)
}

// Router exposes the gin engine for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) registerRoutes() {
	api := s.router.Group("/api")
	{
		api.POST("/analyses/preview", s.handlePreview)
		api.POST("/analyses", s.handleCreate)
		api.GET("/analyses", s.handleList)
		api.GET("/analyses/:id", s.handleGet)
		api.GET("/analyses/:id/summary", s.handleSummary)
		api.DELETE("/analyses/:id", s.handleDelete)
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		log.Printf("[Server] %s %s -> %d", c.Request.Method, c.Request.URL.Path, c.Writer.Status())
	}
}

type previewRequest struct {
	Sport   string            `json:"sport"`
	Payload models.RawPayload `json:"payload" binding:"required"`
}

// handlePreview runs the pipeline on a caller-supplied payload without
// storing anything
func (s *Server) handlePreview(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	viewModel := s.service.Preview(req.Payload, req.Sport)
	c.JSON(http.StatusOK, gin.H{"view_model": viewModel})
}

type createRequest struct {
	Sport   string            `json:"sport"`
	Matchup string            `json:"matchup"`
	Payload models.RawPayload `json:"payload"`
}

func (s *Server) handleCreate(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	record, err := s.service.Create(c.Request.Context(), app.CreateRequest{
		Sport:   req.Sport,
		Matchup: req.Matchup,
		Payload: req.Payload,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (s *Server) handleList(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	records, err := s.service.List(c.Request.Context(), ports.AnalysisFilters{
		Sport:  c.Query("sport"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"analyses": records, "count": len(records)})
}

func (s *Server) handleGet(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid analysis id"})
		return
	}

	record, err := s.service.Get(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// handleSummary renders a stored analysis as a standalone HTML page
func (s *Server) handleSummary(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid analysis id"})
		return
	}

	record, err := s.service.Get(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	if record.ViewModel == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "analysis has no view model"})
		return
	}

	html := RenderSummaryHTML(record.ViewModel)
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

func (s *Server) handleDelete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid analysis id"})
		return
	}

	if err := s.service.Delete(c.Request.Context(), id); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeNotFound:
		status = http.StatusNotFound
	case errors.CodeBadPayload:
		status = http.StatusBadRequest
	case errors.CodeGeneratorError:
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": errors.GetCode(err)})
}
