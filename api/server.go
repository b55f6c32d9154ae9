// Package api exposes a Controller over HTTP.
package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/matt-g-everett/keyframer/stream"
)

// Server handles the HTTP control routes.
type Server struct {
	controller *stream.Controller
	startTime  time.Time
}

// NewServer creates an instance of a Server.
func NewServer(controller *stream.Controller) *Server {
	return &Server{
		controller: controller,
		startTime:  time.Now(),
	}
}

// Handler builds the gin engine with CORS and every route installed.
func (s *Server) Handler() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Length", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))
	s.SetupRoutes(r)
	return r
}

// SetupRoutes installs the API routes on r.
func (s *Server) SetupRoutes(r *gin.Engine) {
	v := r.Group("/api")
	{
		v.GET("/health", s.handleHealth)
		v.GET("/tracks", s.handleGetTracks)

		outputs := v.Group("/outputs")
		{
			outputs.GET("", s.handleGetOutputs)
			outputs.GET("/:name", s.handleGetOutput)
			outputs.POST("/:name/play", s.handlePlay)
			outputs.POST("/:name/crossfade", s.handleCrossfade)
			outputs.POST("/:name/pause", s.handlePause)
			outputs.POST("/:name/resume", s.handleResume)
			outputs.POST("/:name/stop", s.handleStop)
			outputs.POST("/:name/speed", s.handleSpeed)
		}
	}
}

// HTTPServer wraps Handler in an http.Server listening on addr.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, stream.ErrUnknownOutput):
		return http.StatusNotFound
	case errors.Is(err, stream.ErrUnknownTrack), errors.Is(err, stream.ErrKindMismatch):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), ApiResponse{
		Status: "error",
		Error:  err.Error(),
	})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ApiResponse{
		Status: "error",
		Error:  "invalid request: " + err.Error(),
	})
}

// respond reports the outcome of a command and the output's new status.
func (s *Server) respond(c *gin.Context, name string, err error, message string) {
	if err != nil {
		fail(c, err)
		return
	}
	status, err := s.controller.Status(name)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ApiResponse{
		Status:  "success",
		Message: message,
		Data:    status,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data: HealthResponse{
			Uptime:  time.Since(s.startTime).Round(time.Second).String(),
			Outputs: s.controller.Outputs(),
		},
	})
}

func (s *Server) handleGetTracks(c *gin.Context) {
	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data:   s.controller.Tracks(),
	})
}

func (s *Server) handleGetOutputs(c *gin.Context) {
	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data:   s.controller.Statuses(),
	})
}

func (s *Server) handleGetOutput(c *gin.Context) {
	name := c.Param("name")
	s.respond(c, name, nil, "")
}

func (s *Server) handlePlay(c *gin.Context) {
	name := c.Param("name")
	var req PlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	err := s.controller.Play(name, req.Track, req.Mode)
	s.respond(c, name, err, fmt.Sprintf("playing %s (%s)", req.Track, req.Mode))
}

func (s *Server) handleCrossfade(c *gin.Context) {
	name := c.Param("name")
	var req CrossfadeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	err := s.controller.Crossfade(name, req.Track, req.BlendMs, req.Mode)
	s.respond(c, name, err, fmt.Sprintf("crossfading to %s over %dms", req.Track, req.BlendMs))
}

func (s *Server) handlePause(c *gin.Context) {
	name := c.Param("name")
	s.respond(c, name, s.controller.Pause(name), "paused")
}

func (s *Server) handleResume(c *gin.Context) {
	name := c.Param("name")
	s.respond(c, name, s.controller.Resume(name), "resumed")
}

func (s *Server) handleStop(c *gin.Context) {
	name := c.Param("name")
	s.respond(c, name, s.controller.Stop(name), "stopped")
}

func (s *Server) handleSpeed(c *gin.Context) {
	name := c.Param("name")
	var req SpeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	err := s.controller.SetSpeed(name, *req.Speed)
	s.respond(c, name, err, fmt.Sprintf("speed set to %v", *req.Speed))
}
