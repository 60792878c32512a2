package server

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sitansu1aapt/employeetrack-agent/internal/middleware"
	"github.com/sitansu1aapt/employeetrack-agent/internal/push"
	"github.com/sitansu1aapt/employeetrack-agent/internal/report"
	"github.com/sitansu1aapt/employeetrack-agent/pkg/response"
)

// Server is the agent's local HTTP surface: the push webhook (the
// stand-in for platform push delivery) and a small status API for
// operators and the on-device UI.
type Server struct {
	agent    *Agent
	reporter *report.Reporter
}

// New creates the local server. reporter may be nil when location
// reporting is disabled.
func New(agent *Agent, reporter *report.Reporter) *Server {
	return &Server{agent: agent, reporter: reporter}
}

// Router builds the gin engine
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "EmployeeTrack agent is running",
		})
	})

	r.GET("/status", s.status)

	// Push deliveries come from one relay; anything chatty is a bug.
	r.POST("/push", middleware.RateLimit(60, time.Minute), s.receivePush)

	alerts := r.Group("/alerts")
	{
		alerts.GET("/active", s.activeAlert)
		alerts.POST("/active/select", s.selectAlertOption)
		alerts.POST("/active/submit", s.submitAlert)
	}

	return r
}

func (s *Server) status(c *gin.Context) {
	status := gin.H{"alert_active": s.agent.ActiveAlert() != nil}
	if s.reporter != nil {
		status["report_interval"] = s.reporter.Interval().String()
	}
	response.Success(c, status)
}

func (s *Server) receivePush(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.BadRequest(c, "unreadable payload")
		return
	}

	msg, err := push.Decode(raw)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	msg.Dispatch(s.agent)
	response.Success(c, gin.H{"type": msg.Type})
}

func (s *Server) activeAlert(c *gin.Context) {
	flow := s.agent.ActiveAlert()
	if flow == nil {
		response.NotFound(c, "no active alert")
		return
	}
	response.Success(c, gin.H{
		"state":     flow.State().String(),
		"remaining": flow.Remaining(),
	})
}

type selectOptionRequest struct {
	OptionID string `json:"option_id" binding:"required"`
}

func (s *Server) selectAlertOption(c *gin.Context) {
	flow := s.agent.ActiveAlert()
	if flow == nil {
		response.NotFound(c, "no active alert")
		return
	}

	var req selectOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "option_id required")
		return
	}

	if err := flow.Select(req.OptionID); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Success(c, gin.H{"state": flow.State().String()})
}

func (s *Server) submitAlert(c *gin.Context) {
	flow := s.agent.ActiveAlert()
	if flow == nil {
		response.NotFound(c, "no active alert")
		return
	}
	flow.Submit()
	response.Success(c, gin.H{"state": flow.State().String()})
}
