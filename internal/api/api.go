// Package api exposes a small HTTP status surface for the running bot:
// a liveness probe and a snapshot of gateway and rate-budget state.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

// Stats is the read-only view of the running bot the API reports.
type Stats interface {
	Uptime() time.Duration
	Guilds() int
	ActiveSessions() int
	RateRemaining() int
}

// Status is the /api/status payload.
type Status struct {
	UptimeSeconds  int64 `json:"uptime_seconds"`
	Guilds         int   `json:"guilds"`
	ActiveSessions int   `json:"active_sessions"`
	RateRemaining  int   `json:"rate_remaining"`
}

// Server wraps the echo instance.
type Server struct {
	echo  *echo.Echo
	stats Stats
}

// NewServer builds the status server over the given stats source.
func NewServer(stats Stats) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	s := &Server{echo: e, stats: stats}

	e.GET("/healthz", s.health)
	e.GET("/api/status", s.status)

	return s
}

// Start serves until Shutdown. It blocks.
func (s *Server) Start(addr string) error {
	log.Info().Str("addr", addr).Msg("starting status API")
	err := s.echo.Start(addr)
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func (s *Server) status(c echo.Context) error {
	return c.JSON(http.StatusOK, Status{
		UptimeSeconds:  int64(s.stats.Uptime().Seconds()),
		Guilds:         s.stats.Guilds(),
		ActiveSessions: s.stats.ActiveSessions(),
		RateRemaining:  s.stats.RateRemaining(),
	})
}
