package server

import (
	"log"
	"time"

	"safespace/internal/app"
	"safespace/internal/models"
	"safespace/internal/notify"
	"safespace/internal/store"

	"github.com/gofiber/fiber/v2"
)

// stateResponse is the full client-visible state: the current view, a store
// snapshot, and the active notices.
type stateResponse struct {
	View    app.View        `json:"view"`
	State   store.Snapshot  `json:"state"`
	Notices []notify.Notice `json:"notices"`
}

// GetState handles GET /api/state
func (s *Server) GetState(c *fiber.Ctx) error {
	return c.JSON(stateResponse{
		View:    s.controller.View(),
		State:   s.store.Snapshot(),
		Notices: s.notices.Active(),
	})
}

// EnterCommunity handles POST /api/enter
func (s *Server) EnterCommunity(c *fiber.Ctx) error {
	if err := s.controller.EnterCommunity(c.UserContext()); err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}
	return s.GetState(c)
}

// SwitchTab handles POST /api/tabs/:name
func (s *Server) SwitchTab(c *fiber.Ctx) error {
	if err := s.controller.SwitchTab(c.UserContext(), app.View(c.Params("name"))); err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}
	return s.GetState(c)
}

// Logout handles POST /api/logout
func (s *Server) Logout(c *fiber.Ctx) error {
	if err := s.controller.Logout(c.UserContext()); err != nil {
		return models.RespondWithError(c, models.StatusFor(err), err)
	}
	return s.GetState(c)
}

// EmergencyExit handles POST /api/exit. It clears all in-memory state and
// every persisted key, responds with the redirect target, and only then
// stops the process. Nothing in this path waits on a simulated delay.
func (s *Server) EmergencyExit(c *fiber.Ctx) error {
	s.controller.EmergencyExit()
	if err := s.safety.Clear(c.UserContext()); err != nil {
		log.Printf("emergency exit: failed to clear persisted state: %v", err)
	}

	if s.exitFn != nil {
		fn := s.exitFn
		flush := s.config.ExitFlushDelay
		go func() {
			// Give the response time to flush before the process stops.
			time.Sleep(flush)
			fn()
		}()
	}

	return c.JSON(fiber.Map{"redirect": s.config.ExitRedirectURL})
}

// GetNotices handles GET /api/notices
func (s *Server) GetNotices(c *fiber.Ctx) error {
	return c.JSON(s.notices.Active())
}

// DismissAllNotices handles DELETE /api/notices
func (s *Server) DismissAllNotices(c *fiber.Ctx) error {
	s.notices.DismissAll()
	return c.SendStatus(fiber.StatusNoContent)
}

// DismissNotice handles DELETE /api/notices/:id
func (s *Server) DismissNotice(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}
	if !s.notices.Dismiss(id) {
		return models.RespondWithError(c, fiber.StatusNotFound, models.NewNotFoundError("notice", id))
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DismissOverlays handles POST /api/dismiss, the Escape action.
func (s *Server) DismissOverlays(c *fiber.Ctx) error {
	s.controller.DismissOverlays()
	return c.SendStatus(fiber.StatusNoContent)
}

// GetSafetyNotice handles GET /api/safety-notice
func (s *Server) GetSafetyNotice(c *fiber.Ctx) error {
	seen, err := s.safety.NoticeSeen(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{"seen": seen})
}

// AcknowledgeSafetyNotice handles POST /api/safety-notice/ack
func (s *Server) AcknowledgeSafetyNotice(c *fiber.Ctx) error {
	if err := s.safety.AcknowledgeNotice(c.UserContext()); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{"seen": true})
}

// LivenessCheck handles GET /health/live
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// ReadinessCheck handles GET /health/ready. Redis is optional, so its state
// is reported but never fails readiness.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "ok"
		if err := s.redis.Ping(c.UserContext()).Err(); err != nil {
			redisStatus = "unavailable"
		}
	}
	return c.JSON(fiber.Map{
		"status": "ok",
		"redis":  redisStatus,
	})
}
