package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/spigell/mentor-match/internal/career"
	"github.com/spigell/mentor-match/internal/chat"
	"github.com/spigell/mentor-match/internal/logger"
	"github.com/spigell/mentor-match/internal/utils"
)

const maxLoggedMessage = 80

type errorResponse struct {
	Error string `json:"error"`
}

type chatResponse struct {
	Response string `json:"response"`
}

type healthResponse struct {
	Status     string `json:"status"`
	Archetypes int    `json:"archetypes"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{Status: "ok", Archetypes: s.model.Len()})
}

func (s *Server) handleProfile(c echo.Context) error {
	body, err := readBody(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid JSON body"})
	}

	profile, err := decodeProfile(body["profile"])
	if errors.Is(err, errNoProfile) {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "No profile data received"})
	}
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	if s.cfg.MissingAsEmpty {
		profile = profile.WithEmptyDefaults()
	}

	rec, err := s.model.Recommend(profile)
	switch {
	case errors.Is(err, career.ErrInvalidProfile):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case err != nil:
		s.logger.Error("recommending career", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}

	fields := logger.ProfileFields(profile)
	fields = append(fields, logger.MatchFields(rec.Career, rec.Mentor)...)
	fields = append(fields, zap.Float64("distance", rec.Distance))
	s.logger.Info("career recommended", fields...)

	return c.JSON(http.StatusOK, rec)
}

func (s *Server) handleChat(c echo.Context) error {
	body, err := readBody(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid JSON body"})
	}

	message, err := decodeChat(body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "message must be a string"})
	}

	reply, err := s.responder.Respond(message)
	if errors.Is(err, chat.ErrEmptyMessage) {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "No message provided"})
	}
	if err != nil {
		s.logger.Error("answering chat message", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}

	s.logger.Debug("chat answered",
		zap.String("message_preview", utils.TruncateForLog(message, maxLoggedMessage)),
		zap.String("rule", reply.Rule),
	)

	return c.JSON(http.StatusOK, chatResponse{Response: reply.Text})
}

// readBody decodes the request body as a JSON object. An empty body yields an
// empty map.
func readBody(c echo.Context) (map[string]any, error) {
	var body map[string]any
	if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if body == nil {
		body = map[string]any{}
	}
	return body, nil
}
