package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

const contentTypeJSON = "application/json; charset=utf-8"

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) templates(c *gin.Context) {
	kinds := s.orch.Dispatcher().Registry().List()
	names := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		names = append(names, string(kind))
	}
	c.JSON(http.StatusOK, gin.H{"templates": names})
}

func (s *Server) renderCard(c *gin.Context) {
	body, ok := s.readBody(c)
	if !ok {
		return
	}
	card(c, s.orch.GenerateCard(c.Param("template"), body))
}

func (s *Server) createForm(c *gin.Context) {
	body, ok := s.readBody(c)
	if !ok {
		return
	}
	card(c, s.orch.GenerateDynamicForm(c.Request.Context(), body))
}

func (s *Server) submitForm(c *gin.Context) {
	body, ok := s.readBody(c)
	if !ok {
		return
	}
	card(c, s.orch.ValidateSubmission(c.Request.Context(), body))
}

func (s *Server) handleEvent(c *gin.Context) {
	body, ok := s.readBody(c)
	if !ok {
		return
	}
	card(c, s.orch.HandleEvent(c.Request.Context(), string(body)))
}

// readBody reads the request body within the configured limit, writing the
// error response itself when it fails.
func (s *Server) readBody(c *gin.Context) ([]byte, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBody)
	body, err := io.ReadAll(c.Request.Body)
	if err == nil {
		return body, true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		s.logger.Warn("request body too large", "limit", tooLarge.Limit, "path", c.FullPath())
		failure(c, http.StatusRequestEntityTooLarge, "payload_too_large", "request body exceeds the configured limit")
		return nil, false
	}
	s.logger.Warn("read request body", "error", err)
	failure(c, http.StatusBadRequest, "bad_request", "request body could not be read")
	return nil, false
}

func card(c *gin.Context, doc []byte) {
	c.Data(http.StatusOK, contentTypeJSON, doc)
}

func failure(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": gin.H{"code": code, "message": message}})
}
