package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adnanprojects/userdir/pkg/directory"
	"github.com/adnanprojects/userdir/pkg/errors"
)

// handleError maps a domain error onto the HTTP boundary. Unexpected
// failures are logged and answered with 500; a response always goes out.
func (s *Server) handleError(c *gin.Context, message string, err error) {
	structured := errors.AsError(err)

	if structured.Code == errors.ErrCodeInternal {
		s.logger.Error(message, err, map[string]interface{}{
			"request_id": c.GetString("request_id"),
			"path":       c.Request.URL.Path,
		})
	}

	status := structured.HTTPStatus()
	c.JSON(status, ErrorResponse{
		Code:       status,
		Message:    message,
		Error:      structured.Message,
		Violations: structured.Violations,
	})
}

// home answers the root route.
func (s *Server) home(c *gin.Context) {
	c.String(http.StatusOK, "Home")
}

// healthCheck provides a health check endpoint
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(s.startTime).String(),
		Users:     s.store.Len(),
		Sessions:  s.sessions.Len(),
	})
}

// listUsers returns the directory, optionally narrowed by the filter
// query. An invalid filter yields the violated rules, not a crash.
func (s *Server) listUsers(c *gin.Context) {
	field, hasField := c.GetQuery("filter")
	value, hasValue := c.GetQuery("value")

	users, err := s.evaluator.Evaluate(s.store, directory.FilterQuery{
		Field:    field,
		Value:    value,
		HasField: hasField,
		HasValue: hasValue,
	})
	if err != nil {
		s.handleError(c, "invalid filter parameters", err)
		return
	}

	c.JSON(http.StatusOK, BaseResponse[[]*directory.User]{
		Code:    http.StatusOK,
		Message: "users listed",
		Data:    &users,
	})
}

// createUser appends a record with the next id.
func (s *Server) createUser(c *gin.Context) {
	var attrs map[string]interface{}
	if err := c.ShouldBindJSON(&attrs); err != nil {
		s.handleError(c, "invalid request body", errors.NewBadRequestError(err.Error()))
		return
	}

	user := s.store.Create(attrs)

	c.JSON(http.StatusCreated, BaseResponse[*directory.User]{
		Code:    http.StatusCreated,
		Message: "user created",
		Data:    &user,
	})
}

// getUser returns a single record by id.
func (s *Server) getUser(c *gin.Context) {
	id, err := directory.ParseID(c.Param("id"))
	if err != nil {
		s.handleError(c, "invalid user id", err)
		return
	}

	user, err := s.store.FindByID(id)
	if err != nil {
		s.handleError(c, "user lookup failed", err)
		return
	}

	c.JSON(http.StatusOK, BaseResponse[*directory.User]{
		Code:    http.StatusOK,
		Message: "user found",
		Data:    &user,
	})
}

// replaceUser swaps every attribute but the id.
func (s *Server) replaceUser(c *gin.Context) {
	s.updateUser(c, s.store.Replace, "user replaced")
}

// mergeUser shallow-merges the body over the record.
func (s *Server) mergeUser(c *gin.Context) {
	s.updateUser(c, s.store.Merge, "user updated")
}

func (s *Server) updateUser(c *gin.Context, op func(int, map[string]interface{}) (*directory.User, error), message string) {
	id, err := directory.ParseID(c.Param("id"))
	if err != nil {
		s.handleError(c, "invalid user id", err)
		return
	}

	var attrs map[string]interface{}
	if err := c.ShouldBindJSON(&attrs); err != nil {
		s.handleError(c, "invalid request body", errors.NewBadRequestError(err.Error()))
		return
	}

	user, err := op(id, attrs)
	if err != nil {
		s.handleError(c, "user update failed", err)
		return
	}

	c.JSON(http.StatusOK, BaseResponse[*directory.User]{
		Code:    http.StatusOK,
		Message: message,
		Data:    &user,
	})
}

// deleteUser removes a record. Remaining ids are untouched.
func (s *Server) deleteUser(c *gin.Context) {
	id, err := directory.ParseID(c.Param("id"))
	if err != nil {
		s.handleError(c, "invalid user id", err)
		return
	}

	user, err := s.store.Delete(id)
	if err != nil {
		s.handleError(c, "user delete failed", err)
		return
	}

	c.JSON(http.StatusOK, BaseResponse[*directory.User]{
		Code:    http.StatusOK,
		Message: "user deleted",
		Data:    &user,
	})
}
