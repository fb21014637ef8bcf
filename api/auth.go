package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adnanprojects/userdir/pkg/directory"
	"github.com/adnanprojects/userdir/pkg/errors"
)

// login validates credentials and binds the user to the current session.
func (s *Server) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, "invalid request body", errors.NewBadRequestError(err.Error()))
		return
	}

	sess := sessionFrom(c)
	user, err := s.gate.Login(sess, req.Username, req.Password)
	if err != nil {
		s.handleError(c, "login failed", err)
		return
	}

	s.logger.Info("user logged in", map[string]interface{}{
		"user_id":    user.ID,
		"session_id": sess.ID,
	})

	c.JSON(http.StatusOK, BaseResponse[*directory.User]{
		Code:    http.StatusOK,
		Message: "login successful",
		Data:    &user,
	})
}

// authStatus reports the user bound to the current session.
func (s *Server) authStatus(c *gin.Context) {
	user, err := s.gate.Status(sessionFrom(c))
	if err != nil {
		s.handleError(c, "not authenticated", err)
		return
	}

	c.JSON(http.StatusOK, BaseResponse[*directory.User]{
		Code:    http.StatusOK,
		Message: "authenticated",
		Data:    &user,
	})
}

// logout returns the session to the anonymous state.
func (s *Server) logout(c *gin.Context) {
	sess := sessionFrom(c)
	s.gate.Logout(sess)

	c.JSON(http.StatusOK, SimpleResponse{
		Code:    http.StatusOK,
		Message: "logout successful",
	})
}

// addCartItem appends the request body to the session's cart.
func (s *Server) addCartItem(c *gin.Context) {
	var item interface{}
	if err := c.ShouldBindJSON(&item); err != nil {
		s.handleError(c, "invalid request body", errors.NewBadRequestError(err.Error()))
		return
	}

	if err := sessionFrom(c).AddItem(item); err != nil {
		s.handleError(c, "cart update failed", err)
		return
	}

	c.JSON(http.StatusCreated, BaseResponse[interface{}]{
		Code:    http.StatusCreated,
		Message: "item added to cart",
		Data:    &item,
	})
}

// listCartItems returns the session's cart in insertion order.
func (s *Server) listCartItems(c *gin.Context) {
	items, err := sessionFrom(c).Items()
	if err != nil {
		s.handleError(c, "cart lookup failed", err)
		return
	}

	c.JSON(http.StatusOK, BaseResponse[CartResponse]{
		Code:    http.StatusOK,
		Message: "cart listed",
		Data:    &CartResponse{Cart: items},
	})
}
