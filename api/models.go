package api

import "github.com/adnanprojects/userdir/pkg/errors"

// BaseResponse represents the base structure for all API responses
type BaseResponse[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    *T     `json:"data,omitempty"`
}

// SimpleResponse for operations without data return
type SimpleResponse = BaseResponse[interface{}]

// ErrorResponse represents an error response
type ErrorResponse struct {
	Code       int                `json:"code"`
	Message    string             `json:"message"`
	Error      string             `json:"error,omitempty"`
	Violations []errors.Violation `json:"violations,omitempty"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CartResponse wraps the session's cart contents
type CartResponse struct {
	Cart []interface{} `json:"cart"`
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Uptime    string `json:"uptime"`
	Users     int    `json:"users"`
	Sessions  int    `json:"sessions"`
}
