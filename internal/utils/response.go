package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ResponseData is the envelope every JSON response uses. Data is present on
// success, Error on failure; the HTTP status is mirrored in the body so
// clients logging bodies alone can still see it.
type ResponseData struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func reply(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, ResponseData{Status: code, Message: message, Data: data})
}

func fail(c *gin.Context, code int, errorMessage string) {
	c.JSON(code, ResponseData{Status: code, Message: "An error occurred", Error: errorMessage})
}

// Success sends a 200 response with the given message and payload.
func Success(c *gin.Context, message string, data interface{}) {
	reply(c, http.StatusOK, message, data)
}

// Created sends a 201 response for a newly persisted resource.
func Created(c *gin.Context, message string, data interface{}) {
	reply(c, http.StatusCreated, message, data)
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, errorMessage string) {
	fail(c, http.StatusBadRequest, errorMessage)
}

// Unauthorized sends a 401 error response.
func Unauthorized(c *gin.Context, errorMessage string) {
	fail(c, http.StatusUnauthorized, errorMessage)
}

// Forbidden sends a 403 error response.
func Forbidden(c *gin.Context, errorMessage string) {
	fail(c, http.StatusForbidden, errorMessage)
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context, errorMessage string) {
	fail(c, http.StatusNotFound, errorMessage)
}

// Conflict sends a 409 error response, used for rejected state transitions.
func Conflict(c *gin.Context, errorMessage string) {
	fail(c, http.StatusConflict, errorMessage)
}

// InternalServerError sends a 500 error response.
func InternalServerError(c *gin.Context, errorMessage string) {
	fail(c, http.StatusInternalServerError, errorMessage)
}
