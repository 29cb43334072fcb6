package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookstore-admin/internal/shared/submission"
)

type Response struct {
	Success bool                   `json:"success"`
	Data    interface{}            `json:"data,omitempty"`
	Errors  submission.FieldErrors `json:"errors,omitempty"`
	Error   *Error                 `json:"error,omitempty"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success responses
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
	})
}

// FieldErrors trả lại lỗi theo field để client re-render form
func FieldErrors(c *gin.Context, errs submission.FieldErrors) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Errors:  errs,
	})
}

// Redirect dùng 302 như một form POST thông thường
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

// Submission render kết quả của pipeline: field errors hoặc redirect
func Submission(c *gin.Context, res *submission.Result) {
	if res.Failed() {
		FieldErrors(c, res.Errors)
		return
	}
	Redirect(c, res.Redirect)
}

// Error responses
func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", message)
}

func Conflict(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusConflict, "CONFLICT", message)
}

func InternalServerError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", message)
}
