package httpx

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookstore-admin/internal/shared/middleware"
	"bookstore-admin/internal/shared/response"
	"bookstore-admin/internal/shared/submission"
)

// maxFormMemory cho multipart form; form của dashboard chỉ có text field
const maxFormMemory = 1 << 20

// ReadSubmission gom form body, route key và current user thành Submission.
// Intent không hợp lệ được giữ nguyên để pipeline reject như precondition.
func ReadSubmission(c *gin.Context, key string) (submission.Submission, error) {
	if err := parseForm(c); err != nil {
		return submission.Submission{}, err
	}

	values := submission.FromForm(c.Request.PostForm)
	intent, err := values.Intent()
	if err != nil {
		intent = submission.Intent(values.Get(submission.ActionField))
	}

	actor, _ := middleware.CurrentUser(c)
	return submission.Submission{
		Intent: intent,
		Key:    key,
		Actor:  actor,
		Values: values,
	}, nil
}

// ReadValues chỉ đọc form body, dùng cho login/logout không qua pipeline
func ReadValues(c *gin.Context) (submission.Values, error) {
	if err := parseForm(c); err != nil {
		return nil, err
	}
	return submission.FromForm(c.Request.PostForm), nil
}

func parseForm(c *gin.Context) error {
	if err := c.Request.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return err
	}
	return nil
}

// SubmissionError render lỗi của Submit. Precondition failure là lỗi lập trình -> 500.
func SubmissionError(c *gin.Context, err error, toStatus func(error) int) {
	if submission.IsPrecondition(err) {
		response.InternalServerError(c, "Submission could not be processed")
		return
	}

	status := toStatus(err)
	switch status {
	case http.StatusNotFound:
		response.NotFound(c, err.Error())
	case http.StatusConflict:
		response.Conflict(c, err.Error())
	default:
		log.Error().Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("path", c.Request.URL.Path).
			Msg("Submission failed")
		response.InternalServerError(c, "Internal server error")
	}
}
