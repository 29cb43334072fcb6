package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bookstore-admin/internal/domains/author"
	"bookstore-admin/internal/shared/httpx"
	"bookstore-admin/internal/shared/response"
)

// newKey là route key của form tạo mới: /dashboard/authors/new
const newKey = "new"

type AuthorHandler struct {
	service author.Service
}

func NewAuthorHandler(svc author.Service) *AuthorHandler {
	return &AuthorHandler{
		service: svc,
	}
}

// ════════════════════════════════════════════════════════════════
// LIST: GET /dashboard/authors
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) List(c *gin.Context) {
	authors, err := h.service.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, author.AuthorListResponse{Authors: authors})
}

// ════════════════════════════════════════════════════════════════
// DETAIL: GET /dashboard/authors/:id ("new" -> form rỗng)
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Get(c *gin.Context) {
	idStr := c.Param("id")
	if idStr == newKey {
		response.Success(c, http.StatusOK, author.AuthorDetailResponse{})
		return
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		response.NotFound(c, author.ErrAuthorNotFound.Error())
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, author.AuthorDetailResponse{Author: a})
}

// ════════════════════════════════════════════════════════════════
// SUBMIT: POST /dashboard/authors/:id (_action = new|update|delete)
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Submit(c *gin.Context) {
	key := c.Param("id")
	if key == newKey {
		key = ""
	}

	sub, err := httpx.ReadSubmission(c, key)
	if err != nil {
		response.BadRequest(c, "Invalid form body")
		return
	}

	res, err := h.service.Submit(c.Request.Context(), sub)
	if err != nil {
		httpx.SubmissionError(c, err, author.ToHTTPStatus)
		return
	}

	response.Submission(c, res)
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /dashboard/authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, author.ErrAuthorNotFound.Error())
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	response.Redirect(c, "/dashboard/authors")
}

func (h *AuthorHandler) fail(c *gin.Context, err error) {
	switch author.ToHTTPStatus(err) {
	case http.StatusNotFound:
		response.NotFound(c, author.ErrAuthorNotFound.Error())
	case http.StatusConflict:
		response.Conflict(c, author.ErrAuthorHasBooks.Error())
	default:
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("Author request failed")
		response.InternalServerError(c, "Internal server error")
	}
}
