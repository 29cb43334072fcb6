package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookstore-admin/internal/domains/author"
	"bookstore-admin/internal/domains/book"
	"bookstore-admin/internal/shared/httpx"
	"bookstore-admin/internal/shared/response"
)

const (
	newKey   = "new"
	xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// AuthorOptions là nguồn select box author trên form book
type AuthorOptions interface {
	Options(ctx context.Context) ([]author.Option, error)
}

type BookHandler struct {
	service book.Service
	authors AuthorOptions
}

func NewBookHandler(svc book.Service, authors AuthorOptions) *BookHandler {
	return &BookHandler{
		service: svc,
		authors: authors,
	}
}

// ════════════════════════════════════════════════════════════════
// LIST: GET /dashboard/books
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) List(c *gin.Context) {
	books, err := h.service.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, book.BookListResponse{Books: books})
}

// ════════════════════════════════════════════════════════════════
// DETAIL: GET /dashboard/books/:isbn ("new" -> chỉ author options)
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	options, err := h.authors.Options(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := book.BookDetailResponse{Authors: options}
	if isbn := c.Param("isbn"); isbn != newKey {
		b, err := h.service.GetByISBN(ctx, isbn)
		if err != nil {
			h.fail(c, err)
			return
		}
		resp.Book = b
	}

	response.Success(c, http.StatusOK, resp)
}

// ════════════════════════════════════════════════════════════════
// SUBMIT: POST /dashboard/books/:isbn (_action = new|update|delete)
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) Submit(c *gin.Context) {
	key := c.Param("isbn")
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
		httpx.SubmissionError(c, err, book.ToHTTPStatus)
		return
	}

	response.Submission(c, res)
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /dashboard/books/:isbn
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("isbn")); err != nil {
		h.fail(c, err)
		return
	}

	response.Redirect(c, "/dashboard/books")
}

// ════════════════════════════════════════════════════════════════
// EXPORT: GET /dashboard/books/export
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) Export(c *gin.Context) {
	filename := fmt.Sprintf("books_%s.xlsx", time.Now().Format("20060102_150405"))

	c.Header("Content-Type", xlsxMIME)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	if err := h.service.Export(c.Request.Context(), c.Writer); err != nil {
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("Export books failed")
		if !c.Writer.Written() {
			c.Header("Content-Type", "")
			c.Header("Content-Disposition", "")
			response.InternalServerError(c, "Export failed")
		}
	}
}

func (h *BookHandler) fail(c *gin.Context, err error) {
	switch book.ToHTTPStatus(err) {
	case http.StatusNotFound:
		response.NotFound(c, book.ErrBookNotFound.Error())
	default:
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("Book request failed")
		response.InternalServerError(c, "Internal server error")
	}
}
