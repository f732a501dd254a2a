package handlers

import (
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	apierrors "github.com/yukikurage/apm-api/internal/errors"
	"github.com/yukikurage/apm-api/internal/logger"
	"github.com/yukikurage/apm-api/internal/middleware"
	"github.com/yukikurage/apm-api/internal/services"
)

const (
	uploadField   = "uploaded_file"
	maxFormMemory = 32 << 20
)

type OrderFileHandler struct {
	files    *services.OrderFileService
	maxBytes int64
}

// NewOrderFileHandler creates a handler that refuses uploads larger than
// maxBytes. A non-positive limit disables the check.
func NewOrderFileHandler(files *services.OrderFileService, maxBytes int64) *OrderFileHandler {
	return &OrderFileHandler{files: files, maxBytes: maxBytes}
}

func (h *OrderFileHandler) ListOrderFiles(c *gin.Context) {
	files, err := h.files.ListByOrder(c.Request.Context(), middleware.GetIDParam(c, "order_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, files)
}

// DownloadOrderFile streams the stored blob as an attachment
func (h *OrderFileHandler) DownloadOrderFile(c *gin.Context) {
	file, content, err := h.files.Open(c.Request.Context(), middleware.GetIDParam(c, "id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	defer content.Close()

	contentType := mime.TypeByExtension(filepath.Ext(file.Filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.DataFromReader(http.StatusOK, -1, contentType, content, map[string]string{
		"Content-Disposition": mime.FormatMediaType("attachment", map[string]string{"filename": file.Filename}),
	})
}

// CreateOrderFile takes a multipart form with order_id and uploaded_file
func (h *OrderFileHandler) CreateOrderFile(c *gin.Context) {
	if !h.parseForm(c) {
		return
	}

	orderID, err := strconv.ParseUint(c.PostForm("order_id"), 10, 64)
	if err != nil || orderID == 0 {
		apierrors.UnprocessableEntity(c, "order_id must be a positive integer", nil)
		return
	}

	upload, closeFn, ok := h.readUpload(c)
	if !ok {
		return
	}
	defer closeFn()

	file, err := h.files.Create(c.Request.Context(), orderID, upload)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, file)
}

func (h *OrderFileHandler) UpdateOrderFile(c *gin.Context) {
	if !h.parseForm(c) {
		return
	}

	upload, closeFn, ok := h.readUpload(c)
	if !ok {
		return
	}
	defer closeFn()

	file, err := h.files.Replace(c.Request.Context(), middleware.GetIDParam(c, "id"), upload)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, file)
}

func (h *OrderFileHandler) DeleteOrderFile(c *gin.Context) {
	if err := h.files.Delete(c.Request.Context(), middleware.GetIDParam(c, "id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// parseForm reads the multipart body under the size limit. It answers 413
// when the body is too large and 422 when it is not a multipart form.
func (h *OrderFileHandler) parseForm(c *gin.Context) bool {
	if h.maxBytes > 0 {
		// multipart framing needs some room on top of the file itself
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+1<<20)
	}

	err := c.Request.ParseMultipartForm(maxFormMemory)
	if err == nil {
		return true
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		apierrors.PayloadTooLarge(c, fmt.Sprintf("File exceeds the %d byte limit", h.maxBytes))
		return false
	}
	apierrors.UnprocessableEntity(c, "Expected a multipart form", err.Error())
	return false
}

func (h *OrderFileHandler) readUpload(c *gin.Context) (services.Upload, func(), bool) {
	header, err := c.FormFile(uploadField)
	if err != nil {
		apierrors.UnprocessableEntity(c, uploadField+" is required", nil)
		return services.Upload{}, nil, false
	}
	if h.maxBytes > 0 && header.Size > h.maxBytes {
		apierrors.PayloadTooLarge(c, fmt.Sprintf("File exceeds the %d byte limit", h.maxBytes))
		return services.Upload{}, nil, false
	}

	f, err := header.Open()
	if err != nil {
		logger.Log.WithError(err).Error("Failed to open uploaded file")
		apierrors.InternalError(c, "Failed to read uploaded file")
		return services.Upload{}, nil, false
	}

	return services.Upload{
		Filename:    header.Filename,
		ContentType: contentTypeOf(header),
		Content:     f,
	}, func() { f.Close() }, true
}

func contentTypeOf(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
