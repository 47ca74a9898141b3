package rendezvous

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler implements the HTTP Endpoint (component D) for native mode: the
// public create route and the session CRUD routes, translating HTTP verbs
// and conditional headers into Store calls and formatting the header/body
// contract spec'd in §4.4.
type Handler struct {
	store            Store
	urls             *URLBuilder
	maxContentLength int64
}

// NewHandler builds a Handler. maxContentLength bounds the request body
// read before it ever reaches the store, so oversized bodies are rejected
// without buffering the whole payload.
func NewHandler(store Store, urls *URLBuilder, maxContentLength int64) *Handler {
	return &Handler{store: store, urls: urls, maxContentLength: maxContentLength}
}

// Register mounts the create route at createPath and the session CRUD
// routes under sessionPath + "/:id", with the CORS/cache-control header
// contract applied to every response on this group.
func (h *Handler) Register(r gin.IRouter, createPath, sessionPath string) {
	r.Use(responseHeadersMiddleware())
	r.POST(createPath, h.Create)
	r.GET(sessionPath+"/:id", h.Get)
	r.PUT(sessionPath+"/:id", h.Update)
	r.DELETE(sessionPath+"/:id", h.Delete)
}

// responseHeadersMiddleware sets the header triplet required on every
// response from the native endpoint, success or error (§4.4, §6).
func responseHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Header("Pragma", "no-cache")
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Expose-Headers", "etag")
		c.Next()
	}
}

// Create handles POST /<rendezvous>.
func (h *Handler) Create(c *gin.Context) {
	body, ok := h.readBody(c)
	if !ok {
		return
	}

	sess, err := h.store.Create(c.Request.Context(), c.ContentType(), body)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("ETag", sess.ETag)
	c.Header("Expires", sess.ExpiresAt.UTC().Format(http.TimeFormat))
	c.JSON(http.StatusCreated, gin.H{"url": h.urls.SessionURL(sess.ID)})
}

// Get handles GET /<session-path>/<id>.
func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	ifNoneMatch := c.GetHeader("If-None-Match")

	sess, err := h.store.Get(c.Request.Context(), id, ifNoneMatch)
	if err != nil {
		if errors.Is(err, ErrNotModified) {
			c.Header("ETag", sess.ETag)
			c.Header("Expires", sess.ExpiresAt.UTC().Format(http.TimeFormat))
			c.Status(http.StatusNotModified)
			return
		}
		writeError(c, err)
		return
	}

	c.Header("ETag", sess.ETag)
	c.Header("Expires", sess.ExpiresAt.UTC().Format(http.TimeFormat))
	c.Data(http.StatusOK, sess.ContentType, sess.Payload)
}

// Update handles PUT /<session-path>/<id>.
func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	ifMatch := c.GetHeader("If-Match")

	body, ok := h.readBody(c)
	if !ok {
		return
	}

	sess, err := h.store.Update(c.Request.Context(), id, ifMatch, c.ContentType(), body)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("ETag", sess.ETag)
	c.Header("Expires", sess.ExpiresAt.UTC().Format(http.TimeFormat))
	c.Status(http.StatusAccepted)
}

// Delete handles DELETE /<session-path>/<id>. Replies 204 regardless of
// whether a session existed — see the DELETE Open Question decision in
// SPEC_FULL.md §12.
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	_ = h.store.Delete(c.Request.Context(), id)
	c.Status(http.StatusNoContent)
}

// readBody reads the request body bounded to maxContentLength+1 bytes so an
// oversized upload is rejected (413) without buffering it in full. Writes
// the response itself and returns ok=false on failure.
func (h *Handler) readBody(c *gin.Context) ([]byte, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxContentLength+1)
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		writeError(c, ErrPayloadTooLarge)
		return nil, false
	}
	return body, true
}

// writeError maps a Store sentinel error to the wire errcode/status taxonomy
// in §7.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"errcode": "M_NOT_FOUND", "error": "Session not found"})
	case errors.Is(err, ErrConcurrentWrite):
		c.JSON(http.StatusPreconditionFailed, gin.H{"errcode": "M_CONCURRENT_WRITE", "error": "ETag mismatch"})
	case errors.Is(err, ErrPreconditionRequired):
		c.JSON(http.StatusPreconditionRequired, gin.H{"errcode": "M_MISSING_PARAM", "error": "If-Match required"})
	case errors.Is(err, ErrPayloadTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"errcode": "M_TOO_LARGE", "error": "Payload exceeds maximum size"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"errcode": "M_UNKNOWN", "error": err.Error()})
	}
}
