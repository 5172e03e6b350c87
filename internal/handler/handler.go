package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"scheduling/internal/access"
	"scheduling/internal/middleware"
	"scheduling/internal/service"
	"scheduling/internal/validation"
	"scheduling/pkg/response"
)

// Guards are the auth middlewares a resource handler mounts its routes behind.
type Guards struct {
	// Auth requires a valid token.
	Auth gin.HandlerFunc
	// Intake guards create routes. With public intake enabled it lets anonymous
	// callers through, otherwise it is the same as Auth.
	Intake gin.HandlerFunc
}

// NewGuards builds the guards from a token verifier.
func NewGuards(verifier middleware.Verifier, publicIntake bool) Guards {
	g := Guards{Auth: middleware.Authenticate(verifier), Intake: middleware.Authenticate(verifier)}
	if publicIntake {
		g.Intake = middleware.OptionalAuth(verifier)
	}
	return g
}

// bindPayload decodes the JSON body. An empty body reads as an empty object.
func bindPayload(c *gin.Context) (validation.Payload, bool) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return nil, false
	}
	return validation.FromBody(body), true
}

// caller returns the principal attached by Authenticate.
func caller(c *gin.Context) access.Principal {
	if p := middleware.Principal(c); p != nil {
		return *p
	}
	return access.Principal{}
}

func fail(c *gin.Context, log *zap.Logger, err error) {
	code, resp := response.FromError(err)
	if code >= http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.Error(err))
	}
	c.JSON(code, resp)
}

// crud serves the five operations of an owned collection. Each resource handler
// embeds one and adds its route table and docs.
type crud[T any] struct {
	svc      service.Resource[T]
	log      *zap.Logger
	guards   Guards
	singular string
	plural   string
}

func (h *crud[T]) create(c *gin.Context) {
	body, ok := bindPayload(c)
	if !ok {
		return
	}
	record, err := h.svc.Create(c.Request.Context(), middleware.Principal(c), body)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, response.SuccessWithMessage(http.StatusCreated, h.singular+" created successfully", record))
}

func (h *crud[T]) list(c *gin.Context) ([]T, bool) {
	records, err := h.svc.List(c.Request.Context(), caller(c))
	if err != nil {
		fail(c, h.log, err)
		return nil, false
	}
	return records, true
}

func (h *crud[T]) listAll(c *gin.Context) {
	if records, ok := h.list(c); ok {
		c.JSON(http.StatusOK, response.SuccessWithMessage(http.StatusOK, h.plural+" retrieved successfully", records))
	}
}

func (h *crud[T]) get(c *gin.Context) {
	record, err := h.svc.Get(c.Request.Context(), caller(c), c.Param("id"))
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithMessage(http.StatusOK, h.singular+" retrieved successfully", record))
}

func (h *crud[T]) update(c *gin.Context) {
	body, ok := bindPayload(c)
	if !ok {
		return
	}
	record, err := h.svc.Update(c.Request.Context(), caller(c), c.Param("id"), body)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithMessage(http.StatusOK, h.singular+" updated successfully", record))
}

func (h *crud[T]) remove(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), caller(c), c.Param("id")); err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithMessage(http.StatusOK, h.singular+" deleted successfully", nil))
}
