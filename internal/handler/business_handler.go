package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"scheduling/internal/model"
	"scheduling/internal/service"
)

type BusinessHandler struct {
	crud[model.Business]
}

func NewBusinessHandler(svc service.Resource[model.Business], guards Guards, log *zap.Logger) *BusinessHandler {
	return &BusinessHandler{crud[model.Business]{svc: svc, log: log, guards: guards, singular: "Business", plural: "Businesses"}}
}

func (h *BusinessHandler) RegisterRoutes(router *gin.RouterGroup) {
	// the path spelling is what deployed clients post to
	router.POST("/userBussiness", h.guards.Intake, h.Create)

	authed := router.Group("", h.guards.Auth)
	authed.GET("", h.List)
	authed.GET("/:id", h.Get)
	authed.PUT("/:id", h.Update)
	authed.DELETE("/:id", h.Delete)
}

// Create stores a business profile
// @Summary      Create business
// @Tags         business
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      object  true  "business_name, business_type, owner_name, phone (+ and 10-15 digits), address"
// @Success      201      {object}  response.Response{data=model.Business}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /api/business/userBussiness [post]
func (h *BusinessHandler) Create(c *gin.Context) { h.create(c) }

// List returns the businesses visible to the caller
// @Summary      List businesses
// @Tags         business
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.Business}
// @Router       /api/business [get]
func (h *BusinessHandler) List(c *gin.Context) { h.listAll(c) }

// Get returns a single business
// @Summary      Get business
// @Tags         business
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Business ID"
// @Success      200  {object}  response.Response{data=model.Business}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/business/{id} [get]
func (h *BusinessHandler) Get(c *gin.Context) { h.get(c) }

// Update patches a business
// @Summary      Update business
// @Tags         business
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string  true  "Business ID"
// @Param        payload  body      object  true  "Fields to change"
// @Success      200      {object}  response.Response{data=model.Business}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /api/business/{id} [put]
func (h *BusinessHandler) Update(c *gin.Context) { h.update(c) }

// Delete removes a business
// @Summary      Delete business
// @Tags         business
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Business ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /api/business/{id} [delete]
func (h *BusinessHandler) Delete(c *gin.Context) { h.remove(c) }
