package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"scheduling/internal/model"
	"scheduling/internal/service"
	"scheduling/pkg/response"
)

type LeadHandler struct {
	crud[model.Lead]
}

func NewLeadHandler(svc service.Resource[model.Lead], guards Guards, log *zap.Logger) *LeadHandler {
	return &LeadHandler{crud[model.Lead]{svc: svc, log: log, guards: guards, singular: "Lead", plural: "Leads"}}
}

func (h *LeadHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/Leads", h.guards.Intake, h.Create)

	authed := router.Group("", h.guards.Auth)
	authed.GET("/getAllLeads", h.List)
	authed.GET("/getLeads/:id", h.Get)
	authed.PUT("/:id", h.Update)
	authed.DELETE("/:id", h.Delete)
}

// Create records a lead
// @Summary      Create lead
// @Description  The lead belongs to the caller (or the user field, an id or email) and is assigned to owner, defaulting to the creator.
// @Tags         lead
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      object  true  "client_name, phone_number, lead_status, booking_date, booking_time, service_name, price, owner"
// @Success      201      {object}  response.Response{data=model.Lead}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/lead/Leads [post]
func (h *LeadHandler) Create(c *gin.Context) { h.create(c) }

// List returns the leads the caller created or is assigned to
// @Summary      List leads
// @Tags         lead
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=service.LeadList}
// @Router       /api/lead/getAllLeads [get]
func (h *LeadHandler) List(c *gin.Context) {
	leads, ok := h.list(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithMessage(http.StatusOK, "Leads retrieved successfully", service.NewLeadList(leads)))
}

// Get returns a single lead
// @Summary      Get lead
// @Tags         lead
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Lead ID"
// @Success      200  {object}  response.Response{data=model.Lead}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/lead/getLeads/{id} [get]
func (h *LeadHandler) Get(c *gin.Context) { h.get(c) }

// Update patches a lead. Sending owner reassigns it.
// @Summary      Update lead
// @Tags         lead
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string  true  "Lead ID"
// @Param        payload  body      object  true  "Fields to change"
// @Success      200      {object}  response.Response{data=model.Lead}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /api/lead/{id} [put]
func (h *LeadHandler) Update(c *gin.Context) { h.update(c) }

// Delete removes a lead
// @Summary      Delete lead
// @Tags         lead
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Lead ID"
// @Success      200  {object}  response.Response
// @Router       /api/lead/{id} [delete]
func (h *LeadHandler) Delete(c *gin.Context) { h.remove(c) }
