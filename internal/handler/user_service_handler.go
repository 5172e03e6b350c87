package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"scheduling/internal/model"
	"scheduling/internal/service"
)

// UserServiceHandler serves the service catalog a user offers.
type UserServiceHandler struct {
	crud[model.UserService]
}

func NewUserServiceHandler(svc service.Resource[model.UserService], guards Guards, log *zap.Logger) *UserServiceHandler {
	return &UserServiceHandler{crud[model.UserService]{svc: svc, log: log, guards: guards, singular: "User service", plural: "User services"}}
}

func (h *UserServiceHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/userServices", h.guards.Intake, h.Create)

	authed := router.Group("", h.guards.Auth)
	authed.GET("", h.List)
	authed.GET("/:id", h.Get)
	authed.PUT("/:id", h.Update)
	authed.DELETE("/:id", h.Delete)
}

// Create stores a service, optionally as a bundle of sub-services
// @Summary      Create user service
// @Description  A bundle needs at least one entry in services_included, each with service_name, price and duration.
// @Tags         userService
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      object  true  "service_name, duration, price, bundle, services_included"
// @Success      201      {object}  response.Response{data=model.UserService}
// @Failure      400      {object}  response.Response
// @Router       /api/userService/userServices [post]
func (h *UserServiceHandler) Create(c *gin.Context) { h.create(c) }

// List returns the services visible to the caller
// @Summary      List user services
// @Tags         userService
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.UserService}
// @Router       /api/userService [get]
func (h *UserServiceHandler) List(c *gin.Context) { h.listAll(c) }

// Get returns a single service with its sub-services
// @Summary      Get user service
// @Tags         userService
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User service ID"
// @Success      200  {object}  response.Response{data=model.UserService}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/userService/{id} [get]
func (h *UserServiceHandler) Get(c *gin.Context) { h.get(c) }

// Update patches a service. Sending services_included replaces the sub-services.
// @Summary      Update user service
// @Tags         userService
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string  true  "User service ID"
// @Param        payload  body      object  true  "Fields to change"
// @Success      200      {object}  response.Response{data=model.UserService}
// @Failure      400      {object}  response.Response
// @Router       /api/userService/{id} [put]
func (h *UserServiceHandler) Update(c *gin.Context) { h.update(c) }

// Delete removes a service and its sub-services
// @Summary      Delete user service
// @Tags         userService
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User service ID"
// @Success      200  {object}  response.Response
// @Router       /api/userService/{id} [delete]
func (h *UserServiceHandler) Delete(c *gin.Context) { h.remove(c) }
