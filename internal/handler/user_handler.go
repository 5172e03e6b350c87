package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"scheduling/internal/access"
	"scheduling/internal/middleware"
	"scheduling/internal/service"
	"scheduling/pkg/response"
)

type UserHandler struct {
	userService service.UserService
	guards      Guards
	log         *zap.Logger
}

// NewUserHandler sets up the routing dependencies for User endpoints
func NewUserHandler(userService service.UserService, guards Guards, log *zap.Logger) *UserHandler {
	return &UserHandler{userService: userService, guards: guards, log: log}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/getAllUsers", h.guards.Auth, middleware.RequireRole(access.RoleAdmin), h.ListUsers)
}

// ListUsers handles GET /getAllUsers
// @Summary      List all users
// @Description  Admin only. Passwords are never returned.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.User}
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /api/user/getAllUsers [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, users))
}
