package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"scheduling/internal/middleware"
	"scheduling/internal/service"
	"scheduling/pkg/response"
)

// CookiePolicy controls the session cookie written on signup and login.
type CookiePolicy struct {
	TTL     time.Duration
	Release bool
}

type AuthHandler struct {
	users    service.UserService
	verifier middleware.Verifier
	cookie   CookiePolicy
	log      *zap.Logger
}

// NewAuthHandler sets up the routing dependencies for the auth endpoints
func NewAuthHandler(users service.UserService, verifier middleware.Verifier, cookie CookiePolicy, log *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, verifier: verifier, cookie: cookie, log: log}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	// An admin token on signup lets the caller pick roles.
	router.POST("/signup", middleware.OptionalAuth(h.verifier), h.Signup)
	router.POST("/login", h.Login)
	router.POST("/logout", h.Logout)
	router.GET("/me", middleware.Authenticate(h.verifier), h.Me)
}

// Signup registers an account and signs the new user in
// @Summary      Sign up
// @Description  Creates an account. roles is honoured only when an admin makes the request, everyone else becomes a Member.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      object  true  "email, first_name, last_name, new_password, enabled, send_welcome_email, roles"
// @Success      201      {object}  response.Response{data=service.AuthResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	body, ok := bindPayload(c)
	if !ok {
		return
	}
	res, err := h.users.Signup(c.Request.Context(), middleware.Principal(c), body)
	if err != nil {
		fail(c, h.log, err)
		return
	}

	middleware.SetTokenCookie(c, res.Token, h.cookie.TTL, h.cookie.Release)
	c.JSON(http.StatusCreated, response.SuccessWithMessage(http.StatusCreated, "User registered successfully", res))
}

// Login handles POST /login to authenticate and return a JWT token
// @Summary      Login user
// @Description  Authenticates a user by email (usr) and password (pwd), returning a JWT token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      object  true  "usr, pwd"
// @Success      200      {object}  response.Response{data=service.AuthResponse}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	body, ok := bindPayload(c)
	if !ok {
		return
	}
	res, err := h.users.Login(c.Request.Context(), body)
	if err != nil {
		fail(c, h.log, err)
		return
	}

	// Set token as HttpOnly cookie
	middleware.SetTokenCookie(c, res.Token, h.cookie.TTL, h.cookie.Release)
	c.JSON(http.StatusOK, response.SuccessWithMessage(http.StatusOK, "Login successful", res))
}

// Logout clears the session cookie
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearTokenCookie(c, h.cookie.Release)
	c.JSON(http.StatusOK, response.SuccessWithMessage(http.StatusOK, "Logged out successfully", nil))
}

// Me returns the authenticated account
// @Summary      Get current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=model.User}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.users.Me(c.Request.Context(), caller(c))
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, user))
}
