package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"scheduling/internal/model"
	"scheduling/internal/service"
)

type AddressHandler struct {
	crud[model.Address]
}

// NewAddressHandler sets up the routing dependencies for Address endpoints
func NewAddressHandler(svc service.Resource[model.Address], guards Guards, log *zap.Logger) *AddressHandler {
	return &AddressHandler{crud[model.Address]{svc: svc, log: log, guards: guards, singular: "Address", plural: "Addresses"}}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *AddressHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/userAddress", h.guards.Intake, h.Create)

	authed := router.Group("", h.guards.Auth)
	authed.GET("", h.List)
	authed.GET("/:id", h.Get)
	authed.PUT("/:id", h.Update)
	authed.DELETE("/:id", h.Delete)
}

// Create stores a new address
// @Summary      Create address
// @Description  Creates an address for the caller, or for the user named by user (id or email) when posted anonymously with public intake enabled.
// @Tags         address
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      object  true  "address_line_1, address_line_2, city, zip_code, state, booth_no, is_shared_location"
// @Success      201      {object}  response.Response{data=model.Address}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/address/userAddress [post]
func (h *AddressHandler) Create(c *gin.Context) { h.create(c) }

// List returns the addresses visible to the caller
// @Summary      List addresses
// @Description  Admins see every address, other callers see their own.
// @Tags         address
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.Address}
// @Failure      401  {object}  response.Response
// @Router       /api/address [get]
func (h *AddressHandler) List(c *gin.Context) { h.listAll(c) }

// Get returns a single address
// @Summary      Get address
// @Tags         address
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Address ID"
// @Success      200  {object}  response.Response{data=model.Address}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/address/{id} [get]
func (h *AddressHandler) Get(c *gin.Context) { h.get(c) }

// Update patches an address
// @Summary      Update address
// @Description  address_line_2 and booth_no may be cleared with an empty string. Other fields keep their value when sent empty.
// @Tags         address
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string  true  "Address ID"
// @Param        payload  body      object  true  "Fields to change"
// @Success      200      {object}  response.Response{data=model.Address}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/address/{id} [put]
func (h *AddressHandler) Update(c *gin.Context) { h.update(c) }

// Delete removes an address
// @Summary      Delete address
// @Tags         address
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Address ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/address/{id} [delete]
func (h *AddressHandler) Delete(c *gin.Context) { h.remove(c) }
