package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"scheduling/internal/model"
	"scheduling/internal/service"
)

type TravelFeeHandler struct {
	crud[model.TravelFee]
}

func NewTravelFeeHandler(svc service.Resource[model.TravelFee], guards Guards, log *zap.Logger) *TravelFeeHandler {
	return &TravelFeeHandler{crud[model.TravelFee]{svc: svc, log: log, guards: guards, singular: "Travel fee", plural: "Travel fees"}}
}

func (h *TravelFeeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/TravelFees", h.guards.Intake, h.Create)

	authed := router.Group("", h.guards.Auth)
	authed.GET("", h.List)
	authed.GET("/:id", h.Get)
	authed.PUT("/:id", h.Update)
	authed.DELETE("/:id", h.Delete)
}

// Create stores a travel fee
// @Summary      Create travel fee
// @Description  fee_type is one of per_km, flat_rate, per_hour. fee is a non-negative number or one of free, starts_from, fixed.
// @Tags         travelFee
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      object  true  "fee_type, fee, max_distance"
// @Success      201      {object}  response.Response{data=model.TravelFee}
// @Failure      400      {object}  response.Response
// @Router       /api/travelFee/TravelFees [post]
func (h *TravelFeeHandler) Create(c *gin.Context) { h.create(c) }

// List returns the travel fees visible to the caller
// @Summary      List travel fees
// @Tags         travelFee
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.TravelFee}
// @Router       /api/travelFee [get]
func (h *TravelFeeHandler) List(c *gin.Context) { h.listAll(c) }

// Get returns a single travel fee
// @Summary      Get travel fee
// @Tags         travelFee
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Travel fee ID"
// @Success      200  {object}  response.Response{data=model.TravelFee}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/travelFee/{id} [get]
func (h *TravelFeeHandler) Get(c *gin.Context) { h.get(c) }

// Update patches a travel fee
// @Summary      Update travel fee
// @Tags         travelFee
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string  true  "Travel fee ID"
// @Param        payload  body      object  true  "Fields to change"
// @Success      200      {object}  response.Response{data=model.TravelFee}
// @Failure      400      {object}  response.Response
// @Router       /api/travelFee/{id} [put]
func (h *TravelFeeHandler) Update(c *gin.Context) { h.update(c) }

// Delete removes a travel fee
// @Summary      Delete travel fee
// @Tags         travelFee
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Travel fee ID"
// @Success      200  {object}  response.Response
// @Router       /api/travelFee/{id} [delete]
func (h *TravelFeeHandler) Delete(c *gin.Context) { h.remove(c) }
