package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"scheduling/internal/model"
	"scheduling/internal/service"
)

type BookingHandler struct {
	crud[model.CustomerBooking]
}

func NewBookingHandler(svc service.Resource[model.CustomerBooking], guards Guards, log *zap.Logger) *BookingHandler {
	return &BookingHandler{crud[model.CustomerBooking]{svc: svc, log: log, guards: guards, singular: "Customer booking", plural: "Customer bookings"}}
}

func (h *BookingHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/userBookings", h.guards.Intake, h.Create)

	authed := router.Group("", h.guards.Auth)
	authed.GET("/BookingEvents", h.List)
	authed.GET("/:id", h.Get)
	authed.PUT("/:id", h.Update)
	authed.DELETE("/:id", h.Delete)
}

// Create books an appointment
// @Summary      Create customer booking
// @Description  booking_time is "HH:MM:SS - HH:MM:SS" with the start before the end.
// @Tags         customerBooking
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      object  true  "customer_name, phone_number, lead_status, booking_date, booking_time, service_name, price"
// @Success      201      {object}  response.Response{data=model.CustomerBooking}
// @Failure      400      {object}  response.Response
// @Router       /api/customerBooking/userBookings [post]
func (h *BookingHandler) Create(c *gin.Context) { h.create(c) }

// List returns the bookings visible to the caller
// @Summary      List customer bookings
// @Tags         customerBooking
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]model.CustomerBooking}
// @Router       /api/customerBooking/BookingEvents [get]
func (h *BookingHandler) List(c *gin.Context) { h.listAll(c) }

// Get returns a single booking
// @Summary      Get customer booking
// @Tags         customerBooking
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {object}  response.Response{data=model.CustomerBooking}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/customerBooking/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) { h.get(c) }

// Update patches a booking
// @Summary      Update customer booking
// @Tags         customerBooking
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string  true  "Booking ID"
// @Param        payload  body      object  true  "Fields to change"
// @Success      200      {object}  response.Response{data=model.CustomerBooking}
// @Failure      400      {object}  response.Response
// @Router       /api/customerBooking/{id} [put]
func (h *BookingHandler) Update(c *gin.Context) { h.update(c) }

// Delete cancels a booking
// @Summary      Delete customer booking
// @Tags         customerBooking
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {object}  response.Response
// @Router       /api/customerBooking/{id} [delete]
func (h *BookingHandler) Delete(c *gin.Context) { h.remove(c) }
