package api

import (
	"net/http"

	"github.com/ashutosh1890/Air-Cargo-booking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Pieces      int     `json:"pieces"`
	WeightKg    float64 `json:"weight_kg"`
}

type advanceStatusRequest struct {
	Status    string  `json:"status"`
	Location  *string `json:"location"`
	Notes     *string `json:"notes"`
	FlightRef *string `json:"flight_ref"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/", h.listMine)
	router.GET("/:ref/history", h.history)
	router.PATCH("/:ref/status", h.advance)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		Origin:      req.Origin,
		Destination: req.Destination,
		Pieces:      req.Pieces,
		WeightKg:    req.WeightKg,
		OwnerID:     callerIdentity(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": created})
}

func (h *BookingHandler) listMine(c *gin.Context) {
	owner := callerIdentity(c)
	if owner == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "identity required"})
		return
	}

	bookings, err := h.service.ListByOwner(c.Request.Context(), *owner)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (h *BookingHandler) history(c *gin.Context) {
	history, err := h.service.GetHistory(c.Request.Context(), c.Param("ref"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

func (h *BookingHandler) advance(c *gin.Context) {
	var req advanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.AdvanceStatus(c.Request.Context(), booking.AdvanceStatusInput{
		RefID:     c.Param("ref"),
		Status:    req.Status,
		Location:  req.Location,
		Notes:     req.Notes,
		FlightRef: req.FlightRef,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": updated})
}
