package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"journeys/internal/domain"
	"journeys/internal/service"
)

// BookingHandler handles HTTP requests for bookings.
type BookingHandler struct {
	bookingService *service.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// CreateBookingRequest is the HTTP request body for creating a booking.
type CreateBookingRequest struct {
	CustomerEmail        string   `json:"customerEmail"`
	CustomerName         string   `json:"customerName,omitempty"`
	DriverEmail          string   `json:"driverEmail"`
	GuideEmail           string   `json:"guideEmail,omitempty"`
	FromCity             string   `json:"fromCity"`
	ToCity               string   `json:"toCity"`
	Date                 string   `json:"date"`
	Time                 string   `json:"time"`
	Passengers           int      `json:"passengers"`
	SelectedSpots        []string `json:"selectedSpots,omitempty"`
	PaymentMethod        string   `json:"paymentMethod,omitempty"` // phonepay, cash
	DriverPickupLocation string   `json:"driverPickupLocation,omitempty"`
	GuidePickupLocation  string   `json:"guidePickupLocation,omitempty"`
}

// BookingResponse is the HTTP representation of a booking.
type BookingResponse struct {
	ID                   string   `json:"id"`
	CustomerEmail        string   `json:"customerEmail"`
	DriverEmail          string   `json:"driverEmail"`
	GuideEmail           string   `json:"guideEmail,omitempty"`
	FromCity             string   `json:"fromCity"`
	ToCity               string   `json:"toCity"`
	Date                 string   `json:"date"`
	Time                 string   `json:"time"`
	Passengers           int      `json:"passengers"`
	SelectedSpots        []string `json:"selectedSpots,omitempty"`
	SelectedSpotNames    []string `json:"selectedSpotNames,omitempty"`
	TotalCost            float64  `json:"totalCost"`
	PaymentMethod        string   `json:"paymentMethod"`
	Status               string   `json:"status"`
	DriverPickupLocation string   `json:"driverPickupLocation,omitempty"`
	GuidePickupLocation  string   `json:"guidePickupLocation,omitempty"`
	CreatedAt            string   `json:"createdAt"`
}

// CreateBookingResponse is the HTTP response for creating a booking. The
// message reflects whether all confirmation emails went out.
type CreateBookingResponse struct {
	Message string          `json:"message"`
	Booking BookingResponse `json:"booking"`
}

func toBookingResponse(booking *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:                   booking.ID,
		CustomerEmail:        booking.CustomerEmail,
		DriverEmail:          booking.DriverEmail,
		GuideEmail:           booking.GuideEmail,
		FromCity:             booking.FromCity,
		ToCity:               booking.ToCity,
		Date:                 booking.Date,
		Time:                 booking.Time,
		Passengers:           booking.Passengers,
		SelectedSpots:        booking.SelectedSpots,
		TotalCost:            booking.TotalCost,
		PaymentMethod:        string(booking.PaymentMethod),
		Status:               string(booking.Status),
		DriverPickupLocation: booking.DriverPickupLocation,
		GuidePickupLocation:  booking.GuidePickupLocation,
		CreatedAt:            booking.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.bookingService.CreateBooking(c.Request.Context(), service.CreateBookingRequest{
		CustomerEmail:        req.CustomerEmail,
		CustomerName:         req.CustomerName,
		DriverEmail:          req.DriverEmail,
		GuideEmail:           req.GuideEmail,
		FromCity:             req.FromCity,
		ToCity:               req.ToCity,
		Date:                 req.Date,
		Time:                 req.Time,
		Passengers:           req.Passengers,
		SelectedSpots:        req.SelectedSpots,
		PaymentMethod:        domain.PaymentMethod(req.PaymentMethod),
		DriverPickupLocation: req.DriverPickupLocation,
		GuidePickupLocation:  req.GuidePickupLocation,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Booking successful! Confirmation emails sent."
	if !result.EmailsSent {
		message = "Booking successful! Some confirmation emails could not be sent."
	}

	respondJSON(c, http.StatusCreated, CreateBookingResponse{
		Message: message,
		Booking: toBookingResponse(result.Booking),
	})
}

// ListBookings handles GET /api/bookings/:userEmail?role=
func (h *BookingHandler) ListBookings(c *gin.Context) {
	email := c.Param("userEmail")
	role := c.Query("role")

	views, err := h.bookingService.ListBookings(c.Request.Context(), email, domain.Role(role))
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]BookingResponse, 0, len(views))
	for _, view := range views {
		resp := toBookingResponse(view.Booking)
		resp.SelectedSpotNames = view.SpotNames
		responses = append(responses, resp)
	}
	respondJSON(c, http.StatusOK, responses)
}

// StartBooking handles PUT /api/bookings/start/:id
func (h *BookingHandler) StartBooking(c *gin.Context) {
	booking, err := h.bookingService.StartBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toBookingResponse(booking))
}

// CancelBooking handles PUT /api/bookings/cancel/:id
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	booking, err := h.bookingService.CancelBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toBookingResponse(booking))
}

// CompleteBooking handles PUT /api/bookings/complete/:id
func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	booking, err := h.bookingService.CompleteBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toBookingResponse(booking))
}
