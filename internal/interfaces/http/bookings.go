package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"quickshow/internal/entities"
)

type CreateBookingRequest struct {
	UserID string   `json:"user_id" validate:"required"`
	ShowID string   `json:"show_id" validate:"required,uuid"`
	Seats  []string `json:"seats" validate:"required,min=1,unique"`
}

type CreateBookingResponse struct {
	BookingID   uuid.UUID `json:"booking_id"`
	Amount      float64   `json:"amount"`
	PaymentLink string    `json:"payment_link"`
}

func (s *Server) CreateBookingHandler(c echo.Context) error {
	ctx := c.Request().Context()

	var request CreateBookingRequest
	if err := c.Bind(&request); err != nil {
		return err
	}
	if err := c.Validate(&request); err != nil {
		return err
	}

	showID, err := uuid.Parse(request.ShowID)
	if err != nil {
		return c.String(http.StatusBadRequest, "show_id is not a valid UUID")
	}

	booking, err := s.bookingsService.CreateBooking(ctx, request.UserID, showID, request.Seats)
	switch {
	case errors.Is(err, entities.ErrShowNotFound):
		return c.String(http.StatusNotFound, "show not found")
	case errors.Is(err, entities.ErrSeatsAlreadyBooked):
		return c.String(http.StatusConflict, err.Error())
	case err != nil:
		return err
	}

	return c.JSON(http.StatusCreated, CreateBookingResponse{
		BookingID:   booking.ID,
		Amount:      booking.Amount,
		PaymentLink: booking.PaymentLink,
	})
}

func (s *Server) UserBookingsHandler(c echo.Context) error {
	bookings, err := s.bookingsService.UserBookings(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return err
	}

	if bookings == nil {
		bookings = []entities.UserBooking{}
	}
	return c.JSON(http.StatusOK, bookings)
}
