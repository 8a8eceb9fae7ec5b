package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"FormUp/internal/middleware"
	"FormUp/internal/model/dto"
	"FormUp/internal/service"
	"FormUp/pkg/errors"
	"FormUp/pkg/response"
)

// CreateBooking reserves a facility slot for the caller.
// POST /api/bookings
func CreateBooking(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	var req dto.CreateBookingRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Booking().Create(ctx, userID, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Created(ctx, c, result)
}

// ListBookings returns the caller's bookings. Commanders and admins see all.
// GET /api/bookings
func ListBookings(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	role, _ := middleware.GetUserRole(ctx, c)

	items, err := service.Booking().List(ctx, userID, role)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, items)
}

// CancelBooking cancels a booking, refunding credits before the cutoff.
// POST /api/bookings/:id/cancel
func CancelBooking(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	result, err := service.Booking().Cancel(ctx, userID, c.Param("id"))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// GetCapacity returns per-hour occupancy bands for a window.
// GET /api/bookings/capacity
func GetCapacity(ctx context.Context, c *app.RequestContext) {
	var q dto.CapacityQuery
	if err := c.BindAndValidate(&q); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	items, err := service.Booking().Capacity(ctx, &q)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, items)
}

// GetCalendarEvents feeds the shared booking calendar.
// GET /api/bookings/calendar-events
func GetCalendarEvents(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	var q dto.CapacityQuery
	if err := c.BindAndValidate(&q); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	items, err := service.Booking().CalendarEvents(ctx, userID, &q)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, items)
}
