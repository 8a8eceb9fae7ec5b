package dto

import "time"

// CreateBookingRequest reserves a facility slot. Times are RFC 3339.
type CreateBookingRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

// BookingItem is one reservation.
type BookingItem struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	ServiceNumber  string     `json:"service_number,omitempty"`
	FullName       string     `json:"full_name,omitempty"`
	StartTime      time.Time  `json:"start_time"`
	EndTime        time.Time  `json:"end_time"`
	CreditsCharged int        `json:"credits_charged"`
	Status         string     `json:"status"`
	CancelledAt    *time.Time `json:"cancelled_at,omitempty"`
}

// CancelBookingResponse reports whether credits came back.
type CancelBookingResponse struct {
	Booking  BookingItem `json:"booking"`
	Refunded bool        `json:"refunded"`
	Refund   int         `json:"refund"`
}

// CapacityQuery bounds the availability window.
type CapacityQuery struct {
	From string `query:"from"` // RFC 3339
	To   string `query:"to"`
}

// CapacityBucket is one hour's load band.
type CapacityBucket struct {
	Start time.Time `json:"start"`
	Count int       `json:"count"`
	Band  string    `json:"band"` // good | limited | full
}

// CalendarEvent feeds the booking calendar view.
type CalendarEvent struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Own       bool      `json:"own"`
}
