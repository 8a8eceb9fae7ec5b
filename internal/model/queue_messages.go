package model

// CurrencyReminderMessage is published by the scheduler for qualifications that
// derived EXPIRING_SOON or EXPIRED during the nightly scan. One message per
// batch; the worker fans out per user.
type CurrencyReminderMessage struct {
	MessageID     string  `json:"message_id"`
	BatchID       string  `json:"batch_id"`
	ScanDate      string  `json:"scan_date"` // 2006-01-02
	UserIDs       []int64 `json:"user_ids"`  // public IDs
	VehicleType   string  `json:"vehicle_type"`
	Status        string  `json:"status"` // EXPIRING_SOON or EXPIRED
	DaysRemaining int     `json:"days_remaining"`
	DelaySeconds  int     `json:"delay_seconds"`
}

// BookingReminderMessage is a delayed message fired shortly before a booking
// starts.
type BookingReminderMessage struct {
	MessageID       string `json:"message_id"`
	BookingPublicID int64  `json:"booking_public_id"`
	UserID          int64  `json:"user_id"` // public ID
	StartTime       string `json:"start_time"`
	DelaySeconds    int    `json:"delay_seconds"`
}
