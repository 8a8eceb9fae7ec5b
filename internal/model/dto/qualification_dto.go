package dto

// CreateQualificationRequest records a new vehicle qualification.
type CreateQualificationRequest struct {
	UserID      string `json:"user_id" binding:"required"`
	VehicleType string `json:"vehicle_type" binding:"required"`
	QualifiedOn string `json:"qualified_on" binding:"required"` // YYYY-MM-DD
}

// QualificationListQuery scopes the listing. Commanders may pass user_id or
// msp_id; soldiers always get their own rows.
type QualificationListQuery struct {
	UserID string `query:"user_id"`
	MSPID  int64  `query:"msp_id"`
	Status string `query:"status"`
}

// QualificationItem carries stored fields plus the derived currency block.
type QualificationItem struct {
	ID            int64   `json:"id"`
	UserID        string  `json:"user_id"`
	ServiceNumber string  `json:"service_number,omitempty"`
	FullName      string  `json:"full_name,omitempty"`
	VehicleType   string  `json:"vehicle_type"`
	QualifiedOn   string  `json:"qualified_on"`
	LastDriveDate *string `json:"last_drive_date,omitempty"`
	// Derived, never stored.
	Status        string `json:"status"`
	DaysRemaining int    `json:"days_remaining"`
	IsEligible    bool   `json:"is_eligible"`
}

// CreateDriveLogRequest records a currency drive.
type CreateDriveLogRequest struct {
	VehicleType string  `json:"vehicle_type" binding:"required"`
	Date        string  `json:"date" binding:"required"` // YYYY-MM-DD
	DistanceKm  float64 `json:"distance_km" binding:"required"`
	VehicleNo   string  `json:"vehicle_no" binding:"required"`
}

// DriveLogItem is one drive in the history listing.
type DriveLogItem struct {
	ID          int64   `json:"id"`
	UserID      string  `json:"user_id"`
	VehicleType string  `json:"vehicle_type"`
	Date        string  `json:"date"`
	DistanceKm  float64 `json:"distance_km"`
	VehicleNo   string  `json:"vehicle_no"`
	CreatedAt   string  `json:"created_at"`
}

// DriveLogListQuery filters drive history.
type DriveLogListQuery struct {
	UserID      string `query:"user_id"`
	VehicleType string `query:"vehicle_type"`
	Limit       int    `query:"limit"`
}

// ScanDriveRequest is the decoded QR payload from a vehicle plate scan.
type ScanDriveRequest struct {
	VehicleNo   string  `json:"vehicle_no" binding:"required"`
	VehicleType string  `json:"vehicle_type" binding:"required"`
	DistanceKm  float64 `json:"distance_km" binding:"required"`
}

// ScanDriveResponse confirms the recorded drive and the refreshed currency.
type ScanDriveResponse struct {
	DriveLog      DriveLogItem      `json:"drive_log"`
	Qualification QualificationItem `json:"qualification"`
}
