package model

import "time"

// DriveLog is immutable once created except for deletion. Creation and
// deletion both recompute the owning qualification's LastDriveDate.
type DriveLog struct {
	BaseModel
	UserID      int64     `gorm:"not null;index:idx_drive_logs_user_vehicle" json:"user_id"`
	VehicleType string    `gorm:"type:varchar(32);not null;index:idx_drive_logs_user_vehicle" json:"vehicle_type"`
	Date        time.Time `gorm:"type:date;not null;index" json:"date"`
	DistanceKm  float64   `gorm:"not null;default:0" json:"distance_km"`
	VehicleNo   string    `gorm:"type:varchar(16);not null" json:"vehicle_no"`
}

func (DriveLog) TableName() string {
	return "drive_logs"
}
