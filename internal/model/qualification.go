package model

import "time"

// Qualification records that a user may drive a vehicle type. Currency status
// and days remaining are derived from LastDriveDate at read time, never stored.
type Qualification struct {
	BaseModel
	UserID        int64      `gorm:"not null;uniqueIndex:idx_qualifications_user_vehicle" json:"user_id"`
	VehicleType   string     `gorm:"type:varchar(32);not null;uniqueIndex:idx_qualifications_user_vehicle" json:"vehicle_type"`
	QualifiedOn   time.Time  `gorm:"type:date;not null" json:"qualified_on"`
	LastDriveDate *time.Time `gorm:"type:date" json:"last_drive_date,omitempty"`
}

func (Qualification) TableName() string {
	return "qualifications"
}
