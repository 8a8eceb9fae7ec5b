package model

// MSP is an organizational sub-unit grouping used for filtering and reporting.
type MSP struct {
	BaseModel
	Code string `gorm:"uniqueIndex;type:varchar(16);not null" json:"code"`
	Name string `gorm:"type:varchar(128);not null" json:"name"`
}

func (MSP) TableName() string {
	return "msps"
}
