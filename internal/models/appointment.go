package models

import "time"

type Appointment struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Title string `gorm:"size:255;not null" json:"title"`

	Start time.Time `gorm:"column:start;not null" json:"start"`
	End   time.Time `gorm:"column:end;not null" json:"end"`
}
