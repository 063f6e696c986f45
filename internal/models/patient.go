package models

import "time"

// Patient mirrors the clinic's patient record card. Image holds the
// processed picture when images are kept in the database; ImageKey holds
// the object key when they live in an object store.
type Patient struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	EmployeeNumber string `gorm:"size:50" json:"employee_number"`
	FirstName      string `gorm:"size:100;not null" json:"first_name"`
	LastName       string `gorm:"size:100;not null" json:"last_name"`
	BirthDate      string `gorm:"size:10" json:"birth_date"`
	Gender         string `gorm:"size:20" json:"gender"`
	Email          string `gorm:"size:100" json:"email"`

	HouseNum   string `gorm:"size:20" json:"house_num"`
	Street     string `gorm:"size:100" json:"street"`
	Barangay   string `gorm:"size:100" json:"barangay"`
	City       string `gorm:"size:100" json:"city"`
	Activeness string `gorm:"size:20;default:'Active'" json:"activeness"`

	SurgicalHistory string `gorm:"size:255" json:"surgical_history"`
	SurgeryDetails  string `gorm:"type:text" json:"surgery_details"`
	Weight          string `gorm:"size:20" json:"weight"`
	Height          string `gorm:"size:20" json:"height"`
	Diagnosis       string `gorm:"type:text" json:"diagnosis"`
	Allergies       string `gorm:"type:text" json:"allergies"`
	Medications     string `gorm:"type:text" json:"medications"`

	Image     []byte `json:"-"`
	ImageType string `gorm:"size:50" json:"-"`
	ImageKey  string `gorm:"size:255" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Patient) HasImage() bool {
	return len(p.Image) > 0 || p.ImageKey != ""
}
