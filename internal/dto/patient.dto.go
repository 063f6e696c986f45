package dto

import (
	"time"

	domain "github.com/BruksfildServices01/clinic-portal/internal/domain/patient"
	"github.com/BruksfildServices01/clinic-portal/internal/models"
)

// PatientRequest binds both JSON bodies and multipart forms; the picture
// of a multipart request travels in the "image" file part.
type PatientRequest struct {
	EmployeeNumber  string `json:"employee_number" form:"employee_number"`
	FirstName       string `json:"first_name" form:"first_name" binding:"required"`
	LastName        string `json:"last_name" form:"last_name" binding:"required"`
	BirthDate       string `json:"birth_date" form:"birth_date"`
	Gender          string `json:"gender" form:"gender"`
	Email           string `json:"email" form:"email" binding:"omitempty,email"`
	HouseNum        string `json:"house_num" form:"house_num"`
	Street          string `json:"street" form:"street"`
	Barangay        string `json:"barangay" form:"barangay"`
	City            string `json:"city" form:"city"`
	Activeness      string `json:"activeness" form:"activeness" binding:"omitempty,oneof=Active Inactive"`
	SurgicalHistory string `json:"surgical_history" form:"surgical_history"`
	SurgeryDetails  string `json:"surgery_details" form:"surgery_details"`
	Weight          string `json:"weight" form:"weight"`
	Height          string `json:"height" form:"height"`
	Diagnosis       string `json:"diagnosis" form:"diagnosis"`
	Allergies       string `json:"allergies" form:"allergies"`
	Medications     string `json:"medications" form:"medications"`
}

func (r PatientRequest) Fields() domain.Fields {
	return domain.Fields{
		EmployeeNumber:  r.EmployeeNumber,
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		BirthDate:       r.BirthDate,
		Gender:          r.Gender,
		Email:           r.Email,
		HouseNum:        r.HouseNum,
		Street:          r.Street,
		Barangay:        r.Barangay,
		City:            r.City,
		Activeness:      r.Activeness,
		SurgicalHistory: r.SurgicalHistory,
		SurgeryDetails:  r.SurgeryDetails,
		Weight:          r.Weight,
		Height:          r.Height,
		Diagnosis:       r.Diagnosis,
		Allergies:       r.Allergies,
		Medications:     r.Medications,
	}
}

type Patient struct {
	ID              uint      `json:"id"`
	EmployeeNumber  string    `json:"employee_number"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	BirthDate       string    `json:"birth_date"`
	Gender          string    `json:"gender"`
	Email           string    `json:"email"`
	HouseNum        string    `json:"house_num"`
	Street          string    `json:"street"`
	Barangay        string    `json:"barangay"`
	City            string    `json:"city"`
	Activeness      string    `json:"activeness"`
	SurgicalHistory string    `json:"surgical_history"`
	SurgeryDetails  string    `json:"surgery_details"`
	Weight          string    `json:"weight"`
	Height          string    `json:"height"`
	Diagnosis       string    `json:"diagnosis"`
	Allergies       string    `json:"allergies"`
	Medications     string    `json:"medications"`
	Image           *string   `json:"image"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type PatientList struct {
	Patients []Patient `json:"patients"`
}

type PatientCreated struct {
	Message   string `json:"message"`
	PatientID uint   `json:"patientId"`
}

// FromPatient converts p; imageURL is the link produced by the image
// store, "" meaning no picture.
func FromPatient(p *models.Patient, imageURL string) Patient {
	out := Patient{
		ID:              p.ID,
		EmployeeNumber:  p.EmployeeNumber,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		BirthDate:       p.BirthDate,
		Gender:          p.Gender,
		Email:           p.Email,
		HouseNum:        p.HouseNum,
		Street:          p.Street,
		Barangay:        p.Barangay,
		City:            p.City,
		Activeness:      p.Activeness,
		SurgicalHistory: p.SurgicalHistory,
		SurgeryDetails:  p.SurgeryDetails,
		Weight:          p.Weight,
		Height:          p.Height,
		Diagnosis:       p.Diagnosis,
		Allergies:       p.Allergies,
		Medications:     p.Medications,
		CreatedAt:       p.CreatedAt.UTC(),
		UpdatedAt:       p.UpdatedAt.UTC(),
	}
	if imageURL != "" {
		out.Image = &imageURL
	}
	return out
}
