package patient

import (
	"context"

	"github.com/BruksfildServices01/clinic-portal/internal/httperr"
	"github.com/BruksfildServices01/clinic-portal/internal/models"
)

var (
	ErrNotFound     = httperr.ErrBusiness("patient_not_found")
	ErrInvalidImage = httperr.ErrBusiness("invalid_image")
)

type Repository interface {
	ListPatients(ctx context.Context) ([]models.Patient, error)
	GetPatient(ctx context.Context, id uint) (*models.Patient, error)
	CreatePatient(ctx context.Context, p *models.Patient) error
	// UpdatePatient saves p and reports how many rows matched its id.
	UpdatePatient(ctx context.Context, p *models.Patient) (int64, error)
	DeletePatient(ctx context.Context, id uint) (int64, error)
}

// Fields are the editable parts of a patient record.
type Fields struct {
	EmployeeNumber  string
	FirstName       string
	LastName        string
	BirthDate       string
	Gender          string
	Email           string
	HouseNum        string
	Street          string
	Barangay        string
	City            string
	Activeness      string
	SurgicalHistory string
	SurgeryDetails  string
	Weight          string
	Height          string
	Diagnosis       string
	Allergies       string
	Medications     string
}

const DefaultActiveness = "Active"

// Apply copies f onto p.
func (f Fields) Apply(p *models.Patient) {
	p.EmployeeNumber = f.EmployeeNumber
	p.FirstName = f.FirstName
	p.LastName = f.LastName
	p.BirthDate = f.BirthDate
	p.Gender = f.Gender
	p.Email = f.Email
	p.HouseNum = f.HouseNum
	p.Street = f.Street
	p.Barangay = f.Barangay
	p.City = f.City
	p.Activeness = f.Activeness
	if p.Activeness == "" {
		p.Activeness = DefaultActiveness
	}
	p.SurgicalHistory = f.SurgicalHistory
	p.SurgeryDetails = f.SurgeryDetails
	p.Weight = f.Weight
	p.Height = f.Height
	p.Diagnosis = f.Diagnosis
	p.Allergies = f.Allergies
	p.Medications = f.Medications
}
