// Package imagestore keeps processed patient pictures either inline in the
// patient row or in an S3-compatible bucket.
package imagestore

import (
	"context"
	"encoding/base64"

	"github.com/BruksfildServices01/clinic-portal/internal/imaging"
	"github.com/BruksfildServices01/clinic-portal/internal/models"
)

// Store attaches images to patients. Put and Remove only mutate the
// patient's image fields; persisting the row is up to the caller.
type Store interface {
	Put(ctx context.Context, p *models.Patient, img imaging.Image) error
	// URL returns "" when the patient has no image.
	URL(p *models.Patient) string
	Remove(ctx context.Context, p *models.Patient) error
}

// DBStore keeps the encoded bytes on the patient row and serves them as a
// data URL.
type DBStore struct{}

func NewDBStore() *DBStore {
	return &DBStore{}
}

func (DBStore) Put(_ context.Context, p *models.Patient, img imaging.Image) error {
	p.Image = img.Data
	p.ImageType = img.ContentType
	p.ImageKey = ""
	return nil
}

func (DBStore) URL(p *models.Patient) string {
	if len(p.Image) == 0 {
		return ""
	}
	ct := p.ImageType
	if ct == "" {
		ct = imaging.ContentType
	}
	return "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(p.Image)
}

func (DBStore) Remove(_ context.Context, p *models.Patient) error {
	p.Image = nil
	p.ImageType = ""
	return nil
}

var _ Store = DBStore{}
