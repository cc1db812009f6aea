package admission

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Admission) error
	GetByID(ctx context.Context, id uuid.UUID) (*Admission, error)
	// GetActiveByPatient returns the patient's admission with status
	// "admitted", or an error when there is none.
	GetActiveByPatient(ctx context.Context, patientID uuid.UUID) (*Admission, error)
	Discharge(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, f Filters, limit, offset int) ([]*Admission, int, error)
}
