package certificate

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	CreateBirth(ctx context.Context, bc *BirthCertificate) error
	GetBirth(ctx context.Context, id uuid.UUID) (*BirthCertificate, error)
	UpdateBirth(ctx context.Context, bc *BirthCertificate) error
	DeleteBirth(ctx context.Context, id uuid.UUID) error
	SearchBirth(ctx context.Context, f Filters, limit, offset int) ([]*BirthCertificate, int, error)

	CreateDeath(ctx context.Context, dc *DeathCertificate) error
	GetDeath(ctx context.Context, id uuid.UUID) (*DeathCertificate, error)
	UpdateDeath(ctx context.Context, dc *DeathCertificate) error
	DeleteDeath(ctx context.Context, id uuid.UUID) error
	SearchDeath(ctx context.Context, f Filters, limit, offset int) ([]*DeathCertificate, int, error)
}
