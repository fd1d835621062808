package company

import "context"

type CompanyRepository interface {
	Create(ctx context.Context, c Company) (Company, error)
	GetByID(ctx context.Context, id string) (Company, error)
	// GetByCoordinates resolves the company whose registered coordinates
	// exactly match the scanned QR payload.
	GetByCoordinates(ctx context.Context, latitude, longitude float64) (Company, error)
	List(ctx context.Context) ([]Company, error)
	Update(ctx context.Context, c Company) error
}
