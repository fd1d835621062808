package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/attendly/attendance-backend-go/internal/domain/company"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

const companyColumns = `id, name, address, latitude, longitude, radius_meters, created_at, updated_at`

func scanCompany(row pgx.Row) (company.Company, error) {
	var c company.Company
	err := row.Scan(&c.ID, &c.Name, &c.Address, &c.Latitude, &c.Longitude, &c.RadiusMeters, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// Create implements company.CompanyRepository.
func (r *companyRepositoryImpl) Create(ctx context.Context, c company.Company) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO companies (name, address, latitude, longitude, radius_meters)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + companyColumns

	created, err := scanCompany(q.QueryRow(ctx, query, c.Name, c.Address, c.Latitude, c.Longitude, c.RadiusMeters))
	if err != nil {
		return company.Company{}, fmt.Errorf("failed to create company: %w", err)
	}
	return created, nil
}

// GetByID implements company.CompanyRepository.
func (r *companyRepositoryImpl) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`

	c, err := scanCompany(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company: %w", err)
	}
	return c, nil
}

// GetByCoordinates implements company.CompanyRepository. The QR payload
// carries the registered coordinates verbatim, so the match is exact.
func (r *companyRepositoryImpl) GetByCoordinates(ctx context.Context, latitude, longitude float64) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + companyColumns + ` FROM companies WHERE latitude = $1 AND longitude = $2`

	c, err := scanCompany(q.QueryRow(ctx, query, latitude, longitude))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company by coordinates: %w", err)
	}
	return c, nil
}

// List implements company.CompanyRepository.
func (r *companyRepositoryImpl) List(ctx context.Context) ([]company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var companies []company.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

// Update implements company.CompanyRepository.
func (r *companyRepositoryImpl) Update(ctx context.Context, c company.Company) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE companies
		SET name = $2, address = $3, latitude = $4, longitude = $5, radius_meters = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING id`

	var updatedID string
	if err := q.QueryRow(ctx, query, c.ID, c.Name, c.Address, c.Latitude, c.Longitude, c.RadiusMeters).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.ErrCompanyNotFound
		}
		return fmt.Errorf("failed to update company: %w", err)
	}
	return nil
}
