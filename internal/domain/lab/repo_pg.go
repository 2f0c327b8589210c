package lab

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const facilityColumns = `id, name, category, address, phone, active, created_at, updated_at`

type facilityRepoPG struct {
	pool *pgxpool.Pool
}

func NewFacilityRepo(pool *pgxpool.Pool) FacilityRepository {
	return &facilityRepoPG{pool: pool}
}

func (r *facilityRepoPG) Create(ctx context.Context, f *Facility) error {
	f.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO lab_facility (id, name, category, address, phone, active)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		f.ID, f.Name, f.Category, f.Address, f.Phone, f.Active,
	)
	return err
}

func (r *facilityRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Facility, error) {
	return r.scanFacility(r.pool.QueryRow(ctx,
		`SELECT `+facilityColumns+` FROM lab_facility WHERE id = $1`, id))
}

func (r *facilityRepoPG) Update(ctx context.Context, f *Facility) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE lab_facility SET
			name = $2, category = $3, address = $4, phone = $5, active = $6, updated_at = NOW()
		WHERE id = $1`,
		f.ID, f.Name, f.Category, f.Address, f.Phone, f.Active,
	)
	return err
}

func (r *facilityRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM lab_facility WHERE id = $1`, id)
	return err
}

func (r *facilityRepoPG) List(ctx context.Context, limit, offset int) ([]*Facility, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM lab_facility`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+facilityColumns+` FROM lab_facility ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	facilities, err := r.scanFacilities(rows)
	if err != nil {
		return nil, 0, err
	}
	return facilities, total, nil
}

func (r *facilityRepoPG) ListAll(ctx context.Context) ([]*Facility, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+facilityColumns+` FROM lab_facility`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanFacilities(rows)
}

func (r *facilityRepoPG) scanFacility(row pgx.Row) (*Facility, error) {
	f := &Facility{}
	err := row.Scan(&f.ID, &f.Name, &f.Category, &f.Address, &f.Phone, &f.Active, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *facilityRepoPG) scanFacilities(rows pgx.Rows) ([]*Facility, error) {
	var facilities []*Facility
	for rows.Next() {
		f := &Facility{}
		if err := rows.Scan(&f.ID, &f.Name, &f.Category, &f.Address, &f.Phone, &f.Active,
			&f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		facilities = append(facilities, f)
	}
	return facilities, rows.Err()
}

const serviceColumns = `id, facility_id, name, category, price, active, created_at, updated_at`

type serviceRepoPG struct {
	pool *pgxpool.Pool
}

func NewServiceRepo(pool *pgxpool.Pool) ServiceRepository {
	return &serviceRepoPG{pool: pool}
}

func (r *serviceRepoPG) Create(ctx context.Context, s *Service) error {
	s.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO lab_service (id, facility_id, name, category, price, active)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.FacilityID, s.Name, s.Category, s.Price, s.Active,
	)
	return err
}

func (r *serviceRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Service, error) {
	return r.scanService(r.pool.QueryRow(ctx,
		`SELECT `+serviceColumns+` FROM lab_service WHERE id = $1`, id))
}

func (r *serviceRepoPG) Update(ctx context.Context, s *Service) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE lab_service SET
			facility_id = $2, name = $3, category = $4, price = $5, active = $6, updated_at = NOW()
		WHERE id = $1`,
		s.ID, s.FacilityID, s.Name, s.Category, s.Price, s.Active,
	)
	return err
}

func (r *serviceRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM lab_service WHERE id = $1`, id)
	return err
}

func (r *serviceRepoPG) List(ctx context.Context, limit, offset int) ([]*Service, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM lab_service`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+serviceColumns+` FROM lab_service ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	services, err := r.scanServices(rows)
	if err != nil {
		return nil, 0, err
	}
	return services, total, nil
}

func (r *serviceRepoPG) ListByFacility(ctx context.Context, facilityID uuid.UUID, limit, offset int) ([]*Service, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM lab_service WHERE facility_id = $1`, facilityID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+serviceColumns+` FROM lab_service WHERE facility_id = $1 ORDER BY name LIMIT $2 OFFSET $3`,
		facilityID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	services, err := r.scanServices(rows)
	if err != nil {
		return nil, 0, err
	}
	return services, total, nil
}

func (r *serviceRepoPG) ListAll(ctx context.Context) ([]*Service, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+serviceColumns+` FROM lab_service`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanServices(rows)
}

func (r *serviceRepoPG) scanService(row pgx.Row) (*Service, error) {
	s := &Service{}
	err := row.Scan(&s.ID, &s.FacilityID, &s.Name, &s.Category, &s.Price, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *serviceRepoPG) scanServices(rows pgx.Rows) ([]*Service, error) {
	var services []*Service
	for rows.Next() {
		s := &Service{}
		if err := rows.Scan(&s.ID, &s.FacilityID, &s.Name, &s.Category, &s.Price, &s.Active,
			&s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	return services, rows.Err()
}
