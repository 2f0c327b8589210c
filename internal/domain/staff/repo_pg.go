package staff

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const doctorColumns = `id, user_id, specialization, qualification, available_days,
	start_time, end_time, experience_years, created_at, updated_at`

type doctorRepoPG struct {
	pool *pgxpool.Pool
}

func NewDoctorRepo(pool *pgxpool.Pool) DoctorRepository {
	return &doctorRepoPG{pool: pool}
}

func (r *doctorRepoPG) Create(ctx context.Context, d *Doctor) error {
	d.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO doctor_profile
			(id, user_id, specialization, qualification, available_days,
			 start_time, end_time, experience_years)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		d.ID, d.UserID, d.Specialization, d.Qualification, d.AvailableDays,
		d.StartTime, d.EndTime, d.ExperienceYears,
	)
	return err
}

func (r *doctorRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return r.scanDoctor(r.pool.QueryRow(ctx,
		`SELECT `+doctorColumns+` FROM doctor_profile WHERE id = $1`, id))
}

func (r *doctorRepoPG) GetByUserID(ctx context.Context, userID uuid.UUID) (*Doctor, error) {
	return r.scanDoctor(r.pool.QueryRow(ctx,
		`SELECT `+doctorColumns+` FROM doctor_profile WHERE user_id = $1`, userID))
}

func (r *doctorRepoPG) Update(ctx context.Context, d *Doctor) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE doctor_profile SET
			specialization = $2, qualification = $3, available_days = $4,
			start_time = $5, end_time = $6, experience_years = $7, updated_at = NOW()
		WHERE id = $1`,
		d.ID, d.Specialization, d.Qualification, d.AvailableDays,
		d.StartTime, d.EndTime, d.ExperienceYears,
	)
	return err
}

func (r *doctorRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM doctor_profile WHERE id = $1`, id)
	return err
}

func (r *doctorRepoPG) List(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM doctor_profile`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+doctorColumns+` FROM doctor_profile ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	doctors, err := r.scanDoctors(rows)
	if err != nil {
		return nil, 0, err
	}
	return doctors, total, nil
}

func (r *doctorRepoPG) ListBySpecialization(ctx context.Context, specialization string, limit, offset int) ([]*Doctor, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM doctor_profile WHERE specialization ILIKE $1`, specialization).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+doctorColumns+` FROM doctor_profile WHERE specialization ILIKE $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		specialization, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	doctors, err := r.scanDoctors(rows)
	if err != nil {
		return nil, 0, err
	}
	return doctors, total, nil
}

// ListAll returns the full doctor snapshot used by dashboard aggregation.
func (r *doctorRepoPG) ListAll(ctx context.Context) ([]*Doctor, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+doctorColumns+` FROM doctor_profile`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanDoctors(rows)
}

func (r *doctorRepoPG) scanDoctor(row pgx.Row) (*Doctor, error) {
	d := &Doctor{}
	err := row.Scan(&d.ID, &d.UserID, &d.Specialization, &d.Qualification, &d.AvailableDays,
		&d.StartTime, &d.EndTime, &d.ExperienceYears, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *doctorRepoPG) scanDoctors(rows pgx.Rows) ([]*Doctor, error) {
	var doctors []*Doctor
	for rows.Next() {
		d := &Doctor{}
		if err := rows.Scan(&d.ID, &d.UserID, &d.Specialization, &d.Qualification, &d.AvailableDays,
			&d.StartTime, &d.EndTime, &d.ExperienceYears, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		doctors = append(doctors, d)
	}
	return doctors, rows.Err()
}
