package patient

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const patientColumns = `id, user_id, blood_group, marital_status, address, phone,
	emergency_name, emergency_phone, medical_history, created_at, updated_at`

type patientRepoPG struct {
	pool *pgxpool.Pool
}

func NewPatientRepo(pool *pgxpool.Pool) PatientRepository {
	return &patientRepoPG{pool: pool}
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO patient_profile
			(id, user_id, blood_group, marital_status, address, phone,
			 emergency_name, emergency_phone, medical_history)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.UserID, p.BloodGroup, p.MaritalStatus, p.Address, p.Phone,
		p.EmergencyName, p.EmergencyPhone, p.MedicalHistory,
	)
	return err
}

func (r *patientRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return r.scanPatient(r.pool.QueryRow(ctx,
		`SELECT `+patientColumns+` FROM patient_profile WHERE id = $1`, id))
}

func (r *patientRepoPG) GetByUserID(ctx context.Context, userID uuid.UUID) (*Patient, error) {
	return r.scanPatient(r.pool.QueryRow(ctx,
		`SELECT `+patientColumns+` FROM patient_profile WHERE user_id = $1`, userID))
}

func (r *patientRepoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE patient_profile SET
			blood_group = $2, marital_status = $3, address = $4, phone = $5,
			emergency_name = $6, emergency_phone = $7, medical_history = $8,
			updated_at = NOW()
		WHERE id = $1`,
		p.ID, p.BloodGroup, p.MaritalStatus, p.Address, p.Phone,
		p.EmergencyName, p.EmergencyPhone, p.MedicalHistory,
	)
	return err
}

func (r *patientRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM patient_profile WHERE id = $1`, id)
	return err
}

func (r *patientRepoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM patient_profile`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+patientColumns+` FROM patient_profile ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	patients, err := r.scanPatients(rows)
	if err != nil {
		return nil, 0, err
	}
	return patients, total, nil
}

// ListAll returns the full profile snapshot used by dashboard aggregation.
func (r *patientRepoPG) ListAll(ctx context.Context) ([]*Patient, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+patientColumns+` FROM patient_profile`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanPatients(rows)
}

func (r *patientRepoPG) scanPatient(row pgx.Row) (*Patient, error) {
	p := &Patient{}
	err := row.Scan(&p.ID, &p.UserID, &p.BloodGroup, &p.MaritalStatus, &p.Address, &p.Phone,
		&p.EmergencyName, &p.EmergencyPhone, &p.MedicalHistory, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *patientRepoPG) scanPatients(rows pgx.Rows) ([]*Patient, error) {
	var patients []*Patient
	for rows.Next() {
		p := &Patient{}
		if err := rows.Scan(&p.ID, &p.UserID, &p.BloodGroup, &p.MaritalStatus, &p.Address, &p.Phone,
			&p.EmergencyName, &p.EmergencyPhone, &p.MedicalHistory, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		patients = append(patients, p)
	}
	return patients, rows.Err()
}
