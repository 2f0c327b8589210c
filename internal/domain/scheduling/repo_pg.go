package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const appointmentColumns = `id, doctor_id, patient_id, scheduled_at, status, reason, notes, created_at, updated_at`

type appointmentRepoPG struct {
	pool *pgxpool.Pool
}

func NewAppointmentRepo(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepoPG{pool: pool}
}

func (r *appointmentRepoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO appointment (id, doctor_id, patient_id, scheduled_at, status, reason, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.DoctorID, a.PatientID, a.ScheduledAt, a.Status, a.Reason, a.Notes,
	)
	return err
}

func (r *appointmentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return r.scanAppointment(r.pool.QueryRow(ctx,
		`SELECT `+appointmentColumns+` FROM appointment WHERE id = $1`, id))
}

func (r *appointmentRepoPG) Update(ctx context.Context, a *Appointment) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE appointment SET
			doctor_id = $2, patient_id = $3, scheduled_at = $4,
			status = $5, reason = $6, notes = $7, updated_at = NOW()
		WHERE id = $1`,
		a.ID, a.DoctorID, a.PatientID, a.ScheduledAt, a.Status, a.Reason, a.Notes,
	)
	return err
}

func (r *appointmentRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM appointment WHERE id = $1`, id)
	return err
}

func (r *appointmentRepoPG) List(ctx context.Context, limit, offset int) ([]*Appointment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM appointment`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+appointmentColumns+` FROM appointment ORDER BY scheduled_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	appts, err := r.scanAppointments(rows)
	if err != nil {
		return nil, 0, err
	}
	return appts, total, nil
}

func (r *appointmentRepoPG) ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM appointment WHERE doctor_id = $1`, doctorID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+appointmentColumns+` FROM appointment WHERE doctor_id = $1
		 ORDER BY scheduled_at DESC LIMIT $2 OFFSET $3`,
		doctorID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	appts, err := r.scanAppointments(rows)
	if err != nil {
		return nil, 0, err
	}
	return appts, total, nil
}

func (r *appointmentRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM appointment WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+appointmentColumns+` FROM appointment WHERE patient_id = $1
		 ORDER BY scheduled_at DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	appts, err := r.scanAppointments(rows)
	if err != nil {
		return nil, 0, err
	}
	return appts, total, nil
}

// CountByDoctorOnDay counts appointments for a doctor on the calendar day
// containing the given instant, in the instant's location.
func (r *appointmentRepoPG) CountByDoctorOnDay(ctx context.Context, doctorID uuid.UUID, day time.Time) (int, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM appointment
		WHERE doctor_id = $1 AND scheduled_at >= $2 AND scheduled_at < $3`,
		doctorID, start, end).Scan(&count)
	return count, err
}

// ListAll returns the full appointment snapshot used by dashboard aggregation.
func (r *appointmentRepoPG) ListAll(ctx context.Context) ([]*Appointment, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+appointmentColumns+` FROM appointment`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanAppointments(rows)
}

func (r *appointmentRepoPG) scanAppointment(row pgx.Row) (*Appointment, error) {
	a := &Appointment{}
	err := row.Scan(&a.ID, &a.DoctorID, &a.PatientID, &a.ScheduledAt, &a.Status,
		&a.Reason, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *appointmentRepoPG) scanAppointments(rows pgx.Rows) ([]*Appointment, error) {
	var appts []*Appointment
	for rows.Next() {
		a := &Appointment{}
		if err := rows.Scan(&a.ID, &a.DoctorID, &a.PatientID, &a.ScheduledAt, &a.Status,
			&a.Reason, &a.Notes, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		appts = append(appts, a)
	}
	return appts, rows.Err()
}
