package scheduling

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockAppointmentRepo struct {
	store map[uuid.UUID]*Appointment
}

func newMockAppointmentRepo() *mockAppointmentRepo {
	return &mockAppointmentRepo{store: make(map[uuid.UUID]*Appointment)}
}
func (m *mockAppointmentRepo) Create(_ context.Context, a *Appointment) error {
	a.ID = uuid.New(); m.store[a.ID] = a; return nil
}
func (m *mockAppointmentRepo) GetByID(_ context.Context, id uuid.UUID) (*Appointment, error) {
	a, ok := m.store[id]; if !ok { return nil, fmt.Errorf("not found") }; return a, nil
}
func (m *mockAppointmentRepo) Update(_ context.Context, a *Appointment) error {
	if _, ok := m.store[a.ID]; !ok { return fmt.Errorf("not found") }; m.store[a.ID] = a; return nil
}
func (m *mockAppointmentRepo) Delete(_ context.Context, id uuid.UUID) error { delete(m.store, id); return nil }
func (m *mockAppointmentRepo) List(_ context.Context, limit, offset int) ([]*Appointment, int, error) {
	var r []*Appointment; for _, a := range m.store { r = append(r, a) }; return r, len(r), nil
}
func (m *mockAppointmentRepo) ListByDoctor(_ context.Context, did uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	var r []*Appointment; for _, a := range m.store { if a.DoctorID == did { r = append(r, a) } }; return r, len(r), nil
}
func (m *mockAppointmentRepo) ListByPatient(_ context.Context, pid uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	var r []*Appointment; for _, a := range m.store { if a.PatientID == pid { r = append(r, a) } }; return r, len(r), nil
}
func (m *mockAppointmentRepo) CountByDoctorOnDay(_ context.Context, did uuid.UUID, day time.Time) (int, error) {
	count := 0
	for _, a := range m.store {
		if a.DoctorID == did && a.ScheduledAt.Year() == day.Year() && a.ScheduledAt.YearDay() == day.YearDay() {
			count++
		}
	}
	return count, nil
}
func (m *mockAppointmentRepo) ListAll(_ context.Context) ([]*Appointment, error) {
	var r []*Appointment; for _, a := range m.store { r = append(r, a) }; return r, nil
}

func newTestService() *Service { return NewService(newMockAppointmentRepo()) }

func validAppointment() *Appointment {
	return &Appointment{
		DoctorID:    uuid.New(),
		PatientID:   uuid.New(),
		ScheduledAt: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestCreateAppointment_Success(t *testing.T) {
	svc := newTestService()
	a := validAppointment()
	if err := svc.CreateAppointment(context.Background(), a); err != nil { t.Fatalf("unexpected error: %v", err) }
	if a.Status != StatusCreated { t.Errorf("expected default status %q, got %q", StatusCreated, a.Status) }
}

func TestCreateAppointment_MissingDoctor(t *testing.T) {
	svc := newTestService()
	a := validAppointment()
	a.DoctorID = uuid.Nil
	if err := svc.CreateAppointment(context.Background(), a); err == nil { t.Fatal("expected error") }
}

func TestCreateAppointment_MissingPatient(t *testing.T) {
	svc := newTestService()
	a := validAppointment()
	a.PatientID = uuid.Nil
	if err := svc.CreateAppointment(context.Background(), a); err == nil { t.Fatal("expected error") }
}

func TestCreateAppointment_MissingTime(t *testing.T) {
	svc := newTestService()
	a := validAppointment()
	a.ScheduledAt = time.Time{}
	if err := svc.CreateAppointment(context.Background(), a); err == nil { t.Fatal("expected error") }
}

func TestCreateAppointment_InvalidStatus(t *testing.T) {
	svc := newTestService()
	a := validAppointment()
	a.Status = "bogus"
	if err := svc.CreateAppointment(context.Background(), a); err == nil { t.Fatal("expected error") }
}

func TestCreateAppointment_AllStatusesValid(t *testing.T) {
	statuses := []string{
		StatusCreated, StatusPending, StatusApproved, StatusConfirmed,
		StatusAccepted, StatusInProgress, StatusPrescriptionPending,
		StatusLabRequested, StatusLabCompleted, StatusCompleted,
		StatusRejected, StatusCancelled, StatusNoShow, StatusFollowUpRequired,
	}
	for _, s := range statuses {
		svc := newTestService()
		a := validAppointment()
		a.Status = s
		if err := svc.CreateAppointment(context.Background(), a); err != nil {
			t.Errorf("status %q should be valid: %v", s, err)
		}
	}
}

func TestChangeStatus(t *testing.T) {
	svc := newTestService()
	a := validAppointment()
	svc.CreateAppointment(context.Background(), a)
	got, err := svc.ChangeStatus(context.Background(), a.ID, StatusConfirmed)
	if err != nil { t.Fatalf("unexpected error: %v", err) }
	if got.Status != StatusConfirmed { t.Errorf("status = %q, want %q", got.Status, StatusConfirmed) }
}

func TestChangeStatus_Invalid(t *testing.T) {
	svc := newTestService()
	a := validAppointment()
	svc.CreateAppointment(context.Background(), a)
	if _, err := svc.ChangeStatus(context.Background(), a.ID, "bogus"); err == nil { t.Fatal("expected error") }
}

func TestChangeStatus_TerminalLocked(t *testing.T) {
	for _, terminal := range []string{StatusCompleted, StatusRejected, StatusCancelled, StatusNoShow} {
		svc := newTestService()
		a := validAppointment()
		a.Status = terminal
		svc.CreateAppointment(context.Background(), a)
		if _, err := svc.ChangeStatus(context.Background(), a.ID, StatusPending); err == nil {
			t.Errorf("expected error changing status from %q", terminal)
		}
	}
}

func TestChangeStatus_NotFound(t *testing.T) {
	svc := newTestService()
	if _, err := svc.ChangeStatus(context.Background(), uuid.New(), StatusConfirmed); err == nil { t.Fatal("expected error") }
}

func TestListByDoctor(t *testing.T) {
	svc := newTestService()
	did := uuid.New()
	a1 := validAppointment()
	a1.DoctorID = did
	a2 := validAppointment()
	a2.DoctorID = did
	svc.CreateAppointment(context.Background(), a1)
	svc.CreateAppointment(context.Background(), a2)
	svc.CreateAppointment(context.Background(), validAppointment())
	items, total, err := svc.ListByDoctor(context.Background(), did, 10, 0)
	if err != nil { t.Fatalf("unexpected error: %v", err) }
	if total != 2 || len(items) != 2 { t.Errorf("expected 2 appointments, got %d", total) }
}
