package patient

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
)

type mockPatientRepo struct {
	store map[uuid.UUID]*Patient
}

func newMockPatientRepo() *mockPatientRepo {
	return &mockPatientRepo{store: make(map[uuid.UUID]*Patient)}
}
func (m *mockPatientRepo) Create(_ context.Context, p *Patient) error {
	p.ID = uuid.New(); m.store[p.ID] = p; return nil
}
func (m *mockPatientRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.store[id]; if !ok { return nil, fmt.Errorf("not found") }; return p, nil
}
func (m *mockPatientRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*Patient, error) {
	for _, p := range m.store { if p.UserID == userID { return p, nil } }; return nil, fmt.Errorf("not found")
}
func (m *mockPatientRepo) Update(_ context.Context, p *Patient) error {
	if _, ok := m.store[p.ID]; !ok { return fmt.Errorf("not found") }; m.store[p.ID] = p; return nil
}
func (m *mockPatientRepo) Delete(_ context.Context, id uuid.UUID) error { delete(m.store, id); return nil }
func (m *mockPatientRepo) List(_ context.Context, limit, offset int) ([]*Patient, int, error) {
	var r []*Patient; for _, p := range m.store { r = append(r, p) }; return r, len(r), nil
}
func (m *mockPatientRepo) ListAll(_ context.Context) ([]*Patient, error) {
	var r []*Patient; for _, p := range m.store { r = append(r, p) }; return r, nil
}

func newTestService() *Service { return NewService(newMockPatientRepo()) }

func TestCreatePatient_Success(t *testing.T) {
	svc := newTestService()
	p := &Patient{UserID: uuid.New(), BloodGroup: "o+", MaritalStatus: MaritalSingle}
	if err := svc.CreatePatient(context.Background(), p); err != nil { t.Fatalf("unexpected error: %v", err) }
	if p.BloodGroup != "O+" { t.Errorf("expected normalized blood group O+, got %q", p.BloodGroup) }
}

func TestCreatePatient_MissingUser(t *testing.T) {
	svc := newTestService()
	if err := svc.CreatePatient(context.Background(), &Patient{}); err == nil { t.Fatal("expected error") }
}

func TestCreatePatient_InvalidBloodGroup(t *testing.T) {
	svc := newTestService()
	if err := svc.CreatePatient(context.Background(), &Patient{UserID: uuid.New(), BloodGroup: "C+"}); err == nil { t.Fatal("expected error") }
}

func TestCreatePatient_EmptyBloodGroupAllowed(t *testing.T) {
	svc := newTestService()
	if err := svc.CreatePatient(context.Background(), &Patient{UserID: uuid.New()}); err != nil { t.Fatalf("unexpected error: %v", err) }
}

func TestCreatePatient_InvalidMaritalStatus(t *testing.T) {
	svc := newTestService()
	if err := svc.CreatePatient(context.Background(), &Patient{UserID: uuid.New(), MaritalStatus: "complicated"}); err == nil { t.Fatal("expected error") }
}

func TestCreatePatient_ValidMaritalStatuses(t *testing.T) {
	for _, s := range []string{MaritalSingle, MaritalMarried, MaritalDivorced, MaritalWidowed} {
		svc := newTestService()
		p := &Patient{UserID: uuid.New(), MaritalStatus: s}
		if err := svc.CreatePatient(context.Background(), p); err != nil { t.Errorf("status %q should be valid: %v", s, err) }
	}
}

func TestGetPatientByUser(t *testing.T) {
	svc := newTestService()
	uid := uuid.New()
	p := &Patient{UserID: uid}
	svc.CreatePatient(context.Background(), p)
	got, err := svc.GetPatientByUser(context.Background(), uid)
	if err != nil { t.Fatalf("unexpected error: %v", err) }
	if got.ID != p.ID { t.Error("ID mismatch") }
}

func TestUpdatePatient_InvalidBloodGroup(t *testing.T) {
	svc := newTestService()
	p := &Patient{UserID: uuid.New()}
	svc.CreatePatient(context.Background(), p)
	p.BloodGroup = "Z-"
	if err := svc.UpdatePatient(context.Background(), p); err == nil { t.Fatal("expected error") }
}

func TestDeletePatient(t *testing.T) {
	svc := newTestService()
	p := &Patient{UserID: uuid.New()}
	svc.CreatePatient(context.Background(), p)
	if err := svc.DeletePatient(context.Background(), p.ID); err != nil { t.Fatalf("unexpected error: %v", err) }
	if _, err := svc.GetPatient(context.Background(), p.ID); err == nil { t.Fatal("expected error after delete") }
}
