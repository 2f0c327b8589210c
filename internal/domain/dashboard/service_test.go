package dashboard

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/domain/identity"
	"github.com/hms/hms/internal/domain/lab"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/domain/scheduling"
	"github.com/hms/hms/internal/domain/staff"
	"github.com/hms/hms/internal/platform/clock"
)

type fixedUsers struct {
	items []*identity.User
	err   error
}

func (f fixedUsers) ListAll(context.Context) ([]*identity.User, error) { return f.items, f.err }

type fixedPatients struct {
	items []*patient.Patient
	err   error
}

func (f fixedPatients) ListAll(context.Context) ([]*patient.Patient, error) { return f.items, f.err }

type fixedDoctors struct {
	items []*staff.Doctor
	err   error
}

func (f fixedDoctors) ListAll(context.Context) ([]*staff.Doctor, error) { return f.items, f.err }

type fixedAppointments struct {
	items []*scheduling.Appointment
	err   error
}

func (f fixedAppointments) ListAll(context.Context) ([]*scheduling.Appointment, error) {
	return f.items, f.err
}

type fixedFacilities struct {
	items []*lab.Facility
	err   error
}

func (f fixedFacilities) ListAll(context.Context) ([]*lab.Facility, error) { return f.items, f.err }

type fixedLabServices struct {
	items []*lab.Service
	err   error
}

func (f fixedLabServices) ListAll(context.Context) ([]*lab.Service, error) { return f.items, f.err }

// Monday 2024-01-15 10:00 UTC.
var testNow = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

type fixture struct {
	users        fixedUsers
	patients     fixedPatients
	doctors      fixedDoctors
	appointments fixedAppointments
	facilities   fixedFacilities
	labServices  fixedLabServices
}

func (f fixture) service() *Service {
	return NewService(Config{
		Users:        f.users,
		Patients:     f.patients,
		Doctors:      f.doctors,
		Appointments: f.appointments,
		Facilities:   f.facilities,
		LabServices:  f.labServices,
		Clock:        clock.Fixed{T: testNow},
		TrendMonths:  3,
		Logger:       zerolog.Nop(),
	})
}

func baseFixture() fixture {
	doctorUser := &identity.User{ID: uuid.MustParse("00000000-0000-0000-0000-00000000000a"), FullName: "Dr. Vale", Role: identity.RoleDoctor}
	doc := &staff.Doctor{
		ID:             uuid.MustParse("00000000-0000-0000-0000-0000000000d1"),
		UserID:         doctorUser.ID,
		Specialization: strPtr("Cardiology"),
		AvailableDays:  "Monday,Tuesday",
		StartTime:      "09:00",
		EndTime:        "17:00",
	}
	offDoc := &staff.Doctor{
		ID:            uuid.MustParse("00000000-0000-0000-0000-0000000000d2"),
		UserID:        uuid.New(),
		AvailableDays: "Saturday",
	}
	p1 := uuid.MustParse("00000000-0000-0000-0000-0000000000b1")
	p2 := uuid.MustParse("00000000-0000-0000-0000-0000000000b2")

	return fixture{
		users: fixedUsers{items: []*identity.User{
			doctorUser,
			{ID: p1, Role: identity.RolePatient, Gender: strPtr("female")},
			{ID: p2, Role: identity.RolePatient, Gender: strPtr("male")},
		}},
		patients: fixedPatients{items: []*patient.Patient{
			{ID: uuid.New(), UserID: p1, BloodGroup: "A+", MaritalStatus: patient.MaritalSingle, CreatedAt: testNow.AddDate(0, 0, -3)},
			{ID: uuid.New(), UserID: p2, BloodGroup: "", MaritalStatus: patient.MaritalMarried, CreatedAt: testNow.AddDate(0, -1, 0)},
		}},
		doctors: fixedDoctors{items: []*staff.Doctor{doc, offDoc}},
		appointments: fixedAppointments{items: []*scheduling.Appointment{
			{ID: uuid.New(), DoctorID: doc.ID, PatientID: p1, ScheduledAt: testNow.Add(2 * time.Hour), Status: scheduling.StatusConfirmed},
			{ID: uuid.New(), DoctorID: doc.ID, PatientID: p2, ScheduledAt: testNow.AddDate(0, -1, 0), Status: scheduling.StatusCompleted},
			{ID: uuid.New(), DoctorID: offDoc.ID, PatientID: p1, ScheduledAt: testNow.AddDate(0, -2, 0), Status: scheduling.StatusCancelled},
		}},
		facilities: fixedFacilities{items: []*lab.Facility{
			{ID: uuid.New(), Name: "City Lab", Active: true},
			{ID: uuid.New(), Name: "Old Lab", Active: false},
		}},
		labServices: fixedLabServices{items: []*lab.Service{
			{ID: uuid.New(), Name: "CBC", Price: 20},
			{ID: uuid.New(), Name: "Lipid Panel", Price: 40},
		}},
	}
}

func TestAdminDashboard_Cards(t *testing.T) {
	svc := baseFixture().service()
	dash, err := svc.AdminDashboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if dash.Patients.Count != 2 {
		t.Errorf("Patients.Count = %d, want 2", dash.Patients.Count)
	}
	// One profile this month vs one last month.
	if dash.Patients.ChangePct != 0 {
		t.Errorf("Patients.ChangePct = %v, want 0", dash.Patients.ChangePct)
	}
	if dash.Appointments.Count != 3 {
		t.Errorf("Appointments.Count = %d, want 3", dash.Appointments.Count)
	}
}

func TestAdminDashboard_Distributions(t *testing.T) {
	svc := baseFixture().service()
	dash, err := svc.AdminDashboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Specializations coalesce blanks into General.
	found := map[string]NamedBucket{}
	for _, b := range dash.Specializations {
		found[b.Key] = b
	}
	if found["Cardiology"].Count != 1 || found["General"].Count != 1 {
		t.Errorf("Specializations = %v, want Cardiology:1 General:1", dash.Specializations)
	}

	// Blood groups skip blanks but keep the full denominator.
	if len(dash.BloodGroups) != 1 {
		t.Fatalf("BloodGroups = %v, want single A+ bucket", dash.BloodGroups)
	}
	if b := dash.BloodGroups[0]; b.Key != "A+" || b.Count != 1 || b.Percentage != 50 {
		t.Errorf("BloodGroups[0] = %+v, want A+/1/50", b)
	}
}

func TestAdminDashboard_Availability(t *testing.T) {
	svc := baseFixture().service()
	dash, err := svc.AdminDashboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The cardiologist works Mondays with an appointment today; the
	// other doctor only works Saturdays.
	want := AvailabilitySummary{InSession: 1, Off: 1}
	if dash.Availability != want {
		t.Errorf("Availability = %+v, want %+v", dash.Availability, want)
	}
	if dash.Availability.OnBreak != 0 {
		t.Error("OnBreak must stay zero")
	}
}

func TestAdminDashboard_Trend(t *testing.T) {
	svc := baseFixture().service()
	dash, err := svc.AdminDashboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(dash.AppointmentTrend) != 3 {
		t.Fatalf("trend length = %d, want 3", len(dash.AppointmentTrend))
	}
	wantLabels := []string{"Nov 2023", "Dec 2023", "Jan 2024"}
	wantCounts := []int{1, 1, 1}
	for i, p := range dash.AppointmentTrend {
		if p.Label != wantLabels[i] || p.Count != wantCounts[i] {
			t.Errorf("trend[%d] = %+v, want {%s %d}", i, p, wantLabels[i], wantCounts[i])
		}
	}
}

func TestAdminDashboard_TopDoctorsAndLab(t *testing.T) {
	svc := baseFixture().service()
	dash, err := svc.AdminDashboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(dash.TopDoctors) != 2 {
		t.Fatalf("TopDoctors = %v, want 2 rows", dash.TopDoctors)
	}
	if dash.TopDoctors[0].PatientCount != 2 || dash.TopDoctors[0].FullName != "Dr. Vale" {
		t.Errorf("TopDoctors[0] = %+v, want Dr. Vale with 2 patients", dash.TopDoctors[0])
	}

	wantLab := LabStats{FacilityCount: 2, ActiveFacilities: 1, ServiceCount: 2, AveragePrice: 30}
	if dash.Lab != wantLab {
		t.Errorf("Lab = %+v, want %+v", dash.Lab, wantLab)
	}
}

func TestAdminDashboard_DegradesOnSecondaryFailure(t *testing.T) {
	f := baseFixture()
	f.facilities = fixedFacilities{err: fmt.Errorf("lab module offline")}
	f.labServices = fixedLabServices{err: fmt.Errorf("lab module offline")}

	dash, err := f.service().AdminDashboard(context.Background())
	if err != nil {
		t.Fatalf("secondary failure must not fail the dashboard: %v", err)
	}
	if dash.Lab != (LabStats{}) {
		t.Errorf("Lab = %+v, want zero stats", dash.Lab)
	}
	// Unaffected sections still populate.
	if dash.Appointments.Count != 3 {
		t.Errorf("Appointments.Count = %d, want 3", dash.Appointments.Count)
	}
}

func TestAdminDashboard_FailsOnPrimaryFailure(t *testing.T) {
	f := baseFixture()
	f.appointments = fixedAppointments{err: fmt.Errorf("db down")}

	if _, err := f.service().AdminDashboard(context.Background()); err == nil {
		t.Fatal("appointment fetch failure must fail the operation")
	}
}

func TestAdminDashboard_Idempotent(t *testing.T) {
	svc := baseFixture().service()
	first, err := svc.AdminDashboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.AdminDashboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("identical snapshot and reference time must compose identical dashboards")
	}
}

func TestDoctorDashboard(t *testing.T) {
	f := baseFixture()
	doctorID := f.doctors.items[0].ID

	dash, err := f.service().DoctorDashboard(context.Background(), doctorID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if dash.TodaysAppointments != 1 {
		t.Errorf("TodaysAppointments = %d, want 1", dash.TodaysAppointments)
	}
	if dash.Status != staff.StatusInSession {
		t.Errorf("Status = %q, want %q", dash.Status, staff.StatusInSession)
	}
	if dash.PatientsSeen != 2 {
		t.Errorf("PatientsSeen = %d, want 2", dash.PatientsSeen)
	}
	if dash.Appointments.Count != 2 {
		t.Errorf("Appointments.Count = %d, want 2", dash.Appointments.Count)
	}
	// Trend only counts this doctor's appointments.
	total := 0
	for _, p := range dash.AppointmentTrend {
		total += p.Count
	}
	if total != 2 {
		t.Errorf("trend total = %d, want 2", total)
	}
}

func TestDoctorDashboard_PlaceholdersDeterministic(t *testing.T) {
	f := baseFixture()
	doctorID := f.doctors.items[0].ID
	svc := f.service()

	first, _ := svc.DoctorDashboard(context.Background(), doctorID)
	second, _ := svc.DoctorDashboard(context.Background(), doctorID)
	if first.Rating != second.Rating || first.ReviewCount != second.ReviewCount {
		t.Error("placeholder metrics must be deterministic")
	}
}

func TestDoctorDashboard_UnknownDoctorDefaultsAvailable(t *testing.T) {
	f := baseFixture()
	dash, err := f.service().DoctorDashboard(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dash.Status != staff.StatusAvailable {
		t.Errorf("Status = %q, want %q", dash.Status, staff.StatusAvailable)
	}
	if dash.TodaysAppointments != 0 || dash.PatientsSeen != 0 {
		t.Error("unknown doctor should have empty aggregates")
	}
}
