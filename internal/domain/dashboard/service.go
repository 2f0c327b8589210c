package dashboard

import (
	"context"
	"fmt"
	"sort"
	"sync"
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

// Snapshot sources are the narrow read-side views the composer needs
// from each module; the module repositories satisfy them directly.
type (
	UserSource interface {
		ListAll(ctx context.Context) ([]*identity.User, error)
	}
	PatientSource interface {
		ListAll(ctx context.Context) ([]*patient.Patient, error)
	}
	DoctorSource interface {
		ListAll(ctx context.Context) ([]*staff.Doctor, error)
	}
	AppointmentSource interface {
		ListAll(ctx context.Context) ([]*scheduling.Appointment, error)
	}
	FacilitySource interface {
		ListAll(ctx context.Context) ([]*lab.Facility, error)
	}
	LabServiceSource interface {
		ListAll(ctx context.Context) ([]*lab.Service, error)
	}
)

const topDoctorCount = 5

// Service composes role dashboards from module snapshots. Every
// aggregate is recomputed per request; nothing is cached.
type Service struct {
	users        UserSource
	patients     PatientSource
	doctors      DoctorSource
	appointments AppointmentSource
	facilities   FacilitySource
	labServices  LabServiceSource
	placeholders PlaceholderMetrics
	clk          clock.Clock
	fetchTimeout time.Duration
	trendMonths  int
	logger       zerolog.Logger
}

type Config struct {
	Users        UserSource
	Patients     PatientSource
	Doctors      DoctorSource
	Appointments AppointmentSource
	Facilities   FacilitySource
	LabServices  LabServiceSource
	Placeholders PlaceholderMetrics
	Clock        clock.Clock
	FetchTimeout time.Duration
	TrendMonths  int
	Logger       zerolog.Logger
}

func NewService(cfg Config) *Service {
	if cfg.Clock == nil {
		cfg.Clock = clock.System{}
	}
	if cfg.Placeholders == nil {
		cfg.Placeholders = HashedPlaceholders{}
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 3 * time.Second
	}
	if cfg.TrendMonths <= 0 {
		cfg.TrendMonths = 12
	}
	return &Service{
		users:        cfg.Users,
		patients:     cfg.Patients,
		doctors:      cfg.Doctors,
		appointments: cfg.Appointments,
		facilities:   cfg.Facilities,
		labServices:  cfg.LabServices,
		placeholders: cfg.Placeholders,
		clk:          cfg.Clock,
		fetchTimeout: cfg.FetchTimeout,
		trendMonths:  cfg.TrendMonths,
		logger:       cfg.Logger,
	}
}

// snapshot holds the record sets a dashboard is computed from. Fields
// other than appointments may be nil when their fetch failed; the
// corresponding cards degrade to zero values.
type snapshot struct {
	users        []*identity.User
	patients     []*patient.Patient
	doctors      []*staff.Doctor
	appointments []*scheduling.Appointment
	facilities   []*lab.Facility
	labServices  []*lab.Service
}

// load fetches all record sets concurrently, each under its own
// timeout. The appointment set is the primary fetch: its failure fails
// the whole operation. Any other failure is logged and degraded to an
// empty set.
func (s *Service) load(ctx context.Context) (*snapshot, error) {
	snap := &snapshot{}
	var apptErr error

	fetch := func(name string, fn func(context.Context) error) func() {
		return func() {
			fctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
			defer cancel()
			if err := fn(fctx); err != nil {
				if name == "appointments" {
					apptErr = err
					return
				}
				s.logger.Warn().Err(err).Str("source", name).Msg("dashboard fetch degraded to empty set")
			}
		}
	}

	jobs := []func(){
		fetch("appointments", func(c context.Context) (err error) { snap.appointments, err = s.appointments.ListAll(c); return }),
		fetch("users", func(c context.Context) (err error) { snap.users, err = s.users.ListAll(c); return }),
		fetch("patients", func(c context.Context) (err error) { snap.patients, err = s.patients.ListAll(c); return }),
		fetch("doctors", func(c context.Context) (err error) { snap.doctors, err = s.doctors.ListAll(c); return }),
		fetch("lab_facilities", func(c context.Context) (err error) { snap.facilities, err = s.facilities.ListAll(c); return }),
		fetch("lab_services", func(c context.Context) (err error) { snap.labServices, err = s.labServices.ListAll(c); return }),
	}

	var wg sync.WaitGroup
	wg.Add(len(jobs))
	for _, job := range jobs {
		go func(run func()) {
			defer wg.Done()
			run()
		}(job)
	}
	wg.Wait()

	if apptErr != nil {
		return nil, fmt.Errorf("loading appointments: %w", apptErr)
	}
	return snap, nil
}

// AdminDashboard assembles the clinic-wide view model.
func (s *Service) AdminDashboard(ctx context.Context) (*AdminDashboard, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clk.Now()
	bounds := BoundsFor(now)

	dash := &AdminDashboard{
		GeneratedAt:  now,
		Patients:     createdCard(timesOf(snap.patients, func(p *patient.Patient) time.Time { return p.CreatedAt }), bounds, len(snap.patients)),
		Doctors:      createdCard(timesOf(snap.doctors, func(d *staff.Doctor) time.Time { return d.CreatedAt }), bounds, len(snap.doctors)),
		Appointments: createdCard(timesOf(snap.appointments, func(a *scheduling.Appointment) time.Time { return a.ScheduledAt }), bounds, len(snap.appointments)),
		AppointmentStatus: SortedByCount(GroupAndCount(snap.appointments,
			func(a *scheduling.Appointment) string { return a.Status })),
		Specializations: SortedByCount(GroupAndCount(snap.doctors,
			func(d *staff.Doctor) string { return deref(d.Specialization) },
			CoalesceEmpty("General"))),
		BloodGroups: SortedByCount(GroupAndCount(snap.patients,
			func(p *patient.Patient) string { return p.BloodGroup })),
		MaritalStatuses: SortedByCount(GroupAndCount(snap.patients,
			func(p *patient.Patient) string { return p.MaritalStatus })),
		Genders: SortedByCount(GroupAndCount(patientUsers(snap),
			func(u *identity.User) string { return deref(u.Gender) })),
		AppointmentTrend: s.trend(snap.appointments, now, nil),
		Availability:     s.availability(snap, now),
		TopDoctors:       s.topDoctors(snap),
		Lab:              labStats(snap),
	}
	return dash, nil
}

// DoctorDashboard assembles the per-doctor view model.
func (s *Service) DoctorDashboard(ctx context.Context, doctorID uuid.UUID) (*DoctorDashboard, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clk.Now()
	bounds := BoundsFor(now)

	var own []*scheduling.Appointment
	for _, a := range snap.appointments {
		if a.DoctorID == doctorID {
			own = append(own, a)
		}
	}

	patientsSeen := make(map[uuid.UUID]bool)
	today := 0
	for _, a := range own {
		patientsSeen[a.PatientID] = true
		if sameDay(a.ScheduledAt, now) {
			today++
		}
	}

	status := staff.StatusAvailable
	for _, d := range snap.doctors {
		if d.ID == doctorID {
			status = staff.ResolveStatus(d.Schedule(), now, today)
			break
		}
	}

	dash := &DoctorDashboard{
		GeneratedAt:        now,
		DoctorID:           doctorID,
		Status:             status,
		TodaysAppointments: today,
		Appointments:       createdCard(timesOf(own, func(a *scheduling.Appointment) time.Time { return a.ScheduledAt }), bounds, len(own)),
		PatientsSeen:       len(patientsSeen),
		StatusBreakdown: SortedByCount(GroupAndCount(own,
			func(a *scheduling.Appointment) string { return a.Status })),
		AppointmentTrend: s.trend(snap.appointments, now, &doctorID),
		Rating:           s.placeholders.Rating(doctorID),
		ReviewCount:      s.placeholders.ReviewCount(doctorID),
	}
	return dash, nil
}

func (s *Service) trend(appts []*scheduling.Appointment, now time.Time, doctorID *uuid.UUID) []TrendPoint {
	windows := TrailingMonths(now, s.trendMonths)
	points := make([]TrendPoint, len(windows))
	for i, w := range windows {
		points[i].Label = w.Label()
		for _, a := range appts {
			if doctorID != nil && a.DoctorID != *doctorID {
				continue
			}
			if w.Contains(a.ScheduledAt.UTC()) {
				points[i].Count++
			}
		}
	}
	return points
}

func (s *Service) availability(snap *snapshot, now time.Time) AvailabilitySummary {
	todayByDoctor := make(map[uuid.UUID]int)
	for _, a := range snap.appointments {
		if sameDay(a.ScheduledAt, now) {
			todayByDoctor[a.DoctorID]++
		}
	}

	var sum AvailabilitySummary
	for _, d := range snap.doctors {
		switch staff.ResolveStatus(d.Schedule(), now, todayByDoctor[d.ID]) {
		case staff.StatusAvailable:
			sum.Available++
		case staff.StatusInSession:
			sum.InSession++
		case staff.StatusOnBreak:
			sum.OnBreak++
		default:
			sum.Off++
		}
	}
	return sum
}

func (s *Service) topDoctors(snap *snapshot) []TopDoctor {
	patientsByDoctor := make(map[uuid.UUID]map[uuid.UUID]bool)
	for _, a := range snap.appointments {
		if patientsByDoctor[a.DoctorID] == nil {
			patientsByDoctor[a.DoctorID] = make(map[uuid.UUID]bool)
		}
		patientsByDoctor[a.DoctorID][a.PatientID] = true
	}

	names := make(map[uuid.UUID]string, len(snap.users))
	for _, u := range snap.users {
		names[u.ID] = u.FullName
	}

	top := make([]TopDoctor, 0, len(snap.doctors))
	for _, d := range snap.doctors {
		spec := deref(d.Specialization)
		if spec == "" {
			spec = "General"
		}
		top = append(top, TopDoctor{
			DoctorID:       d.ID,
			FullName:       names[d.UserID],
			Specialization: spec,
			PatientCount:   len(patientsByDoctor[d.ID]),
			Rating:         s.placeholders.Rating(d.ID),
			ReviewCount:    s.placeholders.ReviewCount(d.ID),
		})
	}
	sortTopDoctors(top)
	if len(top) > topDoctorCount {
		top = top[:topDoctorCount]
	}
	return top
}

// Ties break on doctor ID so identical snapshots rank identically.
func sortTopDoctors(top []TopDoctor) {
	sort.Slice(top, func(i, j int) bool {
		if top[i].PatientCount != top[j].PatientCount {
			return top[i].PatientCount > top[j].PatientCount
		}
		return top[i].DoctorID.String() < top[j].DoctorID.String()
	})
}

func labStats(snap *snapshot) LabStats {
	stats := LabStats{
		FacilityCount: len(snap.facilities),
		ServiceCount:  len(snap.labServices),
	}
	for _, f := range snap.facilities {
		if f.Active {
			stats.ActiveFacilities++
		}
	}
	if len(snap.labServices) > 0 {
		var sum float64
		for _, svc := range snap.labServices {
			sum += svc.Price
		}
		stats.AveragePrice = round2(sum / float64(len(snap.labServices)))
	}
	return stats
}

// createdCard counts records falling in the current and previous month
// windows and wraps the total with the growth percentage.
func createdCard(times []time.Time, bounds MonthBounds, total int) StatCard {
	thisMonth, lastMonth := 0, 0
	for _, t := range times {
		t = t.UTC()
		switch {
		case !t.Before(bounds.FirstDayThisMonth):
			thisMonth++
		case !t.Before(bounds.FirstDayLastMonth) && !t.After(bounds.LastDayLastMonth):
			lastMonth++
		}
	}
	return StatCard{Count: total, ChangePct: PercentChange(thisMonth, lastMonth)}
}

func timesOf[T any](records []T, fn func(T) time.Time) []time.Time {
	out := make([]time.Time, len(records))
	for i, r := range records {
		out[i] = fn(r)
	}
	return out
}

func patientUsers(snap *snapshot) []*identity.User {
	var out []*identity.User
	for _, u := range snap.users {
		if u.Role == identity.RolePatient {
			out = append(out, u)
		}
	}
	return out
}

func sameDay(a, b time.Time) bool {
	a, b = a.UTC(), b.UTC()
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
