package reporting

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/auth"
)

// MeasureDefinition defines a reporting measure with its SQL query.
type MeasureDefinition struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	SQL         string   `json:"sql"`
	Parameters  []string `json:"parameters"`
}

// MeasureReport holds the results of evaluating a measure.
type MeasureReport struct {
	MeasureID   string                   `json:"measure_id"`
	MeasureName string                   `json:"measure_name"`
	GeneratedAt time.Time                `json:"generated_at"`
	Results     []map[string]interface{} `json:"results"`
	Parameters  map[string]string        `json:"parameters,omitempty"`
}

// PredefinedMeasures is the list of available reporting measures.
var PredefinedMeasures = []MeasureDefinition{
	{
		ID:          "patient-count",
		Name:        "Patient Count",
		Description: "Total number of patient profiles and active patient accounts",
		SQL: `SELECT COUNT(p.id) AS total,
			COALESCE(SUM(CASE WHEN u.active THEN 1 ELSE 0 END), 0) AS active_count
			FROM patient_profile p JOIN users u ON u.id = p.user_id`,
		Parameters: []string{},
	},
	{
		ID:          "appointment-volume-by-status",
		Name:        "Appointment Volume by Status",
		Description: "Number of appointments grouped by lifecycle status",
		SQL:         `SELECT status, COUNT(*) AS total FROM appointment GROUP BY status ORDER BY total DESC`,
		Parameters:  []string{},
	},
	{
		ID:          "doctors-by-specialization",
		Name:        "Doctors by Specialization",
		Description: "Number of doctor profiles grouped by specialization; blanks report as General",
		SQL: `SELECT COALESCE(NULLIF(specialization, ''), 'General') AS specialization, COUNT(*) AS total
			FROM doctor_profile GROUP BY 1 ORDER BY total DESC`,
		Parameters: []string{},
	},
	{
		ID:          "lab-service-pricing",
		Name:        "Lab Service Pricing",
		Description: "Per-facility service counts with minimum, maximum and average price",
		SQL: `SELECT f.name AS facility, COUNT(s.id) AS services,
			MIN(s.price) AS min_price, MAX(s.price) AS max_price, ROUND(AVG(s.price), 2) AS avg_price
			FROM lab_facility f LEFT JOIN lab_service s ON s.facility_id = f.id
			GROUP BY f.name ORDER BY services DESC`,
		Parameters: []string{},
	},
	{
		ID:          "monthly-appointment-trend",
		Name:        "Monthly Appointment Trend",
		Description: "Appointments per calendar month over the last twelve months",
		SQL: `SELECT to_char(date_trunc('month', scheduled_at), 'Mon YYYY') AS month,
			date_trunc('month', scheduled_at) AS month_start, COUNT(*) AS total
			FROM appointment
			WHERE scheduled_at >= date_trunc('month', NOW()) - INTERVAL '11 months'
			GROUP BY 1, 2 ORDER BY month_start`,
		Parameters: []string{},
	},
}

// Handler provides HTTP handlers for the reporting API.
type Handler struct {
	pool *pgxpool.Pool
}

// NewHandler creates a new reporting handler.
func NewHandler(pool *pgxpool.Pool) *Handler {
	return &Handler{pool: pool}
}

// RegisterRoutes registers the reporting API routes.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	reportGroup := api.Group("/reports", auth.RequireRole("admin"))
	reportGroup.GET("/measures", h.ListMeasures)
	reportGroup.GET("/measures/:id/evaluate", h.EvaluateMeasure)
}

// ListMeasures returns all available measure definitions.
func (h *Handler) ListMeasures(c echo.Context) error {
	return c.JSON(http.StatusOK, PredefinedMeasures)
}

// EvaluateMeasure executes a measure's SQL and returns the results.
func (h *Handler) EvaluateMeasure(c echo.Context) error {
	measure := FindMeasure(c.Param("id"))
	if measure == nil {
		return echo.NewHTTPError(http.StatusNotFound, "measure not found")
	}

	params := map[string]string{}
	for _, p := range measure.Parameters {
		if v := c.QueryParam(p); v != "" {
			params[p] = v
		}
	}

	results, err := h.executeSQL(c.Request().Context(), measure.SQL)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("query failed: %v", err))
	}

	report := MeasureReport{
		MeasureID:   measure.ID,
		MeasureName: measure.Name,
		GeneratedAt: time.Now().UTC(),
		Results:     results,
		Parameters:  params,
	}

	return c.JSON(http.StatusOK, report)
}

// executeSQL runs a SQL query and returns results as a slice of maps.
func (h *Handler) executeSQL(ctx context.Context, sql string) ([]map[string]interface{}, error) {
	rows, err := h.pool.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fieldDescs := rows.FieldDescriptions()
	var results []map[string]interface{}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}

		row := make(map[string]interface{}, len(fieldDescs))
		for i, fd := range fieldDescs {
			row[string(fd.Name)] = values[i]
		}
		results = append(results, row)
	}

	if results == nil {
		results = []map[string]interface{}{}
	}

	return results, nil
}

// FindMeasure looks up a measure by ID.
func FindMeasure(id string) *MeasureDefinition {
	for i := range PredefinedMeasures {
		if PredefinedMeasures[i].ID == id {
			return &PredefinedMeasures[i]
		}
	}
	return nil
}
