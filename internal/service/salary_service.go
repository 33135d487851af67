package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/scoperhq/scoper-api/internal/dto"
	"github.com/scoperhq/scoper-api/internal/models"
)

// SalaryRepo describes the persistence layer for published reports.
type SalaryRepo interface {
	List(ctx context.Context, filter models.SalaryFilter) ([]models.ReportedSalary, int, error)
	ListAll(ctx context.Context) ([]models.ReportedSalary, error)
	DistinctCompanies(ctx context.Context) ([]string, error)
	DistinctLocations(ctx context.Context) ([]string, error)
	ListByCompany(ctx context.Context, company string) ([]models.ReportedSalary, error)
	AverageByCompany(ctx context.Context, company string) (float64, error)
	TopUniversityByCompany(ctx context.Context, company string) (string, error)
	TopLocationByCompany(ctx context.Context, company string) (string, error)
	ListByLocation(ctx context.Context, location string) ([]models.ReportedSalary, error)
	AverageByLocation(ctx context.Context, location string) (float64, error)
	TopUniversityByLocation(ctx context.Context, location string) (string, error)
	TopCompanyByLocation(ctx context.Context, location string) (string, error)
}

// PendingWriter accepts validated submissions into the moderation queue.
type PendingWriter interface {
	Insert(ctx context.Context, pending *models.PendingSalary) error
}

// SalaryService owns the submission validation pipeline and the public
// read surface over published reports.
type SalaryService struct {
	salaries SalaryRepo
	pending  PendingWriter
	validate *validator.Validate
	metrics  *MetricsService
	logger   *zap.Logger
	now      func() time.Time
}

// NewSalaryService constructs the service and registers the cross-field
// submission rules.
func NewSalaryService(salaries SalaryRepo, pending PendingWriter, metrics *MetricsService, logger *zap.Logger) *SalaryService {
	v := validator.New()
	v.RegisterStructValidation(submissionRules, dto.SubmitSalaryRequest{})
	return &SalaryService{
		salaries: salaries,
		pending:  pending,
		validate: v,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// legacy spellings folded into one canonical company name on intake
var companyReplacements = map[string]string{
	"Pratt & Whitney":          "Pratt and Whitney",
	"Pratt & Whitney Canada":   "Pratt and Whitney",
	"Pratt and Whitney Canada": "Pratt and Whitney",
	"Pratt & whitney canada":   "Pratt and Whitney",
}

// ValidateSubmission runs one schema pass over the whole candidate
// record and returns the structured field errors, empty when the record
// is acceptable. The arrangement/location dependency is part of the
// same pass.
func (s *SalaryService) ValidateSubmission(req dto.SubmitSalaryRequest) []dto.FieldError {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []dto.FieldError{{Field: "request", Message: "invalid submission payload"}}
	}

	fields := make([]dto.FieldError, 0, len(verrs))
	for _, ve := range verrs {
		fields = append(fields, dto.FieldError{
			Field:   fieldName(ve),
			Message: fieldMessage(ve),
		})
	}
	return fields
}

// Submit validates a report and, when acceptable, queues it for
// moderation. Invalid submissions never reach the database.
func (s *SalaryService) Submit(ctx context.Context, req dto.SubmitSalaryRequest, ip string) (*models.PendingSalary, []dto.FieldError, error) {
	if fields := s.ValidateSubmission(req); len(fields) > 0 {
		s.metrics.RecordSubmission("rejected")
		return nil, fields, nil
	}

	pending := &models.PendingSalary{
		Company:     NormalizeCompany(req.Company),
		Role:        strings.TrimSpace(req.Role),
		Salary:      req.Salary,
		Year:        req.Year,
		University:  strings.TrimSpace(req.University),
		Location:    strings.TrimSpace(req.Location),
		Bonus:       req.Bonus,
		Term:        req.Term,
		Arrangement: req.Arrangement,
		Status:      models.StatusPending,
		IPAddress:   ip,
		SubmittedAt: s.now().UTC(),
	}

	if err := s.pending.Insert(ctx, pending); err != nil {
		return nil, nil, err
	}

	s.metrics.RecordSubmission("accepted")
	if s.logger != nil {
		s.logger.Info("submission queued",
			zap.Int64("id", pending.ID),
			zap.String("company", pending.Company),
			zap.Int("year", pending.Year),
		)
	}
	return pending, nil, nil
}

// List returns one page of published reports with the total count.
func (s *SalaryService) List(ctx context.Context, filter models.SalaryFilter) ([]models.ReportedSalary, int, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.salaries.List(ctx, filter)
}

// ListAll returns the full published set, newest year first.
func (s *SalaryService) ListAll(ctx context.Context) ([]models.ReportedSalary, error) {
	return s.salaries.ListAll(ctx)
}

// Companies returns the distinct company names.
func (s *SalaryService) Companies(ctx context.Context) ([]string, error) {
	return s.salaries.DistinctCompanies(ctx)
}

// Locations returns the distinct locations.
func (s *SalaryService) Locations(ctx context.Context) ([]string, error) {
	return s.salaries.DistinctLocations(ctx)
}

// CompanySalaries returns the reports for one company.
func (s *SalaryService) CompanySalaries(ctx context.Context, company string) ([]models.ReportedSalary, error) {
	return s.salaries.ListByCompany(ctx, company)
}

// CompanyAverage returns the company's mean hourly salary rounded to 2dp.
func (s *SalaryService) CompanyAverage(ctx context.Context, company string) (float64, error) {
	avg, err := s.salaries.AverageByCompany(ctx, company)
	if err != nil {
		return 0, err
	}
	return round2(avg), nil
}

// CompanyTopUniversity returns the most reported university for a company.
func (s *SalaryService) CompanyTopUniversity(ctx context.Context, company string) (string, error) {
	return s.salaries.TopUniversityByCompany(ctx, company)
}

// CompanyTopLocation returns the most reported location for a company.
func (s *SalaryService) CompanyTopLocation(ctx context.Context, company string) (string, error) {
	return s.salaries.TopLocationByCompany(ctx, company)
}

// LocationSalaries returns the reports for one location.
func (s *SalaryService) LocationSalaries(ctx context.Context, location string) ([]models.ReportedSalary, error) {
	return s.salaries.ListByLocation(ctx, location)
}

// LocationAverage returns the location's mean hourly salary rounded to 2dp.
func (s *SalaryService) LocationAverage(ctx context.Context, location string) (float64, error) {
	avg, err := s.salaries.AverageByLocation(ctx, location)
	if err != nil {
		return 0, err
	}
	return round2(avg), nil
}

// LocationTopUniversity returns the most reported university for a location.
func (s *SalaryService) LocationTopUniversity(ctx context.Context, location string) (string, error) {
	return s.salaries.TopUniversityByLocation(ctx, location)
}

// LocationTopCompany returns the most reported company for a location.
func (s *SalaryService) LocationTopCompany(ctx context.Context, location string) (string, error) {
	return s.salaries.TopCompanyByLocation(ctx, location)
}

// NormalizeCompany trims the name and folds known legacy spellings.
func NormalizeCompany(name string) string {
	trimmed := strings.TrimSpace(name)
	if canonical, ok := companyReplacements[trimmed]; ok {
		return canonical
	}
	return trimmed
}

func submissionRules(sl validator.StructLevel) {
	req := sl.Current().Interface().(dto.SubmitSalaryRequest)

	if !req.Arrangement.Valid() {
		sl.ReportError(req.Arrangement, "Arrangement", "Arrangement", "arrangement", "")
		return
	}
	if req.Arrangement.RequiresLocation() && strings.TrimSpace(req.Location) == "" {
		sl.ReportError(req.Location, "Location", "Location", "location_required", "")
	}
}

func fieldName(ve validator.FieldError) string {
	return strings.ToLower(ve.Field())
}

func fieldMessage(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be a positive number"
	case "min", "max":
		return "must be between 1 and 7"
	case "arrangement":
		return "must be Hybrid, In-Office or Remote"
	case "location_required":
		return "is required for Hybrid and In-Office arrangements"
	default:
		return "is invalid"
	}
}
