package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scoperhq/scoper-api/internal/dto"
	"github.com/scoperhq/scoper-api/internal/models"
)

type mockSalaryRepo struct {
	listResult  []models.ReportedSalary
	listTotal   int
	listFilter  models.SalaryFilter
	companies   []string
	locations   []string
	average     float64
	topAnswer   string
	listByGroup []models.ReportedSalary
}

func (m *mockSalaryRepo) List(ctx context.Context, filter models.SalaryFilter) ([]models.ReportedSalary, int, error) {
	m.listFilter = filter
	return m.listResult, m.listTotal, nil
}

func (m *mockSalaryRepo) ListAll(ctx context.Context) ([]models.ReportedSalary, error) {
	return m.listResult, nil
}

func (m *mockSalaryRepo) DistinctCompanies(ctx context.Context) ([]string, error) {
	return m.companies, nil
}

func (m *mockSalaryRepo) DistinctLocations(ctx context.Context) ([]string, error) {
	return m.locations, nil
}

func (m *mockSalaryRepo) ListByCompany(ctx context.Context, company string) ([]models.ReportedSalary, error) {
	return m.listByGroup, nil
}

func (m *mockSalaryRepo) AverageByCompany(ctx context.Context, company string) (float64, error) {
	return m.average, nil
}

func (m *mockSalaryRepo) TopUniversityByCompany(ctx context.Context, company string) (string, error) {
	return m.topAnswer, nil
}

func (m *mockSalaryRepo) TopLocationByCompany(ctx context.Context, company string) (string, error) {
	return m.topAnswer, nil
}

func (m *mockSalaryRepo) ListByLocation(ctx context.Context, location string) ([]models.ReportedSalary, error) {
	return m.listByGroup, nil
}

func (m *mockSalaryRepo) AverageByLocation(ctx context.Context, location string) (float64, error) {
	return m.average, nil
}

func (m *mockSalaryRepo) TopUniversityByLocation(ctx context.Context, location string) (string, error) {
	return m.topAnswer, nil
}

func (m *mockSalaryRepo) TopCompanyByLocation(ctx context.Context, location string) (string, error) {
	return m.topAnswer, nil
}

type mockPendingWriter struct {
	inserted []models.PendingSalary
	err      error
}

func (m *mockPendingWriter) Insert(ctx context.Context, pending *models.PendingSalary) error {
	if m.err != nil {
		return m.err
	}
	pending.ID = int64(len(m.inserted) + 1)
	m.inserted = append(m.inserted, *pending)
	return nil
}

func newTestSalaryService(repo *mockSalaryRepo, pending *mockPendingWriter) *SalaryService {
	return NewSalaryService(repo, pending, NewMetricsService(), zap.NewNop())
}

func validSubmission() dto.SubmitSalaryRequest {
	return dto.SubmitSalaryRequest{
		Company:     "Shopify",
		Role:        "Software Developer",
		Salary:      32.5,
		Year:        2024,
		University:  "Concordia University",
		Location:    "Montreal, QC",
		Arrangement: models.ArrangementHybrid,
	}
}

func fieldNames(fields []dto.FieldError) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Field)
	}
	return names
}

func TestValidateSubmissionAccepts(t *testing.T) {
	svc := newTestSalaryService(&mockSalaryRepo{}, &mockPendingWriter{})

	assert.Empty(t, svc.ValidateSubmission(validSubmission()))
}

func TestValidateSubmissionLocationRequiredForHybrid(t *testing.T) {
	svc := newTestSalaryService(&mockSalaryRepo{}, &mockPendingWriter{})

	req := validSubmission()
	req.Arrangement = models.ArrangementHybrid
	req.Location = "  "

	fields := svc.ValidateSubmission(req)
	require.Len(t, fields, 1)
	assert.Equal(t, "location", fields[0].Field)
}

func TestValidateSubmissionLocationRequiredForInOffice(t *testing.T) {
	svc := newTestSalaryService(&mockSalaryRepo{}, &mockPendingWriter{})

	req := validSubmission()
	req.Arrangement = models.ArrangementInOffice
	req.Location = ""

	fields := svc.ValidateSubmission(req)
	require.Len(t, fields, 1)
	assert.Equal(t, "location", fields[0].Field)
}

func TestValidateSubmissionRemoteAllowsEmptyLocation(t *testing.T) {
	svc := newTestSalaryService(&mockSalaryRepo{}, &mockPendingWriter{})

	req := validSubmission()
	req.Arrangement = models.ArrangementRemote
	req.Location = ""

	assert.Empty(t, svc.ValidateSubmission(req))
}

func TestValidateSubmissionRejectsUnknownArrangement(t *testing.T) {
	svc := newTestSalaryService(&mockSalaryRepo{}, &mockPendingWriter{})

	req := validSubmission()
	req.Arrangement = "Nomadic"

	fields := svc.ValidateSubmission(req)
	require.Len(t, fields, 1)
	assert.Equal(t, "arrangement", fields[0].Field)
}

func TestValidateSubmissionRejectsNonPositiveNumbers(t *testing.T) {
	svc := newTestSalaryService(&mockSalaryRepo{}, &mockPendingWriter{})

	req := validSubmission()
	req.Salary = 0
	req.Year = 0
	fields := svc.ValidateSubmission(req)
	assert.ElementsMatch(t, []string{"salary", "year"}, fieldNames(fields))

	req = validSubmission()
	req.Salary = -12
	fields = svc.ValidateSubmission(req)
	assert.Equal(t, []string{"salary"}, fieldNames(fields))

	req = validSubmission()
	negative := -500.0
	req.Bonus = &negative
	fields = svc.ValidateSubmission(req)
	assert.Equal(t, []string{"bonus"}, fieldNames(fields))
}

func TestValidateSubmissionTermBounds(t *testing.T) {
	svc := newTestSalaryService(&mockSalaryRepo{}, &mockPendingWriter{})

	req := validSubmission()
	eight := 8
	req.Term = &eight
	fields := svc.ValidateSubmission(req)
	assert.Equal(t, []string{"term"}, fieldNames(fields))

	req = validSubmission()
	seven := 7
	req.Term = &seven
	assert.Empty(t, svc.ValidateSubmission(req))
}

func TestValidateSubmissionMissingRequiredFields(t *testing.T) {
	svc := newTestSalaryService(&mockSalaryRepo{}, &mockPendingWriter{})

	fields := svc.ValidateSubmission(dto.SubmitSalaryRequest{Arrangement: models.ArrangementRemote})
	assert.ElementsMatch(t,
		[]string{"company", "role", "salary", "year", "university"},
		fieldNames(fields),
	)
}

func TestSubmitQueuesPendingRecord(t *testing.T) {
	pending := &mockPendingWriter{}
	svc := newTestSalaryService(&mockSalaryRepo{}, pending)

	record, fields, err := svc.Submit(context.Background(), validSubmission(), "203.0.113.9")
	require.NoError(t, err)
	require.Empty(t, fields)
	require.NotNil(t, record)

	assert.Equal(t, int64(1), record.ID)
	assert.Equal(t, models.StatusPending, record.Status)
	assert.Equal(t, "203.0.113.9", record.IPAddress)
	assert.False(t, record.SubmittedAt.IsZero())
	require.Len(t, pending.inserted, 1)
}

func TestSubmitRejectsInvalidWithoutInsert(t *testing.T) {
	pending := &mockPendingWriter{}
	svc := newTestSalaryService(&mockSalaryRepo{}, pending)

	req := validSubmission()
	req.Salary = -1

	record, fields, err := svc.Submit(context.Background(), req, "203.0.113.9")
	require.NoError(t, err)
	assert.Nil(t, record)
	assert.NotEmpty(t, fields)
	assert.Empty(t, pending.inserted)
}

func TestSubmitNormalizesCompany(t *testing.T) {
	pending := &mockPendingWriter{}
	svc := newTestSalaryService(&mockSalaryRepo{}, pending)

	req := validSubmission()
	req.Company = "Pratt & Whitney Canada"

	record, fields, err := svc.Submit(context.Background(), req, "198.51.100.4")
	require.NoError(t, err)
	require.Empty(t, fields)
	assert.Equal(t, "Pratt and Whitney", record.Company)
}

func TestNormalizeCompany(t *testing.T) {
	assert.Equal(t, "Pratt and Whitney", NormalizeCompany("Pratt & Whitney"))
	assert.Equal(t, "Pratt and Whitney", NormalizeCompany("Pratt & whitney canada"))
	assert.Equal(t, "Shopify", NormalizeCompany("  Shopify  "))
}

func TestListClampsPageSize(t *testing.T) {
	repo := &mockSalaryRepo{listTotal: 40}
	svc := newTestSalaryService(repo, &mockPendingWriter{})

	_, total, err := svc.List(context.Background(), models.SalaryFilter{Offset: 12, Limit: 12})
	require.NoError(t, err)
	assert.Equal(t, 40, total)
	assert.Equal(t, 12, repo.listFilter.Offset)
	assert.Equal(t, 12, repo.listFilter.Limit)

	_, _, err = svc.List(context.Background(), models.SalaryFilter{Offset: -5, Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 0, repo.listFilter.Offset)
	assert.Equal(t, 100, repo.listFilter.Limit)
}

func TestCompanyAverageRounds(t *testing.T) {
	repo := &mockSalaryRepo{average: 31.23456}
	svc := newTestSalaryService(repo, &mockPendingWriter{})

	avg, err := svc.CompanyAverage(context.Background(), "Shopify")
	require.NoError(t, err)
	assert.Equal(t, 31.23, avg)
}
