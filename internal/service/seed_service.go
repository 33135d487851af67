package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/scoperhq/scoper-api/internal/models"
)

// SeedRepo is the bulk-load contract used by the seeder.
type SeedRepo interface {
	BulkInsert(ctx context.Context, reports []models.ReportedSalary) error
}

// ReferenceSeeder loads the autocomplete vocabularies.
type ReferenceSeeder interface {
	BulkInsertUniversities(ctx context.Context, universities []models.University) error
	BulkInsertRoles(ctx context.Context, roles []string) error
}

// SeedService loads the survey CSV and the Canadian universities JSON
// into the database. It backs the admin populate operation.
type SeedService struct {
	salaries   SeedRepo
	references ReferenceSeeder
	csvPath    string
	jsonPath   string
	logger     *zap.Logger
}

func NewSeedService(salaries SeedRepo, references ReferenceSeeder, csvPath, jsonPath string, logger *zap.Logger) *SeedService {
	return &SeedService{
		salaries:   salaries,
		references: references,
		csvPath:    csvPath,
		jsonPath:   jsonPath,
		logger:     logger,
	}
}

// SeedResult summarizes one populate run.
type SeedResult struct {
	Salaries     int `json:"salaries"`
	Universities int `json:"universities"`
	Roles        int `json:"roles"`
}

// Populate loads the survey responses, the universities list and the
// curated role vocabulary.
func (s *SeedService) Populate(ctx context.Context) (*SeedResult, error) {
	reports, err := s.loadResponsesCSV()
	if err != nil {
		return nil, err
	}
	if err := s.salaries.BulkInsert(ctx, reports); err != nil {
		return nil, err
	}

	universities, err := s.loadUniversitiesJSON()
	if err != nil {
		return nil, err
	}
	if err := s.references.BulkInsertUniversities(ctx, universities); err != nil {
		return nil, err
	}

	if err := s.references.BulkInsertRoles(ctx, internshipRoles); err != nil {
		return nil, err
	}

	result := &SeedResult{
		Salaries:     len(reports),
		Universities: len(universities),
		Roles:        len(internshipRoles),
	}
	if s.logger != nil {
		s.logger.Info("database populated",
			zap.Int("salaries", result.Salaries),
			zap.Int("universities", result.Universities),
			zap.Int("roles", result.Roles),
		)
	}
	return result, nil
}

var termDigits = regexp.MustCompile(`\d+`)

// loadResponsesCSV parses the survey export. Every row is a Concordia
// response with an unreported role, the survey never asked for either.
func (s *SeedService) loadResponsesCSV() ([]models.ReportedSalary, error) {
	f, err := os.Open(s.csvPath)
	if err != nil {
		return nil, fmt.Errorf("open responses csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read responses header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"company", "salary", "year"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("responses csv missing %q column", required)
		}
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read responses rows: %w", err)
	}

	reports := make([]models.ReportedSalary, 0, len(records))
	for i, row := range records {
		report, err := parseResponseRow(cols, row)
		if err != nil {
			return nil, fmt.Errorf("responses row %d: %w", i+2, err)
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func parseResponseRow(cols map[string]int, row []string) (models.ReportedSalary, error) {
	field := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	salary, err := strconv.ParseFloat(field("salary"), 64)
	if err != nil {
		return models.ReportedSalary{}, fmt.Errorf("parse salary: %w", err)
	}
	year, err := strconv.Atoi(field("year"))
	if err != nil {
		return models.ReportedSalary{}, fmt.Errorf("parse year: %w", err)
	}

	report := models.ReportedSalary{
		Company:     NormalizeCompany(field("company")),
		Role:        "Unreported",
		Salary:      salary,
		Year:        year,
		University:  "Concordia University",
		Location:    field("location"),
		Arrangement: models.ArrangementInOffice,
	}

	// the survey recorded terms as free text like "3rd work term"
	if digits := termDigits.FindString(field("term")); digits != "" {
		term, err := strconv.Atoi(digits)
		if err == nil {
			report.Term = &term
		}
	}
	if raw := field("bonus"); raw != "" {
		bonus, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return models.ReportedSalary{}, fmt.Errorf("parse bonus: %w", err)
		}
		report.Bonus = &bonus
	}
	if raw := models.Arrangement(field("arrangement")); raw.Valid() {
		report.Arrangement = raw
	}
	return report, nil
}

func (s *SeedService) loadUniversitiesJSON() ([]models.University, error) {
	data, err := os.ReadFile(s.jsonPath)
	if err != nil {
		return nil, fmt.Errorf("read universities json: %w", err)
	}

	var entries []struct {
		Name    string   `json:"name"`
		Domains []string `json:"domains"`
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse universities json: %w", err)
	}

	universities := make([]models.University, 0, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.Name) == "" {
			continue
		}
		universities = append(universities, models.University{
			Name:    e.Name,
			Domains: pq.StringArray(e.Domains),
		})
	}
	return universities, nil
}
