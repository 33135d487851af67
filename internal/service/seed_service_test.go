package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scoperhq/scoper-api/internal/models"
)

type mockSeedRepo struct {
	inserted []models.ReportedSalary
}

func (m *mockSeedRepo) BulkInsert(ctx context.Context, reports []models.ReportedSalary) error {
	m.inserted = append(m.inserted, reports...)
	return nil
}

type mockReferenceSeeder struct {
	universities []models.University
	roles        []string
}

func (m *mockReferenceSeeder) BulkInsertUniversities(ctx context.Context, universities []models.University) error {
	m.universities = append(m.universities, universities...)
	return nil
}

func (m *mockReferenceSeeder) BulkInsertRoles(ctx context.Context, roles []string) error {
	m.roles = append(m.roles, roles...)
	return nil
}

func writeSeedFixtures(t *testing.T, csvBody, jsonBody string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "responses.csv")
	jsonPath := filepath.Join(dir, "universities.json")
	require.NoError(t, os.WriteFile(csvPath, []byte(csvBody), 0o644))
	require.NoError(t, os.WriteFile(jsonPath, []byte(jsonBody), 0o644))
	return csvPath, jsonPath
}

func TestSeedServicePopulate(t *testing.T) {
	csvBody := "Company,Salary,Year,Location,Term,Bonus,Arrangement\n" +
		"Pratt & Whitney,28.5,2023,Longueuil QC,3rd work term,,\n" +
		"Shopify,35,2024,Montreal QC,,2000,Remote\n"
	jsonBody := `[{"name":"Concordia University","domains":["concordia.ca"]},{"name":"","domains":[]},{"name":"McGill University","domains":["mcgill.ca"]}]`
	csvPath, jsonPath := writeSeedFixtures(t, csvBody, jsonBody)

	salaries := &mockSeedRepo{}
	references := &mockReferenceSeeder{}
	svc := NewSeedService(salaries, references, csvPath, jsonPath, zap.NewNop())

	result, err := svc.Populate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Salaries)
	assert.Equal(t, 2, result.Universities)
	assert.Equal(t, len(internshipRoles), result.Roles)

	require.Len(t, salaries.inserted, 2)
	first := salaries.inserted[0]
	assert.Equal(t, "Pratt and Whitney", first.Company)
	assert.Equal(t, "Unreported", first.Role)
	assert.Equal(t, "Concordia University", first.University)
	assert.Equal(t, models.ArrangementInOffice, first.Arrangement)
	require.NotNil(t, first.Term)
	assert.Equal(t, 3, *first.Term)
	assert.Nil(t, first.Bonus)

	second := salaries.inserted[1]
	assert.Equal(t, models.ArrangementRemote, second.Arrangement)
	require.NotNil(t, second.Bonus)
	assert.Equal(t, 2000.0, *second.Bonus)
	assert.Nil(t, second.Term)

	require.Len(t, references.universities, 2)
	assert.Equal(t, "McGill University", references.universities[1].Name)
	assert.Contains(t, references.roles, "Software Developer")
}

func TestSeedServiceMissingColumn(t *testing.T) {
	csvPath, jsonPath := writeSeedFixtures(t, "Company,Year\nShopify,2024\n", "[]")

	svc := NewSeedService(&mockSeedRepo{}, &mockReferenceSeeder{}, csvPath, jsonPath, zap.NewNop())

	_, err := svc.Populate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing "salary" column`)
}

func TestSeedServiceBadSalary(t *testing.T) {
	csvPath, jsonPath := writeSeedFixtures(t, "Company,Salary,Year\nShopify,lots,2024\n", "[]")

	svc := NewSeedService(&mockSeedRepo{}, &mockReferenceSeeder{}, csvPath, jsonPath, zap.NewNop())

	_, err := svc.Populate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "responses row 2")
}
