package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// internshipRoles is the curated role list served to the suggestion
// input. It is static, roles reported outside the list stay accepted.
var internshipRoles = []string{
	"Software Developer",
	"Business Analyst",
	"Chemical Engineer Intern",
	"Civil Engineer Intern",
	"Consulting Intern",
	"Data Scientist",
	"Electrical Engineer Intern",
	"Environmental Engineer Intern",
	"Finance Intern",
	"Designer Intern",
	"Human Resources Intern",
	"Industrial Engineer Intern",
	"IT Intern",
	"Journalism Intern",
	"Marketing Intern",
	"Mechanical Engineer Intern",
	"Operations Intern",
	"Product Manager",
	"Sales Intern",
	"Other",
}

// ReferenceRepo serves the autocomplete vocabularies.
type ReferenceRepo interface {
	UniversityNames(ctx context.Context) ([]string, error)
	RoleNames(ctx context.Context) ([]string, error)
}

// ReferenceService serves the university and role name lists backing
// the suggestion inputs.
type ReferenceService struct {
	repo   ReferenceRepo
	cache  *CacheService
	logger *zap.Logger
}

func NewReferenceService(repo ReferenceRepo, cache *CacheService, logger *zap.Logger) *ReferenceService {
	return &ReferenceService{repo: repo, cache: cache, logger: logger}
}

// Universities returns every known university name.
func (s *ReferenceService) Universities(ctx context.Context) ([]string, error) {
	return s.cachedNames(ctx, "reference:universities", s.repo.UniversityNames)
}

// Roles returns every known role name.
func (s *ReferenceService) Roles(ctx context.Context) ([]string, error) {
	return s.cachedNames(ctx, "reference:roles", s.repo.RoleNames)
}

// InternshipRoles returns the curated internship role list.
func (s *ReferenceService) InternshipRoles() []string {
	out := make([]string, len(internshipRoles))
	copy(out, internshipRoles)
	return out
}

// The vocabularies change only on reseed so a long TTL is safe.
const referenceCacheTTL = time.Hour

func (s *ReferenceService) cachedNames(ctx context.Context, key string, fetch func(context.Context) ([]string, error)) ([]string, error) {
	if s.cache != nil && s.cache.Enabled() {
		var names []string
		hit, err := s.cache.Get(ctx, key, &names)
		if err == nil && hit {
			return names, nil
		}
		if err != nil && s.logger != nil {
			s.logger.Warn("reference cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	names, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.cache.Enabled() {
		if err := s.cache.Set(ctx, key, names, referenceCacheTTL); err != nil && s.logger != nil {
			s.logger.Warn("reference cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return names, nil
}
