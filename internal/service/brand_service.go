package service

import (
	"context"
	"strings"

	"github.com/complainthub/complainthub/internal/domain"
	"github.com/complainthub/complainthub/internal/repository"
	apperrors "github.com/complainthub/complainthub/pkg/util"
)

// BrandService manages tenant brand profiles.
type BrandService struct {
	brands repository.BrandRepository
	users  repository.UserRepository
}

// NewBrandService constructs the service.
func NewBrandService(brands repository.BrandRepository, users repository.UserRepository) *BrandService {
	return &BrandService{brands: brands, users: users}
}

// BrandInput describes brand create/update payloads.
type BrandInput struct {
	Name         string
	SupportEmail string
	Industry     string
	LogoURL      string
	ContactInfo  string
}

// CreateBrand registers a new tenant.
func (s *BrandService) CreateBrand(ctx context.Context, input BrandInput) (*domain.Brand, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	brand := &domain.Brand{
		Name:         strings.TrimSpace(input.Name),
		SupportEmail: strings.TrimSpace(input.SupportEmail),
		Industry:     input.Industry,
		LogoURL:      input.LogoURL,
		ContactInfo:  input.ContactInfo,
	}
	if err := s.brands.Create(ctx, brand); err != nil {
		return nil, apperrors.MapError(err)
	}
	return brand, nil
}

// UpdateBrand edits the brand profile. Brand users may only edit their own
// brand.
func (s *BrandService) UpdateBrand(ctx context.Context, actor *domain.User, brandID int64, input BrandInput) (*domain.Brand, error) {
	if err := requireBrandAccess(actor, brandID); err != nil {
		return nil, err
	}
	brand, err := s.brands.GetByID(ctx, brandID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if strings.TrimSpace(input.Name) != "" {
		brand.Name = strings.TrimSpace(input.Name)
	}
	if strings.TrimSpace(input.SupportEmail) != "" {
		brand.SupportEmail = strings.TrimSpace(input.SupportEmail)
	}
	if input.Industry != "" {
		brand.Industry = input.Industry
	}
	if input.LogoURL != "" {
		brand.LogoURL = input.LogoURL
	}
	if input.ContactInfo != "" {
		brand.ContactInfo = input.ContactInfo
	}
	if err := s.brands.Update(ctx, brand); err != nil {
		return nil, apperrors.MapError(err)
	}
	return brand, nil
}

// DeleteBrand removes a tenant. Admin only, enforced at the route.
func (s *BrandService) DeleteBrand(ctx context.Context, brandID int64) error {
	if err := s.brands.Delete(ctx, brandID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// GetBrand fetches one brand.
func (s *BrandService) GetBrand(ctx context.Context, brandID int64) (*domain.Brand, error) {
	brand, err := s.brands.GetByID(ctx, brandID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return brand, nil
}

// ListBrands returns all brands.
func (s *BrandService) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	brands, err := s.brands.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if brands == nil {
		brands = []domain.Brand{}
	}
	return brands, nil
}

// BrandForUser resolves the acting brand_user's own brand.
func (s *BrandService) BrandForUser(ctx context.Context, actor *domain.User) (*domain.Brand, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("user required")
	}
	if actor.BrandID == nil {
		return nil, apperrors.NewValidationError("user is not associated with any brand", nil)
	}
	return s.GetBrand(ctx, *actor.BrandID)
}

// TeamMembers lists a brand's users.
func (s *BrandService) TeamMembers(ctx context.Context, actor *domain.User, brandID int64) ([]domain.User, error) {
	if err := requireBrandAccess(actor, brandID); err != nil {
		return nil, err
	}
	members, err := s.users.ListByBrand(ctx, brandID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if members == nil {
		members = []domain.User{}
	}
	return members, nil
}

// requireBrandAccess permits admins and members of the brand itself.
func requireBrandAccess(actor *domain.User, brandID int64) error {
	if actor == nil {
		return apperrors.NewUnauthorized("user required")
	}
	if actor.Role == domain.RoleAdmin {
		return nil
	}
	if actor.Role == domain.RoleBrandUser && actor.BrandID != nil && *actor.BrandID == brandID {
		return nil
	}
	return apperrors.NewForbidden("access denied")
}
