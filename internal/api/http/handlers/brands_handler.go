package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/complainthub/complainthub/internal/api/dto"
	"github.com/complainthub/complainthub/internal/auth"
	"github.com/complainthub/complainthub/internal/service"
	apperrors "github.com/complainthub/complainthub/pkg/util"
)

// BrandsHandler serves brand profile, team and billing endpoints.
type BrandsHandler struct {
	brands  *service.BrandService
	billing *service.BillingService
}

// NewBrandsHandler constructs the handler.
func NewBrandsHandler(brands *service.BrandService, billing *service.BillingService) *BrandsHandler {
	return &BrandsHandler{brands: brands, billing: billing}
}

// Create registers a new brand. Admin only.
func (h *BrandsHandler) Create(c *fiber.Ctx) error {
	var req dto.BrandRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	brand, err := h.brands.CreateBrand(c.Context(), service.BrandInput{
		Name:         req.Name,
		SupportEmail: req.SupportEmail,
		Industry:     req.Industry,
		LogoURL:      req.LogoURL,
		ContactInfo:  req.ContactInfo,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewBrandResponse(brand))
}

// List returns all brands. Customers see this when filing a complaint.
func (h *BrandsHandler) List(c *fiber.Ctx) error {
	brands, err := h.brands.ListBrands(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewBrandListResponse(brands))
}

// Get returns one brand.
func (h *BrandsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	brand, err := h.brands.GetBrand(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewBrandResponse(brand))
}

// Me returns the acting brand_user's own brand.
func (h *BrandsHandler) Me(c *fiber.Ctx) error {
	actor := auth.UserFromContext(c)
	brand, err := h.brands.BrandForUser(c.Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewBrandResponse(brand))
}

// Update edits the brand profile.
func (h *BrandsHandler) Update(c *fiber.Ctx) error {
	actor := auth.UserFromContext(c)
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.BrandRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	brand, err := h.brands.UpdateBrand(c.Context(), actor, id, service.BrandInput{
		Name:         req.Name,
		SupportEmail: req.SupportEmail,
		Industry:     req.Industry,
		LogoURL:      req.LogoURL,
		ContactInfo:  req.ContactInfo,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewBrandResponse(brand))
}

// Delete removes a brand. Admin only.
func (h *BrandsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.brands.DeleteBrand(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// TeamMembers lists the brand's users.
func (h *BrandsHandler) TeamMembers(c *fiber.Ctx) error {
	actor := auth.UserFromContext(c)
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	members, err := h.brands.TeamMembers(c.Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserListResponse(members))
}

// BillingEntries lists the brand's credit ledger.
func (h *BrandsHandler) BillingEntries(c *fiber.Ctx) error {
	actor := auth.UserFromContext(c)
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	entries, err := h.billing.Entries(c.Context(), actor, id, c.QueryInt("limit", 100))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewBillingEntryListResponse(entries))
}

// TopUp credits the brand's balance.
func (h *BrandsHandler) TopUp(c *fiber.Ctx) error {
	actor := auth.UserFromContext(c)
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.TopUpRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	entry, err := h.billing.TopUp(c.Context(), actor, id, req.Amount)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewBillingEntryResponse(entry))
}
