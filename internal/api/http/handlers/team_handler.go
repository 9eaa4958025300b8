package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/complainthub/complainthub/internal/api/dto"
	"github.com/complainthub/complainthub/internal/auth"
	"github.com/complainthub/complainthub/internal/service"
	apperrors "github.com/complainthub/complainthub/pkg/util"
)

// TeamHandler serves brand team invitation endpoints.
type TeamHandler struct {
	team *service.TeamService
}

// NewTeamHandler constructs the handler.
func NewTeamHandler(team *service.TeamService) *TeamHandler {
	return &TeamHandler{team: team}
}

// Invite creates an invitation for a brand.
func (h *TeamHandler) Invite(c *fiber.Ctx) error {
	actor := auth.UserFromContext(c)
	brandID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.InviteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	inv, err := h.team.Invite(c.Context(), actor, brandID, req.Email)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewInvitationResponse(inv))
}

// List returns a brand's invitations.
func (h *TeamHandler) List(c *fiber.Ctx) error {
	actor := auth.UserFromContext(c)
	brandID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	invitations, err := h.team.ListInvitations(c.Context(), actor, brandID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewInvitationListResponse(invitations))
}

// Revoke deletes a pending invitation.
func (h *TeamHandler) Revoke(c *fiber.Ctx) error {
	actor := auth.UserFromContext(c)
	brandID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	invitationID, err := parseID(c, "invitationID")
	if err != nil {
		return err
	}
	if err := h.team.RevokeInvitation(c.Context(), actor, brandID, invitationID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Lookup resolves a public invitation token so the acceptance page can show
// the invited email.
func (h *TeamHandler) Lookup(c *fiber.Ctx) error {
	inv, err := h.team.InvitationByToken(c.Context(), c.Params("token"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPublicInvitationResponse(inv))
}

// Accept redeems an invitation token, creating the brand_user account.
func (h *TeamHandler) Accept(c *fiber.Ctx) error {
	var req dto.AcceptInvitationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	user, err := h.team.Accept(c.Context(), c.Params("token"), service.SignupInput{
		FullName: req.FullName,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewUserResponse(user))
}
