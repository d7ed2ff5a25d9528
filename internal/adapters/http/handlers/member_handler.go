package handlers

import (
	"errors"

	"liblend/internal/adapters/persistence/models"
	"liblend/internal/core/domain"
	"liblend/internal/core/services"
	"liblend/internal/pkg/pagination"
	"liblend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MemberHandler handles membership endpoints
type MemberHandler struct {
	memberService *services.MemberService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *services.MemberService) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
	}
}

// Register registers a member
// @Summary Register member
// @Description Register a new library member (Librarian only)
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.RegisterMemberInput true "Member data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /members [post]
func (h *MemberHandler) Register(c *fiber.Ctx) error {
	var input services.RegisterMemberInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	member, err := h.memberService.Register(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateEmail):
			return response.Conflict(c, "A member with this email already exists")
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to register member")
		}
	}

	return response.Created(c, "Member registered successfully", fiber.Map{
		"member": models.NewMemberResponse(member),
	})
}

// List lists members
// @Summary List members
// @Description List members with pagination (Librarian only)
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /members [get]
func (h *MemberHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	members, total, err := h.memberService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list members")
	}

	return response.Success(c, "Members retrieved successfully",
		pagination.NewResponse(models.NewMemberResponses(members), params, total))
}

// GetByID gets a member
// @Summary Get member
// @Description Get a member by ID (Librarian only)
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id} [get]
func (h *MemberHandler) GetByID(c *fiber.Ctx) error {
	member, err := h.memberService.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to get member")
	}

	return response.Success(c, "Member retrieved successfully", fiber.Map{
		"member": models.NewMemberResponse(member),
	})
}

// GetByEmail gets a member by email
// @Summary Get member by email
// @Description Look up a member by email address (Librarian only)
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param email path string true "Email address"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/email/{email} [get]
func (h *MemberHandler) GetByEmail(c *fiber.Ctx) error {
	member, err := h.memberService.GetByEmail(c.Context(), c.Params("email"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to get member")
		}
	}

	return response.Success(c, "Member retrieved successfully", fiber.Map{
		"member": models.NewMemberResponse(member),
	})
}

// GetActive lists active members
// @Summary Active members
// @Description Get members in ACTIVE standing (Librarian only)
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /members/active [get]
func (h *MemberHandler) GetActive(c *fiber.Ctx) error {
	members, err := h.memberService.GetActive(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get members")
	}

	return response.Success(c, "Members retrieved successfully", fiber.Map{
		"members": models.NewMemberResponses(members),
	})
}

// SearchByName searches members by name
// @Summary Search members
// @Description Find members whose name contains the fragment (Librarian only)
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param name path string true "Name fragment"
// @Success 200 {object} response.Response
// @Router /members/search/{name} [get]
func (h *MemberHandler) SearchByName(c *fiber.Ctx) error {
	members, err := h.memberService.SearchByName(c.Context(), c.Params("name"))
	if err != nil {
		return response.InternalServerError(c, "Failed to search members")
	}

	return response.Success(c, "Members retrieved successfully", fiber.Map{
		"members": models.NewMemberResponses(members),
	})
}

// UpdateContactRequest represents contact update request
type UpdateContactRequest struct {
	PhoneNumber string `json:"phone_number"`
}

// UpdateContact updates a member's contact info
// @Summary Update contact info
// @Description Replace a member's phone number (Librarian only)
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Param body body UpdateContactRequest true "Contact data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id} [put]
func (h *MemberHandler) UpdateContact(c *fiber.Ctx) error {
	var req UpdateContactRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	member, err := h.memberService.UpdateContactInfo(c.Context(), c.Params("id"), req.PhoneNumber)
	if err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to update member")
	}

	return response.Success(c, "Member updated successfully", fiber.Map{
		"member": models.NewMemberResponse(member),
	})
}

// Suspend suspends a member
// @Summary Suspend member
// @Description Set a member's standing to SUSPENDED (Librarian only)
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id}/suspend [post]
func (h *MemberHandler) Suspend(c *fiber.Ctx) error {
	member, err := h.memberService.Suspend(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to suspend member")
	}

	return response.Success(c, "Member suspended successfully", fiber.Map{
		"member": models.NewMemberResponse(member),
	})
}

// Reactivate reactivates a member
// @Summary Reactivate member
// @Description Set a member's standing back to ACTIVE (Librarian only)
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id}/reactivate [post]
func (h *MemberHandler) Reactivate(c *fiber.Ctx) error {
	member, err := h.memberService.Reactivate(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to reactivate member")
	}

	return response.Success(c, "Member reactivated successfully", fiber.Map{
		"member": models.NewMemberResponse(member),
	})
}

// Delete removes a member
// @Summary Delete member
// @Description Remove a member with no active loans (Admin only)
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /members/{id} [delete]
func (h *MemberHandler) Delete(c *fiber.Ctx) error {
	err := h.memberService.Delete(c.Context(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		case errors.Is(err, services.ErrMemberHasActiveLoans):
			return response.UnprocessableEntity(c, "Member has active loans and cannot be deleted")
		default:
			return response.InternalServerError(c, "Failed to delete member")
		}
	}

	return response.Success(c, "Member deleted successfully", nil)
}
