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

// LoanHandler handles lending endpoints
type LoanHandler struct {
	lendingService *services.LendingService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(lendingService *services.LendingService) *LoanHandler {
	return &LoanHandler{
		lendingService: lendingService,
	}
}

// Checkout lends a book to a member
// @Summary Checkout book
// @Description Start a loan of one copy to a member (Librarian only)
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CheckoutInput true "Checkout data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /loans [post]
func (h *LoanHandler) Checkout(c *fiber.Ctx) error {
	var input services.CheckoutInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.BookID == "" {
		return response.BadRequest(c, "Book ID is required")
	}
	if input.MemberID == "" {
		return response.BadRequest(c, "Member ID is required")
	}

	loan, err := h.lendingService.Checkout(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookNotFound):
			return response.NotFound(c, "Book not found")
		case errors.Is(err, services.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		case errors.Is(err, services.ErrConcurrentUpdate):
			return response.Conflict(c, err.Error())
		case errors.Is(err, domain.ErrInvariant):
			return response.UnprocessableEntity(c, err.Error())
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to checkout book")
		}
	}

	return response.Created(c, "Book checked out successfully", fiber.Map{
		"loan": models.NewLoanResponse(loan),
	})
}

// List lists loans
// @Summary List loans
// @Description List loans with pagination (Librarian only)
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /loans [get]
func (h *LoanHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	loans, total, err := h.lendingService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list loans")
	}

	return response.Success(c, "Loans retrieved successfully",
		pagination.NewResponse(models.NewLoanResponses(loans), params, total))
}

// GetByID gets a loan
// @Summary Get loan
// @Description Get a loan by ID (Librarian only)
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id} [get]
func (h *LoanHandler) GetByID(c *fiber.Ctx) error {
	loan, err := h.lendingService.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrLoanNotFound) {
			return response.NotFound(c, "Loan not found")
		}
		return response.InternalServerError(c, "Failed to get loan")
	}

	return response.Success(c, "Loan retrieved successfully", fiber.Map{
		"loan": models.NewLoanResponse(loan),
	})
}

// GetActive lists active loans
// @Summary Active loans
// @Description Get all active loans (Librarian only)
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /loans/active [get]
func (h *LoanHandler) GetActive(c *fiber.Ctx) error {
	loans, err := h.lendingService.GetActive(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get loans")
	}

	return response.Success(c, "Loans retrieved successfully", fiber.Map{
		"loans": models.NewLoanResponses(loans),
	})
}

// GetOverdue lists overdue loans
// @Summary Overdue loans
// @Description Get active loans past their due date (Librarian only)
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /loans/overdue [get]
func (h *LoanHandler) GetOverdue(c *fiber.Ctx) error {
	loans, err := h.lendingService.GetOverdue(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get loans")
	}

	return response.Success(c, "Loans retrieved successfully", fiber.Map{
		"loans": models.NewLoanResponses(loans),
	})
}

// GetByMember lists a member's loans
// @Summary Loans by member
// @Description Get a member's loan history (Librarian only)
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param memberId path string true "Member ID"
// @Success 200 {object} response.Response
// @Router /loans/member/{memberId} [get]
func (h *LoanHandler) GetByMember(c *fiber.Ctx) error {
	loans, err := h.lendingService.GetByMember(c.Context(), c.Params("memberId"))
	if err != nil {
		return response.InternalServerError(c, "Failed to get loans")
	}

	return response.Success(c, "Loans retrieved successfully", fiber.Map{
		"loans": models.NewLoanResponses(loans),
	})
}

// GetByBook lists a book's loans
// @Summary Loans by book
// @Description Get a book's loan history (Librarian only)
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param bookId path string true "Book ID"
// @Success 200 {object} response.Response
// @Router /loans/book/{bookId} [get]
func (h *LoanHandler) GetByBook(c *fiber.Ctx) error {
	loans, err := h.lendingService.GetByBook(c.Context(), c.Params("bookId"))
	if err != nil {
		return response.InternalServerError(c, "Failed to get loans")
	}

	return response.Success(c, "Loans retrieved successfully", fiber.Map{
		"loans": models.NewLoanResponses(loans),
	})
}

// Return returns a borrowed book
// @Summary Return book
// @Description Close a loan; a late fee is frozen if overdue (Librarian only)
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /loans/{id}/return [post]
func (h *LoanHandler) Return(c *fiber.Ctx) error {
	loan, err := h.lendingService.Return(c.Context(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLoanNotFound):
			return response.NotFound(c, "Loan not found")
		case errors.Is(err, services.ErrConcurrentUpdate):
			return response.Conflict(c, err.Error())
		case errors.Is(err, domain.ErrInvariant):
			return response.UnprocessableEntity(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to return book")
		}
	}

	return response.Success(c, "Book returned successfully", fiber.Map{
		"loan": models.NewLoanResponse(loan),
	})
}

// RenewRequest represents renew request
type RenewRequest struct {
	AdditionalDays int `json:"additional_days"`
}

// Renew renews a loan
// @Summary Renew loan
// @Description Extend an active, timely loan's due date (Librarian only)
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Param body body RenewRequest false "Days to add (default 14)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /loans/{id}/renew [post]
func (h *LoanHandler) Renew(c *fiber.Ctx) error {
	req := RenewRequest{AdditionalDays: domain.DefaultLoanDays}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
	}

	loan, err := h.lendingService.Renew(c.Context(), c.Params("id"), req.AdditionalDays)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLoanNotFound):
			return response.NotFound(c, "Loan not found")
		case errors.Is(err, services.ErrConcurrentUpdate):
			return response.Conflict(c, err.Error())
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, domain.ErrInvariant):
			return response.UnprocessableEntity(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to renew loan")
		}
	}

	return response.Success(c, "Loan renewed successfully", fiber.Map{
		"loan": models.NewLoanResponse(loan),
	})
}

// MarkLost flags a loan's book as lost
// @Summary Mark lost
// @Description Flag the borrowed copy as lost (Librarian only)
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /loans/{id}/lost [post]
func (h *LoanHandler) MarkLost(c *fiber.Ctx) error {
	loan, err := h.lendingService.MarkLost(c.Context(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLoanNotFound):
			return response.NotFound(c, "Loan not found")
		case errors.Is(err, services.ErrConcurrentUpdate):
			return response.Conflict(c, err.Error())
		case errors.Is(err, domain.ErrInvariant):
			return response.UnprocessableEntity(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to mark loan as lost")
		}
	}

	return response.Success(c, "Loan marked as lost", fiber.Map{
		"loan": models.NewLoanResponse(loan),
	})
}
