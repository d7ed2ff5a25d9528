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

// BookHandler handles catalog endpoints
type BookHandler struct {
	bookService *services.BookService
}

// NewBookHandler creates a new book handler
func NewBookHandler(bookService *services.BookService) *BookHandler {
	return &BookHandler{
		bookService: bookService,
	}
}

// Create adds a book to the catalog
// @Summary Add book
// @Description Register a new book in the catalog (Librarian only)
// @Tags Books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateBookInput true "Book data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /books [post]
func (h *BookHandler) Create(c *fiber.Ctx) error {
	var input services.CreateBookInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	book, err := h.bookService.Create(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateISBN):
			return response.Conflict(c, "A book with this ISBN already exists")
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to create book")
		}
	}

	return response.Created(c, "Book created successfully", fiber.Map{
		"book": models.NewBookResponse(book),
	})
}

// List lists books
// @Summary List books
// @Description List catalog with pagination
// @Tags Books
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /books [get]
func (h *BookHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	books, total, err := h.bookService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list books")
	}

	return response.Success(c, "Books retrieved successfully",
		pagination.NewResponse(models.NewBookResponses(books), params, total))
}

// GetByID gets a book
// @Summary Get book
// @Description Get a book by ID
// @Tags Books
// @Accept json
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [get]
func (h *BookHandler) GetByID(c *fiber.Ctx) error {
	book, err := h.bookService.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrBookNotFound) {
			return response.NotFound(c, "Book not found")
		}
		return response.InternalServerError(c, "Failed to get book")
	}

	return response.Success(c, "Book retrieved successfully", fiber.Map{
		"book": models.NewBookResponse(book),
	})
}

// GetByISBN gets a book by ISBN
// @Summary Get book by ISBN
// @Description Get a book by its ISBN (hyphens and spaces ignored)
// @Tags Books
// @Accept json
// @Produce json
// @Param isbn path string true "ISBN-10 or ISBN-13"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/isbn/{isbn} [get]
func (h *BookHandler) GetByISBN(c *fiber.Ctx) error {
	book, err := h.bookService.GetByISBN(c.Context(), c.Params("isbn"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookNotFound):
			return response.NotFound(c, "Book not found")
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to get book")
		}
	}

	return response.Success(c, "Book retrieved successfully", fiber.Map{
		"book": models.NewBookResponse(book),
	})
}

// SearchByTitle searches books by title
// @Summary Search by title
// @Description Find books whose title contains the fragment
// @Tags Books
// @Accept json
// @Produce json
// @Param title path string true "Title fragment"
// @Success 200 {object} response.Response
// @Router /books/search/title/{title} [get]
func (h *BookHandler) SearchByTitle(c *fiber.Ctx) error {
	books, err := h.bookService.SearchByTitle(c.Context(), c.Params("title"))
	if err != nil {
		return response.InternalServerError(c, "Failed to search books")
	}

	return response.Success(c, "Books retrieved successfully", fiber.Map{
		"books": models.NewBookResponses(books),
	})
}

// SearchByAuthor searches books by author
// @Summary Search by author
// @Description Find books whose author contains the fragment
// @Tags Books
// @Accept json
// @Produce json
// @Param author path string true "Author fragment"
// @Success 200 {object} response.Response
// @Router /books/search/author/{author} [get]
func (h *BookHandler) SearchByAuthor(c *fiber.Ctx) error {
	books, err := h.bookService.SearchByAuthor(c.Context(), c.Params("author"))
	if err != nil {
		return response.InternalServerError(c, "Failed to search books")
	}

	return response.Success(c, "Books retrieved successfully", fiber.Map{
		"books": models.NewBookResponses(books),
	})
}

// GetByCategory gets books in a category
// @Summary Books by category
// @Description Get books in a category
// @Tags Books
// @Accept json
// @Produce json
// @Param category path string true "Category"
// @Success 200 {object} response.Response
// @Router /books/category/{category} [get]
func (h *BookHandler) GetByCategory(c *fiber.Ctx) error {
	books, err := h.bookService.GetByCategory(c.Context(), c.Params("category"))
	if err != nil {
		return response.InternalServerError(c, "Failed to get books")
	}

	return response.Success(c, "Books retrieved successfully", fiber.Map{
		"books": models.NewBookResponses(books),
	})
}

// GetAvailable gets borrowable books
// @Summary Available books
// @Description Get books with at least one available copy
// @Tags Books
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /books/available [get]
func (h *BookHandler) GetAvailable(c *fiber.Ctx) error {
	books, err := h.bookService.GetAvailable(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get books")
	}

	return response.Success(c, "Books retrieved successfully", fiber.Map{
		"books": models.NewBookResponses(books),
	})
}

// Update patches book details
// @Summary Update book
// @Description Update a book's descriptive fields (Librarian only)
// @Tags Books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Param body body services.UpdateDetailsInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [put]
func (h *BookHandler) Update(c *fiber.Ctx) error {
	var input services.UpdateDetailsInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	book, err := h.bookService.UpdateDetails(c.Context(), c.Params("id"), &input)
	if err != nil {
		if errors.Is(err, services.ErrBookNotFound) {
			return response.NotFound(c, "Book not found")
		}
		return response.InternalServerError(c, "Failed to update book")
	}

	return response.Success(c, "Book updated successfully", fiber.Map{
		"book": models.NewBookResponse(book),
	})
}

// AddCopiesRequest represents add copies request
type AddCopiesRequest struct {
	Quantity int `json:"quantity"`
}

// AddCopies adds stock for a book
// @Summary Add copies
// @Description Increase the number of copies of a book (Librarian only)
// @Tags Books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Param body body AddCopiesRequest true "Quantity to add"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id}/add-copies [post]
func (h *BookHandler) AddCopies(c *fiber.Ctx) error {
	var req AddCopiesRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	book, err := h.bookService.AddCopies(c.Context(), c.Params("id"), req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookNotFound):
			return response.NotFound(c, "Book not found")
		case errors.Is(err, domain.ErrValidation):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to add copies")
		}
	}

	return response.Success(c, "Copies added successfully", fiber.Map{
		"book": models.NewBookResponse(book),
	})
}

// Delete removes a book from the catalog
// @Summary Delete book
// @Description Remove a book with no active loans (Admin only)
// @Tags Books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /books/{id} [delete]
func (h *BookHandler) Delete(c *fiber.Ctx) error {
	err := h.bookService.Delete(c.Context(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookNotFound):
			return response.NotFound(c, "Book not found")
		case errors.Is(err, services.ErrBookHasActiveLoans):
			return response.UnprocessableEntity(c, "Book has active loans and cannot be deleted")
		default:
			return response.InternalServerError(c, "Failed to delete book")
		}
	}

	return response.Success(c, "Book deleted successfully", nil)
}
