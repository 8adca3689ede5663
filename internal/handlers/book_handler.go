package handlers

import (
	"errors"
	"log"

	"pustaka/internal/httputil"
	"pustaka/internal/models"
	"pustaka/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// BookHandler handles HTTP requests for books. Every route requires an
// authenticated identity; the owner id always comes from the request
// context, never from client input.
type BookHandler struct {
	bookService *services.BookService
	validate    *validator.Validate
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(bookService *services.BookService) *BookHandler {
	return &BookHandler{
		bookService: bookService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the book routes with the Fiber app.
func (h *BookHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	bookRoutes := router.Group("/books", authRequired)
	bookRoutes.Get("/", h.HandleList)
	bookRoutes.Get("/:id", h.HandleGet)
	bookRoutes.Post("/", h.HandleCreate)
	bookRoutes.Put("/:id", h.HandleUpdate)
	bookRoutes.Delete("/:id", h.HandleDelete)
}

// ownerID pulls the authenticated user's id out of the request context.
func ownerID(c *fiber.Ctx) (string, error) {
	id, ok := c.Locals("user_id").(string)
	if !ok || id == "" {
		return "", httputil.Unauthorized("AUTH_REQUIRED", "Authentication required")
	}
	return id, nil
}

// HandleList retrieves all books of the authenticated user.
func (h *BookHandler) HandleList(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	books, err := h.bookService.List(owner)
	if err != nil {
		log.Printf("Error listing books for user %s: %v", owner, err)
		return err
	}

	return httputil.Success(c, fiber.StatusOK, "Books retrieved successfully", books)
}

// HandleGet retrieves a single book by its ID.
func (h *BookHandler) HandleGet(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	book, err := h.bookService.Get(owner, c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrBookNotFound) {
			return httputil.NotFound("NOT_FOUND", "Book not found")
		}
		return err
	}

	return httputil.Success(c, fiber.StatusOK, "Book retrieved successfully", book)
}

// HandleCreate creates a new book owned by the authenticated user.
func (h *BookHandler) HandleCreate(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	var req models.CreateBookRequest
	if err := c.BodyParser(&req); err != nil {
		return httputil.BadRequest("INVALID_JSON", "Invalid request body")
	}

	if err := h.validate.Struct(req); err != nil {
		return httputil.BadRequest("VALIDATION_ERROR", "Title and author are required")
	}

	book, err := h.bookService.Create(owner, &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDate) {
			return httputil.BadRequest("VALIDATION_ERROR", err.Error())
		}
		log.Printf("Error creating book for user %s: %v", owner, err)
		return err
	}

	return httputil.Success(c, fiber.StatusCreated, "Book created successfully", book)
}

// HandleUpdate applies a partial update to a book.
func (h *BookHandler) HandleUpdate(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	var req models.UpdateBookRequest
	if err := c.BodyParser(&req); err != nil {
		return httputil.BadRequest("INVALID_JSON", "Invalid request body")
	}

	if err := h.validate.Struct(req); err != nil {
		return httputil.BadRequest("VALIDATION_ERROR", "Pages must be a non-negative number")
	}

	book, err := h.bookService.Update(owner, c.Params("id"), &req)
	if err != nil {
		if errors.Is(err, services.ErrBookNotFound) {
			return httputil.NotFound("NOT_FOUND", "Book not found")
		}
		if errors.Is(err, services.ErrInvalidDate) {
			return httputil.BadRequest("VALIDATION_ERROR", err.Error())
		}
		log.Printf("Error updating book %s: %v", c.Params("id"), err)
		return err
	}

	return httputil.Success(c, fiber.StatusOK, "Book updated successfully", book)
}

// HandleDelete removes a book permanently.
func (h *BookHandler) HandleDelete(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	if err := h.bookService.Delete(owner, c.Params("id")); err != nil {
		if errors.Is(err, services.ErrBookNotFound) {
			return httputil.NotFound("NOT_FOUND", "Book not found")
		}
		log.Printf("Error deleting book %s: %v", c.Params("id"), err)
		return err
	}

	return httputil.Success(c, fiber.StatusOK, "Book deleted successfully", fiber.Map{})
}
