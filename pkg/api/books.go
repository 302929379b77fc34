package api

import (
	"net/http"
	"strconv"

	"library_catalog/pkg/models"
	"library_catalog/pkg/store"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

type BookHandler struct {
	books store.BookStore
	log   logger.Logger
}

func NewBookHandler(books store.BookStore, log logger.Logger) *BookHandler {
	return &BookHandler{books: books, log: log}
}

// bookPayload is the body of create and update requests. id and fechaCreacion
// are server owned and ignored when sent.
type bookPayload struct {
	Title           string  `json:"titulo" binding:"required"`
	Author          string  `json:"autor" binding:"required"`
	ISBN            *string `json:"isbn"`
	PublicationYear *int    `json:"añoPublicacion"`
	Available       *bool   `json:"disponible"`
}

func (p bookPayload) toBook() models.Book {
	book := models.Book{
		Title:           p.Title,
		Author:          p.Author,
		ISBN:            p.ISBN,
		PublicationYear: p.PublicationYear,
		Available:       true,
	}
	if p.Available != nil {
		book.Available = *p.Available
	}
	return book
}

func (h *BookHandler) List(c *gin.Context) {
	books, err := h.books.FindAll(c.Request.Context())
	if err != nil {
		h.storeFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

func (h *BookHandler) ListAvailable(c *gin.Context) {
	books, err := h.books.FindAvailable(c.Request.Context())
	if err != nil {
		h.storeFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

func (h *BookHandler) Get(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	book, err := h.books.FindByID(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.Status(http.StatusNotFound)
		return
	}
	if err != nil {
		h.storeFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (h *BookHandler) Create(c *gin.Context) {
	var payload bookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	book := payload.toBook()
	if err := h.books.Save(c.Request.Context(), &book); err != nil {
		h.storeFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (h *BookHandler) Update(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	var payload bookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	book, err := h.books.FindByID(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.Status(http.StatusNotFound)
		return
	}
	if err != nil {
		h.storeFailure(c, err)
		return
	}

	book.Overwrite(payload.toBook())
	if err := h.books.Save(c.Request.Context(), book); err != nil {
		h.storeFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	exists, err := h.books.ExistsByID(c.Request.Context(), id)
	if err != nil {
		h.storeFailure(c, err)
		return
	}
	if !exists {
		c.Status(http.StatusNotFound)
		return
	}
	if err := h.books.DeleteByID(c.Request.Context(), id); err != nil {
		h.storeFailure(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *BookHandler) SearchByTitle(c *gin.Context) {
	books, err := h.books.FindByTitleContaining(c.Request.Context(), c.Param("titulo"))
	if err != nil {
		h.storeFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

func (h *BookHandler) SearchByAuthor(c *gin.Context) {
	books, err := h.books.FindByAuthorContaining(c.Request.Context(), c.Param("autor"))
	if err != nil {
		h.storeFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

// bookID parses the :id segment. A value that is not a positive integer can
// never name a stored book, so callers answer 404.
func bookID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func (h *BookHandler) storeFailure(c *gin.Context, err error) {
	h.log.Data(logger.Data{requestIDKey: c.GetString(requestIDKey)}).Err(err).Error("book store failure")
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
