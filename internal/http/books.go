package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/viraatdas/lendy/internal/database/books"
)

type BooksController struct {
	books *books.Repository
}

func NewBooksController(repo *books.Repository) *BooksController {
	return &BooksController{books: repo}
}

type addBookRequest struct {
	Username   string `json:"username"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	CoverURL   string `json:"coverUrl"`
	CatalogKey string `json:"catalogKey"`
}

type updateBookRequest struct {
	Action           string `json:"action"`
	LentToName       string `json:"lentToName"`
	BorrowerUsername string `json:"borrowerUsername"`
}

type deleteBookRequest struct {
	Username string `json:"username"`
}

// ListBooks returns the owned, lending and borrowed collections for a user.
// GET /books?username=U
func (bc *BooksController) ListBooks(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		respondBadRequest(c, "username is required")
		return
	}

	collections, err := bc.books.ListForUser(username)
	if err != nil {
		respondInternalError(c, err, "fetch books")
		return
	}

	c.JSON(http.StatusOK, collections)
}

// AddBook adds a new book owned by the given user.
// POST /books
func (bc *BooksController) AddBook(c *gin.Context) {
	var req addBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "username and title are required")
		return
	}

	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Title) == "" {
		respondBadRequest(c, "username and title are required")
		return
	}

	book, err := bc.books.Add(req.Username, req.Title, req.Author, req.CoverURL, req.CatalogKey)
	if err != nil {
		respondInternalError(c, err, "add book")
		return
	}

	c.JSON(http.StatusOK, gin.H{"book": book})
}

// UpdateBook drives the lending state machine: "lend" marks the book as lent
// out, "return" makes it available again.
// PATCH /books/:id
func (bc *BooksController) UpdateBook(c *gin.Context) {
	id := c.Param("id")

	var req updateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	switch req.Action {
	case "lend":
		if strings.TrimSpace(req.LentToName) == "" {
			respondBadRequest(c, "recipient name is required")
			return
		}
		book, err := bc.books.Lend(id, req.LentToName, req.BorrowerUsername)
		if errors.Is(err, books.ErrNotFound) {
			respondNotFound(c, "book not found")
			return
		}
		if err != nil {
			respondInternalError(c, err, "update book")
			return
		}
		c.JSON(http.StatusOK, gin.H{"book": book})

	case "return":
		book, err := bc.books.Return(id)
		if errors.Is(err, books.ErrNotFound) {
			respondNotFound(c, "book not found")
			return
		}
		if err != nil {
			respondInternalError(c, err, "update book")
			return
		}
		c.JSON(http.StatusOK, gin.H{"book": book})

	default:
		respondBadRequest(c, "invalid action")
	}
}

// DeleteBook removes a book. Only the owner may delete; a missing book and a
// non-owned book get the same 404.
// DELETE /books/:id
func (bc *BooksController) DeleteBook(c *gin.Context) {
	id := c.Param("id")

	var req deleteBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "username is required")
		return
	}
	if strings.TrimSpace(req.Username) == "" {
		respondBadRequest(c, "username is required")
		return
	}

	err := bc.books.Delete(id, req.Username)
	if errors.Is(err, books.ErrNotFound) {
		respondNotFound(c, "book not found or you do not own it")
		return
	}
	if err != nil {
		respondInternalError(c, err, "delete book")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
