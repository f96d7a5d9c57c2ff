// File: internal/handler/books/book.go
package books

import (
	"errors"
	"net/http"

	"book-vault/internal/api"
	"book-vault/internal/database"
	"book-vault/internal/model"
	"book-vault/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	listBooks  = store.ListBooks
	createBook = store.CreateBook
	updateBook = store.UpdateBook
	deleteBook = store.DeleteBook
)

// @Summary     List all books
// @Description 依寫入順序回傳所有書籍
// @Tags        books
// @Produce     json
// @Success     200 {array} api.BookResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /books [get]
func ListBooksHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		books, err := listBooks(c.Request().Context(), db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "internal error"})
		}
		resp := make([]api.BookResponse, 0, len(books))
		for _, b := range books {
			resp = append(resp, api.BookResponse{
				ID:     b.ID,
				Title:  b.Title,
				Author: b.Author,
				ISBN:   b.ISBN,
			})
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// @Summary     Create a new book
// @Description 新增書籍，ISBN 不可重複
// @Tags        books
// @Accept      json
// @Produce     json
// @Param       request body api.BookRequest true "書籍資料"
// @Success     201 {object} api.MessageResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     409 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /books [post]
func CreateBookHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.BookRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		_, err := createBook(c.Request().Context(), db, &model.Book{
			Title:  req.Title,
			Author: req.Author,
			ISBN:   req.ISBN,
		})
		if err != nil {
			if store.IsUniqueViolation(err) {
				return c.JSON(http.StatusConflict, api.ErrorResponse{Message: "ISBN already exists"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "internal error"})
		}

		return c.JSON(http.StatusCreated, api.MessageResponse{Message: "Book added successfully"})
	}
}

// @Summary     Update a book by ID
// @Description 完整覆寫書名、作者與 ISBN
// @Tags        books
// @Accept      json
// @Produce     json
// @Param       id path string true "書籍 ID"
// @Param       request body api.BookRequest true "書籍資料"
// @Success     200 {object} api.MessageResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     409 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /books/{id} [put]
func UpdateBookHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.BookRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		err := updateBook(c.Request().Context(), db, &model.Book{
			ID:     c.Param("id"),
			Title:  req.Title,
			Author: req.Author,
			ISBN:   req.ISBN,
		})
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "Book not found"})
			}
			if store.IsUniqueViolation(err) {
				return c.JSON(http.StatusConflict, api.ErrorResponse{Message: "ISBN already exists"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "internal error"})
		}

		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Book updated successfully"})
	}
}

// @Summary     Delete a book by ID
// @Description 依書籍 ID 永久刪除
// @Tags        books
// @Produce     json
// @Param       id path string true "書籍 ID"
// @Success     200 {object} api.MessageResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /books/{id} [delete]
func DeleteBookHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := deleteBook(c.Request().Context(), db, c.Param("id")); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "Book not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "internal error"})
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Book deleted successfully"})
	}
}
