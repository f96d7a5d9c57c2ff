package store

import (
	"context"
	"fmt"

	"book-vault/internal/database"
	"book-vault/internal/model"
)

func ListBooks(ctx context.Context, db database.DB) ([]model.Book, error) {
	rows, err := db.Query(ctx,
		`SELECT id, title, author, isbn, created_at
		 FROM books ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListBooks: %w", err)
	}
	defer rows.Close()

	books := []model.Book{}
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListBooks: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListBooks: %w", err)
	}
	return books, nil
}

func CreateBook(ctx context.Context, db database.DB, b *model.Book) (*model.Book, error) {
	if b.ID == "" {
		b.ID = newUUID()
	}
	row := db.QueryRow(ctx,
		`INSERT INTO books (id, title, author, isbn)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		b.ID,
		b.Title,
		b.Author,
		b.ISBN,
	)
	if err := row.Scan(&b.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateBook: %w", err)
	}
	return b, nil
}

// UpdateBook 以完整覆寫方式更新書籍三欄位
func UpdateBook(ctx context.Context, db database.DB, b *model.Book) error {
	tag, err := db.Exec(ctx,
		`UPDATE books SET title = $1, author = $2, isbn = $3
		 WHERE id = $4`,
		b.Title,
		b.Author,
		b.ISBN,
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateBook: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateBook: %w", ErrNotFound)
	}
	return nil
}

func DeleteBook(ctx context.Context, db database.DB, id string) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM books WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("DeleteBook: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteBook: %w", ErrNotFound)
	}
	return nil
}
