// File: internal/model/book.go
package model

import "time"

type Book struct {
	ID        string    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Author    string    `db:"author" json:"author"`
	ISBN      string    `db:"isbn" json:"isbn"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
