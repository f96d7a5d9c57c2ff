package api

// BookRequest 供建立與完整覆寫更新共用
// swagger:model api.BookRequest
type BookRequest struct {
	Title  string `json:"title" validate:"required" example:"The Go Programming Language"`
	Author string `json:"author" validate:"required" example:"Alan A. A. Donovan"`
	ISBN   string `json:"isbn" validate:"required" example:"9780134190440"`
}
