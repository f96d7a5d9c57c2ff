package api

// swagger:model api.BookResponse
type BookResponse struct {
	ID     string `json:"id" example:"19aeb2c7-9ad7-4bfd-9fa3-3982931b50f3"`
	Title  string `json:"title" example:"The Go Programming Language"`
	Author string `json:"author" example:"Alan A. A. Donovan"`
	ISBN   string `json:"isbn" example:"9780134190440"`
}
