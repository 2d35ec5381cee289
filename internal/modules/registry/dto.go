package registry

type AddToolRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

type BorrowRequest struct {
	BorrowerName string `json:"borrowerName" binding:"required"`
}
