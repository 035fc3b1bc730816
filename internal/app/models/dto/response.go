package dto

// PaginationInfo represents pagination metadata returned alongside lists
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage" example:"1"`
	TotalPages  int   `json:"totalPages" example:"3"`
	PageSize    int   `json:"pageSize" example:"10"`
	TotalItems  int64 `json:"totalItems" example:"25"`
}

// APIResponse is the standard data/meta envelope for successful responses
type APIResponse struct {
	Data interface{}     `json:"data"`
	Meta *PaginationInfo `json:"meta,omitempty"`
}

// SuccessResponse acknowledges a mutation with no payload
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}
