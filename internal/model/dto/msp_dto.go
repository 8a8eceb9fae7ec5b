package dto

// CreateMSPRequest registers a Motorised Servicing Point. Admin only.
type CreateMSPRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
}

// MSPItem is one servicing point in the listing.
type MSPItem struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}
