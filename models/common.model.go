package models

// APIResponse is the uniform envelope every endpoint answers with. Failures
// always carry Success=false and a short message; extra payload fields are
// added per endpoint on top of this.
type APIResponse struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
}

// ListingInfo is the pagination metadata returned alongside product listings.
type ListingInfo struct {
	Count int64 `json:"count"`
	Page  int   `json:"page"`
}

// OrdersCount is the per-status rollup of ordered quantities for a single
// product. Other collects counts whose order status is outside the known set
// so they are never silently dropped.
type OrdersCount struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Shipping   int `json:"shipping"`
	Delivered  int `json:"delivered"`
	Other      int `json:"other"`
}

// SuccessResponse creates a success envelope.
func SuccessResponse(msg string) APIResponse {
	return APIResponse{Success: true, Msg: msg}
}

// ErrorResponse creates a failure envelope.
func ErrorResponse(msg string) APIResponse {
	return APIResponse{Success: false, Msg: msg}
}
