package dto

// ExpenseListRequest holds the query parameters for listing expenses
type ExpenseListRequest struct {
	ListRequest
	Status     string `form:"status" binding:"omitempty,oneof=UNPAID PARTIALLY_PAID PAID OVERPAID"`
	SupplierID string `form:"supplier_id" binding:"omitempty,uuid"`
	FromDate   string `form:"from_date" binding:"omitempty,datetime=2006-01-02"`
	ToDate     string `form:"to_date" binding:"omitempty,datetime=2006-01-02"`
}

// NameRequest is the request body for creating or renaming a named entity
type NameRequest struct {
	Name string `json:"name" binding:"required,max=200"`
}

// AccountNameRequest is the request body for pre-seeding an account name
type AccountNameRequest struct {
	Name          string `json:"name" binding:"required,max=200"`
	PaymentTypeID string `json:"payment_type_id" binding:"omitempty,uuid"`
}
