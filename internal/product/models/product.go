package models

// Product is an inventory record.
type Product struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	ImageURL      string  `json:"image_url"`
	StockQuantity int     `json:"stock_quantity"`
	Category      string  `json:"category"`
	SupplierID    int64   `json:"supplier_id"`
	OrderCode     string  `json:"order_id"`
	Rating        float64 `json:"rating"`
}

// Page is one page of the inventory listing.
type Page struct {
	Products    []*Product `json:"products"`
	CurrentPage int        `json:"currentPage"`
	TotalPages  int        `json:"totalPages"`
	TotalItems  int        `json:"totalItems"`
}
