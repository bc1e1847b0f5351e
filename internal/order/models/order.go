package models

import (
	"strconv"
	"strings"
	"time"

	dErrors "posadmin/pkg/domain-errors"
)

// Status is an order's lifecycle state.
type Status string

const (
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

// ParseStatus validates a raw status string.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return Status(raw), nil
	default:
		return "", dErrors.New(dErrors.CodeBadRequest, "unknown order status")
	}
}

// transitions is the explicit allow-table. Forward moves only; Cancelled is
// reachable from any non-terminal state and can be reinstated to Processing
// (which also cancels its pending deletion); Delivered is terminal.
var transitions = map[Status][]Status{
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered, StatusCancelled},
	StatusCancelled:  {StatusProcessing},
}

// CanTransitionTo reports whether the move from s to next is allowed.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions leave s.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// Order is a customer order as shown on the sales report.
type Order struct {
	ID              int64     `json:"id"`
	FullName        string    `json:"full_name"`
	PhoneNumber     string    `json:"phone_number"`
	Address         string    `json:"address"`
	City            string    `json:"city"`
	StateProvince   string    `json:"state_province"`
	PostalCode      string    `json:"postal_code"`
	DeliveryAddress string    `json:"delivery_address"`
	PaymentMethod   string    `json:"payment_method"`
	Subtotal        float64   `json:"subtotal"`
	DeliveryFee     float64   `json:"delivery_fee"`
	Total           float64   `json:"total"`
	OrderDate       time.Time `json:"order_date"`
	TrackingNumber  string    `json:"tracking_number"`
	Status          Status    `json:"status"`
	InSalesReport   bool      `json:"in_sales_report"`
}

// Matches implements the report search: a record matches when its id, name
// (case-insensitive) or phone number contains the term.
func (o *Order) Matches(term string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(strconv.FormatInt(o.ID, 10), term) {
		return true
	}
	if strings.Contains(strings.ToLower(o.FullName), strings.ToLower(term)) {
		return true
	}
	return strings.Contains(o.PhoneNumber, term)
}
