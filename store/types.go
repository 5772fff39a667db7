// Package store holds the sample domain the Go-source adapter is exercised on.
// Structs marked with +updateobject:generate get update objects generated next
// to them.
package store

import (
	"time"
)

// Product is an item available for sale. Prices are in cents.
//
// +updateobject:generate:className=ProductPatch,visibility=internal
type Product struct {
	ID          int64     `json:"id" update:"required"`
	SKU         string    `json:"sku" update:"required"`
	Name        string    `json:"name" partial:"Listing"`
	Description *string   `json:"description,omitempty" partial:"Listing"`
	PriceCents  int64     `json:"price_cents" partial:"Listing,Pricing"`
	Inventory   int       `json:"inventory_count"`
	CreatedAt   time.Time `json:"created_at" update:"-"`
}

// Customer places orders.
//
// +updateobject:generate
type Customer struct {
	ID       int64   `json:"id" update:"required"`
	Email    string  `json:"email" partial:"Contact"`
	FullName string  `json:"full_name" partial:"Contact"`
	Address  *string `json:"address" partial:"Contact"`
	IsActive bool    `json:"is_active"`
}

// Order is a transaction made by a customer.
// +updateobject:generate
type Order struct {
	ID         int64             `json:"id" update:"required"`
	CustomerID int64             `json:"customer_id" update:"required"`
	Status     OrderStatus       `json:"status"`
	TotalCents int64             `json:"total_cents"`
	Items      []OrderItem       `json:"items"`
	Notes      map[string]string `json:"notes,omitempty"`
	OrderedAt  time.Time         `json:"ordered_at"`
	ShippedAt  *time.Time        `json:"shipped_at,omitempty"`
}

// OrderItem is a product line within an order. It snapshots the price at the
// time of purchase.
type OrderItem struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)
