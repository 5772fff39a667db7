// Package warehouse tracks how store orders leave the building. Its structs
// refer to store types, so generated code has to import them.
package warehouse

import (
	"time"

	"update-object-generator/store"
)

// Shipment is one parcel dispatched for an order.
//
// +updateobject:generate
type Shipment struct {
	OrderID      int64             `json:"order_id" update:"required"`
	Status       store.OrderStatus `json:"status"`
	Items        []store.OrderItem `json:"items"`
	Carrier      *string           `json:"carrier,omitempty" partial:"Tracking"`
	TrackingCode *string           `json:"tracking_code,omitempty" partial:"Tracking"`
	DispatchedAt *time.Time        `json:"dispatched_at,omitempty"`
	LabelPDF     []byte            `json:"-" update:"-"`
}

// Dock is a loading bay. It carries no marker and is ignored by the scanner.
type Dock struct {
	Code     string
	Capacity int
}
