package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	StatusPreparing  OrderStatus = "preparing"
	StatusDispatched OrderStatus = "dispatched"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentCOD  PaymentMethod = "COD"
	PaymentUPI  PaymentMethod = "UPI"
	PaymentCard PaymentMethod = "Card"
)

// ValidPaymentMethod reports whether m is an accepted payment method. UPI and
// Card are recorded preferences only; no gateway integration exists.
func ValidPaymentMethod(m PaymentMethod) bool {
	return m == PaymentCOD || m == PaymentUPI || m == PaymentCard
}

// OrderItem is a point-in-time snapshot of the product at order placement.
// Name, price and emoji are copied from the product document read inside the
// order transaction, never from the caller-supplied cart.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	Price     float64            `bson:"price" json:"price"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Emoji     string             `bson:"emoji" json:"emoji"`
}

// DeliveryPartner is a simulated assignment standing in for a real dispatch
// system.
type DeliveryPartner struct {
	Name  string `bson:"name" json:"name"`
	Phone string `bson:"phone" json:"phone"`
}

// Order is immutable after creation except for the status lifecycle fields.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	OrderNumber     string             `bson:"orderNumber" json:"orderNumber"`
	Items           []OrderItem        `bson:"items" json:"items"`
	DeliveryAddress Address            `bson:"deliveryAddress" json:"deliveryAddress"`
	TotalAmount     float64            `bson:"totalAmount" json:"totalAmount"`
	PaymentMethod   PaymentMethod      `bson:"paymentMethod" json:"paymentMethod"`
	Status          OrderStatus        `bson:"status" json:"status"`
	DeliveryPartner *DeliveryPartner   `bson:"deliveryPartner,omitempty" json:"deliveryPartner,omitempty"`
	OrderDate       time.Time          `bson:"orderDate" json:"orderDate"`
	DispatchedAt    *time.Time         `bson:"dispatchedAt,omitempty" json:"dispatchedAt,omitempty"`
	DeliveredAt     *time.Time         `bson:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`
	CancelledAt     *time.Time         `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
}
