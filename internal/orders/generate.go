package orders

import (
	"fmt"
	"math/rand"
	"time"

	"backend/internal/models"
)

const orderNumberPrefix = "BUZZ"

// GenerateOrderNumber builds the user-facing order identifier:
// BUZZ + millisecond timestamp + random suffix, e.g. BUZZ1730912345678042.
// Uniqueness is probabilistic but adequate at millisecond granularity; the
// unique index on orderNumber is the backstop.
func GenerateOrderNumber() string {
	return formatOrderNumber(time.Now(), rand.Intn(1000))
}

func formatOrderNumber(now time.Time, suffix int) string {
	return fmt.Sprintf("%s%d%03d", orderNumberPrefix, now.UnixMilli(), suffix)
}

// PartnerAssigner decides which delivery partner handles an order. The
// simulated implementation is a placeholder for a real dispatch-assignment
// system.
type PartnerAssigner interface {
	Assign() models.DeliveryPartner
}

var partnerNames = []string{
	"Rajesh Kumar",
	"Amit Sharma",
	"Vikram Singh",
	"Priya Patel",
	"Suresh Reddy",
	"Arjun Mehta",
	"Neha Gupta",
	"Ravi Verma",
}

type simulatedAssigner struct{}

// NewSimulatedAssigner returns an assigner that picks a random name from a
// fixed list and synthesizes a phone number.
func NewSimulatedAssigner() PartnerAssigner {
	return simulatedAssigner{}
}

func (simulatedAssigner) Assign() models.DeliveryPartner {
	return models.DeliveryPartner{
		Name:  partnerNames[rand.Intn(len(partnerNames))],
		Phone: fmt.Sprintf("+91 %05d-%05d", 10000+rand.Intn(90000), 10000+rand.Intn(90000)),
	}
}
