package models

// Address is one entry in a user's address book. Orders embed a full copy of
// the chosen address, so later edits never change where a past order went.
type Address struct {
	ID           string `bson:"id" json:"id"`
	FullName     string `bson:"fullName" json:"fullName"`
	Phone        string `bson:"phone" json:"phone"`
	AddressLine1 string `bson:"addressLine1" json:"addressLine1"`
	AddressLine2 string `bson:"addressLine2,omitempty" json:"addressLine2,omitempty"`
	City         string `bson:"city" json:"city"`
	State        string `bson:"state" json:"state"`
	PinCode      string `bson:"pinCode" json:"pinCode"`
	AddressType  string `bson:"addressType" json:"addressType"`
	IsDefault    bool   `bson:"isDefault" json:"isDefault"`
}

const (
	AddressTypeHome  = "Home"
	AddressTypeWork  = "Work"
	AddressTypeOther = "Other"
)

func ValidAddressType(t string) bool {
	return t == AddressTypeHome || t == AddressTypeWork || t == AddressTypeOther
}
