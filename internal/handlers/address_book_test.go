package handlers

import (
	"testing"

	"backend/internal/models"
)

func addr(id string, isDefault bool) models.Address {
	return models.Address{
		ID:           id,
		FullName:     "Test User",
		Phone:        "9876543210",
		AddressLine1: "12 MG Road",
		City:         "Bengaluru",
		State:        "Karnataka",
		PinCode:      "560001",
		AddressType:  models.AddressTypeHome,
		IsDefault:    isDefault,
	}
}

func defaultCount(addresses []models.Address) int {
	count := 0
	for _, a := range addresses {
		if a.IsDefault {
			count++
		}
	}
	return count
}

func TestAddAddressFirstBecomesDefault(t *testing.T) {
	addresses := addAddress(nil, addr("a1", false))
	if len(addresses) != 1 || !addresses[0].IsDefault {
		t.Fatalf("expected first address to become default, got %+v", addresses)
	}
}

func TestAddAddressSecondStaysNonDefault(t *testing.T) {
	addresses := addAddress(nil, addr("a1", false))
	addresses = addAddress(addresses, addr("a2", false))

	if addresses[1].IsDefault {
		t.Fatal("expected second address to stay non-default")
	}
	if defaultCount(addresses) != 1 {
		t.Fatalf("expected exactly one default, got %d", defaultCount(addresses))
	}
}

func TestAddAddressNewDefaultUnsetsPrevious(t *testing.T) {
	addresses := addAddress(nil, addr("a1", false))
	addresses = addAddress(addresses, addr("a2", true))

	if addresses[0].IsDefault {
		t.Fatal("expected previous default to be unset")
	}
	if !addresses[1].IsDefault {
		t.Fatal("expected new address to be default")
	}
}

func TestUpdateAddressSettingDefaultUnsetsOthers(t *testing.T) {
	addresses := []models.Address{addr("a1", true), addr("a2", false)}

	addresses, found := updateAddress(addresses, "a2", addr("a2", true))
	if !found {
		t.Fatal("expected address a2 to be found")
	}
	if addresses[0].IsDefault || !addresses[1].IsDefault {
		t.Fatalf("expected default to move to a2, got %+v", addresses)
	}
}

func TestUpdateAddressUnknownID(t *testing.T) {
	addresses := []models.Address{addr("a1", true)}

	_, found := updateAddress(addresses, "missing", addr("missing", false))
	if found {
		t.Fatal("expected unknown id to report not found")
	}
}

func TestUpdateAddressKeepsID(t *testing.T) {
	addresses := []models.Address{addr("a1", true)}

	updated := addr("tampered", false)
	addresses, _ = updateAddress(addresses, "a1", updated)
	if addresses[0].ID != "a1" {
		t.Fatalf("expected id to stay a1, got %s", addresses[0].ID)
	}
}

func TestDeleteAddressPromotesFirstRemaining(t *testing.T) {
	addresses := []models.Address{addr("a1", true), addr("a2", false), addr("a3", false)}

	addresses, found := deleteAddress(addresses, "a1")
	if !found {
		t.Fatal("expected address a1 to be found")
	}
	if len(addresses) != 2 {
		t.Fatalf("expected 2 addresses left, got %d", len(addresses))
	}
	if !addresses[0].IsDefault {
		t.Fatal("expected first remaining address to be promoted to default")
	}
	if defaultCount(addresses) != 1 {
		t.Fatalf("expected exactly one default, got %d", defaultCount(addresses))
	}
}

func TestDeleteAddressNonDefaultKeepsDefault(t *testing.T) {
	addresses := []models.Address{addr("a1", true), addr("a2", false)}

	addresses, _ = deleteAddress(addresses, "a2")
	if !addresses[0].IsDefault {
		t.Fatal("expected default to survive deleting a non-default address")
	}
}

func TestDeleteLastAddress(t *testing.T) {
	addresses := []models.Address{addr("a1", true)}

	addresses, found := deleteAddress(addresses, "a1")
	if !found || len(addresses) != 0 {
		t.Fatalf("expected empty address book, got %+v", addresses)
	}
}

func TestSetDefaultAddressMovesDefault(t *testing.T) {
	addresses := []models.Address{addr("a1", true), addr("a2", false)}

	addresses, found := setDefaultAddress(addresses, "a2")
	if !found {
		t.Fatal("expected address a2 to be found")
	}
	if addresses[0].IsDefault || !addresses[1].IsDefault {
		t.Fatalf("expected default to move to a2, got %+v", addresses)
	}
}

func TestSetDefaultAddressUnknownID(t *testing.T) {
	addresses := []models.Address{addr("a1", true)}

	_, found := setDefaultAddress(addresses, "missing")
	if found {
		t.Fatal("expected unknown id to report not found")
	}
}
