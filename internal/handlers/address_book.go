package handlers

import "backend/internal/models"

// Address book rules: at most one default at a time, the first address a
// user adds becomes default automatically, and deleting the default promotes
// the first remaining address. These helpers are pure so the rules stay
// testable without a database.

func addAddress(addresses []models.Address, address models.Address) []models.Address {
	if address.IsDefault {
		for i := range addresses {
			addresses[i].IsDefault = false
		}
	}
	if len(addresses) == 0 {
		address.IsDefault = true
	}
	return append(addresses, address)
}

func updateAddress(addresses []models.Address, id string, updated models.Address) ([]models.Address, bool) {
	index := -1
	for i := range addresses {
		if addresses[i].ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return addresses, false
	}

	if updated.IsDefault {
		for i := range addresses {
			addresses[i].IsDefault = false
		}
	}
	updated.ID = id
	addresses[index] = updated
	return addresses, true
}

func deleteAddress(addresses []models.Address, id string) ([]models.Address, bool) {
	out := make([]models.Address, 0, len(addresses))
	wasDefault := false
	found := false
	for _, addr := range addresses {
		if addr.ID == id {
			found = true
			wasDefault = addr.IsDefault
			continue
		}
		out = append(out, addr)
	}
	if !found {
		return addresses, false
	}
	if wasDefault && len(out) > 0 {
		out[0].IsDefault = true
	}
	return out, true
}

func setDefaultAddress(addresses []models.Address, id string) ([]models.Address, bool) {
	found := false
	for i := range addresses {
		isTarget := addresses[i].ID == id
		addresses[i].IsDefault = isTarget
		if isTarget {
			found = true
		}
	}
	return addresses, found
}
