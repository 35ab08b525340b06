package model

import "strings"

// Actor is the authenticated user context carried into every operation.
// It is built from token claims by the middleware and never persisted here.
type Actor struct {
	UserID      uint         `json:"userId"`
	Name        string       `json:"name"`
	Level       AccountLevel `json:"level"`
	CompanyID   *uint        `json:"companyId,omitempty"`
	StoreIDs    []uint       `json:"storeIds,omitempty"`
	Permissions []string     `json:"permissions"`
}

// HasPermission matches the exact key or a module wildcard ("order.*").
// Platform accounts are allowed everything.
func (a Actor) HasPermission(key string) bool {
	if a.Level == LevelPlatform {
		return true
	}
	for _, p := range a.Permissions {
		if p == key {
			return true
		}
		if strings.HasSuffix(p, ".*") && strings.HasPrefix(key, strings.TrimSuffix(p, "*")) {
			return true
		}
	}
	return false
}

func (a Actor) HasStore(storeID uint) bool {
	for _, id := range a.StoreIDs {
		if id == storeID {
			return true
		}
	}
	return false
}
