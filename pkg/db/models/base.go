package models

import (
	"github.com/google/uuid"
)

// ensureID fills a missing primary key before insert; sqlite has no uuid default.
func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
