// Package audit stamps the server-controlled audit fields. Stamping is an
// explicit step services run immediately before every persistence write,
// never an implicit persistence hook, so the contract stays testable in
// isolation.
package audit

import (
	"time"

	"github.com/medcore/hospital-api/internal/model"
)

// StampCreate sets created_by and created_at from the acting identity and
// the server clock. Any client-supplied audit values are overwritten.
func StampCreate(a *model.Audit, actorID int64, now time.Time) {
	a.CreatedAt = now
	a.CreatedBy = &actorID
	a.UpdatedAt = nil
	a.UpdatedBy = nil
}

// StampUpdate sets updated_by and updated_at together, also for partial
// updates. created_by/created_at are left untouched.
func StampUpdate(a *model.Audit, actorID int64, now time.Time) {
	a.UpdatedAt = &now
	a.UpdatedBy = &actorID
}
