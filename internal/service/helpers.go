package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// uuidPtrFromPg converts a nullable pgtype.UUID (as returned embedded in
// a repository row) to a *uuid.UUID, the shape every domain type uses
// for optional foreign keys.
func uuidPtrFromPg(id pgtype.UUID) *uuid.UUID {
	if !id.Valid {
		return nil
	}
	u := uuid.UUID(id.Bytes)
	return &u
}

// pgTimePtr converts a nullable pgtype.Timestamptz to a *time.Time, for
// passing an unchanged posted_at/voided_at back through an Update*Status
// call that takes the full column value rather than a delta.
func pgTimePtr(ts pgtype.Timestamptz) *time.Time {
	if !ts.Valid {
		return nil
	}
	t := ts.Time
	return &t
}
