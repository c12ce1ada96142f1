package repository

import (
	"context"

	"github.com/google/uuid"
)

const getOrCreateSequenceSQL = `
INSERT INTO document_sequences (tenant_id, document_class, prefix, next_number, padding_width)
VALUES ($1, $2, $3, 1, $4)
ON CONFLICT (tenant_id, document_class) DO UPDATE SET tenant_id = document_sequences.tenant_id
RETURNING id, tenant_id, document_class, prefix, next_number, padding_width`

// GetOrCreateSequence ensures a sequence row exists for (tenantID,
// class), creating it with defaults on first use. The no-op DO UPDATE
// makes this an upsert that always returns the existing row under
// concurrent first-use.
func (q *Queries) GetOrCreateSequence(ctx context.Context, tenantID uuid.UUID, class, prefix string, padding int16) (DocumentSequenceRow, error) {
	row := q.db.QueryRow(ctx, getOrCreateSequenceSQL, toPgUUID(tenantID), class, prefix, padding)
	return scanSequence(row)
}

const allocateSequenceNumberSQL = `
UPDATE document_sequences
SET next_number = next_number + 1
WHERE tenant_id = $1 AND document_class = $2
RETURNING id, tenant_id, document_class, prefix, next_number - 1, padding_width`

// AllocateSequenceNumber performs the atomic increment-and-return that
// guarantees two concurrent callers never receive the same number for
// the same (tenant, document_class). The returned row's NextNumber
// field holds the number just allocated, not the sequence's new next
// value, so callers never need to subtract one themselves.
func (q *Queries) AllocateSequenceNumber(ctx context.Context, tenantID uuid.UUID, class string) (DocumentSequenceRow, error) {
	row := q.db.QueryRow(ctx, allocateSequenceNumberSQL, toPgUUID(tenantID), class)
	return scanSequence(row)
}

func scanSequence(row rowScanner) (DocumentSequenceRow, error) {
	var s DocumentSequenceRow
	err := row.Scan(&s.ID, &s.TenantID, &s.DocumentClass, &s.Prefix, &s.NextNumber, &s.PaddingWidth)
	return s, err
}
