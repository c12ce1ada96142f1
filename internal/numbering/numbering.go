// Package numbering implements document numbering: one
// gapless-on-success, gap-tolerant-on-rollback counter per (tenant,
// document class), formatted as prefix plus a zero-padded number.
package numbering

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgerkeep/core/internal/domain"
	"github.com/ledgerkeep/core/internal/repository"
)

// Repository is the subset of repository.Querier the numbering service
// needs, narrowed so callers can pass either a pool-backed Queries or
// one bound to the posting engine's open transaction.
type Repository interface {
	GetOrCreateSequence(ctx context.Context, tenantID uuid.UUID, class, prefix string, padding int16) (repository.DocumentSequenceRow, error)
	AllocateSequenceNumber(ctx context.Context, tenantID uuid.UUID, class string) (repository.DocumentSequenceRow, error)
}

// Service allocates document numbers.
type Service struct {
	repo Repository
}

func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// defaultFor returns the seeded prefix/padding for a class, used only
// to create the sequence row on first use; once created the row's own
// prefix/padding govern all future formatting even if a tenant edits
// them.
func defaultFor(class domain.DocumentClass) (prefix string, padding int) {
	for _, s := range domain.DefaultSequences {
		if s.DocumentClass == class {
			return s.Prefix, s.PaddingWidth
		}
	}
	return "", 4
}

// Allocate atomically allocates and formats the next number for
// (tenantID, class), creating the sequence row with defaults on first
// use. The returned string is never reused, even across rolled-back
// transactions: numbers are monotonic but may have gaps.
func (s *Service) Allocate(ctx context.Context, tenantID uuid.UUID, class domain.DocumentClass) (string, error) {
	prefix, padding := defaultFor(class)
	if _, err := s.repo.GetOrCreateSequence(ctx, tenantID, string(class), prefix, int16(padding)); err != nil {
		return "", domain.Internal(err, "numbering.Allocate", fmt.Sprintf("allocating sequence for %s", class))
	}

	row, err := s.repo.AllocateSequenceNumber(ctx, tenantID, string(class))
	if err != nil {
		return "", domain.Internal(err, "numbering.Allocate", fmt.Sprintf("allocating number for %s", class))
	}

	return formatNumber(row.Prefix, row.NextNumber, int(row.PaddingWidth)), nil
}

// Preview returns the number that a subsequent Allocate would assign,
// without consuming it — used to show a draft document its likely
// number before it is actually posted/saved.
func (s *Service) Preview(ctx context.Context, tenantID uuid.UUID, class domain.DocumentClass) (string, error) {
	prefix, padding := defaultFor(class)
	row, err := s.repo.GetOrCreateSequence(ctx, tenantID, string(class), prefix, int16(padding))
	if err != nil {
		return "", domain.Internal(err, "numbering.Preview", fmt.Sprintf("previewing sequence for %s", class))
	}
	return formatNumber(row.Prefix, row.NextNumber, int(row.PaddingWidth)), nil
}

func formatNumber(prefix string, n int64, padding int) string {
	return fmt.Sprintf("%s%0*d", prefix, padding, n)
}
