package numbering

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerkeep/core/internal/domain"
	"github.com/ledgerkeep/core/internal/repository"
)

type fakeRepo struct {
	next   map[string]int64
	prefix map[string]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{next: map[string]int64{}, prefix: map[string]string{}}
}

func (f *fakeRepo) GetOrCreateSequence(ctx context.Context, tenantID uuid.UUID, class, prefix string, padding int16) (repository.DocumentSequenceRow, error) {
	if _, ok := f.next[class]; !ok {
		f.next[class] = 1
		f.prefix[class] = prefix
	}
	return repository.DocumentSequenceRow{DocumentClass: class, Prefix: f.prefix[class], NextNumber: f.next[class], PaddingWidth: padding}, nil
}

func (f *fakeRepo) AllocateSequenceNumber(ctx context.Context, tenantID uuid.UUID, class string) (repository.DocumentSequenceRow, error) {
	n := f.next[class]
	f.next[class] = n + 1
	return repository.DocumentSequenceRow{DocumentClass: class, Prefix: f.prefix[class], NextNumber: n, PaddingWidth: 4}, nil
}

func TestAllocate_FormatsWithPrefixAndPadding(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo)
	tenantID := uuid.New()

	num, err := svc.Allocate(context.Background(), tenantID, domain.DocumentClassInvoice)
	require.NoError(t, err)
	assert.Equal(t, "INV-0001", num)
}

func TestAllocate_NeverReusesNumbers(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo)
	tenantID := uuid.New()

	first, err := svc.Allocate(context.Background(), tenantID, domain.DocumentClassBill)
	require.NoError(t, err)
	second, err := svc.Allocate(context.Background(), tenantID, domain.DocumentClassBill)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, "BILL-0001", first)
	assert.Equal(t, "BILL-0002", second)
}

func TestPreview_DoesNotConsumeNumber(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo)
	tenantID := uuid.New()

	preview, err := svc.Preview(context.Background(), tenantID, domain.DocumentClassExpense)
	require.NoError(t, err)
	allocated, err := svc.Allocate(context.Background(), tenantID, domain.DocumentClassExpense)
	require.NoError(t, err)

	assert.Equal(t, preview, allocated)
}
