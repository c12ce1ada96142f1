package domain

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestPrincipalContext(t *testing.T) {
	t.Run("PrincipalFromContext returns nil when no principal", func(t *testing.T) {
		ctx := context.Background()
		if p := PrincipalFromContext(ctx); p != nil {
			t.Errorf("expected nil principal, got %+v", p)
		}
	})

	t.Run("PrincipalFromContext returns principal when set", func(t *testing.T) {
		ctx := context.Background()
		expected := &Principal{
			TenantID: uuid.New(),
			UserID:   uuid.New(),
			Role:     RoleOwner,
		}
		ctx = NewContextWithPrincipal(ctx, expected)

		p := PrincipalFromContext(ctx)
		if p == nil {
			t.Fatal("expected principal, got nil")
		}
		if p.TenantID != expected.TenantID {
			t.Errorf("expected tenant id %s, got %s", expected.TenantID, p.TenantID)
		}
	})

	t.Run("RequirePrincipal panics when no principal", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("expected panic, got none")
			}
		}()
		RequirePrincipal(context.Background())
	})

	t.Run("TenantIDFromContext returns nil uuid when no principal", func(t *testing.T) {
		if id := TenantIDFromContext(context.Background()); id != uuid.Nil {
			t.Errorf("expected uuid.Nil, got %s", id)
		}
	})
}

func TestRequestIDContext(t *testing.T) {
	ctx := NewContextWithRequestID(context.Background(), "req-123")
	if got := RequestIDFromContext(ctx); got != "req-123" {
		t.Errorf("expected req-123, got %s", got)
	}
}
