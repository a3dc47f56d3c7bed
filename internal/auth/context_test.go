package auth

import (
	"context"
	"testing"

	"github.com/grocerly/grocerly/internal/model"
)

func TestUserFromContext_RoundTrip(t *testing.T) {
	t.Parallel()

	user := &model.SessionUser{ID: "user-1", Username: "alice", Email: "alice@example.com"}
	ctx := ContextWithUser(context.Background(), user)

	got := UserFromContext(ctx)
	if got == nil {
		t.Fatal("expected user in context")
	}
	if got.ID != "user-1" || got.Username != "alice" {
		t.Errorf("unexpected user snapshot: %+v", got)
	}
}

func TestUserFromContext_Absent(t *testing.T) {
	t.Parallel()

	if got := UserFromContext(context.Background()); got != nil {
		t.Errorf("expected nil for a bare context, got %+v", got)
	}
}

func TestMustUserFromContext_PanicsWithoutGuard(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("expected panic for a context without a session user")
		}
	}()

	MustUserFromContext(context.Background())
}
