package grant_test

import (
	"context"
	"testing"
	"time"

	"github.com/mcpjungle/oauth2core/grant"
	"github.com/mcpjungle/oauth2core/storage/storagetest"
	"github.com/mcpjungle/oauth2core/types"
)

func TestCreateImplicitTokenHasNoRefreshToken(t *testing.T) {
	store := storagetest.NewMemoryAdapter()
	client := testClient()
	store.AddClient(client)

	content, oerr := grant.CreateImplicitToken(context.Background(), store, grant.ImplicitParams{
		Client:         client,
		User:           types.User{ID: "user-1"},
		RedirectURI:    "https://app.example/cb",
		Scope:          "read",
		State:          "s1",
		TokenExpiresIn: time.Hour,
	})
	if oerr != nil {
		t.Fatalf("CreateImplicitToken failed: %v", oerr)
	}
	if content.AccessToken == "" {
		t.Fatalf("expected an access token")
	}
	if content.RefreshToken != "" {
		t.Fatalf("implicit grant must not issue a refresh token")
	}
	if content.State != "s1" {
		t.Fatalf("state must be echoed back")
	}
	if n := store.RefreshTokenCount(); n != 0 {
		t.Fatalf("implicit grant must not persist a refresh token, found %d", n)
	}
}
