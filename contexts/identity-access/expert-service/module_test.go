package expertservice_test

import (
	"context"
	"errors"
	"testing"
	"time"

	expertservice "themis/contexts/identity-access/expert-service"
	tokenadapter "themis/contexts/identity-access/expert-service/adapters/token"
	"themis/contexts/identity-access/expert-service/domain/entities"
	domainerrors "themis/contexts/identity-access/expert-service/domain/errors"
	httptransport "themis/contexts/identity-access/expert-service/transport/http"
)

func newModuleWithTokens(t *testing.T) expertservice.Module {
	t.Helper()
	tokens := tokenadapter.NewJWTCodec("unit-test-secret", time.Hour, "themis-test")
	return expertservice.NewInMemoryModule(nil, tokens, nil)
}

func TestCreateExpertThenLogin(t *testing.T) {
	module := newModuleWithTokens(t)
	ctx := context.Background()

	created, err := module.Handler.CreateExpertHandler(ctx, httptransport.CreateExpertRequest{Name: "Ivan"})
	if err != nil {
		t.Fatalf("create expert failed: %v", err)
	}
	if created.Role != string(entities.RoleExpert) {
		t.Fatalf("new experts default to the expert role, got %s", created.Role)
	}
	if len(created.AccessCode) != 8 {
		t.Fatalf("expected 8 character access code, got %q", created.AccessCode)
	}

	login, err := module.Handler.LoginHandler(ctx, httptransport.LoginRequest{
		Name:       "Ivan",
		AccessCode: created.AccessCode,
	})
	if err != nil {
		t.Fatalf("login with issued code failed: %v", err)
	}
	if login.Token == "" {
		t.Fatalf("expected session token")
	}
	if login.Expert.AccessCode != "" {
		t.Fatalf("login response must not echo the access code")
	}

	_, err = module.Handler.LoginHandler(ctx, httptransport.LoginRequest{
		Name:       "Ivan",
		AccessCode: "WRONGCOD",
	})
	if !errors.Is(err, domainerrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestCreateExpertRequiresName(t *testing.T) {
	module := newModuleWithTokens(t)
	_, err := module.Handler.CreateExpertHandler(context.Background(), httptransport.CreateExpertRequest{Name: "   "})
	if !errors.Is(err, domainerrors.ErrNameRequired) {
		t.Fatalf("expected name required, got %v", err)
	}
}

func TestAuthorizeEnforcesStoredRole(t *testing.T) {
	module := newModuleWithTokens(t)
	ctx := context.Background()

	created, err := module.Handler.CreateExpertHandler(ctx, httptransport.CreateExpertRequest{Name: "Maria"})
	if err != nil {
		t.Fatalf("create expert failed: %v", err)
	}
	login, err := module.Handler.LoginHandler(ctx, httptransport.LoginRequest{
		Name:       "Maria",
		AccessCode: created.AccessCode,
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	expert, err := module.Handler.AuthorizeHandler(ctx, login.Token, entities.RoleExpert)
	if err != nil {
		t.Fatalf("expert gate rejected a valid expert: %v", err)
	}
	if expert.ExpertID != created.ExpertID {
		t.Fatalf("gate must resolve the stored expert, got %s", expert.ExpertID)
	}

	if _, err := module.Handler.AuthorizeHandler(ctx, login.Token, entities.RoleAdmin); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expert token must not pass the admin gate, got %v", err)
	}
	if _, err := module.Handler.AuthorizeHandler(ctx, "", entities.RoleExpert); !errors.Is(err, domainerrors.ErrTokenInvalid) {
		t.Fatalf("blank token must be invalid, got %v", err)
	}
	if _, err := module.Handler.AuthorizeHandler(ctx, "not-a-jwt", entities.RoleExpert); !errors.Is(err, domainerrors.ErrTokenInvalid) {
		t.Fatalf("garbage token must be invalid, got %v", err)
	}
}

func TestAdminSatisfiesEveryGate(t *testing.T) {
	now := time.Now().UTC()
	admin := entities.Expert{
		ExpertID:   "admin-1",
		Name:       "Chair",
		AccessCode: "CHAIR123",
		Role:       entities.RoleAdmin,
		CreatedAt:  now,
	}
	tokens := tokenadapter.NewJWTCodec("unit-test-secret", time.Hour, "themis-test")
	module := expertservice.NewInMemoryModule([]entities.Expert{admin}, tokens, nil)

	login, err := module.Handler.LoginHandler(context.Background(), httptransport.LoginRequest{
		Name:       "Chair",
		AccessCode: "CHAIR123",
	})
	if err != nil {
		t.Fatalf("admin login failed: %v", err)
	}
	if _, err := module.Handler.AuthorizeHandler(context.Background(), login.Token, entities.RoleExpert); err != nil {
		t.Fatalf("admin must pass the expert gate: %v", err)
	}
	if _, err := module.Handler.AuthorizeHandler(context.Background(), login.Token, entities.RoleAdmin); err != nil {
		t.Fatalf("admin must pass the admin gate: %v", err)
	}
}
