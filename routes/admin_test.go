package routes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"

	"github.com/splitleaseteam/splitlease-monorepo-sub002/utils"
)

// buildAdminTestApp creates a minimal Iris app with the admin proposal list
// behind the JWT verifier and the admin-only gate.
func buildAdminTestApp(t *testing.T) *iris.Application {
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")
	app := iris.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} { return new(utils.AccessToken) })

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/proposals", AdminListProposals)
	}
	if err := app.Build(); err != nil {
		t.Fatal(err)
	}
	return app
}

func signTestToken(role string) string {
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), 0)
	token, _ := signer.Sign(utils.AccessToken{ID: 1, Role: role})
	return string(token)
}

func TestAdminProposalsRBAC(t *testing.T) {
	app := buildAdminTestApp(t)

	// No token
	req := httptest.NewRequest(http.MethodGet, "/api/admin/proposals?status=bogus", nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code == http.StatusOK {
		t.Fatalf("expected non-200 without token, got %d", resp.Code)
	}

	// User role
	req2 := httptest.NewRequest(http.MethodGet, "/api/admin/proposals?status=bogus", nil)
	req2.Header.Set("Authorization", "Bearer "+signTestToken("user"))
	resp2 := httptest.NewRecorder()
	app.ServeHTTP(resp2, req2)
	if resp2.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for user role, got %d", resp2.Code)
	}
}

func TestAdminProposalsStatusFilterRejectsUnknown(t *testing.T) {
	app := buildAdminTestApp(t)

	// An unplaceable status is a client error, reported before any lookup.
	req := httptest.NewRequest(http.MethodGet, "/api/admin/proposals?status=bogus", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken("admin"))
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status filter, got %d: %s", resp.Code, resp.Body.String())
	}
}
