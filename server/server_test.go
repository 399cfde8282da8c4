package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/seedvault/seedvault/audit"
	auditfake "github.com/seedvault/seedvault/audit/repofake"
	"github.com/seedvault/seedvault/auth"
	"github.com/seedvault/seedvault/csrf"
	csrffake "github.com/seedvault/seedvault/csrf/repofake"
	gardenfake "github.com/seedvault/seedvault/garden/repofake"
	"github.com/seedvault/seedvault/impersonation"
	"github.com/seedvault/seedvault/internal/config"
	plantsfake "github.com/seedvault/seedvault/plants/repofake"
	"github.com/seedvault/seedvault/server"
	sessionsfake "github.com/seedvault/seedvault/sessions/repofake"
	"github.com/seedvault/seedvault/users"
	usersfake "github.com/seedvault/seedvault/users/repofake"
	"github.com/stretchr/testify/require"
)

const testPassword = "GreenThumb42!"

type testFixture struct {
	server    *server.Server
	userRepo  *usersfake.FakeUserRepo
	auditRepo *auditfake.FakeAuditRepo
	auditLog  *audit.Log
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	cfg := config.New()

	f := &testFixture{
		userRepo:  usersfake.NewFakeUserRepo(),
		auditRepo: auditfake.NewFakeAuditRepo(),
	}

	repos := server.Repos{
		Users:       f.userRepo,
		Sessions:    sessionsfake.NewFakeSessionRepo(),
		Plants:      plantsfake.NewFakePlantRepo(),
		Submissions: plantsfake.NewFakeSubmissionRepo(),
		Seeds:       gardenfake.NewFakeSeedRepo(),
		Plantings:   gardenfake.NewFakePlantingRepo(),
		Wishlist:    gardenfake.NewFakeWishlistRepo(),
	}

	authService := auth.NewService(auth.Repos{
		Users:    repos.Users,
		Sessions: repos.Sessions,
	}, cfg.GetSessionMaxAge(), cfg.GetRememberMeMaxAge())

	csrfManager := csrf.NewManager(csrffake.NewFakeTokenRepo(), cfg.GetCsrfTokenExpiry(), 0)
	f.auditLog = audit.NewLog(f.auditRepo, cfg.GetAuditDefaultPageSize(), cfg.GetAuditMaxPageSize())
	codec := impersonation.NewCodec(cfg.GetCookieSigningSecret())
	controller := impersonation.NewController(repos.Users, f.auditLog, codec, cfg.GetImpersonationMaxAge())

	srv, err := server.New(cfg, repos, authService, csrfManager, f.auditLog, controller)
	require.NoError(t, err)
	f.server = srv
	return f
}

// seedUser stores an account directly, bypassing signup.
func (f *testFixture) seedUser(t *testing.T, email string, role users.RoleType, paid bool) *users.User {
	t.Helper()

	hash, err := users.HashPassword(testPassword)
	require.NoError(t, err)

	user := &users.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         "Test User",
		PasswordHash: hash,
		Role:         role,
		Paid:         paid,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, f.userRepo.Upsert(context.Background(), user))
	return user
}

// login authenticates and returns the session cookie.
func (f *testFixture) login(t *testing.T, email string) *http.Cookie {
	t.Helper()

	resp := f.do(t, http.MethodPost, server.RouteAuthLogin,
		map[string]any{"email": email, "password": testPassword})
	require.Equal(t, http.StatusOK, resp.Code)

	for _, cookie := range resp.Result().Cookies() {
		if cookie.Name == server.SessionCookieName {
			return cookie
		}
	}
	t.Fatal("login response did not set a session cookie")
	return nil
}

// csrfToken fetches the session's anti-forgery token.
func (f *testFixture) csrfToken(t *testing.T, session *http.Cookie) string {
	t.Helper()

	resp := f.do(t, http.MethodGet, server.RouteAuthCsrfToken, nil, session)
	require.Equal(t, http.StatusOK, resp.Code)
	return decodeBody(t, resp)["csrfToken"].(string)
}

func (f *testFixture) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	return f.doWithHeaders(t, method, path, body, nil, cookies...)
}

func (f *testFixture) doWithHeaders(t *testing.T, method, path string, body any, headers map[string]string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	for _, cookie := range cookies {
		if cookie != nil {
			req.AddCookie(cookie)
		}
	}

	recorder := httptest.NewRecorder()
	f.server.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body
}

func cookieByName(resp *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range resp.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestAuthFlow(t *testing.T) {
	t.Run("signup then login", func(t *testing.T) {
		f := setupTestFixture(t)

		resp := f.do(t, http.MethodPost, server.RouteAuthSignup,
			map[string]any{"email": "new@example.com", "name": "New", "password": testPassword})
		require.Equal(t, http.StatusCreated, resp.Code)

		session := f.login(t, "new@example.com")
		require.NotEmpty(t, session.Value)
		require.True(t, session.HttpOnly)
	})

	t.Run("login with wrong password", func(t *testing.T) {
		f := setupTestFixture(t)
		f.seedUser(t, "user@example.com", users.RoleUser, false)

		resp := f.do(t, http.MethodPost, server.RouteAuthLogin,
			map[string]any{"email": "user@example.com", "password": "wrong"})
		require.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("logout clears the cookie and kills the session", func(t *testing.T) {
		f := setupTestFixture(t)
		f.seedUser(t, "user@example.com", users.RoleUser, false)
		session := f.login(t, "user@example.com")

		resp := f.do(t, http.MethodPost, server.RouteAuthLogout, nil, session)
		require.Equal(t, http.StatusOK, resp.Code)
		cleared := cookieByName(resp, server.SessionCookieName)
		require.NotNil(t, cleared)
		require.Less(t, cleared.MaxAge, 0)

		resp = f.do(t, http.MethodGet, server.RouteAuthCsrfToken, nil, session)
		require.Equal(t, http.StatusUnauthorized, resp.Code)
	})
}

func TestRoutePolicy(t *testing.T) {
	t.Run("anonymous admin API call gets 401", func(t *testing.T) {
		f := setupTestFixture(t)

		resp := f.do(t, http.MethodGet, server.RouteAdminAuditLogs, nil)
		require.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("non-admin gets 403 on admin API", func(t *testing.T) {
		f := setupTestFixture(t)
		f.seedUser(t, "user@example.com", users.RoleUser, false)
		session := f.login(t, "user@example.com")

		resp := f.do(t, http.MethodGet, server.RouteAdminAuditLogs, nil, session)
		require.Equal(t, http.StatusForbidden, resp.Code)
	})

	t.Run("admin gets the audit page shape", func(t *testing.T) {
		f := setupTestFixture(t)
		f.seedUser(t, "admin@example.com", users.RoleAdmin, false)
		session := f.login(t, "admin@example.com")

		resp := f.do(t, http.MethodGet, server.RouteAdminAuditLogs, nil, session)
		require.Equal(t, http.StatusOK, resp.Code)
		body := decodeBody(t, resp)
		require.Contains(t, body, "logs")
		require.Contains(t, body, "total")
		require.Contains(t, body, "hasMore")
		require.NotNil(t, body["logs"])
	})

	t.Run("anonymous page request redirects to login", func(t *testing.T) {
		f := setupTestFixture(t)

		resp := f.do(t, http.MethodGet, "/garden", nil)
		require.Equal(t, http.StatusSeeOther, resp.Code)
		require.Equal(t, server.RouteAuthLogin, resp.Header().Get("Location"))
	})

	t.Run("unpaid user is redirected from paid pages", func(t *testing.T) {
		f := setupTestFixture(t)
		f.seedUser(t, "user@example.com", users.RoleUser, false)
		session := f.login(t, "user@example.com")

		resp := f.do(t, http.MethodGet, "/garden/insights", nil, session)
		require.Equal(t, http.StatusSeeOther, resp.Code)
		require.Contains(t, resp.Header().Get("Location"), server.RouteUpgradePage)
		require.Contains(t, resp.Header().Get("Location"), "redirect=")
	})

	t.Run("paid user reaches paid pages", func(t *testing.T) {
		f := setupTestFixture(t)
		f.seedUser(t, "paid@example.com", users.RoleUser, true)
		session := f.login(t, "paid@example.com")

		resp := f.do(t, http.MethodGet, "/garden/insights", nil, session)
		require.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("admin bypasses the paid gate", func(t *testing.T) {
		f := setupTestFixture(t)
		f.seedUser(t, "admin@example.com", users.RoleAdmin, false)
		session := f.login(t, "admin@example.com")

		resp := f.do(t, http.MethodGet, "/garden/insights", nil, session)
		require.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("open pages need no session", func(t *testing.T) {
		f := setupTestFixture(t)

		resp := f.do(t, http.MethodGet, "/", nil)
		require.Equal(t, http.StatusOK, resp.Code)
	})
}

func TestCsrfGuard(t *testing.T) {
	t.Run("mutation without a token is forbidden", func(t *testing.T) {
		f := setupTestFixture(t)
		f.seedUser(t, "user@example.com", users.RoleUser, false)
		session := f.login(t, "user@example.com")

		resp := f.do(t, http.MethodPost, server.RouteAPIWishlist,
			map[string]any{"name": "Tomato"}, session)
		require.Equal(t, http.StatusForbidden, resp.Code)
	})

	t.Run("mutation with the session's token succeeds", func(t *testing.T) {
		f := setupTestFixture(t)
		f.seedUser(t, "user@example.com", users.RoleUser, false)
		session := f.login(t, "user@example.com")
		token := f.csrfToken(t, session)

		resp := f.doWithHeaders(t, http.MethodPost, server.RouteAPIWishlist,
			map[string]any{"name": "Tomato"},
			map[string]string{server.CsrfTokenHeader: token}, session)
		require.Equal(t, http.StatusCreated, resp.Code)
	})

	t.Run("another session's token is rejected", func(t *testing.T) {
		f := setupTestFixture(t)
		f.seedUser(t, "alice@example.com", users.RoleUser, false)
		f.seedUser(t, "bob@example.com", users.RoleUser, false)
		alice := f.login(t, "alice@example.com")
		bob := f.login(t, "bob@example.com")
		bobToken := f.csrfToken(t, bob)

		resp := f.doWithHeaders(t, http.MethodPost, server.RouteAPIWishlist,
			map[string]any{"name": "Tomato"},
			map[string]string{server.CsrfTokenHeader: bobToken}, alice)
		require.Equal(t, http.StatusForbidden, resp.Code)
	})

	t.Run("token survives until logout", func(t *testing.T) {
		f := setupTestFixture(t)
		f.seedUser(t, "user@example.com", users.RoleUser, false)
		session := f.login(t, "user@example.com")
		token := f.csrfToken(t, session)

		resp := f.do(t, http.MethodPost, server.RouteAuthLogout, nil, session)
		require.Equal(t, http.StatusOK, resp.Code)

		// Session and token are both gone
		resp = f.doWithHeaders(t, http.MethodPost, server.RouteAPIWishlist,
			map[string]any{"name": "Tomato"},
			map[string]string{server.CsrfTokenHeader: token}, session)
		require.Equal(t, http.StatusUnauthorized, resp.Code)
	})
}

func TestImpersonationFlow(t *testing.T) {
	setup := func(t *testing.T) (*testFixture, *http.Cookie, *users.User) {
		f := setupTestFixture(t)
		f.seedUser(t, "admin@example.com", users.RoleAdmin, false)
		target := f.seedUser(t, "target@example.com", users.RoleUser, false)
		session := f.login(t, "admin@example.com")
		return f, session, target
	}

	start := func(t *testing.T, f *testFixture, session *http.Cookie, targetID string) *httptest.ResponseRecorder {
		return f.do(t, http.MethodPost, server.RouteAdminImpersonateStart,
			map[string]any{"userId": targetID}, session)
	}

	t.Run("start sets both cookies and audits", func(t *testing.T) {
		f, session, target := setup(t)

		resp := start(t, f, session, target.ID)
		require.Equal(t, http.StatusOK, resp.Code)
		require.NotNil(t, cookieByName(resp, impersonation.AdminSessionCookieName))
		require.NotNil(t, cookieByName(resp, impersonation.ImpersonationCookieName))

		body := decodeBody(t, resp)
		require.Equal(t, true, body["success"])
		require.NotEmpty(t, body["token"])
		require.Equal(t, 1, f.auditRepo.Count())
	})

	t.Run("start requires admin", func(t *testing.T) {
		f, _, target := setup(t)
		userSession := f.login(t, "target@example.com")

		resp := start(t, f, userSession, target.ID)
		require.Equal(t, http.StatusForbidden, resp.Code)
	})

	t.Run("start refuses an admin target", func(t *testing.T) {
		f, session, _ := setup(t)
		otherAdmin := f.seedUser(t, "other-admin@example.com", users.RoleAdmin, false)

		resp := start(t, f, session, otherAdmin.ID)
		require.Equal(t, http.StatusBadRequest, resp.Code)
		require.Equal(t, 0, f.auditRepo.Count())
	})

	t.Run("start requires a user id", func(t *testing.T) {
		f, session, _ := setup(t)

		resp := start(t, f, session, "")
		require.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("status reflects the active window", func(t *testing.T) {
		f, session, target := setup(t)

		resp := start(t, f, session, target.ID)
		require.Equal(t, http.StatusOK, resp.Code)
		impCookie := cookieByName(resp, impersonation.ImpersonationCookieName)

		statusResp := f.do(t, http.MethodGet, server.RouteAdminImpersonateStatus, nil, session, impCookie)
		require.Equal(t, http.StatusOK, statusResp.Code)
		body := decodeBody(t, statusResp)
		require.Equal(t, true, body["impersonating"])

		user := body["user"].(map[string]any)
		require.Equal(t, target.ID, user["id"])
	})

	t.Run("status is false without a session", func(t *testing.T) {
		f, session, target := setup(t)

		resp := start(t, f, session, target.ID)
		impCookie := cookieByName(resp, impersonation.ImpersonationCookieName)

		statusResp := f.do(t, http.MethodGet, server.RouteAdminImpersonateStatus, nil, impCookie)
		require.Equal(t, http.StatusOK, statusResp.Code)
		require.Equal(t, false, decodeBody(t, statusResp)["impersonating"])
	})

	t.Run("status is false for an unrelated identity", func(t *testing.T) {
		f, session, target := setup(t)
		f.seedUser(t, "stranger@example.com", users.RoleUser, false)

		resp := start(t, f, session, target.ID)
		impCookie := cookieByName(resp, impersonation.ImpersonationCookieName)

		strangerSession := f.login(t, "stranger@example.com")
		statusResp := f.do(t, http.MethodGet, server.RouteAdminImpersonateStatus, nil, strangerSession, impCookie)
		require.Equal(t, http.StatusOK, statusResp.Code)
		require.Equal(t, false, decodeBody(t, statusResp)["impersonating"])
	})

	t.Run("stop clears the cookies and audits the end", func(t *testing.T) {
		f, session, target := setup(t)

		resp := start(t, f, session, target.ID)
		impCookie := cookieByName(resp, impersonation.ImpersonationCookieName)

		stopResp := f.do(t, http.MethodPost, server.RouteAdminImpersonateStop, nil, session, impCookie)
		require.Equal(t, http.StatusOK, stopResp.Code)

		cleared := cookieByName(stopResp, impersonation.ImpersonationCookieName)
		require.NotNil(t, cleared)
		require.Less(t, cleared.MaxAge, 0)
		require.Equal(t, 2, f.auditRepo.Count())
	})

	t.Run("stop without a window is a client error", func(t *testing.T) {
		f, session, _ := setup(t)

		resp := f.do(t, http.MethodPost, server.RouteAdminImpersonateStop, nil, session)
		require.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("stop with a tampered cookie clears it", func(t *testing.T) {
		f, session, _ := setup(t)

		bad := &http.Cookie{Name: impersonation.ImpersonationCookieName, Value: "tampered"}
		resp := f.do(t, http.MethodPost, server.RouteAdminImpersonateStop, nil, session, bad)
		require.Equal(t, http.StatusBadRequest, resp.Code)

		cleared := cookieByName(resp, impersonation.ImpersonationCookieName)
		require.NotNil(t, cleared)
		require.Less(t, cleared.MaxAge, 0)
	})
}

func TestAdminMutations(t *testing.T) {
	setup := func(t *testing.T) (*testFixture, *http.Cookie, string) {
		f := setupTestFixture(t)
		f.seedUser(t, "admin@example.com", users.RoleAdmin, false)
		session := f.login(t, "admin@example.com")
		token := f.csrfToken(t, session)
		return f, session, token
	}

	doAdmin := func(t *testing.T, f *testFixture, session *http.Cookie, token, method, path string, body any) *httptest.ResponseRecorder {
		return f.doWithHeaders(t, method, path, body,
			map[string]string{server.CsrfTokenHeader: token}, session)
	}

	entries := func(t *testing.T, f *testFixture, action audit.Action) []*audit.Entry {
		t.Helper()
		result, err := f.auditLog.Query(context.Background(), audit.Filters{Action: action})
		require.NoError(t, err)
		return result.Entries
	}

	t.Run("deleting a user audits the previous state", func(t *testing.T) {
		f, session, token := setup(t)
		target := f.seedUser(t, "target@example.com", users.RoleUser, false)

		resp := doAdmin(t, f, session, token, http.MethodDelete, "/admin/users/"+target.ID, nil)
		require.Equal(t, http.StatusOK, resp.Code)

		recorded := entries(t, f, audit.ActionUserDelete)
		require.Len(t, recorded, 1)
		require.Equal(t, target.ID, recorded[0].TargetID)
		require.Equal(t, target.Email, recorded[0].TargetEmail)
		require.Contains(t, string(recorded[0].PreviousState), target.Email)

		_, err := f.userRepo.GetByID(context.Background(), target.ID)
		require.Error(t, err)
	})

	t.Run("an admin cannot delete itself", func(t *testing.T) {
		f, session, token := setup(t)
		admin, err := f.userRepo.GetByEmail(context.Background(), "admin@example.com")
		require.NoError(t, err)

		resp := doAdmin(t, f, session, token, http.MethodDelete, "/admin/users/"+admin.ID, nil)
		require.Equal(t, http.StatusBadRequest, resp.Code)
		require.Empty(t, entries(t, f, audit.ActionUserDelete))
	})

	t.Run("role change audits before and after", func(t *testing.T) {
		f, session, token := setup(t)
		target := f.seedUser(t, "target@example.com", users.RoleUser, false)

		resp := doAdmin(t, f, session, token, http.MethodPut,
			fmt.Sprintf("/admin/users/%s/role", target.ID), map[string]any{"role": "admin"})
		require.Equal(t, http.StatusOK, resp.Code)

		recorded := entries(t, f, audit.ActionUserRoleChange)
		require.Len(t, recorded, 1)
		require.JSONEq(t, `{"role":"user"}`, string(recorded[0].PreviousState))
		require.JSONEq(t, `{"role":"admin"}`, string(recorded[0].NewState))

		updated, err := f.userRepo.GetByID(context.Background(), target.ID)
		require.NoError(t, err)
		require.True(t, updated.IsAdmin())
	})

	t.Run("rejects an unknown role", func(t *testing.T) {
		f, session, token := setup(t)
		target := f.seedUser(t, "target@example.com", users.RoleUser, false)

		resp := doAdmin(t, f, session, token, http.MethodPut,
			fmt.Sprintf("/admin/users/%s/role", target.ID), map[string]any{"role": "superuser"})
		require.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("plant lifecycle writes one entry per mutation", func(t *testing.T) {
		f, session, token := setup(t)

		resp := doAdmin(t, f, session, token, http.MethodPost, server.RouteAdminPlants,
			map[string]any{"commonName": "Tomato", "species": "Solanum lycopersicum"})
		require.Equal(t, http.StatusCreated, resp.Code)
		plantID := decodeBody(t, resp)["plant"].(map[string]any)["id"].(string)

		resp = doAdmin(t, f, session, token, http.MethodPut, "/admin/plants/"+plantID,
			map[string]any{"commonName": "Cherry Tomato"})
		require.Equal(t, http.StatusOK, resp.Code)

		resp = doAdmin(t, f, session, token, http.MethodDelete, "/admin/plants/"+plantID, nil)
		require.Equal(t, http.StatusOK, resp.Code)

		require.Len(t, entries(t, f, audit.ActionPlantCreate), 1)
		require.Len(t, entries(t, f, audit.ActionPlantUpdate), 1)
		require.Len(t, entries(t, f, audit.ActionPlantDelete), 1)

		updateEntry := entries(t, f, audit.ActionPlantUpdate)[0]
		require.Contains(t, string(updateEntry.PreviousState), "Tomato")
		require.Contains(t, string(updateEntry.NewState), "Cherry Tomato")
	})

	t.Run("approving a submission copies it into the catalog", func(t *testing.T) {
		f, session, token := setup(t)
		f.seedUser(t, "grower@example.com", users.RoleUser, false)
		growerSession := f.login(t, "grower@example.com")
		growerToken := f.csrfToken(t, growerSession)

		resp := f.doWithHeaders(t, http.MethodPost, server.RouteAPIPlantSubmissions,
			map[string]any{"commonName": "Basil"},
			map[string]string{server.CsrfTokenHeader: growerToken}, growerSession)
		require.Equal(t, http.StatusCreated, resp.Code)
		submissionID := decodeBody(t, resp)["submission"].(map[string]any)["id"].(string)

		resp = doAdmin(t, f, session, token, http.MethodPost,
			fmt.Sprintf("/admin/submissions/%s/approve", submissionID), nil)
		require.Equal(t, http.StatusOK, resp.Code)
		require.Equal(t, "Basil", decodeBody(t, resp)["plant"].(map[string]any)["commonName"])
		require.Len(t, entries(t, f, audit.ActionSubmissionApprove), 1)

		// A second approval is refused
		resp = doAdmin(t, f, session, token, http.MethodPost,
			fmt.Sprintf("/admin/submissions/%s/approve", submissionID), nil)
		require.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("rejecting a submission records the reason", func(t *testing.T) {
		f, session, token := setup(t)
		f.seedUser(t, "grower@example.com", users.RoleUser, false)
		growerSession := f.login(t, "grower@example.com")
		growerToken := f.csrfToken(t, growerSession)

		resp := f.doWithHeaders(t, http.MethodPost, server.RouteAPIPlantSubmissions,
			map[string]any{"commonName": "Knotweed"},
			map[string]string{server.CsrfTokenHeader: growerToken}, growerSession)
		require.Equal(t, http.StatusCreated, resp.Code)
		submissionID := decodeBody(t, resp)["submission"].(map[string]any)["id"].(string)

		resp = doAdmin(t, f, session, token, http.MethodPost,
			fmt.Sprintf("/admin/submissions/%s/reject", submissionID), map[string]any{"reason": "invasive species"})
		require.Equal(t, http.StatusOK, resp.Code)

		recorded := entries(t, f, audit.ActionSubmissionReject)
		require.Len(t, recorded, 1)
		require.Equal(t, "invasive species", recorded[0].Reason)
	})
}

func TestGardenOwnership(t *testing.T) {
	t.Run("wishlist items are scoped to their owner", func(t *testing.T) {
		f := setupTestFixture(t)
		f.seedUser(t, "alice@example.com", users.RoleUser, false)
		f.seedUser(t, "bob@example.com", users.RoleUser, false)

		alice := f.login(t, "alice@example.com")
		aliceToken := f.csrfToken(t, alice)
		resp := f.doWithHeaders(t, http.MethodPost, server.RouteAPIWishlist,
			map[string]any{"name": "Pumpkin"},
			map[string]string{server.CsrfTokenHeader: aliceToken}, alice)
		require.Equal(t, http.StatusCreated, resp.Code)
		itemID := decodeBody(t, resp)["item"].(map[string]any)["id"].(string)

		bob := f.login(t, "bob@example.com")
		bobToken := f.csrfToken(t, bob)
		resp = f.doWithHeaders(t, http.MethodDelete, "/api/wishlist/"+itemID, nil,
			map[string]string{server.CsrfTokenHeader: bobToken}, bob)
		require.Equal(t, http.StatusForbidden, resp.Code)

		// Bob sees an empty wishlist, not Alice's
		resp = f.do(t, http.MethodGet, server.RouteAPIWishlist, nil, bob)
		require.Equal(t, http.StatusOK, resp.Code)
		require.Empty(t, decodeBody(t, resp)["wishlist"])
	})

	t.Run("planting requires one of the caller's seeds", func(t *testing.T) {
		f := setupTestFixture(t)
		f.seedUser(t, "alice@example.com", users.RoleUser, false)
		f.seedUser(t, "bob@example.com", users.RoleUser, false)

		alice := f.login(t, "alice@example.com")
		aliceToken := f.csrfToken(t, alice)
		resp := f.doWithHeaders(t, http.MethodPost, server.RouteAPISeeds,
			map[string]any{"name": "Carrot", "quantity": 20},
			map[string]string{server.CsrfTokenHeader: aliceToken}, alice)
		require.Equal(t, http.StatusCreated, resp.Code)
		seedID := decodeBody(t, resp)["seed"].(map[string]any)["id"].(string)

		bob := f.login(t, "bob@example.com")
		bobToken := f.csrfToken(t, bob)
		resp = f.doWithHeaders(t, http.MethodPost, server.RouteAPIPlantings,
			map[string]any{"seedId": seedID},
			map[string]string{server.CsrfTokenHeader: bobToken}, bob)
		require.Equal(t, http.StatusForbidden, resp.Code)

		resp = f.doWithHeaders(t, http.MethodPost, server.RouteAPIPlantings,
			map[string]any{"seedId": seedID},
			map[string]string{server.CsrfTokenHeader: aliceToken}, alice)
		require.Equal(t, http.StatusCreated, resp.Code)
	})
}
