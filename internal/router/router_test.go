package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"billkit/internal/config"
	"billkit/internal/domain"
	"billkit/internal/handler"
	"billkit/internal/router"
	"billkit/internal/service"
	"billkit/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

type testServer struct {
	engine       *gin.Engine
	auth         *mocks.MockAuthService
	catalog      *mocks.MockCatalogService
	verification *mocks.MockVerificationService
}

func newTestServer() *testServer {
	cfg := &config.Config{
		CORS:         config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		Tax:          config.TaxConfig{RatePercent: 18, SupplierState: "Uttarakhand"},
		Verification: config.VerificationConfig{MaxPayloadKB: 1},
	}
	ts := &testServer{
		auth:         new(mocks.MockAuthService),
		catalog:      new(mocks.MockCatalogService),
		verification: new(mocks.MockVerificationService),
	}
	ts.engine = router.Setup(
		cfg,
		ts.auth,
		handler.NewHealthHandler(okPinger{}),
		handler.NewTotalsHandler(service.NewTotalsService(cfg.Tax)),
		handler.NewCatalogHandler(ts.catalog),
		handler.NewVerificationHandler(ts.verification),
	)
	return ts
}

func (ts *testServer) withSession(token string, role domain.UserRole) uuid.UUID {
	tenantID := uuid.New()
	ts.auth.On("ValidateToken", token).Return(&service.Session{
		TenantID: tenantID,
		UserID:   uuid.New(),
		Email:    "user@test.com",
		Role:     role,
	}, nil)
	return tenantID
}

func (ts *testServer) do(method, target, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.engine.ServeHTTP(w, req)
	return w
}

func TestRouter_HealthIsPublic(t *testing.T) {
	ts := newTestServer()

	assert.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/healthz", "", "").Code)
	assert.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/readyz", "", "").Code)
}

func TestRouter_APIRequiresToken(t *testing.T) {
	ts := newTestServer()

	for _, target := range []string{"/api/v1/verifications", "/api/v1/catalog/sac", "/api/v1/totals/words?amount=1"} {
		w := ts.do(http.MethodGet, target, "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, target)
	}
	assert.NotEmpty(t, ts.do(http.MethodGet, "/healthz", "", "").Header().Get("X-Request-ID"))
}

func TestRouter_TotalsWords(t *testing.T) {
	ts := newTestServer()
	ts.withSession("member-token", domain.RoleMember)

	w := ts.do(http.MethodGet, "/api/v1/totals/words?amount=1180", "member-token", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "One Thousand One Hundred Eighty Rupees Only")
}

func TestRouter_ExportRequiresAdmin(t *testing.T) {
	ts := newTestServer()
	ts.withSession("member-token", domain.RoleMember)

	w := ts.do(http.MethodGet, "/api/v1/verifications/export", "member-token", "")

	assert.Equal(t, http.StatusForbidden, w.Code)
	ts.verification.AssertNotCalled(t, "ListForExport", mock.Anything, mock.Anything, mock.Anything)
	ts.verification.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestRouter_ExportIsNotAnID(t *testing.T) {
	ts := newTestServer()
	tenantID := ts.withSession("admin-token", domain.RoleAdmin)
	ts.verification.On("ListForExport", mock.Anything, tenantID, mock.Anything).Return([]domain.Verification{}, nil)

	w := ts.do(http.MethodGet, "/api/v1/verifications/export?format=csv", "admin-token", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	ts.verification.AssertExpectations(t)
}

func TestRouter_CatalogImportRequiresAdmin(t *testing.T) {
	ts := newTestServer()
	ts.withSession("member-token", domain.RoleMember)

	w := ts.do(http.MethodPut, "/api/v1/catalog/sac", "member-token", `{"codes": []}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
	ts.catalog.AssertNotCalled(t, "Import", mock.Anything, mock.Anything)
}

func TestRouter_VerifyBodyLimit(t *testing.T) {
	ts := newTestServer()
	ts.withSession("member-token", domain.RoleMember)

	big := `{"invoiceNo": "` + strings.Repeat("x", 2048) + `"}`
	w := ts.do(http.MethodPost, "/api/v1/verifications", "member-token", big)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	ts.verification.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
}
