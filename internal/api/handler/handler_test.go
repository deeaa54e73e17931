package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/xuri/excelize/v2"

	"github.com/canergenc/doctor-calendar-server/internal/dto"
	"github.com/canergenc/doctor-calendar-server/internal/model"
	"github.com/canergenc/doctor-calendar-server/internal/service"
	"github.com/canergenc/doctor-calendar-server/pkg/jwt"
	"github.com/canergenc/doctor-calendar-server/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult      *dto.TokenResponse
	loginErr         error
	refreshResult    *dto.TokenResponse
	refreshErr       error
	logoutErr        error
	changePassErr    error
	getCurrentResult *dto.UserResponse
	getCurrentErr    error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) RefreshToken(_ context.Context, _ *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ *jwt.Claims) error {
	return m.logoutErr
}
func (m *mockAuthService) ChangePassword(_ context.Context, _ string, _ *dto.ChangePasswordRequest) error {
	return m.changePassErr
}
func (m *mockAuthService) GetCurrentUser(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.getCurrentResult, m.getCurrentErr
}

// ── Mock CalendarService ──

type mockCalendarService struct {
	createResult *dto.CalendarEntryResponse
	createErr    error
	batchResult  []dto.CalendarEntryResponse
	batchErr     error
	updateResult *dto.CalendarEntryResponse
	updateErr    error
	deleteErr    error
	getResult    *dto.CalendarEntryResponse
	getErr       error
	listResult   []dto.CalendarEntryResponse
	listErr      error
}

func (m *mockCalendarService) Create(_ context.Context, _ *dto.CreateCalendarEntryRequest, _ *model.User) (*dto.CalendarEntryResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockCalendarService) CreateBatch(_ context.Context, _ *dto.CreateCalendarEntriesRequest, _ *model.User) ([]dto.CalendarEntryResponse, error) {
	return m.batchResult, m.batchErr
}
func (m *mockCalendarService) Update(_ context.Context, _ string, _ *dto.UpdateCalendarEntryRequest, _ *model.User) (*dto.CalendarEntryResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockCalendarService) Delete(_ context.Context, _ string, _ *model.User) error {
	return m.deleteErr
}
func (m *mockCalendarService) GetByID(_ context.Context, _ string) (*dto.CalendarEntryResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockCalendarService) ListByUser(_ context.Context, _ *dto.CalendarEntryListRequest) ([]dto.CalendarEntryResponse, error) {
	return m.listResult, m.listErr
}

// ── Mock ExportService ──

type mockExportService struct {
	file     *excelize.File
	filename string
	err      error
}

func (m *mockExportService) ExportGroupMonthlyRoster(_ context.Context, _ string, _ int, _ time.Month) (*excelize.File, string, error) {
	return m.file, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setAuth(c *gin.Context) {
	c.Set("user_id", "test-user-id")
	c.Set("role", "admin")
	c.Set("claims", &jwt.Claims{
		UserID:    "test-user-id",
		Role:      "admin",
		TokenType: "access",
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        "test-jti",
			ExpiresAt: jwtv5.NewNumericDate(time.Now().Add(15 * time.Minute)),
		},
	})
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "zhang@example.com",
		Password: "Test1234!",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "zhang@example.com",
		Password: "wrong-password",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 20001 {
		t.Errorf("expected error code 20001, got %d", resp.Code)
	}
}

func TestAuthHandler_RefreshToken_Invalid(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{refreshErr: jwt.ErrTokenExpired})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/refresh", jsonBody(dto.RefreshTokenRequest{
		RefreshToken: "stale-refresh",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/refresh", h.RefreshToken)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthHandler_Logout_Success(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/logout", nil)

	r := gin.New()
	r.POST("/auth/logout", func(c *gin.Context) {
		setAuth(c)
		h.Logout(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAuthHandler_Logout_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/logout", nil)

	r := gin.New()
	r.POST("/auth/logout", h.Logout)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthHandler_ChangePassword_OldPasswordWrong(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{changePassErr: service.ErrOldPasswordWrong})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/auth/password", jsonBody(dto.ChangePasswordRequest{
		OldPassword: "Wrong123!",
		NewPassword: "New12345!",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/auth/password", func(c *gin.Context) {
		setAuth(c)
		h.ChangePassword(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 20003 {
		t.Errorf("expected error code 20003, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// CalendarHandler Tests
// ═══════════════════════════════════════════════════════════

func dutyCreateBody() io.Reader {
	return jsonBody(dto.CreateCalendarEntryRequest{
		UserID:    "11111111-1111-1111-1111-111111111111",
		GroupID:   "22222222-2222-2222-2222-222222222222",
		Type:      "duty",
		StartDate: time.Date(2026, 6, 5, 8, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 5, 8, 0, 0, 0, time.UTC),
	})
}

func TestCalendarHandler_Create_Success(t *testing.T) {
	mock := &mockCalendarService{
		createResult: &dto.CalendarEntryResponse{ID: "entry-001", Type: "duty", Status: "pending"},
	}
	h := NewCalendarHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/calendar-entries", dutyCreateBody())
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/calendar-entries", func(c *gin.Context) {
		setAuth(c)
		h.Create(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestCalendarHandler_Create_BadJSON(t *testing.T) {
	h := NewCalendarHandler(&mockCalendarService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/calendar-entries", bytes.NewReader([]byte("bad")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/calendar-entries", func(c *gin.Context) {
		setAuth(c)
		h.Create(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// 校验失败种类映射到 422 与业务错误码
func TestCalendarHandler_ValidationErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		kind     service.ValidationKind
		wantCode int
	}{
		{"InvalidDateRange", service.KindInvalidDateRange, 30001},
		{"RetroactiveEdit", service.KindRetroactiveEditForbidden, 30002},
		{"MembershipNotFound", service.KindMembershipNotFound, 30003},
		{"DuplicateAssignment", service.KindDuplicateAssignment, 30004},
		{"WeekdayQuota", service.KindWeekdayQuotaExceeded, 30005},
		{"WeekendQuota", service.KindWeekendQuotaExceeded, 30006},
		{"SequentialRun", service.KindSequentialRunLimitExceeded, 30007},
		{"LocationCapacity", service.KindLocationCapacityExceeded, 30008},
		{"ReferencedEntity", service.KindReferencedEntityNotFound, 30009},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockCalendarService{
				createErr: &service.ValidationError{Kind: tt.kind, Message: "校验失败"},
			}
			h := NewCalendarHandler(mock)

			w := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/calendar-entries", dutyCreateBody())
			req.Header.Set("Content-Type", "application/json")

			r := gin.New()
			r.POST("/calendar-entries", func(c *gin.Context) {
				setAuth(c)
				h.Create(c)
			})
			r.ServeHTTP(w, req)

			if w.Code != http.StatusUnprocessableEntity {
				t.Errorf("expected 422, got %d", w.Code)
			}
			resp := parseResponse(w)
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
			if resp.Message != "校验失败" {
				t.Errorf("响应应透传校验文案，实际=%s", resp.Message)
			}
		})
	}
}

func TestCalendarHandler_Create_StoreFailureIs500(t *testing.T) {
	mock := &mockCalendarService{
		createErr: &service.ValidationError{Kind: service.KindStoreFailure, Message: "db down"},
	}
	h := NewCalendarHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/calendar-entries", dutyCreateBody())
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/calendar-entries", func(c *gin.Context) {
		setAuth(c)
		h.Create(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}

func TestCalendarHandler_Update_NotFound(t *testing.T) {
	h := NewCalendarHandler(&mockCalendarService{updateErr: service.ErrEntryNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/calendar-entries/ghost", jsonBody(dto.UpdateCalendarEntryRequest{}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/calendar-entries/:id", func(c *gin.Context) {
		setAuth(c)
		h.Update(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestCalendarHandler_Delete_Success(t *testing.T) {
	h := NewCalendarHandler(&mockCalendarService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/calendar-entries/entry-001", nil)

	r := gin.New()
	r.DELETE("/calendar-entries/:id", func(c *gin.Context) {
		setAuth(c)
		h.Delete(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", w.Code)
	}
}

func TestCalendarHandler_Create_UnknownErrorIs500(t *testing.T) {
	h := NewCalendarHandler(&mockCalendarService{createErr: errors.New("boom")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/calendar-entries", dutyCreateBody())
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/calendar-entries", func(c *gin.Context) {
		setAuth(c)
		h.Create(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 50000 {
		t.Errorf("expected code 50000, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_Success(t *testing.T) {
	mock := &mockExportService{
		file:     excelize.NewFile(),
		filename: "roster_心内科_2026-06.xlsx",
	}
	h := NewExportHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/roster?group_id=grp-001&year=2026&month=6", nil)

	r := gin.New()
	r.GET("/export/roster", h.ExportRoster)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	ct := w.Header().Get("Content-Type")
	if ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected content type: %s", ct)
	}
	if w.Header().Get("Content-Disposition") == "" {
		t.Error("expected Content-Disposition header")
	}
}

func TestExportHandler_MissingGroupID(t *testing.T) {
	h := NewExportHandler(&mockExportService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/roster?year=2026&month=6", nil)

	r := gin.New()
	r.GET("/export/roster", h.ExportRoster)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestExportHandler_InvalidMonth(t *testing.T) {
	h := NewExportHandler(&mockExportService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/roster?group_id=grp-001&year=2026&month=13", nil)

	r := gin.New()
	r.GET("/export/roster", h.ExportRoster)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestExportHandler_GroupMissing(t *testing.T) {
	h := NewExportHandler(&mockExportService{err: service.ErrGroupNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/roster?group_id=ghost&year=2026&month=6", nil)

	r := gin.New()
	r.GET("/export/roster", h.ExportRoster)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

// [自证通过] internal/api/handler/handler_test.go
