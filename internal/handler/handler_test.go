package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"scheduling/internal/access"
	"scheduling/internal/middleware"
	"scheduling/internal/model"
	"scheduling/internal/repository"
	"scheduling/internal/service"
	"scheduling/internal/testutil"
	"scheduling/internal/token"
	"scheduling/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type server struct {
	router *gin.Engine
	users  repository.UserRepository
	tokens *token.Service
}

func newServer(t *testing.T, publicIntake bool) *server {
	t.Helper()
	db := testutil.NewDB(t)
	tokens := token.NewService([]byte("handler-secret"), time.Hour)
	metrics := middleware.NewMetrics()
	registry := prometheus.NewRegistry()
	registry.MustRegister(metrics.PrometheusCollectors()...)

	router := NewRouter(RouterDeps{
		Services:     service.New(db, tokens, nil),
		Verifier:     tokens,
		Metrics:      metrics,
		Gatherer:     registry,
		Log:          zap.NewNop(),
		PublicIntake: publicIntake,
		Cookie:       CookiePolicy{TTL: time.Hour},
	})
	return &server{router: router, users: repository.NewUserRepository(db), tokens: tokens}
}

// login stores an account and returns a bearer token for it.
func (s *server) login(t *testing.T, email string, roles ...access.Role) string {
	t.Helper()
	u := &model.User{Email: email, FirstName: "Test", LastName: "User", Password: "x", Enabled: model.NewLooseBool(true)}
	for _, r := range roles {
		u.Roles = append(u.Roles, model.UserRole{Role: string(r)})
	}
	require.NoError(t, s.users.Create(context.Background(), u))
	raw, err := s.tokens.Issue(u)
	require.NoError(t, err)
	return raw
}

func (s *server) call(t *testing.T, method, path, bearer string, body interface{}) (*httptest.ResponseRecorder, response.Response) {
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
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp response.Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func dataField(t *testing.T, resp response.Response, key string) interface{} {
	t.Helper()
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "data is %T", resp.Data)
	return data[key]
}

func address() map[string]interface{} {
	return map[string]interface{}{
		"address_line_1": "1 Main St",
		"city":           "Austin",
		"zip_code":       "73301",
		"state":          "TX",
	}
}

func lead() map[string]interface{} {
	return map[string]interface{}{
		"client_name":  "Dana",
		"phone_number": "+15125550100",
		"lead_status":  "Inbound",
		"booking_date": "2025-04-30",
		"booking_time": "14:30:00 - 15:00:00",
		"service_name": "Portraits",
		"price":        250,
	}
}

func TestHealth(t *testing.T) {
	s := newServer(t, false)
	w, _ := s.call(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"OK"}`, w.Body.String())
}

func TestResourceRoutesNeedToken(t *testing.T) {
	s := newServer(t, false)

	for _, path := range []string{"/api/address", "/api/business", "/api/travelFee", "/api/userService",
		"/api/customerBooking/BookingEvents", "/api/lead/getAllLeads"} {
		w, resp := s.call(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.Equal(t, "Unauthorized - No Token", resp.Error, path)
	}

	w, _ := s.call(t, http.MethodPost, "/api/address/userAddress", "", address())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAddressLifecycle(t *testing.T) {
	s := newServer(t, false)
	alice := s.login(t, "alice@example.com", access.RoleMember)
	bob := s.login(t, "bob@example.com", access.RoleMember)

	w, resp := s.call(t, http.MethodPost, "/api/address/userAddress", alice, map[string]interface{}{"data": address()})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Address created successfully", resp.Message)
	id := dataField(t, resp, "id").(string)
	owner := dataField(t, resp, "user").(map[string]interface{})
	assert.Equal(t, "alice@example.com", owner["email"])

	w, resp = s.call(t, http.MethodGet, "/api/address/"+id, bob, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Forbidden - You do not own this address", resp.Error)

	w, resp = s.call(t, http.MethodGet, "/api/address", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Addresses retrieved successfully", resp.Message)
	assert.Empty(t, resp.Data)

	w, resp = s.call(t, http.MethodPut, "/api/address/"+id, alice, map[string]interface{}{"city": "Dallas"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Dallas", dataField(t, resp, "city"))

	w, resp = s.call(t, http.MethodDelete, "/api/address/"+id, alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Address deleted successfully", resp.Message)

	w, resp = s.call(t, http.MethodGet, "/api/address/"+id, alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Address not found", resp.Error)
}

func TestInvalidIDIsBadRequest(t *testing.T) {
	s := newServer(t, false)
	alice := s.login(t, "alice@example.com", access.RoleMember)

	w, resp := s.call(t, http.MethodGet, "/api/business/not-a-uuid", alice, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid business ID format", resp.Error)
}

func TestValidationErrorIsBadRequest(t *testing.T) {
	s := newServer(t, false)
	alice := s.login(t, "alice@example.com", access.RoleMember)

	body := lead()
	body["phone_number"] = "555-0100"
	w, resp := s.call(t, http.MethodPost, "/api/lead/Leads", alice, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, resp.Error, "phone")
}

func TestMalformedBody(t *testing.T) {
	s := newServer(t, false)
	alice := s.login(t, "alice@example.com", access.RoleMember)

	req := httptest.NewRequest(http.MethodPost, "/api/address/userAddress", strings.NewReader("{not json"))
	req.Header.Set("Authorization", "Bearer "+alice)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLeadListing(t *testing.T) {
	s := newServer(t, false)
	alice := s.login(t, "alice@example.com", access.RoleMember)
	bob := s.login(t, "bob@example.com", access.RoleMember)
	root := s.login(t, "root@example.com", access.RoleAdmin)

	w, _ := s.call(t, http.MethodPost, "/api/lead/Leads", alice, lead())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	assigned := lead()
	assigned["owner"] = "alice@example.com"
	w, resp := s.call(t, http.MethodPost, "/api/lead/Leads", bob, assigned)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	bobsLead := dataField(t, resp, "id").(string)

	_, resp = s.call(t, http.MethodGet, "/api/lead/getAllLeads", alice, nil)
	assert.Equal(t, "Leads retrieved successfully", resp.Message)
	assert.Len(t, dataField(t, resp, "lead_ids"), 2)

	_, resp = s.call(t, http.MethodGet, "/api/lead/getAllLeads", bob, nil)
	assert.Len(t, dataField(t, resp, "lead_ids"), 1)

	_, resp = s.call(t, http.MethodGet, "/api/lead/getAllLeads", root, nil)
	assert.Len(t, dataField(t, resp, "leads"), 2)

	w, resp = s.call(t, http.MethodGet, "/api/lead/getLeads/"+bobsLead, alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Lead retrieved successfully", resp.Message)
}

func TestPublicIntake(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		s := newServer(t, true)
		s.login(t, "alice@example.com", access.RoleMember)

		body := address()
		body["user"] = "alice@example.com"
		w, resp := s.call(t, http.MethodPost, "/api/address/userAddress", "", body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		owner := dataField(t, resp, "user").(map[string]interface{})
		assert.Equal(t, "alice@example.com", owner["email"])

		w, resp = s.call(t, http.MethodPost, "/api/address/userAddress", "", address())
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "User identifier required", resp.Error)

		// reads still need a token
		w, _ = s.call(t, http.MethodGet, "/api/address", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown identifier", func(t *testing.T) {
		s := newServer(t, true)
		body := address()
		body["user"] = "ghost@example.com"
		w, resp := s.call(t, http.MethodPost, "/api/address/userAddress", "", body)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "User with email ghost@example.com not found", resp.Error)
	})
}

func TestAuthFlow(t *testing.T) {
	s := newServer(t, false)

	w, resp := s.call(t, http.MethodPost, "/api/auth/signup", "", map[string]interface{}{
		"email":        "carol@example.com",
		"first_name":   "Carol",
		"last_name":    "Jones",
		"new_password": "secret1",
		"roles":        []string{"Admin"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "User registered successfully", resp.Message)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "access_token=")

	w, resp = s.call(t, http.MethodPost, "/api/auth/login", "", map[string]interface{}{"usr": "carol@example.com", "pwd": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", resp.Error)

	w, resp = s.call(t, http.MethodPost, "/api/auth/login", "", map[string]interface{}{"usr": "carol@example.com", "pwd": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)
	raw := dataField(t, resp, "token").(string)

	w, resp = s.call(t, http.MethodGet, "/api/auth/me", raw, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "carol@example.com", dataField(t, resp, "email"))
	assert.Nil(t, dataField(t, resp, "new_password"))

	// anonymous signup cannot claim Admin
	w, _ = s.call(t, http.MethodGet, "/api/user/getAllUsers", raw, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.call(t, http.MethodPost, "/api/auth/logout", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestGetAllUsersIsAdminOnly(t *testing.T) {
	s := newServer(t, false)
	member := s.login(t, "m@example.com", access.RoleMember)
	root := s.login(t, "root@example.com", access.RoleAdmin)

	w, resp := s.call(t, http.MethodGet, "/api/user/getAllUsers", member, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Forbidden - Insufficient permissions", resp.Error)

	w, resp = s.call(t, http.MethodGet, "/api/user/getAllUsers", root, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp.Data, 2)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newServer(t, false)
	s.call(t, http.MethodGet, "/health", "", nil)

	w, _ := s.call(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `scheduling_http_requests_total{code="200",method="GET",route="/health"} 1`)
}
