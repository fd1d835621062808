package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attendly/attendance-backend-go/internal/domain/employee"
	"github.com/attendly/attendance-backend-go/internal/domain/leave"
	"github.com/attendly/attendance-backend-go/internal/domain/ledger"
	"github.com/attendly/attendance-backend-go/internal/pkg/clock"
	appjwt "github.com/attendly/attendance-backend-go/internal/pkg/jwt"
)

type fakeLeaveService struct {
	created   *leave.CreateRequest
	createErr error
}

func (f *fakeLeaveService) CreateRequest(_ context.Context, req leave.CreateRequest) (leave.RequestResponse, error) {
	f.created = &req
	if f.createErr != nil {
		return leave.RequestResponse{}, f.createErr
	}
	return leave.RequestResponse{
		ID:         "lr-1",
		RelationID: req.RelationID,
		EmployeeID: req.EmployeeID,
		Category:   req.Category,
		Status:     "pending",
	}, nil
}

func (f *fakeLeaveService) CancelRequest(context.Context, string, string) error { return nil }

func (f *fakeLeaveService) GetRequest(context.Context, string) (leave.RequestResponse, error) {
	return leave.RequestResponse{}, leave.ErrRequestNotFound
}

func (f *fakeLeaveService) ListRequests(context.Context, string, leave.RequestFilter) (leave.ListResponse, error) {
	return leave.ListResponse{}, nil
}

func (f *fakeLeaveService) GetBalances(context.Context, string, int) ([]leave.BalanceResponse, error) {
	return nil, nil
}

func (f *fakeLeaveService) RefreshAnnualEntitlement(context.Context, string, int) (leave.BalanceResponse, error) {
	return leave.BalanceResponse{}, nil
}

func (f *fakeLeaveService) AdjustBalance(context.Context, leave.AdjustBalanceRequest) (leave.BalanceResponse, error) {
	return leave.BalanceResponse{}, nil
}

var testJWTService = appjwt.NewJWTService("handler-test-secret", "1h")

// authenticatedRequest builds a request whose context carries verified
// claims, the way the jwtauth verifier middleware leaves it after decoding
// a minted access token.
func authenticatedRequest(t *testing.T, method, target string, body []byte) *http.Request {
	t.Helper()

	companyID, relationID := "c1", "rel-1"
	tokenString, _, err := testJWTService.GenerateAccessToken("emp-1", &companyID, &relationID, employee.RoleEmployee)
	require.NoError(t, err)
	token, err := testJWTService.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	r := httptest.NewRequest(method, target, bytes.NewReader(body))
	return r.WithContext(jwtauth.NewContext(r.Context(), token, nil))
}

var testHandlerClock = clock.Fixed(time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC))

func newLeaveHandler(svc leave.Service) LeaveHandler {
	return NewLeaveHandler(svc, testHandlerClock)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestLeaveCreateRequest(t *testing.T) {
	t.Run("submits and fills identity from claims", func(t *testing.T) {
		svc := &fakeLeaveService{}
		h := newLeaveHandler(svc)

		payload := []byte(`{
			"category": "annual",
			"start_time": "2026-03-20T09:00:00Z",
			"end_time": "2026-03-20T18:00:00Z",
			"hours": 8
		}`)
		w := httptest.NewRecorder()
		h.CreateRequest(w, authenticatedRequest(t, http.MethodPost, "/api/v1/leave", payload))

		assert.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, svc.created)
		assert.Equal(t, "emp-1", svc.created.EmployeeID)
		assert.Equal(t, "rel-1", svc.created.RelationID)

		body := decodeBody(t, w)
		assert.Equal(t, true, body["success"])
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		h := newLeaveHandler(&fakeLeaveService{})

		w := httptest.NewRecorder()
		h.CreateRequest(w, authenticatedRequest(t, http.MethodPost, "/api/v1/leave", []byte(`{not json`)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("accumulates field errors", func(t *testing.T) {
		svc := &fakeLeaveService{}
		h := newLeaveHandler(svc)

		w := httptest.NewRecorder()
		h.CreateRequest(w, authenticatedRequest(t, http.MethodPost, "/api/v1/leave", []byte(`{"start_time":"yesterday"}`)))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Nil(t, svc.created)

		body := decodeBody(t, w)
		errDetail, ok := body["error"].(map[string]interface{})
		require.True(t, ok)
		details, ok := errDetail["details"].(map[string]interface{})
		require.True(t, ok)
		assert.Contains(t, details, "category")
		assert.Contains(t, details, "start_time")
		assert.Contains(t, details, "end_time")
	})

	t.Run("rejects an unauthenticated request", func(t *testing.T) {
		h := newLeaveHandler(&fakeLeaveService{})

		r := httptest.NewRequest(http.MethodPost, "/api/v1/leave", bytes.NewReader([]byte(`{}`)))
		r = r.WithContext(jwtauth.NewContext(r.Context(), nil, jwtauth.ErrNoTokenFound))
		w := httptest.NewRecorder()
		h.CreateRequest(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("maps insufficient balance to a client error", func(t *testing.T) {
		svc := &fakeLeaveService{createErr: ledger.ErrInsufficientBalance}
		h := newLeaveHandler(svc)

		payload := []byte(`{
			"category": "annual",
			"start_time": "2026-03-20T09:00:00Z",
			"end_time": "2026-03-20T18:00:00Z",
			"hours": 8
		}`)
		w := httptest.NewRecorder()
		h.CreateRequest(w, authenticatedRequest(t, http.MethodPost, "/api/v1/leave", payload))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
func TestLeaveAdjustBalance(t *testing.T) {
	t.Run("field errors use the validation status", func(t *testing.T) {
		h := newLeaveHandler(&fakeLeaveService{})

		w := httptest.NewRecorder()
		h.AdjustBalance(w, authenticatedRequest(t, http.MethodPost, "/api/v1/leave/balances/adjust", []byte(`{"restore_hours":-1}`)))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		body := decodeBody(t, w)
		errDetail, ok := body["error"].(map[string]interface{})
		require.True(t, ok)
		details, ok := errDetail["details"].(map[string]interface{})
		require.True(t, ok)
		assert.Contains(t, details, "employee_id")
		assert.Contains(t, details, "restore_hours")
	})

	t.Run("defaults the year from the clock", func(t *testing.T) {
		captured := leave.AdjustBalanceRequest{}
		svc := &adjustCapturingService{fakeLeaveService: &fakeLeaveService{}, captured: &captured}
		h := newLeaveHandler(svc)

		payload := []byte(`{"employee_id":"emp-2","category":"annual","restore_hours":4}`)
		w := httptest.NewRecorder()
		h.AdjustBalance(w, authenticatedRequest(t, http.MethodPost, "/api/v1/leave/balances/adjust", payload))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 2026, captured.Year)
	})
}

type adjustCapturingService struct {
	*fakeLeaveService
	captured *leave.AdjustBalanceRequest
}

func (s *adjustCapturingService) AdjustBalance(_ context.Context, req leave.AdjustBalanceRequest) (leave.BalanceResponse, error) {
	*s.captured = req
	return leave.BalanceResponse{Category: req.Category}, nil
}
