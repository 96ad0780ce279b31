package rbac

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-agency/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeService struct {
	enforceFn  func(ctx context.Context, req domain.EnforceRequest) (bool, error)
	policiesFn func(ctx context.Context, agencyID string) ([]domain.PolicyResponse, error)
}

func (f *fakeService) LoadAgencyPolicy(ctx context.Context, agencyID string) error {
	return nil
}

func (f *fakeService) Enforce(ctx context.Context, req domain.EnforceRequest) (bool, error) {
	return f.enforceFn(ctx, req)
}

func (f *fakeService) Policies(ctx context.Context, agencyID string) ([]domain.PolicyResponse, error) {
	return f.policiesFn(ctx, agencyID)
}

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error map[string]any  `json:"error"`
}

func newRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(svc, zap.NewNop())

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("agency_id", "agency-1")
		c.Set("role", "Shift Supervisor")
		c.Next()
	})
	r.POST("/rbac/enforce", handler.Enforce)
	r.GET("/rbac/policies", handler.ListPolicies)
	return r
}

func TestHandler_Enforce(t *testing.T) {
	t.Run("success uses token agency and role", func(t *testing.T) {
		svc := &fakeService{enforceFn: func(ctx context.Context, req domain.EnforceRequest) (bool, error) {
			assert.Equal(t, "agency-1", req.AgencyID)
			assert.Equal(t, "Shift Supervisor", req.Role)
			assert.Equal(t, ResourceLeave, req.Resource)
			assert.Equal(t, ActionApprove, req.Action)
			return true, nil
		}}

		body, _ := json.Marshal(map[string]string{
			"agency_id": "other-agency",
			"resource":  " leave ",
			"action":    "approve",
		})
		req := httptest.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		newRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var env envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		var resp domain.EnforceResponse
		require.NoError(t, json.Unmarshal(env.Data, &resp))
		assert.True(t, resp.Allowed)
		assert.Equal(t, []string{"supervisor"}, resp.Classes)
	})

	t.Run("validation error", func(t *testing.T) {
		svc := &fakeService{}
		req := httptest.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBufferString(`{"action":"read"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		newRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var env envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, "VALIDATION_ERROR", env.Error["code"])
	})

	t.Run("service error hides cause", func(t *testing.T) {
		svc := &fakeService{enforceFn: func(ctx context.Context, req domain.EnforceRequest) (bool, error) {
			return false, errors.New("casbin exploded")
		}}
		body := `{"resource":"leave","action":"read"}`
		req := httptest.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		newRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "casbin exploded")
	})
}

func TestHandler_ListPolicies(t *testing.T) {
	svc := &fakeService{policiesFn: func(ctx context.Context, agencyID string) ([]domain.PolicyResponse, error) {
		assert.Equal(t, "agency-1", agencyID)
		return []domain.PolicyResponse{{Role: "admin", Resource: "leave", Action: "approve"}}, nil
	}}
	w := httptest.NewRecorder()

	newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rbac/policies", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)
}
