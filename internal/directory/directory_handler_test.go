package directory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	directoryerrors "go-agency/internal/directory/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeService struct {
	availabilityFn func(ctx context.Context, agencyID, role string) (AvailabilityResponse, error)
}

func (f *fakeService) IsRoleAvailable(ctx context.Context, agencyID, role string) (bool, error) {
	resp, err := f.availabilityFn(ctx, agencyID, role)
	return resp.Available, err
}

func (f *fakeService) Availability(ctx context.Context, agencyID, role string) (AvailabilityResponse, error) {
	return f.availabilityFn(ctx, agencyID, role)
}

func (f *fakeService) Invalidate(ctx context.Context, agencyID string) error {
	return nil
}

func TestHandler_Availability(t *testing.T) {
	gin.SetMode(gin.TestMode)

	serve := func(svc Service, target string) *httptest.ResponseRecorder {
		r := gin.New()
		r.GET("/directory/availability", func(c *gin.Context) {
			c.Set("agency_id", "agency-1")
			c.Next()
		}, NewHandler(svc, zap.NewNop()).Availability)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		return w
	}

	t.Run("success", func(t *testing.T) {
		svc := &fakeService{availabilityFn: func(ctx context.Context, agencyID, role string) (AvailabilityResponse, error) {
			assert.Equal(t, "agency-1", agencyID)
			assert.Equal(t, "hr", role)
			return AvailabilityResponse{Role: "hr", Date: "2024-06-03", Available: false}, nil
		}}

		w := serve(svc, "/directory/availability?role=hr")

		assert.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Ok   bool                 `json:"ok"`
			Data AvailabilityResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Ok)
		assert.False(t, body.Data.Available)
	})

	t.Run("missing role", func(t *testing.T) {
		w := serve(&fakeService{}, "/directory/availability")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})

	t.Run("service error", func(t *testing.T) {
		svc := &fakeService{availabilityFn: func(ctx context.Context, agencyID, role string) (AvailabilityResponse, error) {
			return AvailabilityResponse{}, directoryerrors.ErrInvalidAgencyID
		}}

		w := serve(svc, "/directory/availability?role=hr")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_INPUT")
	})
}
