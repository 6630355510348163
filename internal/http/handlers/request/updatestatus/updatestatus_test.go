package updatestatus

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/geosentinel/internal/http/middlewarectx"
	"github.com/magabrotheeeer/geosentinel/internal/lib/lifecycle"
	"github.com/magabrotheeeer/geosentinel/internal/models"
	requestservice "github.com/magabrotheeeer/geosentinel/internal/services/request"
)

type RequestServiceMock struct {
	mock.Mock
}

func (m *RequestServiceMock) UpdateStatus(ctx context.Context, uid, status, adminNotes string, admin *models.User) (*models.Request, error) {
	args := m.Called(ctx, uid, status, adminNotes, admin)
	req, _ := args.Get(0).(*models.Request)
	return req, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestUpdateStatusHandler_ServeHTTP(t *testing.T) {
	admin := &models.User{UID: "admin-1", Role: models.RoleAdmin}

	tests := []struct {
		name           string
		body           string
		mockResp       *models.Request
		mockErr        error
		wantStatusCode int
		wantBody       string
	}{
		{
			name:           "valid transition",
			body:           `{"status": "Processing", "adminNotes": "started"}`,
			mockResp:       &models.Request{UID: "req-1", Status: lifecycle.Processing},
			wantStatusCode: http.StatusOK,
			wantBody:       "Status updated successfully",
		},
		{
			name:           "invalid json body",
			body:           "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantBody:       "invalid request body",
		},
		{
			name:           "missing status",
			body:           `{"adminNotes": "oops"}`,
			wantStatusCode: http.StatusUnprocessableEntity,
			wantBody:       "field Status is a required field",
		},
		{
			name:           "unknown status",
			body:           `{"status": "Archived"}`,
			mockErr:        requestservice.ErrUnknownStatus,
			wantStatusCode: http.StatusBadRequest,
			wantBody:       "Unknown status",
		},
		{
			name:           "forbidden transition",
			body:           `{"status": "Completed"}`,
			mockErr:        fmt.Errorf("cannot change status from Pending to Completed: %w", requestservice.ErrInvalidTransition),
			wantStatusCode: http.StatusUnprocessableEntity,
			wantBody:       "cannot change status from Pending to Completed",
		},
		{
			name:           "missing request",
			body:           `{"status": "Processing"}`,
			mockErr:        requestservice.ErrNotFound,
			wantStatusCode: http.StatusNotFound,
			wantBody:       "Request not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcMock := new(RequestServiceMock)
			handler := New(newNoopLogger(), svcMock)

			if tt.mockResp != nil || tt.mockErr != nil {
				svcMock.On("UpdateStatus", mock.Anything, "req-1", mock.Anything, mock.Anything, admin).
					Return(tt.mockResp, tt.mockErr).Once()
			}

			req := httptest.NewRequest(http.MethodPatch, "/api/requests/req-1/status", bytes.NewReader([]byte(tt.body)))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("requestId", "req-1")
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middlewarectx.UserKey, admin)
			req = req.WithContext(ctx)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)

			svcMock.AssertExpectations(t)
		})
	}
}
