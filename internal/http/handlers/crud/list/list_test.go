package list

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/fitness-manager/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, page models.Page) ([]*models.Exercise, error) {
	args := m.Called(ctx, page)
	if res := args.Get(0); res != nil {
		return res.([]*models.Exercise), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		query          string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "страница по умолчанию",
			query: "",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, models.Page{Limit: models.DefaultLimit}).
					Return([]*models.Exercise{{ID: 1, Name: "Squat"}, {ID: 2, Name: "Plank"}}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"count":2`,
		},
		{
			name:  "limit и offset из запроса",
			query: "?limit=5&offset=10",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, models.Page{Limit: 5, Offset: 10}).
					Return([]*models.Exercise{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"items":[],"count":0}}`,
		},
		{
			name:           "некорректный limit",
			query:          "?limit=abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid limit`,
		},
		{
			name:           "отрицательный offset",
			query:          "?offset=-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `must not be negative`,
		},
		{
			name:  "ошибка базы",
			query: "",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not list entries"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New[models.Exercise](logger, "exercises", mockService)

			req := httptest.NewRequest(http.MethodGet, "/api/exercises"+tt.query, nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
