package attach

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/fitness-manager/internal/models"
	"github.com/magabrotheeeer/fitness-manager/internal/storage"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Attach(ctx context.Context, in models.DietFoodInput) (*models.DietFood, error) {
	args := m.Called(ctx, in)
	if res := args.Get(0); res != nil {
		return res.(*models.DietFood), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestAttachHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	in := models.DietFoodInput{DietID: 1, FoodID: 2, Quantity: 150}
	body := `{"diet_id":1,"food_id":2,"quantity":150}`

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "продукт добавлен в диету",
			body: body,
			setupMock: func(m *MockService) {
				m.On("Attach", mock.Anything, in).
					Return(&models.DietFood{DietID: 1, FoodID: 2, FoodName: "Oats", Quantity: 150}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"food_name":"Oats"`,
		},
		{
			name:           "нулевое количество",
			body:           `{"diet_id":1,"food_id":2,"quantity":0}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field quantity must be greater than 0`,
		},
		{
			name:           "невалидный JSON",
			body:           `[]`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name: "связь уже существует",
			body: body,
			setupMock: func(m *MockService) {
				m.On("Attach", mock.Anything, in).Return(nil, storage.ErrAlreadyExists)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `"error":"already exists"`,
		},
		{
			name: "несуществующий продукт",
			body: body,
			setupMock: func(m *MockService) {
				m.On("Attach", mock.Anything, in).Return(nil, storage.ErrInvalidReference)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid reference"`,
		},
		{
			name: "ошибка базы",
			body: body,
			setupMock: func(m *MockService) {
				m.On("Attach", mock.Anything, in).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not create link"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New[models.DietFoodInput, models.DietFood](logger, "diet_foods", mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/diet_foods", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
