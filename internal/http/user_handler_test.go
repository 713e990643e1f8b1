package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"libraryapi/internal/entity"
	"libraryapi/internal/store/mocks"
	"libraryapi/internal/usecase"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

var TestUser = entity.User{
	ID:    1,
	Name:  "Ada Lovelace",
	Email: "ada@example.com",
}

func TestUserHandler_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name           string
		body           string
		setupMock      func(mockRepo *mocks.MockUserRepository)
		expectedStatus int
	}{
		{
			name:           "invalid body",
			body:           "{not json",
			setupMock:      func(mockRepo *mocks.MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing name",
			body:           `{"email":"ada@example.com"}`,
			setupMock:      func(mockRepo *mocks.MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing email",
			body:           `{"name":"Ada Lovelace"}`,
			setupMock:      func(mockRepo *mocks.MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate email",
			body: `{"name":"Ada Lovelace","email":"ada@example.com"}`,
			setupMock: func(mockRepo *mocks.MockUserRepository) {
				mockRepo.EXPECT().
					GetByEmail(gomock.Any(), "ada@example.com").
					Return(TestUser, nil)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "success",
			body: `{"name":"Ada Lovelace","email":"ada@example.com"}`,
			setupMock: func(mockRepo *mocks.MockUserRepository) {
				mockRepo.EXPECT().
					GetByEmail(gomock.Any(), "ada@example.com").
					Return(entity.User{}, usecase.ErrNotFound)
				mockRepo.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, u *entity.User) error {
						u.ID = 1
						return nil
					})
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "server error",
			body: `{"name":"Ada Lovelace","email":"ada@example.com"}`,
			setupMock: func(mockRepo *mocks.MockUserRepository) {
				mockRepo.EXPECT().
					GetByEmail(gomock.Any(), "ada@example.com").
					Return(entity.User{}, context.DeadlineExceeded)
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockUserRepository(ctrl)
			tt.setupMock(mockRepo)
			handler := NewUserHandler(mockRepo)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(tt.body))

			handler.Create(w, r)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestUserHandler_Create_ReturnsUserObject(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	mockRepo.EXPECT().
		GetByEmail(gomock.Any(), "ada@example.com").
		Return(entity.User{}, usecase.ErrNotFound)
	mockRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *entity.User) error {
			u.ID = 1
			return nil
		})

	handler := NewUserHandler(mockRepo)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/users",
		strings.NewReader(`{"name":"Ada Lovelace","email":"ada@example.com"}`))

	handler.Create(w, r)

	assert.Equal(t, http.StatusCreated, w.Code)

	var got entity.User
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, TestUser, got)
}
