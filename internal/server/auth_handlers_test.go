package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"warble/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	return nil
}

func TestRegister(t *testing.T) {
	app := fiber.New()
	s, deps := newTestServer(t)
	app.Post("/register", s.Register)

	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func()
		expectedStatus int
		expectCookie   bool
	}{
		{
			name: "Success",
			body: map[string]string{
				"full_name": "Wren Park",
				"username":  "wren",
				"email":     "wren@example.com",
				"password":  "password123",
			},
			mockSetup: func() {
				deps.userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
					return u.Email == "wren@example.com" && u.Password != "password123"
				})).Run(func(args mock.Arguments) {
					args.Get(1).(*models.User).ID = 1
				}).Return(nil).Once()
			},
			expectedStatus: http.StatusCreated,
			expectCookie:   true,
		},
		{
			name: "Duplicate User",
			body: map[string]string{
				"full_name": "Wren Park",
				"username":  "wren",
				"email":     "exists@example.com",
				"password":  "password123",
			},
			mockSetup: func() {
				deps.userRepo.On("Create", mock.Anything, mock.Anything).
					Return(models.NewConflictError("User with that email or username already exists")).Once()
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "Missing Fields",
			body: map[string]string{
				"email":    "wren@example.com",
				"password": "password123",
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Weak Password",
			body: map[string]string{
				"full_name": "Wren Park",
				"username":  "wren",
				"email":     "wren@example.com",
				"password":  "abc",
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Invalid Email",
			body: map[string]string{
				"full_name": "Wren Park",
				"username":  "wren",
				"email":     "not-an-email",
				"password":  "password123",
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			resp, err := app.Test(jsonRequest(t, http.MethodPost, "/register", tt.body))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			cookie := sessionCookie(resp)
			if tt.expectCookie {
				require.NotNil(t, cookie, "registration establishes a session")
				assert.NotEmpty(t, cookie.Value)
				assert.True(t, cookie.HttpOnly)
			} else {
				assert.Nil(t, cookie)
			}
		})
	}

	t.Run("Response omits password hash", func(t *testing.T) {
		deps.userRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*models.User).ID = 2
		}).Return(nil).Once()

		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/register", map[string]string{
			"full_name": "Finch Doe",
			"username":  "finch",
			"email":     "finch@example.com",
			"password":  "password123",
		}))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		var payload map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		user, ok := payload["user"].(map[string]any)
		require.True(t, ok)
		_, hasPassword := user["password"]
		assert.False(t, hasPassword)
	})
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &models.User{ID: 1, Username: "wren", Email: "wren@example.com", Password: string(hash)}

	app := fiber.New()
	s, deps := newTestServer(t)
	app.Post("/login", s.Login)

	readError := func(resp *http.Response) string {
		var payload map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		msg, _ := payload["error"].(string)
		return msg
	}

	t.Run("Success sets session cookie", func(t *testing.T) {
		deps.userRepo.On("GetByEmail", mock.Anything, "wren@example.com").Return(stored, nil).Once()

		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/login", map[string]string{
			"email":    "wren@example.com",
			"password": "password123",
		}))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		cookie := sessionCookie(resp)
		require.NotNil(t, cookie)
		assert.NotEmpty(t, cookie.Value)
		assert.True(t, cookie.HttpOnly)
	})

	t.Run("Unknown email and wrong password are indistinguishable", func(t *testing.T) {
		deps.userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, nil).Once()
		respUnknown, err := app.Test(jsonRequest(t, http.MethodPost, "/login", map[string]string{
			"email":    "ghost@example.com",
			"password": "password123",
		}))
		require.NoError(t, err)
		defer func() { _ = respUnknown.Body.Close() }()

		deps.userRepo.On("GetByEmail", mock.Anything, "wren@example.com").Return(stored, nil).Once()
		respWrong, err := app.Test(jsonRequest(t, http.MethodPost, "/login", map[string]string{
			"email":    "wren@example.com",
			"password": "wrongpass",
		}))
		require.NoError(t, err)
		defer func() { _ = respWrong.Body.Close() }()

		assert.Equal(t, http.StatusUnauthorized, respUnknown.StatusCode)
		assert.Equal(t, http.StatusUnauthorized, respWrong.StatusCode)
		assert.Equal(t, readError(respUnknown), readError(respWrong))
	})

	t.Run("Missing fields", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/login", map[string]string{}))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestLogout(t *testing.T) {
	app := fiber.New()
	s, _ := newTestServer(t)
	app.Post("/logout", s.Logout)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/logout", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.True(t, cookie.Expires.Before(time.Now()), "cookie is expired immediately")
}
