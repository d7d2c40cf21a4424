package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rvidal/doorway/internal/repository/postgres"
	"github.com/rvidal/doorway/internal/service"
	"github.com/rvidal/doorway/internal/testutil"
	"github.com/rvidal/doorway/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T, testDB *testutil.TestDB) (*service.AuthService, *token.Codec) {
	t.Helper()

	repos := postgres.NewRepositories(testDB.DB)
	codec, err := token.NewCodec(testutil.TestConfig().JWTSecret)
	require.NoError(t, err)
	return service.NewAuthService(repos.User, codec), codec
}

func TestAuthService_Signup(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	authService, codec := newAuthService(t, testDB)
	ctx := context.Background()

	tests := []struct {
		name      string
		input     service.SignupInput
		setup     func()
		wantErr   error
		checkUser bool
	}{
		{
			name: "successful signup",
			input: service.SignupInput{
				Email:    "new@example.com",
				Password: "password123",
				Name:     "New User",
			},
			checkUser: true,
		},
		{
			name: "password at minimum length",
			input: service.SignupInput{
				Email:    "sixchars@example.com",
				Password: "123456",
				Name:     "Six Chars",
			},
			checkUser: true,
		},
		{
			name: "password below minimum length",
			input: service.SignupInput{
				Email:    "fivechars@example.com",
				Password: "12345",
				Name:     "Five Chars",
			},
			wantErr: service.ErrWeakPassword,
		},
		{
			name: "missing email",
			input: service.SignupInput{
				Password: "password123",
				Name:     "No Email",
			},
			wantErr: service.ErrMissingFields,
		},
		{
			name: "missing name",
			input: service.SignupInput{
				Email:    "noname@example.com",
				Password: "password123",
			},
			wantErr: service.ErrMissingFields,
		},
		{
			name: "duplicate email",
			input: service.SignupInput{
				Email:    "existing@example.com",
				Password: "password123",
				Name:     "Second User",
			},
			setup: func() {
				// Create existing user
				testutil.NewUserBuilder().
					WithEmail("existing@example.com").
					Build(t, testDB.DB)
			},
			wantErr: service.ErrEmailExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clean up between tests
			testDB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			result, err := authService.Signup(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			if tt.checkUser {
				assert.NotNil(t, result.User)
				assert.NotEqual(t, uuid.Nil, result.User.ID)
				assert.Equal(t, tt.input.Email, result.User.Email)
				assert.Equal(t, tt.input.Name, result.User.Name)
				assert.NotEqual(t, tt.input.Password, result.User.PasswordHash)
				require.NotEmpty(t, result.AccessToken)

				// Token subject must point back at the created user
				subject, err := codec.Subject(result.AccessToken)
				require.NoError(t, err)
				assert.Equal(t, result.User.ID, subject)
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	authService, _ := newAuthService(t, testDB)
	ctx := context.Background()

	// Create a user for login tests
	user, rawPassword := testutil.NewUserBuilder().
		WithEmail("login@example.com").
		WithPassword("correctpassword").
		Build(t, testDB.DB)

	tests := []struct {
		name    string
		input   service.LoginInput
		wantErr error
	}{
		{
			name: "successful login",
			input: service.LoginInput{
				Email:    user.Email,
				Password: rawPassword,
			},
		},
		{
			name: "wrong password",
			input: service.LoginInput{
				Email:    user.Email,
				Password: "wrongpassword",
			},
			wantErr: service.ErrInvalidCredentials,
		},
		{
			name: "non-existent email",
			input: service.LoginInput{
				Email:    "nonexistent@example.com",
				Password: "anypassword",
			},
			wantErr: service.ErrInvalidCredentials,
		},
		{
			name: "missing password",
			input: service.LoginInput{
				Email: user.Email,
			},
			wantErr: service.ErrMissingFields,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := authService.Login(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.NotNil(t, result.User)
			assert.Equal(t, user.ID, result.User.ID)
			assert.NotEmpty(t, result.AccessToken)
		})
	}
}

func TestAuthService_VerifyToken(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	authService, _ := newAuthService(t, testDB)
	ctx := context.Background()

	// Sign up a user to get a valid token
	result, err := authService.Signup(ctx, service.SignupInput{
		Email:    "tokenuser@example.com",
		Password: "password123",
		Name:     "Token User",
	})
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{
			name:  "valid token",
			token: result.AccessToken,
		},
		{
			name:    "invalid token",
			token:   "invalid.token.here",
			wantErr: service.ErrInvalidToken,
		},
		{
			name:    "malformed token",
			token:   "notavalidjwt",
			wantErr: service.ErrInvalidToken,
		},
		{
			name:    "empty token",
			token:   "",
			wantErr: service.ErrMissingToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := authService.VerifyToken(ctx, tt.token)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, result.User.ID, user.ID)
			assert.Equal(t, result.User.Email, user.Email)
		})
	}
}

func TestAuthService_VerifyToken_DeletedUser(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	authService, _ := newAuthService(t, testDB)
	ctx := context.Background()

	result, err := authService.Signup(ctx, service.SignupInput{
		Email:    "gone@example.com",
		Password: "password123",
		Name:     "Gone User",
	})
	require.NoError(t, err)

	// Remove the user behind the token
	testDB.Truncate(t)

	// A dangling subject must read the same as a bad token
	_, err = authService.VerifyToken(ctx, result.AccessToken)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestAuthService_GetUserByID(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	authService, _ := newAuthService(t, testDB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().
		WithEmail("getuserbyid@example.com").
		Build(t, testDB.DB)

	tests := []struct {
		name    string
		id      uuid.UUID
		wantErr error
	}{
		{
			name: "existing user",
			id:   user.ID,
		},
		{
			name:    "non-existent user",
			id:      uuid.New(),
			wantErr: service.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := authService.GetUserByID(ctx, tt.id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, user.ID, got.ID)
			assert.Equal(t, user.Email, got.Email)
		})
	}
}
