package auth

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/repository/kv"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-key-for-jwt"

type testEnv struct {
	authService auth.AuthService
	jwtService  *jwt.JWTService
	employees   employee.EmployeeRepository
	settings    auth.SettingsRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := kv.NewStore(memory.NewBackend())
	env := &testEnv{
		jwtService: jwt.NewJWTService(testSecret, time.Hour),
		employees:  kv.NewEmployeeRepository(store),
		settings:   kv.NewSettingsRepository(store),
	}
	credentials := kv.NewCredentialStore(env.employees, env.settings)
	env.authService = NewAuthService(store, env.employees, env.settings, credentials, env.jwtService)
	return env
}

func (env *testEnv) createEmployee(t *testing.T, e employee.Employee, pin string) {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.MinCost)
	require.NoError(t, err)
	e.PIN = string(hashed)
	_, err = env.employees.Create(context.Background(), e)
	require.NoError(t, err)
}

// Test admin login with the default PIN
func TestAuthService_LoginAdmin_DefaultPIN(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	response, err := env.authService.LoginAdmin(ctx, auth.AdminLoginRequest{PIN: "1234"})

	require.NoError(t, err)
	assert.NotEmpty(t, response.AccessToken)
	assert.Greater(t, response.ExpiresAt, time.Now().Unix())
	assert.Equal(t, "admin", response.Session.Role)
	assert.False(t, response.Session.Capabilities.SelfOnly)
}

// Test admin login with a wrong PIN
func TestAuthService_LoginAdmin_WrongPIN(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.authService.LoginAdmin(context.Background(), auth.AdminLoginRequest{PIN: "0000"})

	assert.Equal(t, auth.ErrInvalidCredentials, err)
}

// Test employee login by id and by email
func TestAuthService_LoginEmployee_Success(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.createEmployee(t, employee.Employee{ID: "e1", Name: "Citra", Email: "citra@example.com", Role: employee.RoleStaff}, "3333")

	byID, err := env.authService.LoginEmployee(ctx, auth.EmployeeLoginRequest{EmployeeID: "e1", PIN: "3333"})
	require.NoError(t, err)
	assert.Equal(t, "staff", byID.Session.Role)
	assert.Equal(t, "e1", byID.Session.Capabilities.SelfOnlyID)

	byEmail, err := env.authService.LoginEmployee(ctx, auth.EmployeeLoginRequest{Email: "CITRA@example.com", PIN: "3333"})
	require.NoError(t, err)
	assert.Equal(t, "e1", byEmail.Session.EmployeeID)

	claims, err := env.jwtService.JWTAuth().Decode(byEmail.AccessToken)
	require.NoError(t, err)
	m, err := claims.AsMap(ctx)
	require.NoError(t, err)
	session, err := env.jwtService.SessionFromClaims(m)
	require.NoError(t, err)
	assert.Equal(t, user.RoleStaff, session.Role())
}

// Test employee login failures do not reveal which part was wrong
func TestAuthService_LoginEmployee_Invalid(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.createEmployee(t, employee.Employee{ID: "e1", Name: "Citra", Email: "citra@example.com"}, "3333")

	_, err := env.authService.LoginEmployee(ctx, auth.EmployeeLoginRequest{EmployeeID: "e1", PIN: "9999"})
	assert.Equal(t, auth.ErrInvalidCredentials, err)

	_, err = env.authService.LoginEmployee(ctx, auth.EmployeeLoginRequest{EmployeeID: "ghost", PIN: "3333"})
	assert.Equal(t, auth.ErrInvalidCredentials, err)

	_, err = env.authService.LoginEmployee(ctx, auth.EmployeeLoginRequest{PIN: "3333"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

// Test employee login with a PIN saved before hashing was introduced
func TestAuthService_LoginEmployee_LegacyPlainPIN(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, err := env.employees.Create(ctx, employee.Employee{ID: "e1", Name: "Dewi", Role: employee.RoleIntern, PIN: "4444"})
	require.NoError(t, err)

	response, err := env.authService.LoginEmployee(ctx, auth.EmployeeLoginRequest{EmployeeID: "e1", PIN: "4444"})
	require.NoError(t, err)
	assert.Equal(t, "intern", response.Session.Role)
}

// Test logout revokes the token
func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	response, err := env.authService.LoginAdmin(ctx, auth.AdminLoginRequest{PIN: "1234"})
	require.NoError(t, err)

	require.NoError(t, env.authService.Logout(ctx, response.AccessToken))

	assert.True(t, env.jwtService.IsTokenRevoked(response.AccessToken))
	assert.Equal(t, auth.ErrInvalidToken, env.authService.Logout(ctx, ""))
}

// Test Me refreshes the employee role from the roster
func TestAuthService_Me(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.createEmployee(t, employee.Employee{ID: "e1", Name: "Budi", Role: employee.RoleManager}, "2222")

	stale := user.EmployeeSession(employee.Employee{ID: "e1", Name: "Budi", Role: employee.RoleStaff})
	me, err := env.authService.Me(ctx, stale)
	require.NoError(t, err)
	assert.Equal(t, "manager", me.Role)
	assert.True(t, me.Capabilities.CanReview)

	_, err = env.authService.Me(ctx, user.EmployeeSession(employee.Employee{ID: "gone"}))
	assert.Equal(t, auth.ErrInvalidToken, err)

	public, err := env.authService.Me(ctx, user.PublicSession())
	require.NoError(t, err)
	assert.Equal(t, "public", public.Role)
}

// Test changing the admin PIN
func TestAuthService_ChangeAdminPIN(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	err := env.authService.ChangeAdminPIN(ctx, auth.ChangeAdminPINRequest{CurrentPIN: "9999", NewPIN: "5678"})
	assert.Equal(t, auth.ErrInvalidCredentials, err)

	err = env.authService.ChangeAdminPIN(ctx, auth.ChangeAdminPINRequest{CurrentPIN: "1234", NewPIN: "12a"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	require.NoError(t, env.authService.ChangeAdminPIN(ctx, auth.ChangeAdminPINRequest{CurrentPIN: "1234", NewPIN: "5678"}))

	_, err = env.authService.LoginAdmin(ctx, auth.AdminLoginRequest{PIN: "1234"})
	assert.Equal(t, auth.ErrInvalidCredentials, err)
	_, err = env.authService.LoginAdmin(ctx, auth.AdminLoginRequest{PIN: "5678"})
	assert.NoError(t, err)

	stored, err := env.settings.GetAdminPIN(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, "5678", stored)
}
