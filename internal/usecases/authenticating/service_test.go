package authenticating

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arneor/sales-tracker-api/internal/config"
	"github.com/arneor/sales-tracker-api/internal/domain"
	"github.com/arneor/sales-tracker-api/pkg/cache"
	"github.com/arneor/sales-tracker-api/pkg/log"
)

// fakeIdentity simula o provedor OAuth
type fakeIdentity struct {
	email        string
	ensureErr    error
	emailErr     error
	revokeCalled bool
}

func (f *fakeIdentity) EnsureValidToken(_ context.Context) error { return f.ensureErr }

func (f *fakeIdentity) UserEmail(_ context.Context) (string, error) {
	return f.email, f.emailErr
}

func (f *fakeIdentity) Revoke(_ context.Context) error {
	f.revokeCalled = true
	return nil
}

func newTestService(identity IdentityProvider) (Service, *cache.Cache) {
	log.SetupTestLogger()

	c := cache.New()
	cfg := &config.Config{SecretKey: "segredo-de-teste"}

	return NewService(identity, c, cfg, log.L), c
}

func TestLogin(t *testing.T) {
	rosterManager := config.SalesTeam[len(config.SalesTeam)-1]
	require.Equal(t, domain.RoleManager, rosterManager.Role, "o teste precisa de um gerente do roster")

	t.Run("membro do roster recebe token de sessão", func(t *testing.T) {
		identity := &fakeIdentity{email: rosterManager.Email}
		svc, c := newTestService(identity)

		c.Set("sobras", "de outra sessão")

		result, err := svc.Login(context.Background())
		require.NoError(t, err)

		assert.Equal(t, rosterManager.Email, result.User.Email)
		assert.Equal(t, domain.RoleManager, result.User.Role)
		assert.Equal(t, 0, c.Len(), "login deve limpar o cache")

		claims, err := svc.ValidateToken(result.Token)
		require.NoError(t, err)
		assert.Equal(t, rosterManager.Email, claims.UserEmail)
		assert.Equal(t, rosterManager.Name, claims.UserName)
		assert.Equal(t, domain.RoleManager, claims.UserRole)
	})

	t.Run("email com caixa e espaços diferentes ainda é aceito", func(t *testing.T) {
		identity := &fakeIdentity{email: "  " + rosterManager.Email + "  "}
		svc, _ := newTestService(identity)

		result, err := svc.Login(context.Background())
		require.NoError(t, err)
		assert.Equal(t, rosterManager.Email, result.User.Email)
	})

	t.Run("conta válida fora do roster é negada e revogada", func(t *testing.T) {
		identity := &fakeIdentity{email: "intruso@example.com"}
		svc, _ := newTestService(identity)

		result, err := svc.Login(context.Background())
		require.ErrorIs(t, err, ErrAccessDenied)
		assert.Nil(t, result)
		assert.True(t, identity.revokeCalled, "acesso negado deve revogar o token do provedor")
	})

	t.Run("falha do provedor vira ErrAuthFailure", func(t *testing.T) {
		identity := &fakeIdentity{ensureErr: errors.New("credencial recusada")}
		svc, _ := newTestService(identity)

		_, err := svc.Login(context.Background())
		require.ErrorIs(t, err, ErrAuthFailure)
		assert.False(t, identity.revokeCalled)
	})

	t.Run("falha ao obter o email vira ErrAuthFailure", func(t *testing.T) {
		identity := &fakeIdentity{emailErr: errors.New("userinfo fora do ar")}
		svc, _ := newTestService(identity)

		_, err := svc.Login(context.Background())
		require.ErrorIs(t, err, ErrAuthFailure)
	})
}

func TestLogout(t *testing.T) {
	identity := &fakeIdentity{email: config.SalesTeam[0].Email}
	svc, c := newTestService(identity)

	c.Set("users", "qualquer coisa")

	err := svc.Logout(context.Background())
	require.NoError(t, err)

	assert.True(t, identity.revokeCalled)
	assert.Equal(t, 0, c.Len(), "logout deve limpar o cache")
}

func TestValidateToken(t *testing.T) {
	member := config.SalesTeam[0]

	t.Run("token emitido pelo próprio serviço é aceito", func(t *testing.T) {
		identity := &fakeIdentity{email: member.Email}
		svc, _ := newTestService(identity)

		result, err := svc.Login(context.Background())
		require.NoError(t, err)

		claims, err := svc.ValidateToken(result.Token)
		require.NoError(t, err)
		assert.Equal(t, member.Email, claims.UserEmail)
	})

	t.Run("token assinado com outra chave é rejeitado", func(t *testing.T) {
		identity := &fakeIdentity{email: member.Email}
		svcA, _ := newTestService(identity)

		result, err := svcA.Login(context.Background())
		require.NoError(t, err)

		cfgB := &config.Config{SecretKey: "outra-chave"}
		svcB := NewService(identity, cache.New(), cfgB, log.L)

		_, err = svcB.ValidateToken(result.Token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token vencido é rejeitado como expirado", func(t *testing.T) {
		identity := &fakeIdentity{email: member.Email}
		svc, _ := newTestService(identity)

		// Emite o token como se fosse dois dias atrás
		svc.(*service).nowFn = func() time.Time { return time.Now().Add(-48 * time.Hour) }

		result, err := svc.Login(context.Background())
		require.NoError(t, err)

		_, err = svc.ValidateToken(result.Token)
		require.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("lixo não é token", func(t *testing.T) {
		svc, _ := newTestService(&fakeIdentity{})

		_, err := svc.ValidateToken("não.é.jwt")
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestFindCurrentUser(t *testing.T) {
	member := config.SalesTeam[0]

	identity := &fakeIdentity{email: member.Email}
	svc, _ := newTestService(identity)

	result, err := svc.Login(context.Background())
	require.NoError(t, err)

	found, err := svc.FindCurrentUser(result.Token)
	require.NoError(t, err)

	assert.Equal(t, member.Email, found.Email)
	assert.Equal(t, member.Role, found.Role)
}
