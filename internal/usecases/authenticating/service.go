// Package authenticating decide quem entra: autentica a conta Google
// dona do token, confere o email contra o roster estático e emite o
// token de sessão da aplicação.
package authenticating

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/arneor/sales-tracker-api/internal/config"
	"github.com/arneor/sales-tracker-api/internal/domain"
	"github.com/arneor/sales-tracker-api/pkg/cache"
	"github.com/arneor/sales-tracker-api/pkg/log"
)

// sessionTTL é a validade do token de sessão emitido no login
const sessionTTL = 24 * time.Hour

// IdentityProvider é o contrato com o provedor OAuth. Satisfeito pelo
// TokenManager do integrador Google.
type IdentityProvider interface {
	EnsureValidToken(ctx context.Context) error
	UserEmail(ctx context.Context) (string, error)
	Revoke(ctx context.Context) error
}

type Service interface {
	Login(ctx context.Context) (*LoginResult, error)
	Logout(ctx context.Context) error
	ValidateToken(tokenString string) (*domain.Claims, error)
	FindCurrentUser(tokenString string) (*domain.SalesUser, error)
}

// LoginResult carrega o token de sessão e o membro autorizado
type LoginResult struct {
	Token string          `json:"token"`
	User  domain.SalesUser `json:"user"`
}

type service struct {
	identity IdentityProvider
	cache    *cache.Cache
	cfg      *config.Config
	logger   log.Logger
	nowFn    func() time.Time
}

func NewService(identity IdentityProvider, c *cache.Cache, cfg *config.Config, logger log.Logger) Service {
	return &service{
		identity: identity,
		cache:    c,
		cfg:      cfg,
		logger:   logger,
		nowFn:    time.Now,
	}
}

// Login autentica no provedor, confere o roster e emite a sessão.
// Conta Google válida mas fora do roster tem o acesso revogado na hora:
// ninguém fica meio-logado.
func (s *service) Login(ctx context.Context) (*LoginResult, error) {
	if err := s.identity.EnsureValidToken(ctx); err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("Provedor de identidade recusou a autenticação")
		return nil, errors.Wrap(ErrAuthFailure, err.Error())
	}

	email, err := s.identity.UserEmail(ctx)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("Não foi possível obter o email da conta autenticada")
		return nil, errors.Wrap(ErrAuthFailure, err.Error())
	}

	member := config.FindRosterMember(email)
	if member == nil {
		s.logger.WithContext(ctx).WithField("user_email", config.NormalizeEmail(email)).
			Warn("Email autenticado não está no roster, revogando acesso")

		if revokeErr := s.identity.Revoke(ctx); revokeErr != nil {
			s.logger.WithContext(ctx).WithError(revokeErr).Warn("Falha ao revogar token do provedor")
		}

		return nil, ErrAccessDenied
	}

	token, err := s.generateToken(member)
	if err != nil {
		return nil, err
	}

	// Sessão nova começa com leituras frescas
	s.cache.Clear()

	s.logger.WithContext(ctx).WithField("user_email", member.Email).Info("Login realizado")

	return &LoginResult{Token: token, User: *member}, nil
}

// Logout revoga o token no provedor e descarta o estado em cache
func (s *service) Logout(ctx context.Context) error {
	if err := s.identity.Revoke(ctx); err != nil {
		s.logger.WithContext(ctx).WithError(err).Warn("Falha ao revogar token do provedor no logout")
	}

	s.cache.Clear()

	s.logger.WithContext(ctx).Info("Logout realizado")

	return nil
}

// ValidateToken confere assinatura e validade do token de sessão
func (s *service) ValidateToken(tokenString string) (*domain.Claims, error) {
	claims := &domain.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("método de assinatura inesperado: %v", t.Header["alg"])
		}
		return []byte(s.cfg.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, errors.Wrap(ErrInvalidToken, err.Error())
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// FindCurrentUser resolve o token de sessão de volta para o membro do
// roster. Membro removido do roster perde o acesso mesmo com token
// ainda válido.
func (s *service) FindCurrentUser(tokenString string) (*domain.SalesUser, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	member := config.FindRosterMember(claims.UserEmail)
	if member == nil {
		return nil, ErrAccessDenied
	}

	return member, nil
}

func (s *service) generateToken(member *domain.SalesUser) (string, error) {
	now := s.nowFn()

	claims := &domain.Claims{
		UserEmail: member.Email,
		UserName:  member.Name,
		UserRole:  member.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(s.cfg.SecretKey))
	if err != nil {
		return "", errors.Wrap(err, "erro ao assinar o token de sessão")
	}

	return signed, nil
}
