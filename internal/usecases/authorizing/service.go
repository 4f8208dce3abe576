package authorizing

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/survey-analytics-api/internal/config"
	"github.com/vfg2006/survey-analytics-api/internal/domain"
	"github.com/vfg2006/survey-analytics-api/pkg/apiErrors"
	"golang.org/x/crypto/bcrypt"
)

// Authorizer valida as credenciais de serviço aceitas pela API: tokens JWT
// emitidos pelo serviço de autenticação da plataforma e a chave de API
// operacional usada por ferramentas internas
type Authorizer interface {
	ValidateToken(tokenString string) (*domain.Claims, error)
	ValidateAPIKey(apiKey string) (*domain.Claims, error)
}

type Service struct {
	cfg *config.Config
}

func NewService(cfg *config.Config) Authorizer {
	return &Service{cfg: cfg}
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Auth.Secret), nil
	})
	if err != nil {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "claims inesperadas")
	}

	// Um token sem tenant só é aceito para operadores da plataforma
	if claims.TenantID == "" && !claims.Operator {
		return nil, NewAuthError(ErrMissingTenant, apiErrors.ErrInvalidToken, "token sem tenant associado")
	}

	return claims, nil
}

func (s *Service) ValidateAPIKey(apiKey string) (*domain.Claims, error) {
	if s.cfg.Auth.APIKeyHash == "" {
		return nil, NewAuthError(ErrAPIKeyNotConfigured, apiErrors.ErrInvalidAPIKey, "nenhuma chave de API configurada")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.Auth.APIKeyHash), []byte(apiKey)); err != nil {
		return nil, NewAuthError(ErrInvalidAPIKey, apiErrors.ErrInvalidAPIKey, "chave não confere")
	}

	// A chave de API representa a ferramenta operacional da plataforma,
	// com acesso de operador a todos os tenants
	return &domain.Claims{
		ClientID: "operations-api-key",
		Operator: true,
		Scopes:   []string{"dashboard:read", "dashboard:refresh", "scheduler:status"},
	}, nil
}
