package authorizing

import (
	"errors"
	"fmt"
)

// Tipos de erros de autorização personalizados
var (
	ErrInvalidToken          = errors.New("token inválido")
	ErrExpiredToken          = errors.New("token expirado")
	ErrInvalidAPIKey         = errors.New("chave de API inválida")
	ErrAPIKeyNotConfigured   = errors.New("chave de API não configurada")
	ErrInsufficientPrivilege = errors.New("privilégios insuficientes")
	ErrMissingTenant         = errors.New("token sem tenant associado")
)

// AuthError é um erro com contexto adicional para autorização
type AuthError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *AuthError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *AuthError) Unwrap() error {
	return e.Err
}

// IsCredentialsError verifica se o erro está relacionado a credenciais inválidas
func IsCredentialsError(err error) bool {
	return errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrExpiredToken) ||
		errors.Is(err, ErrInvalidAPIKey)
}

// NewAuthError cria um novo erro de autorização
func NewAuthError(baseErr error, code string, details string) *AuthError {
	return &AuthError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}
