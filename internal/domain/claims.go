package domain

import "github.com/golang-jwt/jwt/v5"

// Claims são as credenciais de serviço aceitas pela API. Tokens são
// emitidos pelo serviço de autenticação externo; aqui apenas validamos.
type Claims struct {
	TenantID  string   `json:"tenant_id"`
	ClientID  string   `json:"client_id"`
	Scopes    []string `json:"scopes"`
	Operator  bool     `json:"operator"`
	jwt.RegisteredClaims
}

// AllowsTenant indica se o token dá acesso aos dados do tenant informado
func (c *Claims) AllowsTenant(tenantID string) bool {
	if c == nil {
		return false
	}
	return c.Operator || c.TenantID == tenantID
}
