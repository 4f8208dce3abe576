package middleware

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/survey-analytics-api/pkg/apiErrors"
)

// TenantAccess restringe a rota ao tenant presente nas claims. Tokens de
// operador (e a chave de API operacional) acessam qualquer tenant.
func TenantAccess() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				logrus.Warning("Tentativa de acesso sem autenticação")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Credencial não autenticada", nil)
				return
			}

			tenantID := httprouter.ParamsFromContext(r.Context()).ByName("id")
			if !claims.AllowsTenant(tenantID) {
				logrus.Warningf("Acesso negado ao tenant %s para o cliente %s", tenantID, claims.ClientID)
				apiErrors.WriteError(w, apiErrors.ErrTenantForbidden, "Você não tem permissão para acessar este tenant", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// OperatorOnly restringe a rota a credenciais operacionais
func OperatorOnly() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Credencial não autenticada", nil)
				return
			}

			if !claims.Operator {
				logrus.Warningf("Acesso negado a rota operacional para o cliente %s", claims.ClientID)
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar este recurso", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
