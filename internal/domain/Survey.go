package domain

import "time"

// Survey representa os metadados de uma pesquisa de um tenant
type Survey struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	// ResponseCount é um cache desnormalizado e pode estar defasado; a
	// contagem verdadeira é o número de ResponseRecords no momento da
	// agregação
	ResponseCount int `json:"response_count"`
}
