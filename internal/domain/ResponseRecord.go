package domain

import (
	"strings"
	"time"
)

// DeviceClass identifica a classe de dispositivo que enviou a resposta
type DeviceClass string

const (
	DeviceDesktop DeviceClass = "desktop"
	DeviceMobile  DeviceClass = "mobile"
	DeviceTablet  DeviceClass = "tablet"
	DeviceOther   DeviceClass = "other"
)

// ResponseRecord representa uma resposta de pesquisa enviada por um respondente
type ResponseRecord struct {
	ID       string `json:"id"`
	SurveyID string `json:"survey_id"`
	TenantID string `json:"tenant_id"`
	// CreatedAt zerado indica registro malformado no armazenamento; os
	// calculadores ignoram o registro em vez de abortar a agregação
	CreatedAt time.Time `json:"created_at"`
	Completed bool      `json:"completed"`
	// CompletionSeconds só tem significado quando Completed = true;
	// nil representa duração desconhecida, nunca zero
	CompletionSeconds *float64     `json:"completion_seconds,omitempty"`
	DeviceClass       *DeviceClass `json:"device_class,omitempty"`
}

// HasTimestamp indica se o registro possui um created_at utilizável
func (r *ResponseRecord) HasTimestamp() bool {
	return r != nil && !r.CreatedAt.IsZero()
}

// HasUsableDuration indica se o registro contribui para a média de duração
func (r *ResponseRecord) HasUsableDuration() bool {
	return r != nil && r.Completed && r.CompletionSeconds != nil && *r.CompletionSeconds >= 0
}

// ParseDeviceClass normaliza strings livres de user-agent/plataforma para
// uma das classes conhecidas. Strings vazias retornam nil (classe ausente).
func ParseDeviceClass(raw string) *DeviceClass {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return nil
	}

	var class DeviceClass
	switch {
	case strings.Contains(value, "mobile"), strings.Contains(value, "android"), strings.Contains(value, "iphone"):
		class = DeviceMobile
	case strings.Contains(value, "tablet"), strings.Contains(value, "ipad"):
		class = DeviceTablet
	case strings.Contains(value, "desktop"), strings.Contains(value, "windows"),
		strings.Contains(value, "mac"), strings.Contains(value, "linux"):
		class = DeviceDesktop
	default:
		class = DeviceOther
	}

	return &class
}
