// Package eventstream escuta o canal NOTIFY do Postgres que anuncia
// mudanças nas respostas de pesquisa e converte cada notificação em um
// gatilho de atualização de snapshot para o tenant afetado.
package eventstream

import (
	"context"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/survey-analytics-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	minReconnectInterval = 10 * time.Second
	maxReconnectInterval = time.Minute
	pingInterval         = 90 * time.Second
)

// RefreshTrigger é o consumidor das notificações: o agendador de snapshots
type RefreshTrigger interface {
	TriggerRefresh(tenantID string)
}

// notificationPayload é o envelope publicado pelo gatilho do banco. Apenas
// o tenant interessa; qualquer outro campo do payload é ignorado.
type notificationPayload struct {
	TenantID string `json:"tenant_id"`
}

// Listener consome o canal de notificações de mudanças
type Listener struct {
	channel  string
	enabled  bool
	dsn      string
	trigger  RefreshTrigger
	listener *pq.Listener
}

// NewListener cria um listener para o canal configurado
func NewListener(cfg *config.Config, trigger RefreshTrigger) *Listener {
	return &Listener{
		channel: cfg.ChangeFeed.Channel,
		enabled: cfg.ChangeFeed.Enabled,
		dsn:     cfg.Database.DSN,
		trigger: trigger,
	}
}

// Start conecta ao canal e começa a consumir notificações. A conexão é
// gerenciada pelo pq.Listener, que reconecta sozinho; notificações
// perdidas durante uma reconexão são cobertas pelo ciclo periódico.
func (l *Listener) Start(ctx context.Context) error {
	if !l.enabled {
		logrus.Info("Escuta de notificações de mudanças desabilitada por configuração")
		return nil
	}

	l.listener = pq.NewListener(l.dsn, minReconnectInterval, maxReconnectInterval, func(event pq.ListenerEventType, err error) {
		if err != nil {
			logrus.WithError(err).Warn("Evento de conexão do listener de notificações")
		}
	})

	if err := l.listener.Listen(l.channel); err != nil {
		return errors.Wrapf(err, "erro ao escutar o canal %s", l.channel)
	}

	logrus.WithField("channel", l.channel).Info("Escutando notificações de mudanças nas respostas")

	go l.consume(ctx)

	return nil
}

func (l *Listener) consume(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			logrus.Info("Parando listener de notificações de mudanças")
			if err := l.listener.Close(); err != nil {
				logrus.WithError(err).Warn("Erro ao fechar listener de notificações")
			}
			return

		case notification := <-l.listener.Notify:
			// Notificação nil sinaliza reconexão do driver
			if notification == nil {
				continue
			}
			l.handleNotification(notification)

		case <-time.After(pingInterval):
			if err := l.listener.Ping(); err != nil {
				logrus.WithError(err).Warn("Erro no ping do listener de notificações")
			}
		}
	}
}

// handleNotification extrai o tenant do payload e dispara a atualização.
// Payloads malformados são registrados e descartados: o ciclo periódico
// garante a convergência do snapshot de qualquer forma.
func (l *Listener) handleNotification(notification *pq.Notification) {
	tenantID, err := parseTenantID(notification.Extra)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"channel": notification.Channel,
			"payload": notification.Extra,
			"error":   err.Error(),
		}).Warn("Notificação de mudança com payload inválido, ignorando")
		return
	}

	logrus.WithField("tenant_id", tenantID).Debug("Notificação de mudança recebida")
	l.trigger.TriggerRefresh(tenantID)
}

func parseTenantID(payload string) (string, error) {
	trimmed := strings.TrimSpace(payload)
	if trimmed == "" {
		return "", errors.New("payload vazio")
	}

	// Formato preferido: envelope JSON {"tenant_id": "..."}
	if strings.HasPrefix(trimmed, "{") {
		envelope := notificationPayload{}
		if err := json.UnmarshalFromString(trimmed, &envelope); err != nil {
			return "", errors.Wrap(err, "erro ao deserializar payload da notificação")
		}
		if envelope.TenantID == "" {
			return "", errors.New("payload sem tenant_id")
		}
		return envelope.TenantID, nil
	}

	// Gatilhos antigos publicam o tenant como texto puro
	return trimmed, nil
}
