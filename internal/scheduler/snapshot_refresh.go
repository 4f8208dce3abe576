package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/survey-analytics-api/infrastructure/repository"
	"github.com/vfg2006/survey-analytics-api/internal/config"
	"github.com/vfg2006/survey-analytics-api/internal/domain"
	"github.com/vfg2006/survey-analytics-api/internal/metrics"
	"github.com/vfg2006/survey-analytics-api/internal/usecases/aggregating"
	"github.com/vfg2006/survey-analytics-api/pkg/log"
	"github.com/vfg2006/survey-analytics-api/pkg/utils"
)

// fetchHorizonDays é o horizonte de busca de respostas: a maior janela
// móvel do snapshot. Respostas mais antigas não afetam nenhum cálculo.
const fetchHorizonDays = 30

// Clock abstrai o relógio do serviço para os testes controlarem o tempo
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SnapshotRefreshConfig representa a configuração do agendador de snapshots
type SnapshotRefreshConfig struct {
	IntervalSeconds     int
	FetchTimeoutSeconds int
	MaxRetries          int
	Enabled             bool
}

// tenantPipeline é o estado de agregação de um tenant. No máximo um ciclo
// roda por tenant; gatilhos durante um ciclo viram uma única reexecução
// pendente, nunca uma fila.
type tenantPipeline struct {
	mu            sync.Mutex
	running       bool
	pending       bool
	snapshot      *domain.DashboardSnapshot
	lastError     string
	lastRefreshAt time.Time
}

// SnapshotRefreshService gerencia o ciclo de vida dos snapshots de
// dashboard: agendamento periódico, gatilhos sob demanda e a publicação
// atômica do snapshot de cada tenant
type SnapshotRefreshService struct {
	scheduler    *gocron.Scheduler
	config       SnapshotRefreshConfig
	responseRepo repository.ResponseRepository
	surveyRepo   repository.SurveyRepository
	snapshotRepo repository.SnapshotRepository
	aggregator   aggregating.Aggregator
	clock        Clock

	pipelinesMutex sync.Mutex
	pipelines      map[string]*tenantPipeline
}

// NewSnapshotRefreshService cria uma nova instância do serviço de snapshots
func NewSnapshotRefreshService(
	responseRepo repository.ResponseRepository,
	surveyRepo repository.SurveyRepository,
	snapshotRepo repository.SnapshotRepository,
	aggregator aggregating.Aggregator,
	appConfig *config.Config,
) *SnapshotRefreshService {
	refreshConfig := SnapshotRefreshConfig{
		IntervalSeconds:     appConfig.SnapshotRefresh.IntervalSeconds,
		FetchTimeoutSeconds: appConfig.SnapshotRefresh.FetchTimeoutSeconds,
		MaxRetries:          appConfig.SnapshotRefresh.MaxRetries,
		Enabled:             appConfig.SnapshotRefresh.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"interval_seconds":      refreshConfig.IntervalSeconds,
		"fetch_timeout_seconds": refreshConfig.FetchTimeoutSeconds,
		"max_retries":           refreshConfig.MaxRetries,
		"enabled":               refreshConfig.Enabled,
	}).Info("Configuração do agendador de snapshots carregada")

	return &SnapshotRefreshService{
		scheduler:    scheduler,
		config:       refreshConfig,
		responseRepo: responseRepo,
		surveyRepo:   surveyRepo,
		snapshotRepo: snapshotRepo,
		aggregator:   aggregator,
		clock:        systemClock{},
		pipelines:    make(map[string]*tenantPipeline),
	}
}

// Start inicia o agendador periódico
func (s *SnapshotRefreshService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Atualização periódica de snapshots desabilitada por configuração")
		return nil
	}

	logrus.WithField("interval_seconds", s.config.IntervalSeconds).
		Info("Iniciando agendador de atualização de snapshots")

	_, err := s.scheduler.Every(s.config.IntervalSeconds).Seconds().Do(func() {
		s.refreshAllTenants()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar atualização de snapshots: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de atualização de snapshots")
		s.scheduler.Stop()
	}()

	return nil
}

// refreshAllTenants dispara um ciclo para cada tenant rastreado
func (s *SnapshotRefreshService) refreshAllTenants() {
	s.pipelinesMutex.Lock()
	tenantIDs := make([]string, 0, len(s.pipelines))
	for tenantID := range s.pipelines {
		tenantIDs = append(tenantIDs, tenantID)
	}
	s.pipelinesMutex.Unlock()

	for _, tenantID := range tenantIDs {
		s.TriggerRefresh(tenantID)
	}
}

// pipelineFor retorna o pipeline do tenant, criando-o no primeiro acesso
func (s *SnapshotRefreshService) pipelineFor(tenantID string) *tenantPipeline {
	s.pipelinesMutex.Lock()
	defer s.pipelinesMutex.Unlock()

	pipeline, ok := s.pipelines[tenantID]
	if !ok {
		pipeline = &tenantPipeline{}
		s.pipelines[tenantID] = pipeline
		metrics.SetTrackedTenants(len(s.pipelines))
		logrus.WithField("tenant_id", tenantID).Info("Tenant registrado no agendador de snapshots")
	}

	return pipeline
}

// TriggerRefresh solicita um novo ciclo de agregação para o tenant. Se um
// ciclo já está em andamento, o pedido vira a única reexecução pendente:
// N gatilhos durante um ciclo produzem no máximo uma reexecução.
func (s *SnapshotRefreshService) TriggerRefresh(tenantID string) {
	pipeline := s.pipelineFor(tenantID)

	pipeline.mu.Lock()
	if pipeline.running {
		if !pipeline.pending {
			pipeline.pending = true
		}
		metrics.CountCoalescedTrigger()
		pipeline.mu.Unlock()
		return
	}
	pipeline.running = true
	pipeline.mu.Unlock()

	go s.runPipeline(tenantID, pipeline)
}

// runPipeline executa ciclos até não restar reexecução pendente
func (s *SnapshotRefreshService) runPipeline(tenantID string, pipeline *tenantPipeline) {
	for {
		s.refreshTenant(tenantID, pipeline)

		pipeline.mu.Lock()
		if pipeline.pending {
			pipeline.pending = false
			pipeline.mu.Unlock()
			continue
		}
		pipeline.running = false
		pipeline.mu.Unlock()
		return
	}
}

// refreshTenant executa um ciclo completo: busca, agregação e publicação
func (s *SnapshotRefreshService) refreshTenant(tenantID string, pipeline *tenantPipeline) {
	startTime := s.clock.Now()

	responses, surveys, err := s.fetchTenantData(tenantID)
	if err != nil {
		s.publishAfterFailure(tenantID, pipeline, startTime, err)
		return
	}

	now := s.clock.Now()
	snapshot := s.aggregator.BuildSnapshot(now, tenantID, responses, surveys)

	if err := s.persistSnapshot(snapshot); err != nil {
		// A persistência é um cache para reinícios; o snapshot em memória
		// continua sendo publicado normalmente
		logrus.WithFields(logrus.Fields{
			"tenant_id": tenantID,
			"error":     err.Error(),
		}).Error("Erro ao persistir snapshot do dashboard")
	}

	pipeline.mu.Lock()
	pipeline.snapshot = snapshot
	pipeline.lastError = ""
	pipeline.lastRefreshAt = now
	pipeline.mu.Unlock()

	log.L.WithFields(log.Fields{
		"tenant_id":    tenantID,
		"snapshot_id":  snapshot.ID,
		"snapshot_24h": snapshot.WindowCounts[domain.Window24h],
		"duration_ms":  time.Since(startTime).Milliseconds(),
	}).Info("Snapshot do dashboard publicado")

	if log.IsDevelopment() {
		log.L.Debug(utils.PrettyJson(snapshot))
	}

	metrics.ObserveRefresh(time.Since(startTime), metrics.OutcomeSuccess)
}

// fetchTenantData busca respostas e pesquisas do tenant com timeout e
// retentativas limitadas
func (s *SnapshotRefreshService) fetchTenantData(tenantID string) ([]*domain.ResponseRecord, []*domain.Survey, error) {
	since := s.clock.Now().AddDate(0, 0, -fetchHorizonDays)
	attempts := s.config.MaxRetries + 1

	var responses []*domain.ResponseRecord
	var surveys []*domain.Survey
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(s.config.FetchTimeoutSeconds)*time.Second)

		responses, lastErr = s.responseRepo.ListByTenant(ctx, tenantID, since)
		if lastErr == nil {
			surveys, lastErr = s.surveyRepo.ListByTenant(ctx, tenantID)
		}
		cancel()

		if lastErr == nil {
			return responses, surveys, nil
		}

		logrus.WithFields(logrus.Fields{
			"tenant_id": tenantID,
			"attempt":   attempt,
			"error":     lastErr.Error(),
		}).Warn("Erro ao buscar dados do tenant para agregação")
	}

	return nil, nil, lastErr
}

// publishAfterFailure aplica a política de indisponibilidade da fonte: o
// último snapshot bom continua publicado; sem snapshot bom, publica o
// snapshot todo-fallback
func (s *SnapshotRefreshService) publishAfterFailure(tenantID string, pipeline *tenantPipeline, startTime time.Time, err error) {
	pipeline.mu.Lock()
	hasLastGood := pipeline.snapshot != nil
	pipeline.lastError = err.Error()
	if !hasLastGood {
		pipeline.snapshot = s.aggregator.FallbackSnapshot(s.clock.Now(), tenantID)
	}
	pipeline.mu.Unlock()

	if hasLastGood {
		logrus.WithFields(logrus.Fields{
			"tenant_id": tenantID,
			"error":     err.Error(),
		}).Error("Fonte de dados indisponível, mantendo último snapshot bom")
		metrics.ObserveRefresh(time.Since(startTime), metrics.OutcomeError)
		return
	}

	logrus.WithFields(logrus.Fields{
		"tenant_id": tenantID,
		"error":     err.Error(),
	}).Error("Fonte de dados indisponível e sem snapshot anterior, publicando fallback")
	metrics.ObserveRefresh(time.Since(startTime), metrics.OutcomeFallback)
}

func (s *SnapshotRefreshService) persistSnapshot(snapshot *domain.DashboardSnapshot) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(s.config.FetchTimeoutSeconds)*time.Second)
	defer cancel()

	return s.snapshotRepo.SaveOrUpdate(ctx, snapshot)
}

// GetSnapshot retorna o snapshot publicado do tenant sem bloquear. No
// primeiro acesso tenta o snapshot persistido de uma execução anterior;
// sem nada disponível, dispara um ciclo e retorna nil para o chamador
// responder que o dashboard está sendo preparado.
func (s *SnapshotRefreshService) GetSnapshot(ctx context.Context, tenantID string) (*domain.DashboardSnapshot, error) {
	pipeline := s.pipelineFor(tenantID)

	pipeline.mu.Lock()
	snapshot := pipeline.snapshot
	pipeline.mu.Unlock()

	if snapshot != nil {
		return snapshot, nil
	}

	persisted, err := s.snapshotRepo.GetByTenantID(ctx, tenantID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"tenant_id": tenantID,
			"error":     err.Error(),
		}).Warn("Erro ao buscar snapshot persistido")
	}

	if persisted != nil {
		pipeline.mu.Lock()
		if pipeline.snapshot == nil {
			pipeline.snapshot = persisted
		}
		snapshot = pipeline.snapshot
		pipeline.mu.Unlock()

		s.TriggerRefresh(tenantID)
		return snapshot, nil
	}

	s.TriggerRefresh(tenantID)
	return nil, nil
}

// GetStatus retorna o status atual do agendador
func (s *SnapshotRefreshService) GetStatus() map[string]any {
	s.pipelinesMutex.Lock()
	defer s.pipelinesMutex.Unlock()

	tenants := make(map[string]any, len(s.pipelines))
	for tenantID, pipeline := range s.pipelines {
		pipeline.mu.Lock()
		state := "idle"
		if pipeline.running {
			state = "running"
			if pipeline.pending {
				state = "running_pending"
			}
		}
		tenants[tenantID] = map[string]any{
			"state":           state,
			"last_refresh_at": pipeline.lastRefreshAt,
			"last_error":      pipeline.lastError,
			"has_snapshot":    pipeline.snapshot != nil,
		}
		pipeline.mu.Unlock()
	}

	return map[string]any{
		"refresh_enabled":          s.config.Enabled,
		"refresh_interval_seconds": s.config.IntervalSeconds,
		"fetch_timeout_seconds":    s.config.FetchTimeoutSeconds,
		"max_retries":              s.config.MaxRetries,
		"tracked_tenants":          len(tenants),
		"tenants":                  tenants,
	}
}
