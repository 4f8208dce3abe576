package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/survey-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/survey-analytics-api/infrastructure/eventstream"
	"github.com/vfg2006/survey-analytics-api/infrastructure/repository"
	"github.com/vfg2006/survey-analytics-api/internal/api"
	"github.com/vfg2006/survey-analytics-api/internal/config"
	"github.com/vfg2006/survey-analytics-api/internal/metrics"
	"github.com/vfg2006/survey-analytics-api/internal/scheduler"
	"github.com/vfg2006/survey-analytics-api/internal/usecases/aggregating"
	"github.com/vfg2006/survey-analytics-api/internal/usecases/authorizing"
	"github.com/vfg2006/survey-analytics-api/internal/usecases/exporting"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		logrus.WithError(err).Fatal("Erro ao registrar métricas")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	responseRepo := repository.NewResponseRepository(pgConn)
	surveyRepo := repository.NewSurveyRepository(pgConn)
	snapshotRepo := repository.NewSnapshotRepository(pgConn)

	authorizer := authorizing.NewService(cfg)
	aggregator := aggregating.NewService()
	exporter := exporting.NewService()

	snapshotService := scheduler.NewSnapshotRefreshService(
		responseRepo,
		surveyRepo,
		snapshotRepo,
		aggregator,
		cfg,
	)

	if err := snapshotService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de atualização de snapshots")
	} else {
		logrus.Info("Agendador de atualização de snapshots iniciado com sucesso")
	}

	changeFeed := eventstream.NewListener(cfg, snapshotService)
	if err := changeFeed.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o listener de notificações de mudanças")
	} else {
		logrus.Info("Listener de notificações de mudanças iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		snapshotService,
		exporter,
		authorizer,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
