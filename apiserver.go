// Copyright 2024 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2024 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"phonostat/cnf"
	corpusActions "phonostat/corpus/handlers"
	"phonostat/docs"
	"phonostat/general"
	"phonostat/monitoring"
	monitoringActions "phonostat/monitoring/handlers"
	"phonostat/rdb"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type apiServer struct {
	server    *http.Server
	conf      *cnf.Conf
	radapter  *rdb.Adapter
	jobLogger *monitoring.WorkerJobLogger
	metrics   *monitoring.Metrics
	version   general.VersionInfo
}

func mkServerInfo(conf *cnf.Conf, version general.VersionInfo) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		uniresp.WriteJSONResponse(
			ctx.Writer,
			map[string]any{
				"name":      "PHONOSTAT",
				"version":   version,
				"publicUrl": conf.PublicURL,
				"docs":      conf.PublicURL + "/docs/index.html",
			},
		)
	}
}

func (api *apiServer) Start(ctx context.Context) {
	if !api.conf.Logging.Level.IsDebugMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(additionalLogEvents())
	engine.Use(logging.GinMiddleware())
	engine.Use(uniresp.AlwaysJSONContentType())
	engine.Use(CORSMiddleware(api.conf))
	engine.NoMethod(uniresp.NoMethodHandler)
	engine.NoRoute(uniresp.NotFoundHandler)

	protected := engine.Group("/").Use(AuthRequired(api.conf))

	ceActions := corpusActions.NewActions(
		api.conf.Corpora, &api.conf.Analysis, api.radapter, api.jobLogger)

	engine.GET("/", mkServerInfo(api.conf, api.version))

	engine.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	engine.GET(
		"/openapi",
		func(ctx *gin.Context) {
			uniresp.WriteRawJSONResponse(ctx.Writer, []byte(docs.SwaggerInfo.ReadDoc()))
		},
	)

	protected.GET(
		"/corplist", ceActions.Corplist)

	protected.GET(
		"/info/:corpusId", ceActions.CorpusInfo)

	protected.GET(
		"/cv-shapes/:corpusId", ceActions.CVShapes)

	protected.GET(
		"/oe/:corpusId", ceActions.PairOE)

	monActions := monitoringActions.NewActions(api.jobLogger)

	engine.GET(
		"/monitoring/workers-load", monActions.WorkersLoad)

	engine.GET(
		"/monitoring/workers-load/:workerId", monActions.SingleWorkerLoad)

	engine.GET(
		"/monitoring/recent-records", monActions.RecentRecords)

	engine.GET(
		"/metrics", gin.WrapH(api.metrics.Handler()))

	log.Info().Msgf("starting to listen at %s:%d", api.conf.ListenAddress, api.conf.ListenPort)
	api.server = &http.Server{
		Handler:      engine,
		Addr:         fmt.Sprintf("%s:%d", api.conf.ListenAddress, api.conf.ListenPort),
		WriteTimeout: time.Duration(api.conf.ServerWriteTimeoutSecs) * time.Second,
		ReadTimeout:  time.Duration(api.conf.ServerReadTimeoutSecs) * time.Second,
	}
	go func() {
		if err := api.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()
}

func (api *apiServer) Stop(ctx context.Context) error {
	log.Warn().Msg("shutting down PHONOSTAT HTTP API server")
	return api.server.Shutdown(ctx)
}

func runApiServer(
	conf *cnf.Conf,
	version general.VersionInfo,
) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	radapter := rdb.NewAdapter(conf.Redis, ctx)
	err := radapter.TestConnection(redisConnectionTestTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
		return
	}

	var services []service
	var statusWriter monitoring.StatusWriter
	if conf.Monitoring != nil && conf.Monitoring.DB != nil {
		tsWriter, err := monitoring.NewTimescaleDBWriter(ctx, *conf.Monitoring.DB, conf.TimezoneLocation())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize TimescaleDB writer")
			return
		}
		statusWriter = tsWriter
		services = append(services, tsWriter)

	} else {
		log.Info().Msg("monitoring database not configured, job statistics will not be stored")
	}
	metrics := monitoring.NewMetrics()
	jobLogger := monitoring.NewWorkerJobLogger(statusWriter, metrics, conf.TimezoneLocation())
	server := newAPIServer(conf, radapter, jobLogger, metrics, version)
	services = append(services, jobLogger, server)

	for _, m := range services {
		m.Start(ctx)
	}
	<-ctx.Done()
	log.Warn().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	for _, s := range services {
		wg.Add(1)
		go func(srv service) {
			defer wg.Done()
			if err := srv.Stop(shutdownCtx); err != nil {
				log.Error().Err(err).Type("service", srv).Msg("Error shutting down service")
			}
		}(s)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info().Msg("Graceful shutdown completed")
	case <-shutdownCtx.Done():
		log.Warn().Msg("Shutdown timed out")
	}
}

func newAPIServer(
	conf *cnf.Conf,
	radapter *rdb.Adapter,
	jobLogger *monitoring.WorkerJobLogger,
	metrics *monitoring.Metrics,
	version general.VersionInfo,
) *apiServer {
	return &apiServer{
		conf:      conf,
		radapter:  radapter,
		jobLogger: jobLogger,
		metrics:   metrics,
		version:   version,
	}
}
