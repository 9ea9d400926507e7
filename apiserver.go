// Copyright 2024 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//   This file is part of DETCOUNT.
//
//  DETCOUNT is free software: you can redistribute it and/or modify
//  it under the terms of the GNU General Public License as published by
//  the Free Software Foundation, either version 3 of the License, or
//  (at your option) any later version.
//
//  DETCOUNT is distributed in the hope that it will be useful,
//  but WITHOUT ANY WARRANTY; without even the implied warranty of
//  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//  GNU General Public License for more details.
//
//  You should have received a copy of the GNU General Public License
//  along with DETCOUNT.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"detcount/cnf"
	"detcount/handlers"
	"detcount/openapi"
	"detcount/rdb"
	"detcount/results"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type apiServer struct {
	server   *http.Server
	conf     *cnf.Conf
	provider handlers.CountsProvider
	version  handlers.VersionInfo
}

func (api *apiServer) newEngine() *gin.Engine {
	if !api.conf.IsDebugMode() {
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

	actions := handlers.NewActions(api.provider, api.version)

	engine.GET("/", actions.ServiceInfo)

	engine.GET(
		"/openapi", openapi.MkHandleRequest(api.version.Version, api.conf.PublicURL))

	engine.GET(
		"/corpora", actions.Corpora)

	engine.GET(
		"/counts/:corpusId", actions.Counts)

	engine.GET(
		"/counts/:corpusId/:det", actions.DeterminerCounts)

	return engine
}

func (api *apiServer) Start(ctx context.Context) {
	log.Info().Msgf("starting to listen at %s:%d", api.conf.ListenAddress, api.conf.ListenPort)
	api.server = &http.Server{
		Handler:      api.newEngine(),
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
	log.Warn().Msg("shutting down DETCOUNT HTTP API server")
	return api.server.Shutdown(ctx)
}

func runApiServer(
	conf *cnf.Conf,
	version handlers.VersionInfo,
) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var provider handlers.CountsProvider
	if conf.Redis.IsConfigured() {
		radapter := rdb.NewAdapter(ctx, &conf.Redis)
		defer radapter.Close()
		if err := radapter.TestConnection(redisConnectionTestTimeout); err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
			return
		}
		provider = radapter
		log.Info().Str("host", conf.Redis.Host).Msg("serving counts from Redis")

	} else {
		provider = results.NewFileStore(conf.PairsFiles())
		log.Info().Msg("Redis not configured, serving counts from pair files")
	}
	server := newAPIServer(conf, provider, version)
	runServices(ctx, []service{server})
}

func newAPIServer(
	conf *cnf.Conf,
	provider handlers.CountsProvider,
	version handlers.VersionInfo,
) *apiServer {
	return &apiServer{
		conf:     conf,
		provider: provider,
		version:  version,
	}
}
