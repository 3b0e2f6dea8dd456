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
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/czcorpus/cnc-gokit/collections"
	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"phonostat/cnf"
	"phonostat/general"
	"phonostat/table"
)

const (
	redisConnectionTestTimeout = 120 * time.Second
)

var (
	version   string
	buildDate string
	gitCommit string
)

type service interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
}

func getEnv(name string) string {
	for _, p := range os.Environ() {
		items := strings.SplitN(p, "=", 2)
		if len(items) == 2 && items[0] == name {
			return items[1]
		}
	}
	return ""
}

func getRequestOrigin(ctx *gin.Context) string {
	currOrigin, ok := ctx.Request.Header["Origin"]
	if ok {
		return currOrigin[0]
	}
	return ""
}

func additionalLogEvents() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		logging.AddLogEvent(ctx, "userAgent", ctx.Request.UserAgent())
		logging.AddLogEvent(ctx, "corpusId", ctx.Param("corpusId"))
		ctx.Next()
	}
}

func CORSMiddleware(conf *cnf.Conf) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if strings.HasSuffix(ctx.Request.URL.Path, "/openapi") {
			ctx.Header("Access-Control-Allow-Origin", "*")
			ctx.Header("Access-Control-Allow-Methods", "GET")
			ctx.Header("Access-Control-Allow-Headers", "Content-Type")

		} else {
			var allowedOrigin string
			currOrigin := getRequestOrigin(ctx)
			for _, origin := range conf.CorsAllowedOrigins {
				if currOrigin == origin {
					allowedOrigin = origin
					break
				}
			}
			if allowedOrigin != "" {
				ctx.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
				ctx.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
				ctx.Writer.Header().Set(
					"Access-Control-Allow-Headers",
					"Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With",
				)
				ctx.Writer.Header().Set("Access-Control-Allow-Methods", "OPTIONS, GET")
			}

			if ctx.Request.Method == http.MethodOptions {
				ctx.AbortWithStatus(http.StatusNoContent)
				return
			}
		}
		ctx.Next()
	}
}

// AuthRequired checks the configured auth header. With no tokens
// configured, all requests pass.
func AuthRequired(conf *cnf.Conf) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if len(conf.AuthTokens) > 0 && !collections.SliceContains(conf.AuthTokens, ctx.GetHeader(conf.AuthHeaderName)) {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		ctx.Next()
	}
}

func cleanVersionInfo(v string) string {
	return strings.TrimLeft(strings.Trim(v, "'"), "v")
}

func loadConfigOrDie(path string, requireRedis bool) *cnf.Conf {
	conf, err := cnf.LoadConfig(path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cnf.ValidateAndDefaults(conf, requireRedis); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	return conf
}

// @title           PHONOSTAT API
// @version         0.1
// @description     Phonotactic statistics (CV shapes, observed/expected ratios of segment pairs) over word lists
// @license.name    GPL-3.0
// @BasePath        /
func main() {
	version := general.VersionInfo{
		Version:   cleanVersionInfo(version),
		BuildDate: cleanVersionInfo(buildDate),
		GitCommit: cleanVersionInfo(gitCommit),
	}

	outFile := flag.String("o", "", "Save the result table (TSV) to a file instead of writing it to stdout")
	raw := flag.Bool("raw", false, "Write unrounded O/E values")
	naValue := flag.String("na", table.DfltNA, "A value written instead of undefined values")
	pairedOnly := flag.Bool("paired-only", false, "Count marginals only from words with at least two inventory segments")
	confPath := flag.String("config", "", "A path to a config file (for server and worker, it can be also passed as an argument)")
	flag.Usage = func() {
		prog := filepath.Base(os.Args[0])
		fmt.Fprintf(os.Stderr, "PHONOSTAT - phonotactic statistics of word lists\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "\t%s [options] cv CORPUS [PATTERN|default] [VOWELS]\n", prog)
		fmt.Fprintf(os.Stderr, "\t%s [options] oe CORPUS INVENTORY [DIGITS]\n", prog)
		fmt.Fprintf(os.Stderr, "\t%s [options] counts CORPUS INVENTORY\n", prog)
		fmt.Fprintf(os.Stderr, "\t%s [options] server [config.json]\n", prog)
		fmt.Fprintf(os.Stderr, "\t%s [options] worker [config.json]\n", prog)
		fmt.Fprintf(os.Stderr, "\t%s [options] test [config.json]\n", prog)
		fmt.Fprintf(os.Stderr, "\t%s version\n\n", prog)
		fmt.Fprintf(os.Stderr, "CORPUS is either a path to a word list (one word per line, segments separated\n")
		fmt.Fprintf(os.Stderr, "by spaces) or an ID of a corpus configured in -config. INVENTORY is a space\n")
		fmt.Fprintf(os.Stderr, "separated list of segments or a name of a configured inventory.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	action := flag.Arg(0)

	switch action {
	case "version":
		fmt.Printf("phonostat %s\nbuild date: %s\nlast commit: %s\n", version.Version, version.BuildDate, version.GitCommit)
		return
	case "cv", "oe", "counts":
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		opts := cliOptions{
			outFile:    *outFile,
			raw:        *raw,
			na:         *naValue,
			pairedOnly: *pairedOnly,
		}
		if *confPath != "" {
			opts.conf = loadConfigOrDie(*confPath, false)
		}
		if err := runCLIAction(action, flag.Args()[1:], opts, os.Stdout); err != nil {
			log.Fatal().Err(err).Msgf("failed to run %s", action)
		}
		return
	case "server", "worker", "test":
	case "":
		flag.Usage()
		os.Exit(1)
	default:
		log.Fatal().Msgf("Unknown action %s", action)
	}

	srcPath := *confPath
	if flag.Arg(1) != "" {
		srcPath = flag.Arg(1)
	}
	conf, err := cnf.LoadConfig(srcPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	if action == "worker" {
		wConf := conf.Logging
		if wConf.Path != "" {
			wConf.Path = filepath.Join(filepath.Dir(wConf.Path), "worker.log")
		}
		logging.SetupLogging(wConf)
		log.Logger = log.Logger.With().Str("worker", getWorkerID()).Logger()

	} else {
		logging.SetupLogging(conf.Logging)
	}
	if err := cnf.ValidateAndDefaults(conf, action != "test"); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	switch action {
	case "test":
		if err := conf.Corpora.ValidateFiles("corpora"); err != nil {
			log.Fatal().Err(err).Msg("invalid corpus file")
		}
		log.Info().Str("source", conf.GetSourcePath()).Msg("config OK")
	case "server":
		log.Info().Msg("Starting PHONOSTAT")
		runApiServer(conf, version)
	case "worker":
		runWorker(conf)
	}
}
