package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CAFxX/httpcompression"
	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/goccy/go-json"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cagware/stperf"
	"github.com/cagware/stperf/internal/errorutil"
	"github.com/cagware/stperf/internal/flatten"
	"github.com/cagware/stperf/internal/logutil"
)

type environment struct {
	config ServiceConfig
}

var release string

func newEnvironment() (*environment, error) {
	var e environment
	var err error
	e.config, err = loadConfig()
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (e *environment) newRouter() (*httprouter.Router, error) {
	compress, err := httpcompression.DefaultAdapter()
	if err != nil {
		return nil, err
	}

	routes := []struct {
		method  string
		path    string
		handler http.HandlerFunc
	}{
		{http.MethodGet, "/health", e.getHealth},
		{http.MethodGet, "/report", e.getReport},
		{http.MethodGet, "/calltree", e.getCallTree},
		{http.MethodPost, "/reset", e.postReset},
	}

	router := httprouter.New()

	for _, route := range routes {
		router.Handler(route.method, route.path, compress(route.handler))
	}

	return router, nil
}

func main() {
	logutil.ConfigureLogger()

	env, err := newEnvironment()
	if err != nil {
		log.Fatal().Err(err).Msg("error setting up environment")
	}

	if level, lerr := zerolog.ParseLevel(env.config.LogLevel); lerr == nil {
		log.Logger = log.Logger.Sample(logutil.LevelSampler{Level: level})
	}

	if env.config.SentryDSN != "" {
		err = sentry.Init(sentry.ClientOptions{
			Dsn:              env.config.SentryDSN,
			EnableTracing:    true,
			Release:          release,
			TracesSampleRate: 1.0,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("can't initialize sentry")
		}
	}

	router, err := env.newRouter()
	if err != nil {
		sentry.CaptureException(err)
		log.Fatal().Err(err).Msg("error setting up the router")
	}

	go env.runWorkload()

	server := http.Server{
		Addr:    ":" + env.config.Port,
		Handler: sentryhttp.New(sentryhttp.Options{}).Handle(router),
	}

	waitForShutdown := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c

		cctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(cctx); err != nil {
			sentry.CaptureException(err)
			log.Err(err).Msg("error shutting down server")
		}

		close(waitForShutdown)
	}()

	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		sentry.CaptureException(err)
		log.Err(err).Msg("server failed")
	}

	<-waitForShutdown

	sentry.Flush(5 * time.Second)
}

func (e *environment) getHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (e *environment) getReport(w http.ResponseWriter, _ *http.Request) {
	tree := stperf.GetTree()
	if len(tree) == 0 {
		http.Error(w, errorutil.ErrNoData.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, stperf.Render(tree))
}

func (e *environment) getCallTree(w http.ResponseWriter, r *http.Request) {
	hub := sentry.GetHubFromContext(r.Context())

	tree := stperf.GetTree()
	if r.URL.Query().Get("raw") != "" {
		tree = stperf.GetRawTree()
	}
	if len(tree) == 0 {
		http.Error(w, errorutil.ErrNoData.Error(), http.StatusNotFound)
		return
	}

	b, err := json.Marshal(flatten.Flatten(tree))
	if err != nil {
		if hub != nil {
			hub.CaptureException(err)
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(b)
}

func (e *environment) postReset(w http.ResponseWriter, _ *http.Request) {
	stperf.ResetAll()
	w.WriteHeader(http.StatusNoContent)
}
