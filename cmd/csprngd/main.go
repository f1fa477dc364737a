// Copyright 2024 The entropic-labs Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Command csprngd exposes a Pool over HTTP: random byte delivery, external
// entropy submission, and Prometheus metrics (SPEC_FULL.md's "outward API
// wrapper" domain-stack component, grounded on the gorilla/mux router
// pattern used throughout TheEntropyCollective/noisefs's cmd/*-webui
// servers).
package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/entropic-labs/csprng"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

var (
	addr      = flag.String("addr", ":8420", "address to listen on")
	seedFile  = flag.String("seed-file", "", "path to the on-disk seed file (optional)")
	quickTest = flag.Bool("quick-test", false, "degrade VeryStrong requests to Strong (for CI/dev only)")
)

func main() {
	flag.Parse()

	log := logrus.StandardLogger()
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	pool := csprng.NewPool()
	pool.SetLogger(log)
	if *seedFile != "" {
		pool.SetSeedFile(*seedFile)
	}
	if *quickTest {
		pool.EnableQuickTest()
	}

	s := &server{pool: pool, log: log}

	router := mux.NewRouter()
	router.HandleFunc("/v1/random", s.handleRandom).Methods(http.MethodGet)
	router.HandleFunc("/v1/entropy", s.handleEntropy).Methods(http.MethodPost)
	router.HandleFunc("/v1/stats", s.handleStats).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.HandlerFor(pool.Metrics().Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	srv := &http.Server{Addr: *addr, Handler: router}

	go func() {
		log.WithField("addr", *addr).Info("csprngd listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("csprngd: listen failed")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info("csprngd shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("csprngd: graceful shutdown failed")
	}
	pool.UpdateSeedFile()
	pool.DumpStats()
}

type server struct {
	pool *csprng.Pool
	log  logrus.FieldLogger
}

const maxRandomRequest = 1 << 20 // 1 MiB per call, generous but bounded

// handleRandom serves GET /v1/random?n=<bytes>&level=weak|strong|very-strong.
func (s *server) handleRandom(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.URL.Query().Get("n"))
	if err != nil || n <= 0 {
		http.Error(w, "n must be a positive integer", http.StatusBadRequest)
		return
	}
	if n > maxRandomRequest {
		http.Error(w, "n exceeds the per-request limit", http.StatusBadRequest)
		return
	}
	level, err := parseLevel(r.URL.Query().Get("level"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	buf := make([]byte, n)
	s.pool.Randomize(buf, level)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(randomResponse{Data: base64.StdEncoding.EncodeToString(buf)})
}

type randomResponse struct {
	Data string `json:"data"`
}

type entropyRequest struct {
	Data    string `json:"data"`
	Quality int    `json:"quality"`
}

// handleEntropy serves POST /v1/entropy, folding caller-supplied,
// base64-encoded bytes into the pool at the given quality.
func (s *server) handleEntropy(w http.ResponseWriter, r *http.Request) {
	var req entropyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	buf, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		http.Error(w, "data must be base64-encoded", http.StatusBadRequest)
		return
	}
	if err := s.pool.AddBytes(buf, req.Quality); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// handleStats logs the pool's usage counters and acknowledges the request;
// the counters themselves are scraped via /metrics.
func (s *server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.pool.DumpStats()
	w.WriteHeader(http.StatusNoContent)
}

func parseLevel(raw string) (csprng.Level, error) {
	switch raw {
	case "", "strong":
		return csprng.Strong, nil
	case "weak":
		return csprng.Weak, nil
	case "very-strong":
		return csprng.VeryStrong, nil
	default:
		return 0, errors.New("level must be one of weak, strong, very-strong")
	}
}
