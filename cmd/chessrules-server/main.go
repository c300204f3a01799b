// chessrules-server serves chess sessions over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/hailam/chessrules/internal/server"
	"github.com/hailam/chessrules/internal/storage"
)

func main() {
	addr := flag.String("addr", getenv("CHESSRULES_ADDR", ":8080"), "listen address")
	dataDir := flag.String("data", "", "database directory (default: $"+storage.DataDirEnv+" or the platform data dir)")
	memory := flag.Bool("memory", getenb("CHESSRULES_MEMORY", false), "keep saves in memory only")
	cpuprofile := flag.String("cpuprofile", getenv("CPUPROFILE", ""), "write cpu profile to file")
	flag.Parse()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", *cpuprofile)
	}

	store, err := openStorage(*dataDir, *memory)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer store.Close()

	srv := &http.Server{
		Addr:              *addr,
		Handler:           server.New(store, os.Stdout),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("HTTP listening on %s", *addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("http: %v", err)
	}
}

func openStorage(dir string, memory bool) (*storage.Storage, error) {
	switch {
	case memory:
		log.Printf("Saves are kept in memory only")
		return storage.OpenInMemory()
	case dir != "":
		return storage.Open(dir)
	}
	return storage.NewStorage()
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenb(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}
