package metrics

import (
	"log"
	"net/http"
	"os"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	serverMutex    sync.Mutex
	currentSrv     *http.Server
	triggerChannel chan os.Signal
)

// SetTriggerChannel sets the channel nudged by POST /trigger to request
// an immediate sweep from the daemon loop
func SetTriggerChannel(ch chan os.Signal) {
	triggerChannel = ch
}

// RecordSweepRun stamps the last-run gauge
func RecordSweepRun() {
	SweepLastRunTimestamp.Set(float64(time.Now().Unix()))
}

// StartServer starts the metrics HTTP server on the specified address
// Exposes /metrics (Prometheus), /health, and /trigger endpoints
func StartServer(addr string, logger *log.Logger) {
	serverMutex.Lock()
	defer serverMutex.Unlock()

	if currentSrv != nil {
		logger.Printf("metrics server already running on %s", currentSrv.Addr)
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","healthy":true}`))
	})

	mux.HandleFunc("/trigger", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		if triggerChannel == nil {
			http.Error(w, "Trigger channel not initialized", http.StatusServiceUnavailable)
			return
		}

		select {
		case triggerChannel <- syscall.SIGUSR1:
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("Sweep triggered"))
		default:
			http.Error(w, "Trigger channel full", http.StatusServiceUnavailable)
		}
	})

	currentSrv = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		if err := currentSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Printf("metrics server error: %v", err)
		}
	}()
}
