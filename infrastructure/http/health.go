package http

import (
	"net/http"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"
)

type HealthResponse struct {
	Status    string  `json:"status"`
	PID       int     `json:"pid"`
	PIDStatus string  `json:"pid_status,omitempty"`
	CPU       float64 `json:"cpu_percent"`
	RSS       uint64  `json:"ram_bytes"`
	Timestamp string  `json:"timestamp"`
}

// Healthz reports liveness plus the process self-stats (CPU, RSS, OS
// status). Metric collection is best-effort: a gopsutil failure still
// yields a 200 with the fields it could fill.
func Healthz(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:    "ok",
		PID:       os.Getpid(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if status, err := p.Status(); err == nil {
			resp.PIDStatus = status
		}
		if cpu, err := p.CPUPercent(); err == nil {
			resp.CPU = cpu
		}
		if mem, err := p.MemoryInfo(); err == nil {
			resp.RSS = mem.RSS
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
