package handlers

import (
	"net/http"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemStatusHandler reports host-level stats for the ops dashboard.
type SystemStatusHandler struct{}

func NewSystemStatusHandler() *SystemStatusHandler {
	return &SystemStatusHandler{}
}

type systemStatus struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemUsedMB     float64 `json:"mem_used_mb"`
	MemTotalMB    float64 `json:"mem_total_mb"`
	MemPercent    float64 `json:"mem_percent"`
	DiskUsedGB    float64 `json:"disk_used_gb"`
	DiskTotalGB   float64 `json:"disk_total_gb"`
	DiskPercent   float64 `json:"disk_percent"`
	UptimeSeconds uint64  `json:"uptime_seconds"`
	Uptime        string  `json:"uptime"`
}

// GetStatus handles GET /api/system/status. Individual collectors are
// best effort; a probe that fails just leaves its fields zeroed.
func (h *SystemStatusHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	status := systemStatus{}

	if c, err := cpu.Percent(0, false); err == nil && len(c) > 0 {
		status.CPUPercent = c[0]
	}
	if v, err := mem.VirtualMemory(); err == nil {
		status.MemUsedMB = float64(v.Used) / 1024 / 1024
		status.MemTotalMB = float64(v.Total) / 1024 / 1024
		status.MemPercent = v.UsedPercent
	}
	if d, err := disk.Usage("/"); err == nil {
		status.DiskUsedGB = float64(d.Used) / 1024 / 1024 / 1024
		status.DiskTotalGB = float64(d.Total) / 1024 / 1024 / 1024
		status.DiskPercent = d.UsedPercent
	}
	if info, err := host.Info(); err == nil {
		status.UptimeSeconds = info.Uptime
		status.Uptime = (time.Duration(info.Uptime) * time.Second).String()
	}

	writeJSON(w, http.StatusOK, status)
}
