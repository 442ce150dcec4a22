package models

// TimeLayout is the login_time format, local time with second precision.
const TimeLayout = "2006-01-02 15:04:05"

type SessionRecord struct {
	Username  string `json:"username"`
	LoginTime string `json:"login_time"`
	IPAddress string `json:"ip_address"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LogoutRequest struct {
	Username string `json:"username"`
}

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type DiskUsage struct {
	Total   uint64  `json:"total"`
	Used    uint64  `json:"used"`
	Free    uint64  `json:"free"`
	Percent float64 `json:"percent"`
}

// SystemStats keeps the memory_info wire name the dashboard polls for.
type SystemStats struct {
	CPUPercent    float64   `json:"cpu_percent"`
	MemoryPercent float64   `json:"memory_info"`
	DiskUsage     DiskUsage `json:"disk_usage"`
}

type Process struct {
	PID        int32   `json:"pid"`
	Name       string  `json:"name"`
	CPUPercent float64 `json:"cpu_percent"`
	MemoryMB   uint64  `json:"memory_mb"`
}

type UptimeResponse struct {
	Uptime string `json:"uptime"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
