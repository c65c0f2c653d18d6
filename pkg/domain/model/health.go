package model

// HealthStatus is the liveness probe response
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// Healthy builds a passing health status for the named service
func Healthy(service, version string) *HealthStatus {
	return &HealthStatus{
		Status:  "healthy",
		Service: service,
		Version: version,
	}
}
