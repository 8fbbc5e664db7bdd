package wire

import "github.com/prometheus/client_golang/prometheus"

// newTestRegistry returns a throwaway registry so metrics tests never
// collide with the process-wide default registerer across test runs.
func newTestRegistry() prometheus.Registerer {
	return prometheus.NewRegistry()
}
