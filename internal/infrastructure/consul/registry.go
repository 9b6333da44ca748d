package consul

import (
	"fmt"
	"strconv"

	consulapi "github.com/hashicorp/consul/api"

	"bookstore-service/internal/infrastructure/logger"
)

// Registry registers the HTTP listener with a Consul agent and removes it on
// shutdown. Consul polls /ping to track health.
type Registry struct {
	client    *consulapi.Client
	serviceID string
	logger    *logger.Logger
}

func NewRegistry(addr string, logger *logger.Logger) (*Registry, error) {
	cfg := consulapi.DefaultConfig()
	cfg.Address = addr

	client, err := consulapi.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create consul client: %w", err)
	}

	return &Registry{client: client, logger: logger}, nil
}

func (r *Registry) Register(name, host, port string) error {
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("invalid service port %q: %w", port, err)
	}

	serviceID := fmt.Sprintf("%s-%s-%s", name, host, port)
	registration := &consulapi.AgentServiceRegistration{
		ID:      serviceID,
		Name:    name,
		Address: host,
		Port:    portNum,
		Check: &consulapi.AgentServiceCheck{
			HTTP:                           fmt.Sprintf("http://%s:%d/ping", host, portNum),
			Interval:                       "10s",
			Timeout:                        "2s",
			DeregisterCriticalServiceAfter: "1m",
		},
	}

	if err := r.client.Agent().ServiceRegister(registration); err != nil {
		return fmt.Errorf("failed to register service: %w", err)
	}

	r.serviceID = serviceID
	r.logger.Info("Registered with Consul", "service_id", r.serviceID)
	return nil
}

func (r *Registry) Deregister() {
	if r.serviceID == "" {
		return
	}
	if err := r.client.Agent().ServiceDeregister(r.serviceID); err != nil {
		r.logger.Warn("Failed to deregister from Consul", "service_id", r.serviceID, "error", err)
		return
	}
	r.logger.Info("Deregistered from Consul", "service_id", r.serviceID)
	r.serviceID = ""
}
