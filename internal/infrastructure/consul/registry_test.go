package consul

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"bookstore-service/internal/infrastructure/logger"

	consulapi "github.com/hashicorp/consul/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAgent struct {
	mu           sync.Mutex
	paths        []string
	registered   consulapi.AgentServiceRegistration
	failRegister bool
}

func (a *fakeAgent) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.paths = append(a.paths, r.Method+" "+r.URL.Path)
	if r.URL.Path == "/v1/agent/service/register" {
		if a.failRegister {
			http.Error(w, "agent unavailable", http.StatusInternalServerError)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&a.registered)
	}
	w.WriteHeader(http.StatusOK)
}

func (a *fakeAgent) calls() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.paths...)
}

func newTestRegistry(t *testing.T, agent *fakeAgent) *Registry {
	t.Helper()

	srv := httptest.NewServer(agent)
	t.Cleanup(srv.Close)

	registry, err := NewRegistry(srv.URL, logger.NewNop())
	require.NoError(t, err)
	return registry
}

func TestRegistry_InvalidPort(t *testing.T) {
	agent := &fakeAgent{}
	registry := newTestRegistry(t, agent)

	err := registry.Register("bookstore", "localhost", "http")
	assert.ErrorContains(t, err, "invalid service port")

	registry.Deregister()
	assert.Empty(t, agent.calls())
}

func TestRegistry_DeregisterWithoutRegister(t *testing.T) {
	agent := &fakeAgent{}
	registry := newTestRegistry(t, agent)

	registry.Deregister()
	assert.Empty(t, agent.calls())
}

func TestRegistry_RegisterAndDeregister(t *testing.T) {
	agent := &fakeAgent{}
	registry := newTestRegistry(t, agent)

	require.NoError(t, registry.Register("bookstore", "localhost", "3000"))
	assert.Equal(t, "bookstore-localhost-3000", agent.registered.ID)
	assert.Equal(t, "bookstore", agent.registered.Name)
	assert.Equal(t, 3000, agent.registered.Port)
	require.NotNil(t, agent.registered.Check)
	assert.Equal(t, "http://localhost:3000/ping", agent.registered.Check.HTTP)

	registry.Deregister()
	registry.Deregister()

	assert.Equal(t, []string{
		"PUT /v1/agent/service/register",
		"PUT /v1/agent/service/deregister/bookstore-localhost-3000",
	}, agent.calls())
}

func TestRegistry_RegisterRejectedByAgent(t *testing.T) {
	agent := &fakeAgent{failRegister: true}
	registry := newTestRegistry(t, agent)

	err := registry.Register("bookstore", "localhost", "3000")
	assert.ErrorContains(t, err, "failed to register service")

	registry.Deregister()
	assert.Equal(t, []string{"PUT /v1/agent/service/register"}, agent.calls())
}
