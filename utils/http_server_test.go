package utils

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally"
	"go.uber.org/atomic"
)

func servidorDePrueba(t *testing.T, limites LimitesServidor, scope tally.Scope) (*HTTPServer, *httptest.Server) {
	t.Helper()
	s := NewHTTPServer("127.0.0.1", 0, "Prueba")
	s.ConfigurarLimites(limites)
	s.ConfigurarMetricas(scope)
	s.RegisterHTTPHandler(1, func(msg *Mensaje) (interface{}, error) {
		return RespuestaOK(map[string]interface{}{"origen": msg.Origen}), nil
	})
	s.RegisterHTTPHandler(2, func(msg *Mensaje) (interface{}, error) {
		return nil, errors.New("se rompió")
	})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func postear(t *testing.T, url, cuerpo string) *http.Response {
	t.Helper()
	resp, err := http.Post(url+"/mensaje", "application/json", strings.NewReader(cuerpo))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestServidorRespondeMensaje(t *testing.T) {
	s, ts := servidorDePrueba(t, LimitesServidor{}, nil)
	cliente := NewHTTPClientURL(ts.URL, "Kernel")
	defer cliente.CerrarConexiones()

	var resp map[string]interface{}
	require.NoError(t, cliente.EnviarHTTPMensaje(context.Background(), 1, "", nil, &resp))
	assert.Equal(t, "OK", resp["status"])
	assert.Equal(t, "Kernel", resp["origen"])
	assert.Equal(t, int64(1), s.Atendidos())
}

func TestServidorErroresHTTP(t *testing.T) {
	_, ts := servidorDePrueba(t, LimitesServidor{}, nil)

	resp, err := http.Get(ts.URL + "/mensaje")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	assert.Equal(t, http.StatusBadRequest, postear(t, ts.URL, "{no es json").StatusCode)
	assert.Equal(t, http.StatusBadRequest, postear(t, ts.URL, `{"tipo": 50}`).StatusCode)
	assert.Equal(t, http.StatusInternalServerError, postear(t, ts.URL, `{"tipo": 2}`).StatusCode)
}

func TestServidorLimitaPedidos(t *testing.T) {
	scope := tally.NewTestScope("", nil)
	s, ts := servidorDePrueba(t, LimitesServidor{PedidosPorSegundo: 1}, scope)

	assert.Equal(t, http.StatusOK, postear(t, ts.URL, `{"tipo": 1}`).StatusCode)
	assert.Equal(t, http.StatusTooManyRequests, postear(t, ts.URL, `{"tipo": 1}`).StatusCode)

	assert.Equal(t, int64(1), s.Atendidos())
	valores := make(map[string]int64)
	for _, c := range scope.Snapshot().Counters() {
		valores[c.Name()] += c.Value()
	}
	assert.Equal(t, int64(1), valores[MetricaPedidosRechazados])
	assert.Equal(t, int64(1), valores[MetricaPedidosAtendidos])
}

func TestServidorLimitaConcurrencia(t *testing.T) {
	s := NewHTTPServer("127.0.0.1", 0, "Prueba")
	s.ConfigurarLimites(LimitesServidor{MaxConcurrentes: 1})

	var dentro, maximo atomic.Int64
	s.RegisterHTTPHandler(1, func(msg *Mensaje) (interface{}, error) {
		actual := dentro.Inc()
		defer dentro.Dec()
		if actual > maximo.Load() {
			maximo.Store(actual)
		}
		time.Sleep(10 * time.Millisecond)
		return RespuestaOK(nil), nil
	})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	cliente := NewHTTPClientURL(ts.URL, "Prueba")
	defer cliente.CerrarConexiones()

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, cliente.EnviarHTTPMensaje(context.Background(), 1, "", nil, nil))
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), maximo.Load())
	assert.Equal(t, int64(5), s.Atendidos())
}

func TestServidorCuentaPedidosEnEspera(t *testing.T) {
	scope := tally.NewTestScope("", nil)
	s := NewHTTPServer("127.0.0.1", 0, "Prueba")
	s.ConfigurarLimites(LimitesServidor{MaxConcurrentes: 1})
	s.ConfigurarMetricas(scope)

	liberar := make(chan struct{})
	s.RegisterHTTPHandler(1, func(msg *Mensaje) (interface{}, error) {
		<-liberar
		return RespuestaOK(nil), nil
	})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	cliente := NewHTTPClientURL(ts.URL, "Prueba")
	defer cliente.CerrarConexiones()

	enEspera := func() int64 {
		var total int64
		for _, c := range scope.Snapshot().Counters() {
			if c.Name() == MetricaPedidosEnEspera {
				total += c.Value()
			}
		}
		return total
	}

	var wg sync.WaitGroup
	enviar := func() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, cliente.EnviarHTTPMensaje(context.Background(), 1, "", nil, nil))
		}()
	}

	enviar()
	require.Eventually(t, func() bool {
		estado, err := cliente.VerificarConexion(context.Background())
		return err == nil && estado["en_curso"] == float64(1)
	}, 5*time.Second, 10*time.Millisecond)
	assert.Zero(t, enEspera())

	enviar()
	require.Eventually(t, func() bool { return enEspera() == 1 }, 5*time.Second, 10*time.Millisecond)

	close(liberar)
	wg.Wait()
	assert.Equal(t, int64(2), s.Atendidos())
	assert.Zero(t, s.semaforo.Ocupados())
}

func TestServidorHealth(t *testing.T) {
	_, ts := servidorDePrueba(t, LimitesServidor{}, nil)
	cliente := NewHTTPClientURL(ts.URL, "Prueba")
	defer cliente.CerrarConexiones()

	estado, err := cliente.VerificarConexion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", estado["status"])
	assert.Equal(t, "Prueba", estado["module"])
	assert.Equal(t, float64(0), estado["atendidos"])
	assert.NotContains(t, estado, "en_curso")
}

func TestServidorStartConListenerYShutdown(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := NewHTTPServer("127.0.0.1", 0, "Prueba")
	s.Listener = l
	terminado := make(chan error, 1)
	go func() { terminado <- s.Start() }()

	cliente := NewHTTPClientURL("http://"+l.Addr().String(), "Prueba")
	defer cliente.CerrarConexiones()
	require.Eventually(t, func() bool {
		_, err := cliente.VerificarConexion(context.Background())
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))
	assert.Equal(t, http.ErrServerClosed, <-terminado)
}

func TestShutdownSinIniciar(t *testing.T) {
	s := NewHTTPServer("127.0.0.1", 0, "Prueba")
	assert.NoError(t, s.Shutdown(context.Background()))
}

func TestClienteRespuestaNoExitosa(t *testing.T) {
	_, ts := servidorDePrueba(t, LimitesServidor{}, nil)
	cliente := NewHTTPClientURL(ts.URL, "Prueba")
	defer cliente.CerrarConexiones()

	err := cliente.EnviarHTTPMensaje(context.Background(), 2, "", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "se rompió")
}
