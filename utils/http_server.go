package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally"
	"go.uber.org/atomic"
	"golang.org/x/time/rate"
)

// HTTPHandlerFunc es el tipo para los manejadores de mensajes HTTP
type HTTPHandlerFunc func(*Mensaje) (interface{}, error)

// LimitesServidor acota el tráfico que atiende el servidor
type LimitesServidor struct {
	PedidosPorSegundo int // 0 = sin límite
	MaxConcurrentes   int // 0 = sin límite
}

// HTTPServer representa un servidor HTTP para cualquier módulo
type HTTPServer struct {
	IP       string
	Puerto   int
	Nombre   string
	mu       sync.Mutex
	server   *http.Server
	handlers map[int]HTTPHandlerFunc
	Listener net.Listener

	limitador *rate.Limiter
	semaforo  *Semaforo
	atendidos *atomic.Int64
	scope     tally.Scope
}

// NewHTTPServer crea un nuevo servidor HTTP
func NewHTTPServer(ip string, puerto int, nombre string) *HTTPServer {
	return &HTTPServer{
		IP:        ip,
		Puerto:    puerto,
		Nombre:    nombre,
		handlers:  make(map[int]HTTPHandlerFunc),
		atendidos: atomic.NewInt64(0),
		scope:     tally.NoopScope,
	}
}

// ConfigurarLimites activa el limitador de pedidos y el semáforo de concurrencia
func (s *HTTPServer) ConfigurarLimites(limites LimitesServidor) {
	if limites.PedidosPorSegundo > 0 {
		s.limitador = rate.NewLimiter(rate.Limit(limites.PedidosPorSegundo), limites.PedidosPorSegundo)
	}
	if limites.MaxConcurrentes > 0 {
		s.semaforo = NewSemaforo(limites.MaxConcurrentes)
	}
}

// ConfigurarMetricas define el scope donde se cuentan los pedidos
func (s *HTTPServer) ConfigurarMetricas(scope tally.Scope) {
	if scope != nil {
		s.scope = scope
	}
}

// RegisterHTTPHandler registra un manejador para un tipo específico de mensaje
func (s *HTTPServer) RegisterHTTPHandler(tipoMensaje int, handler HTTPHandlerFunc) {
	s.handlers[tipoMensaje] = handler
}

// Atendidos devuelve la cantidad de mensajes procesados por algún manejador
func (s *HTTPServer) Atendidos() int64 {
	return s.atendidos.Load()
}

// Handler arma el mux con los endpoints del módulo
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	// Endpoint para recibir mensajes
	mux.HandleFunc("/mensaje", s.manejarMensaje)

	// Endpoint de healthcheck
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		estado := map[string]interface{}{
			"status":    "ok",
			"module":    s.Nombre,
			"atendidos": s.atendidos.Load(),
		}
		if s.semaforo != nil {
			estado["en_curso"] = s.semaforo.Ocupados()
		}
		json.NewEncoder(w).Encode(estado)
	})

	return mux
}

func (s *HTTPServer) manejarMensaje(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
		return
	}

	if s.limitador != nil && !s.limitador.Allow() {
		s.scope.Counter(MetricaPedidosRechazados).Inc(1)
		http.Error(w, "Demasiados pedidos", http.StatusTooManyRequests)
		return
	}

	var mensaje Mensaje
	err := json.NewDecoder(r.Body).Decode(&mensaje)
	if err != nil {
		http.Error(w, fmt.Sprintf("Error decodificando mensaje: %v", err), http.StatusBadRequest)
		return
	}

	handler, exists := s.handlers[mensaje.Tipo]
	if !exists {
		http.Error(w, fmt.Sprintf("No hay manejador para el tipo de mensaje %d", mensaje.Tipo), http.StatusBadRequest)
		return
	}

	if s.semaforo != nil {
		if !s.semaforo.TryWait() {
			s.scope.Counter(MetricaPedidosEnEspera).Inc(1)
			s.semaforo.Wait()
		}
		defer s.semaforo.Signal()
	}

	respuesta, err := handler(&mensaje)
	if err != nil {
		http.Error(w, fmt.Sprintf("Error en el manejador: %v", err), http.StatusInternalServerError)
		return
	}

	s.atendidos.Inc()
	s.scope.Counter(MetricaPedidosAtendidos).Inc(1)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(respuesta)
}

// Start inicia el servidor HTTP
func (s *HTTPServer) Start() error {
	mux := s.Handler()

	// Si ya tiene Listener asignado (tests o puerto elegido por el sistema)
	if s.Listener != nil {
		InfoLog.WithFields(log.Fields{"módulo": s.Nombre, "dirección": s.Listener.Addr().String()}).Info("Servidor HTTP escuchando")
		srv := s.nuevoServidor("", mux)
		return srv.Serve(s.Listener)
	}

	address := fmt.Sprintf("%s:%d", s.IP, s.Puerto)
	srv := s.nuevoServidor(address, mux)

	InfoLog.WithFields(log.Fields{"módulo": s.Nombre, "dirección": address}).Info("Servidor HTTP escuchando")
	return srv.ListenAndServe()
}

func (s *HTTPServer) nuevoServidor(address string, mux http.Handler) *http.Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.server = &http.Server{
		Addr:              address,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s.server
}

// Shutdown detiene el servidor esperando a los pedidos en curso
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.server
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
