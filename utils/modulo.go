package utils

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally"
)

// Modulo representa un módulo genérico del sistema
type Modulo struct {
	Nombre      string
	Server      *HTTPServer
	ConfigPath  string
	HandlerFunc map[int]map[string]HTTPHandlerFunc
}

// NuevoModulo crea una nueva instancia de un módulo
func NuevoModulo(nombre string, configPath string) *Modulo {
	return &Modulo{
		Nombre:      nombre,
		ConfigPath:  configPath,
		HandlerFunc: make(map[int]map[string]HTTPHandlerFunc),
	}
}

// RegistrarHandler registra un handler para un tipo de mensaje y operación específicos
func (m *Modulo) RegistrarHandler(tipo int, operacion string, handler HTTPHandlerFunc) {
	if _, existe := m.HandlerFunc[tipo]; !existe {
		m.HandlerFunc[tipo] = make(map[string]HTTPHandlerFunc)
	}
	m.HandlerFunc[tipo][operacion] = handler
}

// Despachar busca el handler de la operación del mensaje, o el "default" del tipo
func (m *Modulo) Despachar(msg *Mensaje) (interface{}, error) {
	handlersPorOperacion, existe := m.HandlerFunc[msg.Tipo]
	if !existe {
		return nil, fmt.Errorf("no hay handlers para el tipo %d", msg.Tipo)
	}

	operacion := msg.Operacion
	if operacion == "" {
		operacion = "default"
	}

	handler, existe := handlersPorOperacion[operacion]
	if !existe {
		handler, existe = handlersPorOperacion["default"]
		if !existe {
			ErrorLog.WithFields(log.Fields{"tipo": msg.Tipo, "operacion": operacion}).Error("No hay handler para operación")
			return nil, fmt.Errorf("no hay handler para operación %s", operacion)
		}
	}

	return handler(msg)
}

// PrepararServidor crea el servidor HTTP del módulo con sus handlers registrados
func (m *Modulo) PrepararServidor(ip string, puerto int, limites LimitesServidor, scope tally.Scope) *HTTPServer {
	m.Server = NewHTTPServer(ip, puerto, m.Nombre)
	m.Server.ConfigurarLimites(limites)
	m.Server.ConfigurarMetricas(scope)

	for tipo := range m.HandlerFunc {
		m.Server.RegisterHTTPHandler(tipo, m.Despachar)
	}

	return m.Server
}

// IniciarServidor arranca el servidor en segundo plano. El canal recibe el error de salida.
func (m *Modulo) IniciarServidor(ip string, puerto int, limites LimitesServidor, scope tally.Scope) <-chan error {
	server := m.PrepararServidor(ip, puerto, limites, scope)

	errCh := make(chan error, 1)
	go func() {
		err := server.Start()
		if err != nil {
			ErrorLog.WithError(err).Error("Servidor HTTP finalizado")
		}
		errCh <- err
	}()

	InfoLog.WithFields(log.Fields{"módulo": m.Nombre, "dirección": fmt.Sprintf("%s:%d", ip, puerto)}).Info("Servidor HTTP iniciado")
	return errCh
}

// ============================================================================
// Constantes para tipos de mensajes
// ============================================================================
const (
	// === COMUNICACIÓN BÁSICA (1-9) ===
	MensajeHandshake = 1 // Conexión inicial

	// === PARTICIONES (10-19) ===
	MensajeAsignarParticiones = 10 // Asignación sin liberación
	MensajeLineaTiempo        = 11 // Simulación por ticks

	// === PAGINACIÓN (20-29) ===
	MensajeTraducir = 20 // Dirección virtual a física

	// === REEMPLAZO DE PÁGINAS (30-39) ===
	MensajeCrearSesion        = 30 // Nueva memoria vacía
	MensajeAgregarPagina      = 31 // Cargar página
	MensajeReemplazar         = 32 // Ejecutar algoritmo
	MensajeEstadoMemoria      = 33 // Consultar páginas e historial
	MensajeReferenciarPagina  = 34 // Encender bit R
	MensajeLimpiarReferencias = 35 // Interrupción de reloj
	MensajeEliminarSesion     = 36 // Liberar la memoria de la sesión

	// === DISCO (40-49) ===
	MensajePlanificarDisco = 40 // Orden de atención de pedidos
)
