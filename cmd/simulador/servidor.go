package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/sisoputnfrba/simulador-memoria/utils"
)

const nombreModulo = "Simulador"

// iniciarModulo carga la configuración y deja el módulo listo con sus handlers
func iniciarModulo(rutaConfig string) (*utils.Modulo, *Simulador, *SimuladorConfig, error) {
	config, err := utils.CargarConfiguracion[SimuladorConfig](rutaConfig)
	if err != nil {
		return nil, nil, nil, err
	}

	// Actualizar logger con configuración del archivo
	utils.InicializarLogger(config.LogLevel, nombreModulo)
	utils.InfoLog.WithFields(log.Fields{"nivel_log": config.LogLevel, "config_path": rutaConfig}).Info("Configuración cargada")

	// Verificar directorio de volcados
	if err := os.MkdirAll(config.DumpPath, 0755); err != nil {
		utils.ErrorLog.WithError(err).Warn("No se pudo crear directorio para volcados")
	} else {
		utils.InfoLog.WithField("ruta", config.DumpPath).Info("Directorio para volcados verificado")
	}

	modulo := utils.NuevoModulo(nombreModulo, rutaConfig)
	scope, cierre := utils.InicializarMetricas(config.MetricsPrefix, nil)
	sim := nuevoSimulador(config, scope)
	sim.cierreMetricas = cierre
	sim.registrarHandlers(modulo)

	return modulo, sim, config, nil
}

func limitesDe(config *SimuladorConfig) utils.LimitesServidor {
	return utils.LimitesServidor{
		PedidosPorSegundo: config.RequestsPerSecond,
		MaxConcurrentes:   config.MaxConcurrent,
	}
}

// ejecutarServidor atiende mensajes hasta que se cancela el contexto o falla el servidor
func ejecutarServidor(ctx context.Context, rutaConfig string) error {
	modulo, sim, config, err := iniciarModulo(rutaConfig)
	if err != nil {
		return errors.Wrap(err, "no se pudo iniciar el simulador")
	}
	defer sim.cierreMetricas.Close()

	errCh := modulo.IniciarServidor(config.IPSimulador, config.PortSimulador, limitesDe(config), sim.scope)

	select {
	case err := <-errCh:
		return errors.Wrap(err, "el servidor terminó inesperadamente")
	case <-ctx.Done():
	}

	utils.InfoLog.Info("Deteniendo servidor")
	apagado, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := modulo.Server.Shutdown(apagado); err != nil {
		return errors.Wrap(err, "error al detener el servidor")
	}

	utils.InfoLog.WithFields(log.Fields{
		"atendidos": modulo.Server.Atendidos(),
		"sesiones":  sim.sesiones.cantidad(),
	}).Info("Servidor detenido")
	return nil
}

// contextoConSenales se cancela con SIGINT o SIGTERM
func contextoConSenales() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
