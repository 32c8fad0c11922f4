package utils

import (
	"io"
	"time"

	"github.com/uber-go/tally"
)

// Nombres de las métricas publicadas por los módulos
const (
	MetricaSimulaciones         = "simulaciones"
	MetricaProcesosDescartados  = "procesos_descartados"
	MetricaTraducciones         = "traducciones"
	MetricaFallosPagina         = "fallos_pagina"
	MetricaReemplazos           = "reemplazos"
	MetricaPlanificacionesDisco = "planificaciones_disco"
	MetricaPedidosRechazados    = "pedidos_rechazados"
	MetricaPedidosAtendidos     = "pedidos_atendidos"
	MetricaPedidosEnEspera      = "pedidos_en_espera"
)

// InicializarMetricas crea el scope raíz de métricas del módulo.
// Sin reporter las métricas quedan en memoria y solo se leen con Snapshot.
func InicializarMetricas(prefijo string, reporter tally.StatsReporter) (tally.Scope, io.Closer) {
	if prefijo == "" {
		prefijo = "simulador"
	}
	opciones := tally.ScopeOptions{
		Prefix:   prefijo,
		Reporter: reporter,
	}
	intervalo := time.Duration(0)
	if reporter != nil {
		intervalo = time.Second
	}
	scope, closer := tally.NewRootScope(opciones, intervalo)
	InfoLog.WithField("prefijo", prefijo).Info("Métricas inicializadas")
	return scope, closer
}
