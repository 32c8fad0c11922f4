package main

import (
	"github.com/uber-go/tally"

	"github.com/sisoputnfrba/simulador-memoria/disco"
	"github.com/sisoputnfrba/simulador-memoria/particiones"
	"github.com/sisoputnfrba/simulador-memoria/reemplazo"
	"github.com/sisoputnfrba/simulador-memoria/utils"
)

// Funciones para actualizar métricas

// Simulaciones y procesos descartados por estrategia
func actualizarMetricasSimulacion(scope tally.Scope, res particiones.Resultado) {
	tagged := scope.Tagged(map[string]string{"estrategia": string(res.Estrategia)})
	tagged.Counter(utils.MetricaSimulaciones).Inc(1)
	if descartados := len(res.Descartados()); descartados > 0 {
		tagged.Counter(utils.MetricaProcesosDescartados).Inc(int64(descartados))
	}
}

// Asignaciones sin tiempo, cuentan como simulación de la misma estrategia
func actualizarMetricasAsignacion(scope tally.Scope, e particiones.Estrategia, asignaciones []particiones.Asignacion) {
	tagged := scope.Tagged(map[string]string{"estrategia": string(e)})
	tagged.Counter(utils.MetricaSimulaciones).Inc(1)
	var descartados int64
	for _, a := range asignaciones {
		if a.ParticionID == "" {
			descartados++
		}
	}
	if descartados > 0 {
		tagged.Counter(utils.MetricaProcesosDescartados).Inc(descartados)
	}
}

// Traducciones y fallos de página
func actualizarMetricasTraduccion(scope tally.Scope, fallo bool) {
	scope.Counter(utils.MetricaTraducciones).Inc(1)
	if fallo {
		scope.Counter(utils.MetricaFallosPagina).Inc(1)
	}
}

// Reemplazos por algoritmo
func actualizarMetricasReemplazo(scope tally.Scope, alg reemplazo.Algoritmo) {
	scope.Tagged(map[string]string{"algoritmo": string(alg)}).Counter(utils.MetricaReemplazos).Inc(1)
}

// Planificaciones de disco por algoritmo
func actualizarMetricasDisco(scope tally.Scope, alg disco.Algoritmo) {
	scope.Tagged(map[string]string{"algoritmo": string(alg)}).Counter(utils.MetricaPlanificacionesDisco).Inc(1)
}
