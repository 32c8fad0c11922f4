package main

import "github.com/sisoputnfrba/simulador-memoria/paginacion"

// SimuladorConfig representa la configuración del módulo Simulador
type SimuladorConfig struct {
	IPSimulador       string `yaml:"IP_SIMULADOR" validate:"nonzero"`
	PortSimulador     int    `yaml:"PUERTO_SIMULADOR" validate:"min=1,max=65535"`
	LogLevel          string `yaml:"LOG_LEVEL"`
	PageSize          int    `yaml:"TAM_PAGINA" validate:"min=0"`       // Tamaño de página en bytes, 0 = 4096
	DumpPath          string `yaml:"DUMP_PATH" validate:"nonzero"`      // Ruta para los volcados de líneas de tiempo
	RequestsPerSecond int    `yaml:"LIMITE_PEDIDOS" validate:"min=0"`   // Pedidos por segundo, 0 = sin límite
	MaxConcurrent     int    `yaml:"MAX_CONCURRENTES" validate:"min=0"` // Handlers en paralelo, 0 = sin límite
	MaxSessions       int    `yaml:"MAX_SESIONES" validate:"min=0"`     // Sesiones de reemplazo vivas, 0 = 1000
	MetricsPrefix     string `yaml:"PREFIJO_METRICAS"`
}

func (c *SimuladorConfig) tamanioPagina() int {
	if c.PageSize <= 0 {
		return paginacion.TamanioPagina
	}
	return c.PageSize
}
