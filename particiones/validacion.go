package particiones

import (
	"fmt"
	"math"

	"go.uber.org/multierr"

	"github.com/sisoputnfrba/simulador-memoria/utils"
)

// TamanioValido indica si un tamaño en GB es positivo y finito. NaN no lo es.
func TamanioValido(tamanio float64) bool {
	return tamanio > 0 && !math.IsInf(tamanio, 1)
}

// validarEntrada junta todos los problemas de la entrada en un solo error
func validarEntrada(particiones []Particion, procesos []Proceso, e Estrategia, conTiempo bool) error {
	var err error

	if !e.valida() {
		err = multierr.Append(err, fmt.Errorf("estrategia desconocida %q", e))
	}

	for _, p := range particiones {
		if p.ID == "" {
			err = multierr.Append(err, fmt.Errorf("partición sin ID"))
		}
		if !TamanioValido(p.Tamanio) {
			err = multierr.Append(err, fmt.Errorf("partición %s: el tamaño debe ser positivo y finito", p.ID))
		}
		if p.Disponible != (p.OcupadaHasta == nil) {
			err = multierr.Append(err, fmt.Errorf("partición %s: disponibilidad y ocupación inconsistentes", p.ID))
		}
		if p.OcupadaHasta != nil && *p.OcupadaHasta < 0 {
			err = multierr.Append(err, fmt.Errorf("partición %s: ocupada hasta un tick negativo (%d)", p.ID, *p.OcupadaHasta))
		}
	}

	for _, proc := range procesos {
		if proc.ID == "" {
			err = multierr.Append(err, fmt.Errorf("proceso sin ID"))
		}
		if !TamanioValido(proc.Tamanio) {
			err = multierr.Append(err, fmt.Errorf("proceso %s: el tamaño debe ser positivo y finito", proc.ID))
		}
		if !conTiempo {
			continue
		}
		if proc.Llegada < 0 {
			err = multierr.Append(err, fmt.Errorf("proceso %s: la llegada no puede ser negativa", proc.ID))
		}
		if proc.Duracion <= 0 {
			err = multierr.Append(err, fmt.Errorf("proceso %s: la duración debe ser de al menos un tick", proc.ID))
		}
	}

	if err != nil {
		return utils.EntradaInvalida("%v", err)
	}
	return nil
}
