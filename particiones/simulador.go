package particiones

import (
	log "github.com/sirupsen/logrus"

	"github.com/sisoputnfrba/simulador-memoria/utils"
)

// TipoEvento distingue admisiones de descartes
type TipoEvento string

const (
	Admitido   TipoEvento = "ADMITIDO"
	Descartado TipoEvento = "DESCARTADO"
)

// Evento registra qué pasó con un proceso en el tick de su llegada
type Evento struct {
	Tick        int        `json:"tick" yaml:"tick"`
	Tipo        TipoEvento `json:"tipo" yaml:"tipo"`
	ProcesoID   string     `json:"proceso" yaml:"proceso"`
	ParticionID string     `json:"particion,omitempty" yaml:"particion,omitempty"`
	Hasta       int        `json:"hasta,omitempty" yaml:"hasta,omitempty"`
}

// Resultado de una corrida: la línea de tiempo y los eventos en orden
type Resultado struct {
	Estrategia Estrategia  `json:"estrategia" yaml:"estrategia"`
	Linea      LineaTiempo `json:"linea" yaml:"linea"`
	Eventos    []Evento    `json:"eventos" yaml:"eventos"`
}

// Descartados devuelve los procesos que no consiguieron partición
func (r Resultado) Descartados() []string {
	var ids []string
	for _, ev := range r.Eventos {
		if ev.Tipo == Descartado {
			ids = append(ids, ev.ProcesoID)
		}
	}
	return ids
}

// Simular recorre los ticks 0..TickFinal liberando, admitiendo y registrando el estado
// de las particiones. No modifica las particiones recibidas.
func Simular(particiones []Particion, procesos []Proceso, e Estrategia) (LineaTiempo, error) {
	res, err := SimularDetallado(particiones, procesos, e)
	if err != nil {
		return nil, err
	}
	return res.Linea, nil
}

// SimularDetallado es Simular más los eventos de admisión y descarte.
// Los procesos que llegan en el mismo tick se atienden en el orden en que fueron cargados;
// uno sin partición candidata se descarta y no se reintenta.
func SimularDetallado(particiones []Particion, procesos []Proceso, e Estrategia) (Resultado, error) {
	if err := validarEntrada(particiones, procesos, e, true); err != nil {
		return Resultado{}, err
	}

	estado := copiarParticiones(particiones)
	res := Resultado{
		Estrategia: e,
		Linea:      make(LineaTiempo, TickFinal+1),
	}

	for tick := 0; tick <= TickFinal; tick++ {
		for i := range estado {
			if estado[i].OcupadaHasta != nil && *estado[i].OcupadaHasta == tick {
				estado[i].liberar()
				utils.InfoLog.WithFields(log.Fields{"tick": tick, "particion": estado[i].ID}).Debug("Partición liberada")
			}
		}

		for _, proc := range procesos {
			if proc.Llegada != tick {
				continue
			}
			i := indiceCandidato(estado, proc.Tamanio, e)
			if i < 0 {
				res.Eventos = append(res.Eventos, Evento{Tick: tick, Tipo: Descartado, ProcesoID: proc.ID})
				utils.InfoLog.WithFields(log.Fields{"tick": tick, "proceso": proc.ID, "tamanio": proc.Tamanio}).Debug("Proceso descartado")
				continue
			}
			hasta := tick + proc.Duracion
			estado[i].ocupar(hasta)
			res.Eventos = append(res.Eventos, Evento{Tick: tick, Tipo: Admitido, ProcesoID: proc.ID, ParticionID: estado[i].ID, Hasta: hasta})
			utils.InfoLog.WithFields(log.Fields{"tick": tick, "proceso": proc.ID, "particion": estado[i].ID, "hasta": hasta}).Debug("Proceso admitido")
		}

		res.Linea[tick] = copiarParticiones(estado)
	}

	utils.InfoLog.WithFields(log.Fields{
		"estrategia":  e,
		"particiones": len(particiones),
		"procesos":    len(procesos),
		"descartados": len(res.Descartados()),
	}).Info("Simulación completada")

	return res, nil
}
