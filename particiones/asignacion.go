package particiones

import (
	"fmt"
	"strconv"

	"github.com/sisoputnfrba/simulador-memoria/utils"
)

// NoAsignado es el rótulo de un proceso sin partición
const NoAsignado = "No asignado"

// Asignacion es el resultado de un proceso en la pantalla de particiones sin tiempo
type Asignacion struct {
	Proceso     Proceso `json:"proceso"`
	ParticionID string  `json:"particion"`
	Detalles    string  `json:"detalles"`
}

// Rotulo devuelve la partición asignada o NoAsignado
func (a Asignacion) Rotulo() string {
	if a.ParticionID == "" {
		return NoAsignado
	}
	return a.ParticionID
}

// Asignar ubica cada proceso, en orden, en una partición que conserva para siempre.
// Trabaja sobre una copia: las particiones recibidas no cambian.
func Asignar(particiones []Particion, procesos []Proceso, e Estrategia) ([]Asignacion, error) {
	if err := validarEntrada(particiones, procesos, e, false); err != nil {
		return nil, err
	}

	estado := copiarParticiones(particiones)
	asignaciones := make([]Asignacion, 0, len(procesos))

	for _, proc := range procesos {
		detalles := e.Detalle()
		i := indiceCandidato(estado, proc.Tamanio, e)
		if i < 0 {
			asignaciones = append(asignaciones, Asignacion{
				Proceso:  proc,
				Detalles: detalles + " Ninguna partición disponible.",
			})
			continue
		}

		estado[i].Disponible = false
		detalles += fmt.Sprintf(" Partición %s seleccionada (%sGB).", estado[i].ID, formatearGB(estado[i].Tamanio))
		asignaciones = append(asignaciones, Asignacion{
			Proceso:     proc,
			ParticionID: estado[i].ID,
			Detalles:    detalles,
		})
	}

	utils.InfoLog.WithField("estrategia", e).WithField("procesos", len(procesos)).Info("Asignación completada")
	return asignaciones, nil
}

func formatearGB(tamanio float64) string {
	return strconv.FormatFloat(tamanio, 'f', -1, 64)
}
