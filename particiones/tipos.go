package particiones

import (
	"encoding/json"
	"strings"

	"github.com/sisoputnfrba/simulador-memoria/utils"
)

// TickFinal es el último tick simulado (inclusive)
const TickFinal = 10

// Estrategia de elección entre particiones candidatas
type Estrategia string

const (
	FirstFit Estrategia = "First-Fit"
	BestFit  Estrategia = "Best-Fit"
	WorstFit Estrategia = "Worst-Fit"
)

// Estrategias en el orden en que se ofrecen al usuario
var Estrategias = []Estrategia{FirstFit, BestFit, WorstFit}

// ParsearEstrategia acepta "First-Fit", "firstfit", "first" y variantes
func ParsearEstrategia(texto string) (Estrategia, error) {
	normalizado := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(texto))
	switch normalizado {
	case "firstfit", "first":
		return FirstFit, nil
	case "bestfit", "best":
		return BestFit, nil
	case "worstfit", "worst":
		return WorstFit, nil
	}
	return "", utils.EntradaInvalida("estrategia desconocida %q", texto)
}

// Detalle es la explicación que acompaña al resultado de cada estrategia
func (e Estrategia) Detalle() string {
	switch e {
	case FirstFit:
		return "Busca la primera partición donde quepa."
	case BestFit:
		return "Busca la menor partición disponible donde quepa."
	case WorstFit:
		return "Busca la mayor partición disponible donde quepa."
	}
	return ""
}

func (e Estrategia) valida() bool {
	return e == FirstFit || e == BestFit || e == WorstFit
}

// Particion es un bloque fijo de memoria que aloja a lo sumo un proceso.
// OcupadaHasta es nil si y solo si la partición está disponible.
type Particion struct {
	ID           string  `json:"id" yaml:"id"`
	Tamanio      float64 `json:"tamanio" yaml:"tamanio"` // GB
	Disponible   bool    `json:"disponible" yaml:"disponible"`
	OcupadaHasta *int    `json:"ocupada_hasta,omitempty" yaml:"ocupada_hasta,omitempty"`
}

// UnmarshalJSON completa "disponible" cuando no viene: la partición está libre
// salvo que traiga "ocupada_hasta".
func (p *Particion) UnmarshalJSON(b []byte) error {
	type particion Particion
	var crudo struct {
		particion
		Disponible *bool `json:"disponible"`
	}
	if err := json.Unmarshal(b, &crudo); err != nil {
		return err
	}
	*p = Particion(crudo.particion)
	if crudo.Disponible != nil {
		p.Disponible = *crudo.Disponible
	} else {
		p.Disponible = p.OcupadaHasta == nil
	}
	return nil
}

// NuevaParticion crea una partición libre
func NuevaParticion(id string, tamanio float64) Particion {
	return Particion{ID: id, Tamanio: tamanio, Disponible: true}
}

func (p Particion) copia() Particion {
	if p.OcupadaHasta != nil {
		hasta := *p.OcupadaHasta
		p.OcupadaHasta = &hasta
	}
	return p
}

func (p *Particion) ocupar(hasta int) {
	p.Disponible = false
	p.OcupadaHasta = &hasta
}

func (p *Particion) liberar() {
	p.Disponible = true
	p.OcupadaHasta = nil
}

// Proceso pide una partición de Tamanio GB durante Duracion ticks a partir de Llegada
type Proceso struct {
	ID       string  `json:"id" yaml:"id"`
	Llegada  int     `json:"llegada" yaml:"llegada"`
	Tamanio  float64 `json:"tamanio" yaml:"tamanio"`
	Duracion int     `json:"duracion" yaml:"duracion"`
}

// LineaTiempo guarda, por tick, el estado de todas las particiones en su orden original
type LineaTiempo map[int][]Particion

// Ticks devuelve los ticks simulados en orden
func (l LineaTiempo) Ticks() []int {
	ticks := make([]int, 0, len(l))
	for t := 0; t <= TickFinal; t++ {
		if _, ok := l[t]; ok {
			ticks = append(ticks, t)
		}
	}
	return ticks
}

// ParticionesPorDefecto son las particiones con las que arranca la pantalla
func ParticionesPorDefecto() []Particion {
	return []Particion{
		NuevaParticion("A", 1),
		NuevaParticion("B", 0.5),
		NuevaParticion("C", 2),
	}
}

func copiarParticiones(particiones []Particion) []Particion {
	copias := make([]Particion, len(particiones))
	for i, p := range particiones {
		copias[i] = p.copia()
	}
	return copias
}
