package reemplazo

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/sisoputnfrba/simulador-memoria/utils"
)

// Algoritmo de reemplazo de páginas
type Algoritmo string

const (
	FIFO          Algoritmo = "FIFO"
	LRU           Algoritmo = "LRU"
	NRU           Algoritmo = "NRU"
	SegundaChance Algoritmo = "Segunda Chance"
)

// Algoritmos en el orden de los botones de la pantalla
var Algoritmos = []Algoritmo{FIFO, LRU, NRU, SegundaChance}

// ErrMemoriaVacia se devuelve al pedir un reemplazo sin páginas cargadas
var ErrMemoriaVacia = errors.Wrap(utils.ErrColeccionVacia, "no hay páginas para reemplazar")

// ParsearAlgoritmo acepta el nombre del botón o variantes en minúscula
func ParsearAlgoritmo(texto string) (Algoritmo, error) {
	normalizado := strings.ToUpper(strings.NewReplacer("-", "", "_", "", " ", "").Replace(texto))
	switch normalizado {
	case "FIFO":
		return FIFO, nil
	case "LRU":
		return LRU, nil
	case "NRU":
		return NRU, nil
	case "SEGUNDACHANCE", "SECONDCHANCE":
		return SegundaChance, nil
	}
	return "", utils.EntradaInvalida("algoritmo desconocido %q", texto)
}

// Pagina residente con su bit de referencia
type Pagina struct {
	ID           string `json:"id"`
	Referenciada bool   `json:"referenciada"`
}

// Memoria es el estado de la pantalla de reemplazo. Es un valor: cada operación
// devuelve una Memoria nueva y deja intacta la original.
type Memoria struct {
	Paginas   []Pagina `json:"paginas"`
	Historial []string `json:"historial"`
}

// Reemplazo describe el efecto de una llamada a Reemplazar
type Reemplazo struct {
	Algoritmo     Algoritmo `json:"algoritmo"`
	Expulsada     string    `json:"expulsada,omitempty"`
	SegundaChance bool      `json:"segunda_chance"`
	Entrada       string    `json:"entrada"`
}

func (m Memoria) clonar() Memoria {
	copia := Memoria{
		Paginas:   make([]Pagina, len(m.Paginas)),
		Historial: make([]string, len(m.Historial)),
	}
	copy(copia.Paginas, m.Paginas)
	copy(copia.Historial, m.Historial)
	return copia
}

// AgregarPagina carga una página con el bit de referencia encendido
func (m Memoria) AgregarPagina(id string) (Memoria, error) {
	return m.agregar(id, true)
}

// AgregarPaginaSinReferencia carga una página con el bit apagado
func (m Memoria) AgregarPaginaSinReferencia(id string) (Memoria, error) {
	return m.agregar(id, false)
}

func (m Memoria) agregar(id string, referenciada bool) (Memoria, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return m, utils.EntradaInvalida("ingrese un ID válido para la página")
	}
	nueva := m.clonar()
	nueva.Paginas = append(nueva.Paginas, Pagina{ID: id, Referenciada: referenciada})
	utils.InfoLog.WithFields(log.Fields{"pagina": id, "referenciada": referenciada}).Debug("Página cargada")
	return nueva, nil
}

// Referenciar enciende el bit de referencia de la primera página con ese ID
func (m Memoria) Referenciar(id string) (Memoria, error) {
	for i, p := range m.Paginas {
		if p.ID == id {
			nueva := m.clonar()
			nueva.Paginas[i].Referenciada = true
			return nueva, nil
		}
	}
	return m, errors.Wrapf(utils.ErrSinCandidato, "la página %s no está en memoria", id)
}

// LimpiarReferencias apaga todos los bits de referencia (interrupción de reloj)
func (m Memoria) LimpiarReferencias() Memoria {
	nueva := m.clonar()
	for i := range nueva.Paginas {
		nueva.Paginas[i].Referenciada = false
	}
	return nueva
}

// Reemplazar aplica el algoritmo una vez y agrega una línea al historial.
// Con la memoria vacía devuelve ErrMemoriaVacia y el estado no cambia.
func (m Memoria) Reemplazar(alg Algoritmo) (Memoria, Reemplazo, error) {
	if len(m.Paginas) == 0 {
		return m, Reemplazo{}, ErrMemoriaVacia
	}

	nueva := m.clonar()
	r := Reemplazo{Algoritmo: alg}

	switch alg {
	case FIFO:
		r.Expulsada = nueva.Paginas[0].ID
		nueva.Paginas = nueva.Paginas[1:]

	case LRU:
		// Aproximación: primera página sin referencia o, si no hay, la última.
		// No usa marcas de tiempo.
		victima := 0
		for i := range nueva.Paginas {
			victima = i
			if !nueva.Paginas[i].Referenciada {
				break
			}
		}
		r.Expulsada = nueva.Paginas[victima].ID
		nueva.Paginas = quitar(nueva.Paginas, victima)

	case NRU:
		for i, p := range nueva.Paginas {
			if !p.Referenciada {
				r.Expulsada = p.ID
				nueva.Paginas = quitar(nueva.Paginas, i)
				break
			}
		}

	case SegundaChance:
		cabeza := nueva.Paginas[0]
		nueva.Paginas = nueva.Paginas[1:]
		if cabeza.Referenciada {
			cabeza.Referenciada = false
			nueva.Paginas = append(nueva.Paginas, cabeza)
			r.SegundaChance = true
		} else {
			r.Expulsada = cabeza.ID
		}

	default:
		return m, Reemplazo{}, utils.EntradaInvalida("algoritmo desconocido %q", alg)
	}

	switch {
	case r.SegundaChance:
		r.Entrada = fmt.Sprintf("Página %s recibió una segunda chance", nueva.Paginas[len(nueva.Paginas)-1].ID)
	case r.Expulsada == "":
		r.Entrada = "Ninguna página sin referencia para reemplazar"
	default:
		r.Entrada = fmt.Sprintf("Reemplazada la página %s", r.Expulsada)
	}
	nueva.Historial = append(nueva.Historial, r.Entrada)

	utils.InfoLog.WithFields(log.Fields{
		"algoritmo":  alg,
		"expulsada":  r.Expulsada,
		"segunda":    r.SegundaChance,
		"residentes": len(nueva.Paginas),
	}).Info("Reemplazo aplicado")

	return nueva, r, nil
}

// IDs devuelve los IDs residentes en orden
func (m Memoria) IDs() []string {
	ids := make([]string, len(m.Paginas))
	for i, p := range m.Paginas {
		ids[i] = p.ID
	}
	return ids
}

func quitar(paginas []Pagina, i int) []Pagina {
	resultado := make([]Pagina, 0, len(paginas)-1)
	resultado = append(resultado, paginas[:i]...)
	return append(resultado, paginas[i+1:]...)
}
