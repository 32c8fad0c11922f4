package disco

import (
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/sisoputnfrba/simulador-memoria/utils"
)

// CilindrosPorDefecto es el tamaño de disco cuando la solicitud no lo indica
const CilindrosPorDefecto = 200

// Algoritmo de planificación de disco
type Algoritmo string

const (
	FCFS  Algoritmo = "FCFS"
	SSTF  Algoritmo = "SSTF"
	SCAN  Algoritmo = "SCAN"
	CSCAN Algoritmo = "C-SCAN"
	LOOK  Algoritmo = "LOOK"
	CLOOK Algoritmo = "C-LOOK"
)

// Algoritmos disponibles
var Algoritmos = []Algoritmo{FCFS, SSTF, SCAN, CSCAN, LOOK, CLOOK}

// ParsearAlgoritmo acepta el nombre con o sin guion
func ParsearAlgoritmo(texto string) (Algoritmo, error) {
	normalizado := strings.ToUpper(strings.NewReplacer("-", "", "_", "", " ", "").Replace(texto))
	for _, alg := range Algoritmos {
		if strings.ReplaceAll(string(alg), "-", "") == normalizado {
			return alg, nil
		}
	}
	return "", utils.EntradaInvalida("algoritmo de disco desconocido %q", texto)
}

// Solicitud describe el estado del disco y la cola de pedidos
type Solicitud struct {
	Cabeza      int       `json:"cabeza"`
	Pedidos     []int     `json:"pedidos"`
	Algoritmo   Algoritmo `json:"algoritmo"`
	Cilindros   int       `json:"cilindros"`
	HaciaArriba bool      `json:"hacia_arriba"`
}

// Recorrido es el orden de atención y el desplazamiento total del brazo.
// Trayecto incluye la posición inicial y los extremos visitados.
type Recorrido struct {
	Orden      []int `json:"orden"`
	Trayecto   []int `json:"trayecto"`
	Movimiento int   `json:"movimiento"`
}

// Planificar calcula el orden en que el brazo atiende los pedidos
func Planificar(s Solicitud) (Recorrido, error) {
	if s.Cilindros <= 0 {
		s.Cilindros = CilindrosPorDefecto
	}
	if err := validar(s); err != nil {
		return Recorrido{}, err
	}

	var trayecto []int
	switch s.Algoritmo {
	case FCFS:
		trayecto = append([]int{s.Cabeza}, s.Pedidos...)
	case SSTF:
		trayecto = sstf(s.Cabeza, s.Pedidos)
	case SCAN:
		trayecto = barrido(s, true, false)
	case CSCAN:
		trayecto = barrido(s, true, true)
	case LOOK:
		trayecto = barrido(s, false, false)
	case CLOOK:
		trayecto = barrido(s, false, true)
	}

	r := Recorrido{Trayecto: trayecto, Orden: atendidos(s, trayecto)}
	for i := 1; i < len(trayecto); i++ {
		r.Movimiento += abs(trayecto[i] - trayecto[i-1])
	}

	utils.InfoLog.WithFields(log.Fields{
		"algoritmo":  s.Algoritmo,
		"cabeza":     s.Cabeza,
		"pedidos":    len(s.Pedidos),
		"movimiento": r.Movimiento,
	}).Info("Planificación de disco calculada")

	return r, nil
}

func validar(s Solicitud) error {
	valido := false
	for _, alg := range Algoritmos {
		if alg == s.Algoritmo {
			valido = true
		}
	}
	if !valido {
		return utils.EntradaInvalida("algoritmo de disco desconocido %q", s.Algoritmo)
	}
	if s.Cabeza < 0 || s.Cabeza >= s.Cilindros {
		return utils.EntradaInvalida("la cabeza %d está fuera del disco [0, %d)", s.Cabeza, s.Cilindros)
	}
	for _, p := range s.Pedidos {
		if p < 0 || p >= s.Cilindros {
			return utils.EntradaInvalida("el pedido %d está fuera del disco [0, %d)", p, s.Cilindros)
		}
	}
	return nil
}

// sstf atiende siempre el pedido más cercano; ante empate, el cilindro menor
func sstf(cabeza int, pedidos []int) []int {
	pendientes := append([]int(nil), pedidos...)
	sort.Ints(pendientes)

	trayecto := []int{cabeza}
	actual := cabeza
	for len(pendientes) > 0 {
		mejor := 0
		for i, p := range pendientes {
			if abs(p-actual) < abs(pendientes[mejor]-actual) {
				mejor = i
			}
		}
		actual = pendientes[mejor]
		trayecto = append(trayecto, actual)
		pendientes = append(pendientes[:mejor], pendientes[mejor+1:]...)
	}
	return trayecto
}

// barrido implementa SCAN/LOOK (ida y vuelta) y sus variantes circulares.
// hastaBorde indica si el brazo llega al extremo del disco antes de volver;
// solo lo hace cuando quedan pedidos del otro lado.
func barrido(s Solicitud, hastaBorde bool, circular bool) []int {
	var adelante, atras []int
	for _, p := range s.Pedidos {
		if (s.HaciaArriba && p >= s.Cabeza) || (!s.HaciaArriba && p <= s.Cabeza) {
			adelante = append(adelante, p)
		} else {
			atras = append(atras, p)
		}
	}

	ascendente := func(v []int) { sort.Ints(v) }
	descendente := func(v []int) { sort.Sort(sort.Reverse(sort.IntSlice(v))) }

	borde, bordeOpuesto := s.Cilindros-1, 0
	if s.HaciaArriba {
		ascendente(adelante)
	} else {
		descendente(adelante)
		borde, bordeOpuesto = 0, s.Cilindros-1
	}

	trayecto := append([]int{s.Cabeza}, adelante...)
	if len(atras) == 0 {
		return trayecto
	}

	if hastaBorde && trayecto[len(trayecto)-1] != borde {
		trayecto = append(trayecto, borde)
	}

	if circular {
		// Los pedidos restantes se atienden en el mismo sentido
		if s.HaciaArriba {
			ascendente(atras)
		} else {
			descendente(atras)
		}
		if hastaBorde && atras[0] != bordeOpuesto {
			trayecto = append(trayecto, bordeOpuesto)
		}
	} else if s.HaciaArriba {
		descendente(atras)
	} else {
		ascendente(atras)
	}

	return append(trayecto, atras...)
}

// atendidos quita del trayecto la posición inicial y los extremos que no eran pedidos
func atendidos(s Solicitud, trayecto []int) []int {
	pendientes := make(map[int]int, len(s.Pedidos))
	for _, p := range s.Pedidos {
		pendientes[p]++
	}
	orden := make([]int, 0, len(s.Pedidos))
	for _, pos := range trayecto[1:] {
		if pendientes[pos] > 0 {
			pendientes[pos]--
			orden = append(orden, pos)
		}
	}
	return orden
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
