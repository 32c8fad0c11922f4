package paginacion

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/sisoputnfrba/simulador-memoria/utils"
)

// TamanioPagina por defecto, en bytes
const TamanioPagina = 4096

// ErrPaginaNoEncontrada es el fallo de página: la página no está en la tabla
var ErrPaginaNoEncontrada = errors.Wrap(utils.ErrSinCandidato, "página no encontrada")

// TablaPaginas mapea número de página a número de marco
type TablaPaginas map[int]int

// TablaPorDefecto es la tabla que muestra la pantalla de paginación
func TablaPorDefecto() TablaPaginas {
	return TablaPaginas{0: 2, 1: 5, 2: 3, 3: 1}
}

// Paginas devuelve los números de página ordenados
func (t TablaPaginas) Paginas() []int {
	paginas := make([]int, 0, len(t))
	for p := range t {
		paginas = append(paginas, p)
	}
	sort.Ints(paginas)
	return paginas
}

// Traduccion es el resultado de traducir una dirección virtual
type Traduccion struct {
	DireccionVirtual int `json:"direccion_virtual"`
	Pagina           int `json:"pagina"`
	Desplazamiento   int `json:"desplazamiento"`
	Marco            int `json:"marco"`
	DireccionFisica  int `json:"direccion_fisica"`
}

func (t Traduccion) String() string {
	return fmt.Sprintf("Dirección virtual: %d => Página: %d, Desplazamiento: %d, Dirección física: %d",
		t.DireccionVirtual, t.Pagina, t.Desplazamiento, t.DireccionFisica)
}

// Traducir traduce una dirección virtual con páginas de 4096 bytes
func Traducir(direccionVirtual int, tabla TablaPaginas) (Traduccion, error) {
	return TraducirConTamanio(direccionVirtual, tabla, TamanioPagina)
}

// TraducirConTamanio traduce una dirección lógica a una dirección física
func TraducirConTamanio(direccionVirtual int, tabla TablaPaginas, tamPagina int) (Traduccion, error) {
	if direccionVirtual < 0 {
		return Traduccion{}, utils.EntradaInvalida("la dirección virtual no puede ser negativa: %d", direccionVirtual)
	}
	if tamPagina <= 0 {
		return Traduccion{}, utils.EntradaInvalida("tamaño de página inválido: %d", tamPagina)
	}

	numPagina := direccionVirtual / tamPagina
	desplazamiento := direccionVirtual % tamPagina

	utils.InfoLog.WithFields(log.Fields{
		"dir_logica":     direccionVirtual,
		"pagina":         numPagina,
		"desplazamiento": desplazamiento,
	}).Debug("Traduciendo dirección")

	marco, existe := tabla[numPagina]
	if !existe {
		return Traduccion{DireccionVirtual: direccionVirtual, Pagina: numPagina, Desplazamiento: desplazamiento},
			errors.Wrapf(ErrPaginaNoEncontrada, "página %d", numPagina)
	}

	t := Traduccion{
		DireccionVirtual: direccionVirtual,
		Pagina:           numPagina,
		Desplazamiento:   desplazamiento,
		Marco:            marco,
		DireccionFisica:  marco*tamPagina + desplazamiento,
	}

	utils.InfoLog.WithFields(log.Fields{
		"dir_logica": direccionVirtual,
		"dir_fisica": t.DireccionFisica,
		"marco":      marco,
	}).Debug("Dirección traducida")

	return t, nil
}

// EsFalloPagina indica si la traducción falló porque la página no está en la tabla
func EsFalloPagina(err error) bool {
	return utils.EsSinCandidato(err)
}
