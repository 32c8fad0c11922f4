// Package entrada interpreta lo que el usuario escribe en los campos de texto.
// Todos los errores son de entrada inválida y traen el mensaje para la alerta.
package entrada

import (
	"strconv"
	"strings"

	"github.com/sisoputnfrba/simulador-memoria/particiones"
	"github.com/sisoputnfrba/simulador-memoria/utils"
)

// Mensajes de alerta de cada campo
const (
	AlertaProceso   = "Ingrese un ID y un tamaño válidos. Ejemplo: P1,0.5"
	AlertaParticion = "Ingrese un ID y un tamaño válidos. Ejemplo: A,1"
	AlertaDireccion = "Ingrese una dirección válida."
	AlertaPagina    = "Ingrese un número válido para el ID de la página."
)

// ParsearProceso interpreta "ID,tamaño" o "ID,tamaño,llegada,duración".
// Sin tiempos el proceso llega en el tick 0 y dura un tick.
func ParsearProceso(texto string) (particiones.Proceso, error) {
	campos := partir(texto)
	if len(campos) != 2 && len(campos) != 4 {
		return particiones.Proceso{}, utils.EntradaInvalida(AlertaProceso)
	}

	id := campos[0]
	tamanio, err := strconv.ParseFloat(campos[1], 64)
	if id == "" || err != nil || !particiones.TamanioValido(tamanio) {
		return particiones.Proceso{}, utils.EntradaInvalida(AlertaProceso)
	}

	proceso := particiones.Proceso{ID: id, Tamanio: tamanio, Duracion: 1}
	if len(campos) == 4 {
		llegada, errLlegada := strconv.Atoi(campos[2])
		duracion, errDuracion := strconv.Atoi(campos[3])
		if errLlegada != nil || errDuracion != nil || llegada < 0 || duracion <= 0 {
			return particiones.Proceso{}, utils.EntradaInvalida("Ingrese llegada y duración enteras. Ejemplo: P1,0.5,2,3")
		}
		proceso.Llegada = llegada
		proceso.Duracion = duracion
	}
	return proceso, nil
}

// ParsearProcesos interpreta varias líneas; falla con la primera inválida
func ParsearProcesos(textos []string) ([]particiones.Proceso, error) {
	procesos := make([]particiones.Proceso, 0, len(textos))
	for _, texto := range textos {
		p, err := ParsearProceso(texto)
		if err != nil {
			return nil, err
		}
		procesos = append(procesos, p)
	}
	return procesos, nil
}

// ParsearParticion interpreta "ID,tamaño"
func ParsearParticion(texto string) (particiones.Particion, error) {
	campos := partir(texto)
	if len(campos) != 2 || campos[0] == "" {
		return particiones.Particion{}, utils.EntradaInvalida(AlertaParticion)
	}
	tamanio, err := strconv.ParseFloat(campos[1], 64)
	if err != nil || !particiones.TamanioValido(tamanio) {
		return particiones.Particion{}, utils.EntradaInvalida(AlertaParticion)
	}
	return particiones.NuevaParticion(campos[0], tamanio), nil
}

// ParsearParticiones interpreta varias particiones en orden
func ParsearParticiones(textos []string) ([]particiones.Particion, error) {
	lista := make([]particiones.Particion, 0, len(textos))
	for _, texto := range textos {
		p, err := ParsearParticion(texto)
		if err != nil {
			return nil, err
		}
		lista = append(lista, p)
	}
	return lista, nil
}

// ParsearEntero interpreta un entero no negativo, como la dirección virtual
func ParsearEntero(texto string, alerta string) (int, error) {
	valor, err := strconv.Atoi(strings.TrimSpace(texto))
	if err != nil || valor < 0 {
		return 0, utils.EntradaInvalida("%s", alerta)
	}
	return valor, nil
}

// ParsearEnteros interpreta "98,183,37"
func ParsearEnteros(texto string) ([]int, error) {
	if strings.TrimSpace(texto) == "" {
		return nil, nil
	}
	campos := partir(texto)
	valores := make([]int, 0, len(campos))
	for _, campo := range campos {
		v, err := ParsearEntero(campo, "Ingrese números enteros separados por comas. Ejemplo: 98,183,37")
		if err != nil {
			return nil, err
		}
		valores = append(valores, v)
	}
	return valores, nil
}

// ParsearTabla interpreta "0:2,1:5" como tabla de páginas
func ParsearTabla(texto string) (map[int]int, error) {
	tabla := make(map[int]int)
	for _, par := range partir(texto) {
		lados := strings.Split(par, ":")
		if len(lados) != 2 {
			return nil, utils.EntradaInvalida("Ingrese la tabla como página:marco. Ejemplo: 0:2,1:5")
		}
		pagina, errPagina := ParsearEntero(lados[0], AlertaPagina)
		marco, errMarco := ParsearEntero(lados[1], "Ingrese un número válido para el marco.")
		if errPagina != nil {
			return nil, errPagina
		}
		if errMarco != nil {
			return nil, errMarco
		}
		tabla[pagina] = marco
	}
	return tabla, nil
}

func partir(texto string) []string {
	campos := strings.Split(texto, ",")
	for i := range campos {
		campos[i] = strings.TrimSpace(campos[i])
	}
	return campos
}
