package utils

import (
	"github.com/pkg/errors"
)

// Clases de error que cada pantalla sabe recuperar en el punto de la acción.
var (
	// ErrEntradaInvalida: campo vacío o no numérico. No se modifica ningún estado.
	ErrEntradaInvalida = errors.New("entrada inválida")
	// ErrSinCandidato: la asignación o traducción no puede continuar.
	ErrSinCandidato = errors.New("sin candidato")
	// ErrColeccionVacia: se pidió operar sobre una colección sin elementos.
	ErrColeccionVacia = errors.New("colección vacía")
)

// EntradaInvalida construye un error de entrada inválida con un mensaje para el usuario
func EntradaInvalida(formato string, args ...interface{}) error {
	return errors.Wrapf(ErrEntradaInvalida, formato, args...)
}

// EsEntradaInvalida indica si err proviene de una entrada inválida
func EsEntradaInvalida(err error) bool {
	return esClase(err, ErrEntradaInvalida)
}

// EsSinCandidato indica si err proviene de una búsqueda sin candidato
func EsSinCandidato(err error) bool {
	return esClase(err, ErrSinCandidato)
}

// EsColeccionVacia indica si err proviene de una colección vacía
func EsColeccionVacia(err error) bool {
	return esClase(err, ErrColeccionVacia)
}

func esClase(err error, clase error) bool {
	if err == nil {
		return false
	}
	return errors.Cause(err) == clase
}

// MensajeUsuario devuelve el texto que se le muestra al usuario, sin la clase de error
func MensajeUsuario(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, clase := range []error{ErrEntradaInvalida, ErrSinCandidato, ErrColeccionVacia} {
		sufijo := ": " + clase.Error()
		if len(msg) > len(sufijo) && msg[len(msg)-len(sufijo):] == sufijo {
			return msg[:len(msg)-len(sufijo)]
		}
	}
	return msg
}
