package utils

import (
	"encoding/json"

	log "github.com/sirupsen/logrus"
)

// DecodificarDatos convierte el campo Datos del mensaje al tipo destino
func DecodificarDatos(msg *Mensaje, destino interface{}) error {
	if msg.Datos == nil {
		return EntradaInvalida("el mensaje no trae datos")
	}
	crudo, err := json.Marshal(msg.Datos)
	if err != nil {
		return EntradaInvalida("datos ilegibles: %v", err)
	}
	if err := json.Unmarshal(crudo, destino); err != nil {
		return EntradaInvalida("formato de datos incorrecto: %v", err)
	}
	return nil
}

// RespuestaOK arma la respuesta exitosa con los campos dados
func RespuestaOK(campos map[string]interface{}) map[string]interface{} {
	respuesta := map[string]interface{}{"status": "OK"}
	for k, v := range campos {
		respuesta[k] = v
	}
	return respuesta
}

// RespuestaError arma la respuesta de error que se muestra al usuario.
// La clase indica cómo la pantalla lo presenta (alerta o resultado rotulado).
func RespuestaError(err error) map[string]interface{} {
	clase := "interno"
	switch {
	case EsEntradaInvalida(err):
		clase = "entrada_invalida"
	case EsSinCandidato(err):
		clase = "sin_candidato"
	case EsColeccionVacia(err):
		clase = "coleccion_vacia"
	}
	return map[string]interface{}{
		"error": MensajeUsuario(err),
		"clase": clase,
	}
}

// HandlerGenerico decodifica los datos del mensaje y registra la operación
func HandlerGenerico[T any](msg *Mensaje, procesador func(datos T) (map[string]interface{}, error)) (interface{}, error) {
	InfoLog.WithFields(log.Fields{"origen": msg.Origen, "tipo": msg.Tipo}).Info("Operación recibida")

	var datos T
	if err := DecodificarDatos(msg, &datos); err != nil {
		ErrorLog.WithError(err).WithField("tipo", msg.Tipo).Warn("Datos inválidos")
		return RespuestaError(err), nil
	}

	campos, err := procesador(datos)
	if err != nil {
		ErrorLog.WithError(err).WithField("tipo", msg.Tipo).Warn("Operación sin resultado")
		return RespuestaError(err), nil
	}

	return RespuestaOK(campos), nil
}
