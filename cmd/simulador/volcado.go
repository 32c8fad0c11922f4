package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/sisoputnfrba/simulador-memoria/particiones"
	"github.com/sisoputnfrba/simulador-memoria/utils"
)

// crearVolcado escribe la línea de tiempo completa de una corrida en un archivo YAML
func crearVolcado(dir string, res particiones.Resultado, ahora time.Time) (string, error) {
	timestamp := ahora.Format("20060102-150405.000")
	estrategia := strings.ToLower(string(res.Estrategia))
	nombreArchivo := fmt.Sprintf("%s-%s.yaml", estrategia, timestamp)
	rutaCompleta := filepath.Join(dir, nombreArchivo)

	if err := os.MkdirAll(dir, 0755); err != nil {
		utils.ErrorLog.WithError(err).WithField("directorio", dir).Error("Error creando directorio de volcados")
		return "", errors.Wrap(err, "error al crear directorio para volcados")
	}

	contenido, err := yaml.Marshal(res)
	if err != nil {
		return "", errors.Wrap(err, "error al serializar la línea de tiempo")
	}

	if err := os.WriteFile(rutaCompleta, contenido, 0644); err != nil {
		utils.ErrorLog.WithError(err).WithField("archivo", rutaCompleta).Error("Error escribiendo volcado")
		return "", errors.Wrap(err, "error al escribir el volcado")
	}

	utils.InfoLog.WithFields(log.Fields{
		"archivo":    rutaCompleta,
		"estrategia": res.Estrategia,
		"bytes":      len(contenido),
	}).Info("Volcado de línea de tiempo completado")

	return rutaCompleta, nil
}

// leerVolcado recupera una corrida volcada
func leerVolcado(ruta string) (particiones.Resultado, error) {
	contenido, err := os.ReadFile(ruta)
	if err != nil {
		return particiones.Resultado{}, errors.Wrap(err, "error al leer el volcado")
	}
	var res particiones.Resultado
	if err := yaml.Unmarshal(contenido, &res); err != nil {
		return particiones.Resultado{}, errors.Wrap(err, "error al decodificar el volcado")
	}
	return res, nil
}
