package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/validator.v2"
	"gopkg.in/yaml.v2"
)

// ValidationError se devuelve cuando la configuración no pasa la validación
type ValidationError struct {
	errorMap validator.ErrorMap
}

// ErrForField devuelve el error de validación de un campo
func (e ValidationError) ErrForField(name string) error {
	if err, ok := e.errorMap[name]; ok {
		return err
	}
	return nil
}

// Error lista los campos inválidos en orden alfabético
func (e ValidationError) Error() string {
	var w bytes.Buffer

	campos := make([]string, 0, len(e.errorMap))
	for campo := range e.errorMap {
		campos = append(campos, campo)
	}
	sort.Strings(campos)

	fmt.Fprintf(&w, "validación fallida")
	for _, campo := range campos {
		fmt.Fprintf(&w, "\n   %s: %v", campo, e.errorMap[campo])
	}

	return w.String()
}

// CargarConfiguracion lee un archivo YAML (o JSON) y lo decodifica al tipo genérico.
// Los archivos JSON del formato anterior se aceptan porque YAML los contiene.
func CargarConfiguracion[T any](ruta string) (*T, error) {
	InfoLog.WithField("ruta", ruta).Info("Cargando configuración")

	absPath, err := filepath.Abs(ruta)
	if err != nil {
		return nil, errors.Wrapf(err, "obteniendo ruta absoluta de %s", ruta)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, errors.Wrapf(err, "abriendo archivo de configuración %s", absPath)
	}

	var config T
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrapf(err, "decodificando configuración %s", absPath)
	}

	if err := validator.Validate(config); err != nil {
		errMap, ok := err.(validator.ErrorMap)
		if !ok {
			return nil, errors.Wrap(err, "validando configuración")
		}
		return nil, ValidationError{errorMap: errMap}
	}

	InfoLog.WithFields(log.Fields{"archivo": absPath}).Info("Configuración cargada correctamente")
	return &config, nil
}
