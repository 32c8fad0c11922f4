package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sisoputnfrba/simulador-memoria/particiones"
)

func TestCrearYLeerVolcado(t *testing.T) {
	procesos := []particiones.Proceso{
		{ID: "P1", Tamanio: 1, Llegada: 0, Duracion: 4},
		{ID: "P2", Tamanio: 2, Llegada: 2, Duracion: 1},
	}
	res, err := particiones.SimularDetallado(particiones.ParticionesPorDefecto(), procesos, particiones.WorstFit)
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "dumps")
	ahora := time.Date(2024, 11, 3, 8, 5, 9, 123000000, time.UTC)
	ruta, err := crearVolcado(dir, res, ahora)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "worst-fit-20241103-080509.123.yaml"), ruta)

	leido, err := leerVolcado(ruta)
	require.NoError(t, err)
	assert.Equal(t, res.Estrategia, leido.Estrategia)
	assert.Equal(t, res.Eventos, leido.Eventos)
	assert.Equal(t, res.Linea, leido.Linea)
}

func TestLeerVolcadoInexistente(t *testing.T) {
	_, err := leerVolcado(filepath.Join(t.TempDir(), "nada.yaml"))
	assert.Error(t, err)
}

func TestCrearVolcadoDirectorioInvalido(t *testing.T) {
	archivo := filepath.Join(t.TempDir(), "archivo")
	require.NoError(t, os.WriteFile(archivo, nil, 0644))

	_, err := crearVolcado(filepath.Join(archivo, "sub"), particiones.Resultado{Estrategia: particiones.FirstFit}, time.Now())
	assert.Error(t, err)
}
