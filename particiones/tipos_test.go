package particiones

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParticionJSONSinDisponible(t *testing.T) {
	var lista []Particion
	require.NoError(t, json.Unmarshal([]byte(`[
		{"id": "A", "tamanio": 1},
		{"id": "B", "tamanio": 0.5, "ocupada_hasta": 3},
		{"id": "C", "tamanio": 2, "disponible": false, "ocupada_hasta": 4},
		{"id": "D", "tamanio": 2, "disponible": true}
	]`), &lista))

	require.Len(t, lista, 4)
	assert.Equal(t, NuevaParticion("A", 1), lista[0])
	assert.False(t, lista[1].Disponible)
	assert.Equal(t, 3, *lista[1].OcupadaHasta)
	assert.False(t, lista[2].Disponible)
	assert.Equal(t, NuevaParticion("D", 2), lista[3])

	_, err := Simular(lista, nil, FirstFit)
	assert.NoError(t, err)
}

func TestParticionJSONInconsistente(t *testing.T) {
	var p Particion
	require.NoError(t, json.Unmarshal([]byte(`{"id": "A", "tamanio": 1, "disponible": false}`), &p))

	_, err := Simular([]Particion{p}, nil, FirstFit)
	assert.Error(t, err)
}
