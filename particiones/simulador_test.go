package particiones

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sisoputnfrba/simulador-memoria/utils"
)

func ocupacion(linea LineaTiempo, tick int) map[string]*int {
	estado := make(map[string]*int)
	for _, p := range linea[tick] {
		estado[p.ID] = p.OcupadaHasta
	}
	return estado
}

func TestSimularLiberaAlCumplirseLaDuracion(t *testing.T) {
	procesos := []Proceso{{ID: "P1", Llegada: 1, Tamanio: 0.5, Duracion: 3}}

	linea, err := Simular(ParticionesPorDefecto(), procesos, BestFit)
	require.NoError(t, err)

	assert.Nil(t, ocupacion(linea, 0)["B"])
	for tick := 1; tick <= 3; tick++ {
		hasta := ocupacion(linea, tick)["B"]
		require.NotNil(t, hasta, "tick %d", tick)
		assert.Equal(t, 4, *hasta)
	}
	assert.Nil(t, ocupacion(linea, 4)["B"])
	assert.True(t, linea[4][1].Disponible)
}

func TestSimularGeneraTodosLosTicks(t *testing.T) {
	procesos := []Proceso{
		{ID: "P1", Llegada: 0, Tamanio: 0.5, Duracion: 2},
		{ID: "P2", Llegada: 0, Tamanio: 1, Duracion: 5},
		{ID: "P3", Llegada: 2, Tamanio: 0.4, Duracion: 1},
	}

	for _, e := range Estrategias {
		linea, err := Simular(ParticionesPorDefecto(), procesos, e)
		require.NoError(t, err)
		assert.Len(t, linea, TickFinal+1, string(e))
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, linea.Ticks())
		for _, tick := range linea.Ticks() {
			ids := make([]string, 0, 3)
			for _, p := range linea[tick] {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, []string{"A", "B", "C"}, ids)
		}
	}
}

func TestSimularEstrategiasSobreEjemplo(t *testing.T) {
	procesos := []Proceso{{ID: "P1", Llegada: 0, Tamanio: 0.5, Duracion: 1}}
	esperado := map[Estrategia]string{FirstFit: "A", BestFit: "B", WorstFit: "C"}

	for e, id := range esperado {
		res, err := SimularDetallado(ParticionesPorDefecto(), procesos, e)
		require.NoError(t, err)
		require.Len(t, res.Eventos, 1)
		assert.Equal(t, Admitido, res.Eventos[0].Tipo)
		assert.Equal(t, id, res.Eventos[0].ParticionID, string(e))
	}
}

func TestSimularDescartaSinReintentar(t *testing.T) {
	particiones := []Particion{NuevaParticion("A", 1)}
	procesos := []Proceso{
		{ID: "P1", Llegada: 0, Tamanio: 1, Duracion: 2},
		{ID: "P2", Llegada: 1, Tamanio: 1, Duracion: 1},
		{ID: "P3", Llegada: 0, Tamanio: 3, Duracion: 1},
	}

	res, err := SimularDetallado(particiones, procesos, FirstFit)
	require.NoError(t, err)

	assert.Equal(t, []string{"P3", "P2"}, res.Descartados())
	// A queda libre en el tick 2 y P2 no vuelve a intentarlo
	for tick := 2; tick <= TickFinal; tick++ {
		assert.True(t, res.Linea[tick][0].Disponible, "tick %d", tick)
	}
}

func TestSimularPrioridadPorOrdenDeCarga(t *testing.T) {
	particiones := []Particion{NuevaParticion("A", 1)}
	procesos := []Proceso{
		{ID: "primero", Llegada: 3, Tamanio: 0.5, Duracion: 2},
		{ID: "segundo", Llegada: 3, Tamanio: 0.5, Duracion: 2},
	}

	res, err := SimularDetallado(particiones, procesos, WorstFit)
	require.NoError(t, err)
	require.Len(t, res.Eventos, 2)
	assert.Equal(t, Evento{Tick: 3, Tipo: Admitido, ProcesoID: "primero", ParticionID: "A", Hasta: 5}, res.Eventos[0])
	assert.Equal(t, Evento{Tick: 3, Tipo: Descartado, ProcesoID: "segundo"}, res.Eventos[1])
}

func TestSimularIgnoraLlegadasFueraDelHorizonte(t *testing.T) {
	procesos := []Proceso{{ID: "tarde", Llegada: TickFinal + 1, Tamanio: 0.1, Duracion: 1}}

	res, err := SimularDetallado(ParticionesPorDefecto(), procesos, FirstFit)
	require.NoError(t, err)
	assert.Empty(t, res.Eventos)
	for _, tick := range res.Linea.Ticks() {
		for _, p := range res.Linea[tick] {
			assert.True(t, p.Disponible)
		}
	}
}

func TestSimularLiberaYAdmiteEnElMismoTick(t *testing.T) {
	particiones := []Particion{NuevaParticion("A", 1)}
	procesos := []Proceso{
		{ID: "P1", Llegada: 0, Tamanio: 1, Duracion: 2},
		{ID: "P2", Llegada: 2, Tamanio: 1, Duracion: 3},
	}

	linea, err := Simular(particiones, procesos, FirstFit)
	require.NoError(t, err)
	require.NotNil(t, linea[2][0].OcupadaHasta)
	assert.Equal(t, 5, *linea[2][0].OcupadaHasta)
}

func TestSimularNoModificaLaEntrada(t *testing.T) {
	particiones := ParticionesPorDefecto()
	original := ParticionesPorDefecto()
	procesos := []Proceso{{ID: "P1", Llegada: 0, Tamanio: 0.5, Duracion: 4}}

	for _, e := range Estrategias {
		_, err := Simular(particiones, procesos, e)
		require.NoError(t, err)
	}
	assert.Equal(t, original, particiones)
}

func TestSimularInstantaneasIndependientes(t *testing.T) {
	hasta := 3
	particiones := []Particion{{ID: "A", Tamanio: 1, OcupadaHasta: &hasta}}

	linea, err := Simular(particiones, nil, FirstFit)
	require.NoError(t, err)

	*linea[0][0].OcupadaHasta = 99
	assert.Equal(t, 3, *linea[1][0].OcupadaHasta)
	assert.Equal(t, 3, hasta)
	assert.True(t, linea[3][0].Disponible)
}

func TestSimularRechazaEntradaInvalida(t *testing.T) {
	hastaNegativo := -1
	casos := map[string]struct {
		particiones []Particion
		procesos    []Proceso
		estrategia  Estrategia
	}{
		"duracion cero":         {ParticionesPorDefecto(), []Proceso{{ID: "P1", Tamanio: 1, Duracion: 0}}, FirstFit},
		"duracion negativa":     {ParticionesPorDefecto(), []Proceso{{ID: "P1", Tamanio: 1, Duracion: -2}}, FirstFit},
		"llegada negativa":      {ParticionesPorDefecto(), []Proceso{{ID: "P1", Llegada: -1, Tamanio: 1, Duracion: 1}}, FirstFit},
		"tamanio cero":          {ParticionesPorDefecto(), []Proceso{{ID: "P1", Duracion: 1}}, FirstFit},
		"particion sin tamanio": {[]Particion{NuevaParticion("A", 0)}, nil, FirstFit},
		"ocupada sin hasta":     {[]Particion{{ID: "A", Tamanio: 1}}, nil, FirstFit},
		"estrategia":            {ParticionesPorDefecto(), nil, Estrategia("Next-Fit")},
		"proceso NaN":           {ParticionesPorDefecto(), []Proceso{{ID: "P1", Tamanio: math.NaN(), Duracion: 1}}, FirstFit},
		"proceso infinito":      {ParticionesPorDefecto(), []Proceso{{ID: "P1", Tamanio: math.Inf(1), Duracion: 1}}, FirstFit},
		"particion NaN":         {[]Particion{NuevaParticion("X", math.NaN())}, []Proceso{{ID: "P1", Tamanio: 5, Duracion: 1}}, FirstFit},
		"particion infinita":    {[]Particion{NuevaParticion("X", math.Inf(1))}, nil, FirstFit},
		"hasta negativo":        {[]Particion{{ID: "A", Tamanio: 1, OcupadaHasta: &hastaNegativo}}, nil, FirstFit},
	}

	for nombre, c := range casos {
		t.Run(nombre, func(t *testing.T) {
			linea, err := Simular(c.particiones, c.procesos, c.estrategia)
			require.Error(t, err)
			assert.True(t, utils.EsEntradaInvalida(err), err.Error())
			assert.Nil(t, linea)
		})
	}
}

func TestSimularNuncaAsignaUnaParticionOcupada(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))

	for corrida := 0; corrida < 200; corrida++ {
		particiones := make([]Particion, 1+rnd.Intn(5))
		for i := range particiones {
			particiones[i] = NuevaParticion(string(rune('A'+i)), float64(1+rnd.Intn(4))/2)
		}
		procesos := make([]Proceso, rnd.Intn(12))
		for i := range procesos {
			procesos[i] = Proceso{
				ID:       string(rune('a' + i)),
				Llegada:  rnd.Intn(TickFinal + 2),
				Tamanio:  float64(1+rnd.Intn(4)) / 2,
				Duracion: 1 + rnd.Intn(5),
			}
		}

		for _, e := range Estrategias {
			res, err := SimularDetallado(particiones, procesos, e)
			require.NoError(t, err)
			require.Len(t, res.Linea, TickFinal+1)

			ocupadaPor := make(map[string]int)
			for _, ev := range res.Eventos {
				if ev.Tipo != Admitido {
					continue
				}
				if libre, ok := ocupadaPor[ev.ParticionID]; ok {
					assert.GreaterOrEqual(t, ev.Tick, libre, "partición %s reasignada antes de liberarse", ev.ParticionID)
				}
				ocupadaPor[ev.ParticionID] = ev.Hasta
			}

			for _, tick := range res.Linea.Ticks() {
				for _, p := range res.Linea[tick] {
					if p.Disponible {
						assert.Nil(t, p.OcupadaHasta)
						continue
					}
					require.NotNil(t, p.OcupadaHasta)
					assert.Greater(t, *p.OcupadaHasta, tick)
				}
			}
		}
	}
}
