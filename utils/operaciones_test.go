package utils

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pedidoPrueba struct {
	Direccion int    `json:"direccion"`
	Nombre    string `json:"nombre"`
}

func TestDecodificarDatos(t *testing.T) {
	var p pedidoPrueba
	msg := &Mensaje{Datos: map[string]interface{}{"direccion": float64(5000), "nombre": "P1"}}
	require.NoError(t, DecodificarDatos(msg, &p))
	assert.Equal(t, pedidoPrueba{Direccion: 5000, Nombre: "P1"}, p)

	assert.True(t, EsEntradaInvalida(DecodificarDatos(&Mensaje{}, &p)))
	assert.True(t, EsEntradaInvalida(DecodificarDatos(&Mensaje{Datos: map[string]interface{}{"direccion": "abc"}}, &p)))
}

func TestRespuestaError(t *testing.T) {
	casos := []struct {
		err   error
		clase string
	}{
		{EntradaInvalida("mal"), "entrada_invalida"},
		{errors.Wrap(ErrSinCandidato, "no hay"), "sin_candidato"},
		{errors.Wrap(ErrColeccionVacia, "vacía"), "coleccion_vacia"},
		{errors.New("se cayó el disco"), "interno"},
	}
	for _, c := range casos {
		resp := RespuestaError(c.err)
		assert.Equal(t, c.clase, resp["clase"], c.err.Error())
		assert.NotContains(t, resp["error"], ": "+errors.Cause(c.err).Error())
	}
}

func TestHandlerGenerico(t *testing.T) {
	procesador := func(p pedidoPrueba) (map[string]interface{}, error) {
		if p.Direccion < 0 {
			return nil, EntradaInvalida("dirección negativa")
		}
		return map[string]interface{}{"doble": p.Direccion * 2}, nil
	}

	resp, err := HandlerGenerico(&Mensaje{Datos: map[string]interface{}{"direccion": 21}}, procesador)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"status": "OK", "doble": 42}, resp)

	resp, err = HandlerGenerico(&Mensaje{Datos: map[string]interface{}{"direccion": -1}}, procesador)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"error": "dirección negativa", "clase": "entrada_invalida"}, resp)

	resp, err = HandlerGenerico(&Mensaje{}, procesador)
	require.NoError(t, err)
	assert.Equal(t, "entrada_invalida", resp.(map[string]interface{})["clase"])
}

func TestDespachar(t *testing.T) {
	m := NuevoModulo("Prueba", "")
	m.RegistrarHandler(1, "default", func(*Mensaje) (interface{}, error) { return "default", nil })
	m.RegistrarHandler(1, "especial", func(*Mensaje) (interface{}, error) { return "especial", nil })

	resp, err := m.Despachar(&Mensaje{Tipo: 1})
	require.NoError(t, err)
	assert.Equal(t, "default", resp)

	resp, err = m.Despachar(&Mensaje{Tipo: 1, Operacion: "especial"})
	require.NoError(t, err)
	assert.Equal(t, "especial", resp)

	resp, err = m.Despachar(&Mensaje{Tipo: 1, Operacion: "otra"})
	require.NoError(t, err)
	assert.Equal(t, "default", resp)

	_, err = m.Despachar(&Mensaje{Tipo: 7})
	assert.Error(t, err)
}
