package main

import (
	"io"
	"time"

	"github.com/uber-go/tally"

	"github.com/sisoputnfrba/simulador-memoria/disco"
	"github.com/sisoputnfrba/simulador-memoria/paginacion"
	"github.com/sisoputnfrba/simulador-memoria/particiones"
	"github.com/sisoputnfrba/simulador-memoria/reemplazo"
	"github.com/sisoputnfrba/simulador-memoria/utils"
)

// Simulador agrupa el estado del módulo: configuración, métricas y sesiones
type Simulador struct {
	config   *SimuladorConfig
	scope    tally.Scope
	sesiones *sesiones
	ahora    func() time.Time

	cierreMetricas io.Closer
}

func nuevoSimulador(config *SimuladorConfig, scope tally.Scope) *Simulador {
	return &Simulador{
		config:   config,
		scope:    scope,
		sesiones: nuevasSesiones(config.MaxSessions),
		ahora:    time.Now,
	}
}

func (s *Simulador) registrarHandlers(modulo *utils.Modulo) {
	modulo.RegistrarHandler(utils.MensajeHandshake, "default", s.handlerHandshake)
	modulo.RegistrarHandler(utils.MensajeAsignarParticiones, "default", s.handlerAsignar)
	modulo.RegistrarHandler(utils.MensajeLineaTiempo, "default", s.handlerLineaTiempo)
	modulo.RegistrarHandler(utils.MensajeTraducir, "default", s.handlerTraducir)
	modulo.RegistrarHandler(utils.MensajeCrearSesion, "default", s.handlerCrearSesion)
	modulo.RegistrarHandler(utils.MensajeAgregarPagina, "default", s.handlerAgregarPagina)
	modulo.RegistrarHandler(utils.MensajeReemplazar, "default", s.handlerReemplazar)
	modulo.RegistrarHandler(utils.MensajeEstadoMemoria, "default", s.handlerEstadoMemoria)
	modulo.RegistrarHandler(utils.MensajeReferenciarPagina, "default", s.handlerReferenciar)
	modulo.RegistrarHandler(utils.MensajeLimpiarReferencias, "default", s.handlerLimpiarReferencias)
	modulo.RegistrarHandler(utils.MensajeEliminarSesion, "default", s.handlerEliminarSesion)
	modulo.RegistrarHandler(utils.MensajePlanificarDisco, "default", s.handlerPlanificarDisco)

	utils.InfoLog.Info("Handlers registrados correctamente")
}

// Handler para handshake
func (s *Simulador) handlerHandshake(msg *utils.Mensaje) (interface{}, error) {
	utils.InfoLog.WithField("origen", msg.Origen).Info("Handshake recibido")

	estrategias := make([]string, 0, len(particiones.Estrategias))
	for _, e := range particiones.Estrategias {
		estrategias = append(estrategias, string(e))
	}
	algoritmos := make([]string, 0, len(reemplazo.Algoritmos))
	for _, a := range reemplazo.Algoritmos {
		algoritmos = append(algoritmos, string(a))
	}

	return utils.RespuestaOK(map[string]interface{}{
		"tam_pagina":  s.config.tamanioPagina(),
		"tick_final":  particiones.TickFinal,
		"estrategias": estrategias,
		"algoritmos":  algoritmos,
	}), nil
}

type pedidoParticiones struct {
	Particiones []particiones.Particion `json:"particiones"`
	Procesos    []particiones.Proceso   `json:"procesos"`
	Estrategia  string                  `json:"estrategia"`
	Volcar      bool                    `json:"volcar"`
}

func (p pedidoParticiones) preparar() ([]particiones.Particion, particiones.Estrategia, error) {
	e, err := particiones.ParsearEstrategia(p.Estrategia)
	if err != nil {
		return nil, "", err
	}
	lista := p.Particiones
	if len(lista) == 0 {
		lista = particiones.ParticionesPorDefecto()
	}
	return lista, e, nil
}

func (s *Simulador) handlerAsignar(msg *utils.Mensaje) (interface{}, error) {
	return utils.HandlerGenerico(msg, func(p pedidoParticiones) (map[string]interface{}, error) {
		lista, e, err := p.preparar()
		if err != nil {
			return nil, err
		}
		asignaciones, err := particiones.Asignar(lista, p.Procesos, e)
		if err != nil {
			return nil, err
		}
		actualizarMetricasAsignacion(s.scope, e, asignaciones)
		return map[string]interface{}{
			"estrategia":   e,
			"asignaciones": asignaciones,
		}, nil
	})
}

func (s *Simulador) handlerLineaTiempo(msg *utils.Mensaje) (interface{}, error) {
	return utils.HandlerGenerico(msg, func(p pedidoParticiones) (map[string]interface{}, error) {
		lista, e, err := p.preparar()
		if err != nil {
			return nil, err
		}
		res, err := particiones.SimularDetallado(lista, p.Procesos, e)
		if err != nil {
			return nil, err
		}
		actualizarMetricasSimulacion(s.scope, res)

		campos := map[string]interface{}{
			"estrategia": res.Estrategia,
			"linea":      res.Linea,
			"eventos":    res.Eventos,
		}
		if p.Volcar {
			ruta, err := crearVolcado(s.config.DumpPath, res, s.ahora())
			if err != nil {
				utils.ErrorLog.WithError(err).Error("No se pudo volcar la línea de tiempo")
				campos["volcado_error"] = err.Error()
			} else {
				campos["volcado"] = ruta
			}
		}
		return campos, nil
	})
}

type pedidoTraduccion struct {
	Direccion int                     `json:"direccion"`
	Tabla     paginacion.TablaPaginas `json:"tabla"`
}

func (s *Simulador) handlerTraducir(msg *utils.Mensaje) (interface{}, error) {
	return utils.HandlerGenerico(msg, func(p pedidoTraduccion) (map[string]interface{}, error) {
		tabla := p.Tabla
		if len(tabla) == 0 {
			tabla = paginacion.TablaPorDefecto()
		}
		t, err := paginacion.TraducirConTamanio(p.Direccion, tabla, s.config.tamanioPagina())
		if err != nil && !paginacion.EsFalloPagina(err) {
			return nil, err
		}
		actualizarMetricasTraduccion(s.scope, err != nil)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"traduccion": t,
			"resultado":  t.String(),
		}, nil
	})
}

func (s *Simulador) handlerCrearSesion(msg *utils.Mensaje) (interface{}, error) {
	id := s.sesiones.crear()
	return utils.RespuestaOK(map[string]interface{}{"sesion": id}), nil
}

type pedidoSesion struct {
	Sesion       string `json:"sesion"`
	Pagina       string `json:"pagina"`
	Referenciada *bool  `json:"referenciada"`
	Algoritmo    string `json:"algoritmo"`
}

func estadoMemoria(m reemplazo.Memoria) map[string]interface{} {
	paginas := m.Paginas
	if paginas == nil {
		paginas = []reemplazo.Pagina{}
	}
	historial := m.Historial
	if historial == nil {
		historial = []string{}
	}
	return map[string]interface{}{
		"paginas":   paginas,
		"historial": historial,
	}
}

func (s *Simulador) handlerAgregarPagina(msg *utils.Mensaje) (interface{}, error) {
	return utils.HandlerGenerico(msg, func(p pedidoSesion) (map[string]interface{}, error) {
		m, err := s.sesiones.actualizar(p.Sesion, func(m reemplazo.Memoria) (reemplazo.Memoria, error) {
			if p.Referenciada != nil && !*p.Referenciada {
				return m.AgregarPaginaSinReferencia(p.Pagina)
			}
			return m.AgregarPagina(p.Pagina)
		})
		if err != nil {
			return nil, err
		}
		return estadoMemoria(m), nil
	})
}

func (s *Simulador) handlerReemplazar(msg *utils.Mensaje) (interface{}, error) {
	return utils.HandlerGenerico(msg, func(p pedidoSesion) (map[string]interface{}, error) {
		alg, err := reemplazo.ParsearAlgoritmo(p.Algoritmo)
		if err != nil {
			return nil, err
		}
		var r reemplazo.Reemplazo
		m, err := s.sesiones.actualizar(p.Sesion, func(m reemplazo.Memoria) (reemplazo.Memoria, error) {
			nueva, hecho, err := m.Reemplazar(alg)
			r = hecho
			return nueva, err
		})
		if err != nil {
			return nil, err
		}
		actualizarMetricasReemplazo(s.scope, alg)
		campos := estadoMemoria(m)
		campos["reemplazo"] = r
		return campos, nil
	})
}

func (s *Simulador) handlerEstadoMemoria(msg *utils.Mensaje) (interface{}, error) {
	return utils.HandlerGenerico(msg, func(p pedidoSesion) (map[string]interface{}, error) {
		m, err := s.sesiones.obtener(p.Sesion)
		if err != nil {
			return nil, err
		}
		return estadoMemoria(m), nil
	})
}

func (s *Simulador) handlerReferenciar(msg *utils.Mensaje) (interface{}, error) {
	return utils.HandlerGenerico(msg, func(p pedidoSesion) (map[string]interface{}, error) {
		m, err := s.sesiones.actualizar(p.Sesion, func(m reemplazo.Memoria) (reemplazo.Memoria, error) {
			return m.Referenciar(p.Pagina)
		})
		if err != nil {
			return nil, err
		}
		return estadoMemoria(m), nil
	})
}

func (s *Simulador) handlerLimpiarReferencias(msg *utils.Mensaje) (interface{}, error) {
	return utils.HandlerGenerico(msg, func(p pedidoSesion) (map[string]interface{}, error) {
		m, err := s.sesiones.actualizar(p.Sesion, func(m reemplazo.Memoria) (reemplazo.Memoria, error) {
			return m.LimpiarReferencias(), nil
		})
		if err != nil {
			return nil, err
		}
		return estadoMemoria(m), nil
	})
}

func (s *Simulador) handlerEliminarSesion(msg *utils.Mensaje) (interface{}, error) {
	return utils.HandlerGenerico(msg, func(p pedidoSesion) (map[string]interface{}, error) {
		if err := s.sesiones.eliminar(p.Sesion); err != nil {
			return nil, err
		}
		return map[string]interface{}{"sesion": p.Sesion}, nil
	})
}

func (s *Simulador) handlerPlanificarDisco(msg *utils.Mensaje) (interface{}, error) {
	return utils.HandlerGenerico(msg, func(solicitud disco.Solicitud) (map[string]interface{}, error) {
		alg, err := disco.ParsearAlgoritmo(string(solicitud.Algoritmo))
		if err != nil {
			return nil, err
		}
		solicitud.Algoritmo = alg
		r, err := disco.Planificar(solicitud)
		if err != nil {
			return nil, err
		}
		actualizarMetricasDisco(s.scope, alg)
		return map[string]interface{}{"recorrido": r}, nil
	})
}
