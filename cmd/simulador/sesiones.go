package main

import (
	"sync"
	"time"

	"github.com/pborman/uuid"
	"github.com/pkg/errors"

	"github.com/sisoputnfrba/simulador-memoria/reemplazo"
	"github.com/sisoputnfrba/simulador-memoria/utils"
)

// MaxSesionesPorDefecto se usa cuando la configuración no fija un tope
const MaxSesionesPorDefecto = 1000

type sesion struct {
	memoria   reemplazo.Memoria
	ultimoUso time.Time
}

// sesiones guarda la memoria de la pantalla de reemplazo de cada cliente.
// Cada acción reemplaza el valor completo. Al llegar al tope se descarta
// la sesión usada hace más tiempo.
type sesiones struct {
	mu       sync.Mutex
	memorias map[string]*sesion
	max      int
	ahora    func() time.Time
}

func nuevasSesiones(max int) *sesiones {
	if max <= 0 {
		max = MaxSesionesPorDefecto
	}
	return &sesiones{
		memorias: make(map[string]*sesion),
		max:      max,
		ahora:    time.Now,
	}
}

func (s *sesiones) crear() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.memorias) >= s.max {
		s.descartarMasVieja()
	}

	id := uuid.New()
	s.memorias[id] = &sesion{ultimoUso: s.ahora()}
	utils.InfoLog.WithField("sesion", id).Info("Sesión de reemplazo creada")
	return id
}

// descartarMasVieja se llama con el lock tomado
func (s *sesiones) descartarMasVieja() {
	var vieja string
	var uso time.Time
	for id, ses := range s.memorias {
		if vieja == "" || ses.ultimoUso.Before(uso) {
			vieja, uso = id, ses.ultimoUso
		}
	}
	delete(s.memorias, vieja)
	utils.InfoLog.WithField("sesion", vieja).Warn("Tope de sesiones alcanzado, se descarta la menos usada")
}

func (s *sesiones) obtener(id string) (reemplazo.Memoria, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ses, existe := s.memorias[id]
	if !existe {
		return reemplazo.Memoria{}, errSesionInexistente(id)
	}
	ses.ultimoUso = s.ahora()
	return ses.memoria, nil
}

// actualizar aplica la acción sobre la memoria de la sesión y guarda el resultado
// solo si la acción no falló
func (s *sesiones) actualizar(id string, accion func(reemplazo.Memoria) (reemplazo.Memoria, error)) (reemplazo.Memoria, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ses, existe := s.memorias[id]
	if !existe {
		return reemplazo.Memoria{}, errSesionInexistente(id)
	}
	ses.ultimoUso = s.ahora()

	nueva, err := accion(ses.memoria)
	if err != nil {
		return ses.memoria, err
	}
	ses.memoria = nueva
	return nueva, nil
}

func (s *sesiones) eliminar(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, existe := s.memorias[id]; !existe {
		return errSesionInexistente(id)
	}
	delete(s.memorias, id)
	utils.InfoLog.WithField("sesion", id).Info("Sesión de reemplazo eliminada")
	return nil
}

func (s *sesiones) cantidad() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.memorias)
}

func errSesionInexistente(id string) error {
	return errors.Wrapf(utils.ErrEntradaInvalida, "la sesión %q no existe", id)
}
