package utils

// Semaforo acota cuántos handlers corren a la vez. Cada lugar tomado es un
// elemento en el buffer del canal.
type Semaforo struct {
	lugares chan struct{}
}

// NewSemaforo crea un semáforo con la cantidad de lugares dada (al menos uno)
func NewSemaforo(lugares int) *Semaforo {
	if lugares < 1 {
		lugares = 1
	}
	return &Semaforo{lugares: make(chan struct{}, lugares)}
}

// Wait toma un lugar y se bloquea mientras estén todos ocupados
func (s *Semaforo) Wait() {
	s.lugares <- struct{}{}
}

// TryWait toma un lugar si hay uno libre. El servidor lo usa para contar
// los pedidos que tuvieron que esperar.
func (s *Semaforo) TryWait() bool {
	select {
	case s.lugares <- struct{}{}:
		return true
	default:
		return false
	}
}

// Signal libera un lugar. Sin lugares tomados no hace nada.
func (s *Semaforo) Signal() {
	select {
	case <-s.lugares:
	default:
	}
}

// Ocupados es la cantidad de handlers en curso
func (s *Semaforo) Ocupados() int {
	return len(s.lugares)
}
