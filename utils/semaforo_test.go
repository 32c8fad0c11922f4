package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/atomic"
)

func TestSemaforoTryWait(t *testing.T) {
	s := NewSemaforo(2)
	assert.True(t, s.TryWait())
	assert.True(t, s.TryWait())
	assert.False(t, s.TryWait())
	assert.Equal(t, 2, s.Ocupados())

	s.Signal()
	assert.Equal(t, 1, s.Ocupados())
	assert.True(t, s.TryWait())
}

func TestSemaforoSignalSinWaitNoExcedeCapacidad(t *testing.T) {
	s := NewSemaforo(1)
	s.Signal()
	s.Signal()
	assert.True(t, s.TryWait())
	assert.False(t, s.TryWait())
}

func TestSemaforoCapacidadInvalida(t *testing.T) {
	s := NewSemaforo(0)
	assert.True(t, s.TryWait())
	assert.False(t, s.TryWait())
}

func TestSemaforoLimitaConcurrencia(t *testing.T) {
	s := NewSemaforo(3)
	var dentro, maximo atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Wait()
			defer s.Signal()

			actual := dentro.Inc()
			for {
				m := maximo.Load()
				if actual <= m || maximo.CompareAndSwap(m, actual) {
					break
				}
			}
			dentro.Dec()
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, maximo.Load(), int64(3))
	assert.Zero(t, s.Ocupados())
}
