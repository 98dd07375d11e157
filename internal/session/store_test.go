package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_StartsEmpty(t *testing.T) {
	s := NewStore()
	assert.Equal(t, "", s.Get())
}

func TestStore_SetGetClear(t *testing.T) {
	s := NewStore()

	s.Set("token-1")
	assert.Equal(t, "token-1", s.Get())

	s.Set("token-2")
	assert.Equal(t, "token-2", s.Get())

	s.Clear()
	assert.Equal(t, "", s.Get())
}

func TestStore_WritesVisibleAcrossGoroutines(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.Set("fresh")
	}()
	wg.Wait()

	assert.Equal(t, "fresh", s.Get())
}

func TestStore_ConcurrentAccessDoesNotRace(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Set("t")
		}()
		go func() {
			defer wg.Done()
			_ = s.Get()
		}()
	}
	wg.Wait()
}
