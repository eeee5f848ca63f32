package services

import "sync"

// inflightGroup merangkap panggilan re-validasi konkuren per user menjadi satu
// round trip. Pemanggil kedua menunggu hasil panggilan pertama, tidak memicu
// request duplikat saat user pindah-pindah halaman dengan cepat.
type inflightGroup struct {
	mu    sync.Mutex
	calls map[uint]*inflightCall
}

type inflightCall struct {
	done   chan struct{}
	status *AccessStatus
	err    error
}

func (g *inflightGroup) do(key uint, fn func() (*AccessStatus, error)) (*AccessStatus, error) {
	g.mu.Lock()
	if g.calls == nil {
		g.calls = make(map[uint]*inflightCall)
	}
	if c, ok := g.calls[key]; ok {
		g.mu.Unlock()
		<-c.done
		return c.status, c.err
	}

	c := &inflightCall{done: make(chan struct{})}
	g.calls[key] = c
	g.mu.Unlock()

	c.status, c.err = fn()

	g.mu.Lock()
	delete(g.calls, key)
	g.mu.Unlock()
	close(c.done)

	return c.status, c.err
}
