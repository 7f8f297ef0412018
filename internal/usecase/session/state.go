package session

import (
	"sync"
)

// Status is the resolution state of an auth session. No redirect or
// sign-out decision is taken while a session is still Loading.
type Status int

const (
	StatusLoading Status = iota
	StatusAuthenticated
	StatusAnonymous
)

func (s Status) String() string {
	switch s {
	case StatusAuthenticated:
		return "authenticated"
	case StatusAnonymous:
		return "anonymous"
	default:
		return "loading"
	}
}

type State struct {
	Status Status
	UserID string
}

// Provider holds the observable auth state of one session. Consumers
// subscribe and react to transitions instead of polling.
type Provider struct {
	mu     sync.Mutex
	state  State
	subs   map[int]func(State)
	nextID int
}

func NewProvider() *Provider {
	return &Provider{
		state: State{Status: StatusLoading},
		subs:  make(map[int]func(State)),
	}
}

func (p *Provider) Current() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Provider) Set(state State) {
	p.mu.Lock()
	if p.state == state {
		p.mu.Unlock()
		return
	}
	p.state = state
	subs := make([]func(State), 0, len(p.subs))
	for _, fn := range p.subs {
		subs = append(subs, fn)
	}
	p.mu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}

// Subscribe registers a callback for future transitions and returns an
// id for Unsubscribe. The current state is delivered immediately.
func (p *Provider) Subscribe(fn func(State)) int {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.subs[id] = fn
	state := p.state
	p.mu.Unlock()

	fn(state)
	return id
}

func (p *Provider) Unsubscribe(id int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.subs, id)
}
