// Package notify implements the in-process push channel: a Directory of live
// connections keyed by actor and role, and a Bus that fans events out to them.
// Nothing is persisted; a connection exists only while its socket is open.
package notify

import (
	"sync"

	"laundry/internal/core/domain/model/kernel"
)

// Conn is one live push connection. Send must be safe for concurrent use.
type Conn interface {
	// ID is unique per connection for the lifetime of the process.
	ID() string
	// Send hands one event to the connection. It is called while fanning out
	// to every recipient, so it must queue rather than wait on the network.
	Send(event string, payload any) error
}

// Directory tracks which authenticated actor owns each connection. An actor
// may hold several connections (devices); a connection belongs to one actor.
type Directory struct {
	mu      sync.RWMutex
	byActor map[kernel.UUID]map[string]Conn
	byRole  map[kernel.Role]map[string]Conn
	owners  map[string]kernel.Actor
}

func NewDirectory() *Directory {
	return &Directory{
		byActor: make(map[kernel.UUID]map[string]Conn),
		byRole:  make(map[kernel.Role]map[string]Conn),
		owners:  make(map[string]kernel.Actor),
	}
}

// Register binds c to actor. Re-authenticating a connection moves it to the new actor.
func (d *Directory) Register(actor kernel.Actor, c Conn) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.removeLocked(c.ID())

	if d.byActor[actor.ID()] == nil {
		d.byActor[actor.ID()] = make(map[string]Conn)
	}
	if d.byRole[actor.Role()] == nil {
		d.byRole[actor.Role()] = make(map[string]Conn)
	}
	d.byActor[actor.ID()][c.ID()] = c
	d.byRole[actor.Role()][c.ID()] = c
	d.owners[c.ID()] = actor
}

// Unregister forgets the connection. Unknown connections are ignored.
func (d *Directory) Unregister(c Conn) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.removeLocked(c.ID())
}

// Owner returns the actor a connection authenticated as.
func (d *Directory) Owner(c Conn) (kernel.Actor, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	actor, ok := d.owners[c.ID()]
	return actor, ok
}

// ForActor snapshots the actor's connections.
func (d *Directory) ForActor(id kernel.UUID) []Conn {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return snapshot(d.byActor[id])
}

// ForRole snapshots every connection of every actor with the role.
func (d *Directory) ForRole(role kernel.Role) []Conn {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return snapshot(d.byRole[role])
}

// Len is the number of registered connections.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.owners)
}

func (d *Directory) removeLocked(connID string) {
	actor, ok := d.owners[connID]
	if !ok {
		return
	}
	delete(d.owners, connID)

	if conns := d.byActor[actor.ID()]; conns != nil {
		delete(conns, connID)
		if len(conns) == 0 {
			delete(d.byActor, actor.ID())
		}
	}
	if conns := d.byRole[actor.Role()]; conns != nil {
		delete(conns, connID)
		if len(conns) == 0 {
			delete(d.byRole, actor.Role())
		}
	}
}

func snapshot(conns map[string]Conn) []Conn {
	out := make([]Conn, 0, len(conns))
	for _, c := range conns {
		out = append(out, c)
	}
	return out
}
