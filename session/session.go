package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/highrow623/pseudoregalia-archipelago/ipc"
	"github.com/highrow623/pseudoregalia-archipelago/model"
	"github.com/highrow623/pseudoregalia-archipelago/rules"
	"github.com/highrow623/pseudoregalia-archipelago/tags"
	"github.com/highrow623/pseudoregalia-archipelago/tricks"
	"github.com/highrow623/pseudoregalia-archipelago/world"
)

// ErrNoHello is returned for player messages that arrive before hello.
var ErrNoHello = errors.New("no hello received")

// Session owns the compiled logic for a single player connection.
type Session struct {
	ID      string // correlates log lines for one connection
	Conn    *ipc.Connection
	Catalog *tricks.Catalog
	Resolve tags.Resolver
	// Layout fixes the world's slot names. When nil the layout is derived
	// from the catalog.
	Layout *world.Layout

	Ruleset *rules.Ruleset
	graph   *world.Graph
	last    *world.Reachability
}

func New(conn *ipc.Connection, cat *tricks.Catalog, resolve tags.Resolver, layout *world.Layout) *Session {
	return &Session{ID: uuid.New().String(), Conn: conn, Catalog: cat, Resolve: resolve, Layout: layout}
}

// Register wires the session's handlers into its connection.
func (s *Session) Register() {
	s.Conn.RegisterHandler(ipc.TypeHello, s.HandleHello)
	s.Conn.RegisterHandler(ipc.TypeInventory, s.HandleInventory)
}

// HandleHello compiles the player's ruleset and attaches it to a fresh
// world graph. A second hello replaces the first.
func (s *Session) HandleHello(env ipc.Envelope) (*ipc.Envelope, error) {
	var hello ipc.HelloMessage
	if err := json.Unmarshal(env.Data, &hello); err != nil {
		return nil, fmt.Errorf("unmarshal hello: %w", err)
	}
	opts := hello.Options

	rs, err := rules.Compile(s.Catalog, opts, s.Resolve)
	if err != nil {
		return nil, err
	}
	layout := world.CatalogLayout(s.Catalog, opts.SplitSunGreaves)
	if s.Layout != nil {
		layout = *s.Layout
	}
	g := world.NewGraph(layout)
	if err := world.Apply(rs, g, opts.SplitSunGreaves); err != nil {
		return nil, err
	}

	s.Ruleset, s.graph, s.last = rs, g, nil
	if s.Conn != nil {
		s.Conn.Player = opts.Player
	}
	slog.Info("player identified", "session", s.ID, "player", opts.Player, "name", opts.Name, "tags", rs.Tags.Sorted())

	ack, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: "ok"})
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

// HandleInventory evaluates every slot against the reported items and
// replies with what is reachable.
func (s *Session) HandleInventory(env ipc.Envelope) (*ipc.Envelope, error) {
	if s.graph == nil {
		return nil, ErrNoHello
	}
	var msg ipc.InventoryMessage
	if err := json.Unmarshal(env.Data, &msg); err != nil {
		return nil, fmt.Errorf("unmarshal inventory: %w", err)
	}
	inv := model.Inventory{Player: s.Ruleset.Player, Items: msg.Items}

	r := s.graph.Evaluate(inv)
	events := detectEvents(s.last, r)
	s.last = &r

	for _, e := range events {
		slog.Info("target reachable", "session", s.ID, "player", inv.Player, "kind", e.Kind, "target", e.Target)
	}
	slog.Debug("inventory evaluated",
		"session", s.ID,
		"player", inv.Player,
		"items", len(inv.Names()),
		"entrances", len(r.Entrances),
		"locations", len(r.Locations),
		"goal", r.Goal,
	)

	reply := ipc.ReachabilityMessage{
		Entrances: r.Entrances,
		Locations: r.Locations,
		Goal:      r.Goal,
	}
	for _, e := range events {
		reply.NewlyReachable = append(reply.NewlyReachable, e.Target)
	}
	out, err := ipc.NewEnvelope(ipc.TypeReachability, reply)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
