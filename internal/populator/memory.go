package populator

import (
	"encoding/json"
	"sort"
)

// MemorySink is an in-memory Sink used by the CLI to render the inventory
// as JSON in the external inventory script format ("--list" output).
type MemorySink struct {
	groups map[string]map[string]struct{}
	order  []string
}

// NewMemorySink creates an empty sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{
		groups: make(map[string]map[string]struct{}),
	}
}

// AddGroup registers a group. Idempotent.
func (s *MemorySink) AddGroup(name string) {
	if _, ok := s.groups[name]; ok {
		return
	}
	s.groups[name] = make(map[string]struct{})
	s.order = append(s.order, name)
}

// AddHost adds a host to a group, registering the group if needed.
// Idempotent.
func (s *MemorySink) AddHost(group, host string) {
	s.AddGroup(group)
	s.groups[group][host] = struct{}{}
}

// Groups returns group names in registration order.
func (s *MemorySink) Groups() []string {
	return append([]string(nil), s.order...)
}

// Hosts returns a group's hosts, sorted. Nil for an unknown group.
func (s *MemorySink) Hosts(group string) []string {
	members, ok := s.groups[group]
	if !ok {
		return nil
	}
	hosts := make([]string, 0, len(members))
	for host := range members {
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)
	return hosts
}

type groupEntry struct {
	Hosts []string `json:"hosts"`
}

// RenderList renders the sink as inventory-script JSON: one key per group
// with its sorted host list, plus the _meta stanza. Output is
// deterministic for a fixed record sequence.
func (s *MemorySink) RenderList() ([]byte, error) {
	out := make(map[string]interface{}, len(s.groups)+1)
	out["_meta"] = map[string]interface{}{
		"hostvars": map[string]interface{}{},
	}
	for group := range s.groups {
		out[group] = groupEntry{Hosts: s.Hosts(group)}
	}
	return json.MarshalIndent(out, "", "  ")
}
