package populator

import (
	"github.com/scwtools/scwinv/internal/inventory"
	"github.com/scwtools/scwinv/internal/models"
)

// Sink receives the derived groups and hosts. Both operations are
// idempotent: registering an existing group or host is a no-op.
type Sink interface {
	AddGroup(name string)
	AddHost(group, host string)
}

// Populate writes every record's (group, host) pairs into the sink.
// Registration follows the insertion order of the aggregated sequence; no
// explicit sort across records. A host with no resolvable hostname aborts
// the whole pass.
func Populate(sink Sink, hosts []models.Host, preferences []string) error {
	for _, host := range hosts {
		groups := inventory.GroupsFor(host)
		hostname, err := inventory.HostnameFor(host, preferences)
		if err != nil {
			return err
		}

		for _, group := range groups {
			sink.AddGroup(group)
			sink.AddHost(group, hostname)
		}
	}
	return nil
}
