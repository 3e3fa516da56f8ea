package inventory

import (
	"strings"

	"github.com/scwtools/scwinv/internal/config"
)

// Filters is the zone/tag filter spec applied to every fetch. Zones is
// the user-configured zone filter; empty means "no filter" and the engine
// queries its full default zone list. Tags are any-of, applied at the
// remote query level by fetchers that support it.
type Filters struct {
	Zones []string
	Tags  []string
}

// queryZones returns the zones to iterate for remote queries.
func (f Filters) queryZones() []string {
	if len(f.Zones) > 0 {
		return f.Zones
	}
	return config.DefaultZones
}

// excludesZone is the post-fetch zone check applied to instance records:
// a record is dropped when a zone filter is configured and the record's
// zone starts with any configured zone string. Kept as-is for backward
// compatibility; with no configured filter the check is vacuous and
// nothing is dropped.
func (f Filters) excludesZone(zone string) bool {
	if len(f.Zones) == 0 {
		return false
	}
	for _, z := range f.Zones {
		if strings.HasPrefix(zone, z) {
			return true
		}
	}
	return false
}
