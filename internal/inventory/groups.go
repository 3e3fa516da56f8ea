package inventory

import (
	"sort"
	"strings"

	"github.com/scwtools/scwinv/internal/models"
)

// GroupsFor derives a host's group set: its tags plus its zone with
// separators normalized ("-" becomes "_"). Pure function of the record;
// the result is sorted so repeated calls on equal records yield equal
// slices.
func GroupsFor(host models.Host) []string {
	seen := make(map[string]struct{}, len(host.Tags)+1)
	for _, tag := range host.Tags {
		seen[tag] = struct{}{}
	}
	if host.Zone != "" {
		seen[strings.ReplaceAll(host.Zone, "-", "_")] = struct{}{}
	}

	groups := make([]string, 0, len(seen))
	for group := range seen {
		groups = append(groups, group)
	}
	sort.Strings(groups)
	return groups
}
