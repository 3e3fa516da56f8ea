package inventory

import (
	"github.com/scwtools/scwinv/internal/config"
	inverrors "github.com/scwtools/scwinv/internal/errors"
	"github.com/scwtools/scwinv/internal/models"
)

// hostnameAccessors maps each preference name to an accessor over the
// host record. An explicit table instead of name-based reflection: the
// set of resolvable fields is closed and visible here.
var hostnameAccessors = map[string]func(models.Host) string{
	config.HostnamePublicIPv4:  func(h models.Host) string { return deref(h.PublicIPv4) },
	config.HostnamePrivateIPv4: func(h models.Host) string { return deref(h.PrivateIPv4) },
	config.HostnamePublicIPv6:  func(h models.Host) string { return deref(h.PublicIPv6) },
	config.HostnameHostname:    func(h models.Host) string { return h.Hostname },
	config.HostnameID:          func(h models.Host) string { return h.ID },
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// HostnameFor resolves a host's display hostname: the first preference
// whose value is present and non-empty. Unknown preference names are
// treated as absent. Returns NoHostnameError when nothing resolves.
func HostnameFor(host models.Host, preferences []string) (string, error) {
	for _, name := range preferences {
		accessor, ok := hostnameAccessors[name]
		if !ok {
			continue
		}
		if value := accessor(host); value != "" {
			return value, nil
		}
	}
	return "", &inverrors.NoHostnameError{
		HostID:      host.ID,
		Preferences: append([]string(nil), preferences...),
	}
}
