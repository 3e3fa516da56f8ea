package config

import (
	"fmt"
)

// DefaultZones is the full list of known zones, queried when the source
// configures no explicit zone filter.
var DefaultZones = []string{
	"fr-par-1",
	"fr-par-2",
	"fr-par-3",
	"nl-ams-1",
	"nl-ams-2",
	"pl-waw-1",
	"pl-waw-2",
}

// Hostname preference names accepted in the hostnames option.
const (
	HostnamePublicIPv4  = "public_ipv4"
	HostnamePrivateIPv4 = "private_ipv4"
	HostnamePublicIPv6  = "public_ipv6"
	HostnameHostname    = "hostname"
	HostnameID          = "id"
)

var validHostnames = map[string]bool{
	HostnamePublicIPv4:  true,
	HostnamePrivateIPv4: true,
	HostnamePublicIPv6:  true,
	HostnameHostname:    true,
	HostnameID:          true,
}

// Config is one parsed inventory source.
type Config struct {
	// Client construction options.
	Profile          string `yaml:"profile"`
	ConfigFile       string `yaml:"config_file"`
	AccessKey        string `yaml:"access_key"`
	SecretKey        string `yaml:"secret_key"`
	APIURL           string `yaml:"api_url"`
	APIAllowInsecure bool   `yaml:"api_allow_insecure"`
	UserAgent        string `yaml:"user_agent"`

	// Filtering and presentation.
	Zones     []string `yaml:"zones"`
	Tags      []string `yaml:"tags"`
	Hostnames []string `yaml:"hostnames"`

	// Caching.
	Cache    bool   `yaml:"cache"`
	CacheDir string `yaml:"cache_dir"`

	// SourcePath is the resolved path of the file this config was loaded
	// from. It identifies the source for cache keying.
	SourcePath string `yaml:"-"`
}

// applyDefaults fills unset options with their documented defaults. The
// zone default is applied at query time, not here: an empty Zones means
// "no user zone filter", which the fetchers must be able to distinguish
// from an explicit filter listing every zone.
func (c *Config) applyDefaults() {
	if len(c.Hostnames) == 0 {
		c.Hostnames = []string{HostnamePublicIPv4}
	}
}

// Validate checks option values that have a closed set of choices.
func (c *Config) Validate() error {
	for _, name := range c.Hostnames {
		if !validHostnames[name] {
			return fmt.Errorf("invalid hostname preference %q", name)
		}
	}
	return nil
}

// QueryZones returns the zones to query: the configured filter when one
// is set, the full default list otherwise.
func (c *Config) QueryZones() []string {
	if len(c.Zones) > 0 {
		return c.Zones
	}
	return DefaultZones
}
