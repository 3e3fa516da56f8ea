package scaleway

import (
	"context"
	"fmt"
	"strings"
)

// IP versions reported by the elastic metal API.
const (
	IPVersionIPv4 = "IPv4"
	IPVersionIPv6 = "IPv6"
)

// BaremetalServer is one elastic metal server as returned by the
// baremetal API. Listings return servers in every lifecycle state.
type BaremetalServer struct {
	ID   string        `json:"id"`
	Name string        `json:"name"`
	Tags []string      `json:"tags"`
	Zone string        `json:"zone"`
	IPs  []BaremetalIP `json:"ips"`
}

// BaremetalIP is one address attached to an elastic metal server.
type BaremetalIP struct {
	ID      string `json:"id"`
	Address string `json:"address"`
	Version string `json:"version"`
}

// IsIPv4 reports whether the attached address is an IPv4 address. The API
// has returned both "IPv4" and lowercase "ipv4" across versions.
func (ip BaremetalIP) IsIPv4() bool {
	return strings.EqualFold(ip.Version, IPVersionIPv4)
}

// IsIPv6 reports whether the attached address is an IPv6 address.
func (ip BaremetalIP) IsIPv6() bool {
	return strings.EqualFold(ip.Version, IPVersionIPv6)
}

type listBaremetalServersResponse struct {
	Servers []BaremetalServer `json:"servers"`
}

// ListBaremetalServers returns all elastic metal servers in a zone,
// optionally constrained to servers carrying any of the given tags.
// No lifecycle-state filter exists on this endpoint. All pages are fetched.
func (c *Client) ListBaremetalServers(ctx context.Context, zone string, tags []string) ([]BaremetalServer, error) {
	var servers []BaremetalServer

	for page := 1; ; page++ {
		var resp listBaremetalServersResponse
		path := fmt.Sprintf("/baremetal/v1/zones/%s/servers", zone)
		if err := c.get(ctx, path, listQuery(page, tags), &resp); err != nil {
			return nil, err
		}

		servers = append(servers, resp.Servers...)
		if len(resp.Servers) < perPage {
			return servers, nil
		}
	}
}
