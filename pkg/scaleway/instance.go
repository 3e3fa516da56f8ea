package scaleway

import (
	"context"
	"fmt"
)

// InstanceStateRunning is the only lifecycle state the inventory cares
// about; listings are constrained to it at the query level.
const InstanceStateRunning = "running"

// InstanceServer is one virtual instance as returned by the instance API.
type InstanceServer struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Hostname  string        `json:"hostname"`
	Tags      []string      `json:"tags"`
	State     string        `json:"state"`
	Zone      string        `json:"zone"`
	PublicIP  *InstanceIP   `json:"public_ip"`
	PrivateIP *string       `json:"private_ip"`
	IPv6      *InstanceIPv6 `json:"ipv6"`
}

// InstanceIP is a flexible IP attached to an instance.
type InstanceIP struct {
	ID      string `json:"id"`
	Address string `json:"address"`
}

// InstanceIPv6 is the IPv6 binding of an instance.
type InstanceIPv6 struct {
	Address string `json:"address"`
}

type listInstanceServersResponse struct {
	Servers []InstanceServer `json:"servers"`
}

// ListInstanceServers returns all instance servers in a zone, constrained
// to the given lifecycle state and, when tags are given, to servers
// carrying any of those tags. All pages are fetched.
func (c *Client) ListInstanceServers(ctx context.Context, zone string, tags []string, state string) ([]InstanceServer, error) {
	var servers []InstanceServer

	for page := 1; ; page++ {
		query := listQuery(page, tags)
		if state != "" {
			query.Set("state", state)
		}

		var resp listInstanceServersResponse
		path := fmt.Sprintf("/instance/v1/zones/%s/servers", zone)
		if err := c.get(ctx, path, query, &resp); err != nil {
			return nil, err
		}

		servers = append(servers, resp.Servers...)
		if len(resp.Servers) < perPage {
			return servers, nil
		}
	}
}
