package inventory

import (
	"context"

	inverrors "github.com/scwtools/scwinv/internal/errors"
	"github.com/scwtools/scwinv/internal/models"
	"github.com/scwtools/scwinv/pkg/scaleway"
)

// InstanceLister lists virtual instances in one zone. Satisfied by
// *scaleway.Client.
type InstanceLister interface {
	ListInstanceServers(ctx context.Context, zone string, tags []string, state string) ([]scaleway.InstanceServer, error)
}

// BaremetalLister lists elastic metal servers in one zone. Satisfied by
// *scaleway.Client.
type BaremetalLister interface {
	ListBaremetalServers(ctx context.Context, zone string, tags []string) ([]scaleway.BaremetalServer, error)
}

// fetcher is one source class. Required fetchers abort the whole
// aggregation on error; optional fetchers degrade to an empty
// contribution for the failing zone.
type fetcher interface {
	source() inverrors.Source
	required() bool
	fetchZone(ctx context.Context, zone string, filters Filters) ([]models.Host, error)
}

type instanceFetcher struct {
	api InstanceLister
}

func (f *instanceFetcher) source() inverrors.Source { return inverrors.SourceInstance }
func (f *instanceFetcher) required() bool           { return true }

func (f *instanceFetcher) fetchZone(ctx context.Context, zone string, filters Filters) ([]models.Host, error) {
	servers, err := f.api.ListInstanceServers(ctx, zone, filters.Tags, scaleway.InstanceStateRunning)
	if err != nil {
		return nil, err
	}

	hosts := make([]models.Host, 0, len(servers))
	for _, server := range servers {
		if filters.excludesZone(server.Zone) {
			continue
		}

		host := models.Host{
			ID:       server.ID,
			Hostname: server.Hostname,
			Tags:     server.Tags,
			Zone:     server.Zone,
		}
		if server.PrivateIP != nil && *server.PrivateIP != "" {
			addr := *server.PrivateIP
			host.PrivateIPv4 = &addr
		}
		if server.PublicIP != nil && server.PublicIP.Address != "" {
			addr := server.PublicIP.Address
			host.PublicIPv4 = &addr
		}
		if server.IPv6 != nil && server.IPv6.Address != "" {
			addr := server.IPv6.Address
			host.PublicIPv6 = &addr
		}

		hosts = append(hosts, host)
	}
	return hosts, nil
}

type baremetalFetcher struct {
	api BaremetalLister
}

func (f *baremetalFetcher) source() inverrors.Source { return inverrors.SourceBaremetal }
func (f *baremetalFetcher) required() bool           { return false }

func (f *baremetalFetcher) fetchZone(ctx context.Context, zone string, filters Filters) ([]models.Host, error) {
	servers, err := f.api.ListBaremetalServers(ctx, zone, filters.Tags)
	if err != nil {
		return nil, err
	}

	hosts := make([]models.Host, 0, len(servers))
	for _, server := range servers {
		host := models.Host{
			ID:       server.ID,
			Hostname: server.Name,
			Tags:     server.Tags,
			Zone:     server.Zone,
		}
		for _, ip := range server.IPs {
			if host.PublicIPv4 == nil && ip.IsIPv4() && ip.Address != "" {
				addr := ip.Address
				host.PublicIPv4 = &addr
			}
			if host.PublicIPv6 == nil && ip.IsIPv6() && ip.Address != "" {
				addr := ip.Address
				host.PublicIPv6 = &addr
			}
		}

		hosts = append(hosts, host)
	}
	return hosts, nil
}
