package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestCloneIsIndependent(t *testing.T) {
	original := Host{
		ID:          "i1",
		Hostname:    "web-1",
		Tags:        []string{"dev"},
		Zone:        "fr-par-1",
		PublicIPv4:  strptr("1.2.3.4"),
		PrivateIPv4: strptr("10.0.0.1"),
	}

	clone := original.Clone()
	require.Equal(t, original, clone)

	clone.Tags[0] = "changed"
	*clone.PublicIPv4 = "9.9.9.9"
	require.Equal(t, "dev", original.Tags[0])
	require.Equal(t, "1.2.3.4", *original.PublicIPv4)
}

func TestCloneNilFields(t *testing.T) {
	original := Host{ID: "i1", Zone: "fr-par-1"}
	clone := original.Clone()
	require.Nil(t, clone.Tags)
	require.Nil(t, clone.PublicIPv4)
	require.Nil(t, clone.PrivateIPv4)
	require.Nil(t, clone.PublicIPv6)
}

func TestCloneHostsPreservesOrder(t *testing.T) {
	hosts := []Host{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	clones := CloneHosts(hosts)
	require.Equal(t, hosts, clones)

	clones[0].ID = "mutated"
	require.Equal(t, "a", hosts[0].ID)

	require.Nil(t, CloneHosts(nil))
}
