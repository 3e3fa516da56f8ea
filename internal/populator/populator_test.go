package populator

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	inverrors "github.com/scwtools/scwinv/internal/errors"
	"github.com/scwtools/scwinv/internal/models"
)

func strptr(s string) *string { return &s }

func TestPopulateEndToEnd(t *testing.T) {
	hosts := []models.Host{{
		ID:         "i1",
		Zone:       "fr-par-1",
		Tags:       []string{"dev"},
		PublicIPv4: strptr("1.2.3.4"),
	}}

	sink := NewMemorySink()
	err := Populate(sink, hosts, []string{"public_ipv4"})
	require.NoError(t, err)

	require.ElementsMatch(t, []string{"dev", "fr_par_1"}, sink.Groups())
	require.Equal(t, []string{"1.2.3.4"}, sink.Hosts("dev"))
	require.Equal(t, []string{"1.2.3.4"}, sink.Hosts("fr_par_1"))
}

func TestPopulateIsIdempotentPerGroupAndHost(t *testing.T) {
	hosts := []models.Host{
		{ID: "i1", Zone: "fr-par-1", Tags: []string{"dev"}, PublicIPv4: strptr("1.2.3.4")},
		{ID: "i2", Zone: "fr-par-1", Tags: []string{"dev"}, PublicIPv4: strptr("1.2.3.4")},
	}

	sink := NewMemorySink()
	require.NoError(t, Populate(sink, hosts, []string{"public_ipv4"}))

	// Same hostname registered twice under the same groups collapses.
	require.Equal(t, []string{"1.2.3.4"}, sink.Hosts("dev"))
	require.Equal(t, []string{"1.2.3.4"}, sink.Hosts("fr_par_1"))
}

func TestPopulateAbortsOnUnresolvableHostname(t *testing.T) {
	hosts := []models.Host{
		{ID: "ok", Zone: "fr-par-1", PublicIPv4: strptr("1.2.3.4")},
		{ID: "broken", Zone: "fr-par-1"},
	}

	sink := NewMemorySink()
	err := Populate(sink, hosts, []string{"public_ipv4"})
	require.Error(t, err)

	var noName *inverrors.NoHostnameError
	require.True(t, errors.As(err, &noName))
	require.Equal(t, "broken", noName.HostID)
}

func TestMemorySinkGroupOrderFollowsRegistration(t *testing.T) {
	sink := NewMemorySink()
	sink.AddGroup("b")
	sink.AddGroup("a")
	sink.AddGroup("b")
	sink.AddHost("c", "h1")

	require.Equal(t, []string{"b", "a", "c"}, sink.Groups())
	require.Nil(t, sink.Hosts("unknown"))
}

func TestRenderListFormat(t *testing.T) {
	hosts := []models.Host{{
		ID:         "i1",
		Zone:       "fr-par-1",
		Tags:       []string{"dev"},
		PublicIPv4: strptr("1.2.3.4"),
	}}

	sink := NewMemorySink()
	require.NoError(t, Populate(sink, hosts, []string{"public_ipv4"}))

	data, err := sink.RenderList()
	require.NoError(t, err)

	var out map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &out))
	require.Contains(t, out, "_meta")
	require.Contains(t, out, "dev")
	require.Contains(t, out, "fr_par_1")

	var group struct {
		Hosts []string `json:"hosts"`
	}
	require.NoError(t, json.Unmarshal(out["dev"], &group))
	require.Equal(t, []string{"1.2.3.4"}, group.Hosts)

	// Deterministic for a fixed record sequence.
	again, err := sink.RenderList()
	require.NoError(t, err)
	require.JSONEq(t, string(data), string(again))
}
