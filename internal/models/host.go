package models

// Host is the normalized representation of one discovered compute resource.
// Fetchers produce it, everything downstream consumes it; no component
// mutates a Host after creation.
type Host struct {
	ID       string   `json:"id"`
	Hostname string   `json:"hostname"`
	Tags     []string `json:"tags,omitempty"`
	Zone     string   `json:"zone"`

	// Address fields are nil when the resource has no such address
	// assigned. An empty string is never used to mean "absent".
	PublicIPv4  *string `json:"public_ipv4,omitempty"`
	PrivateIPv4 *string `json:"private_ipv4,omitempty"`
	PublicIPv6  *string `json:"public_ipv6,omitempty"`
}

// Clone returns a deep copy. The cache layer stores copies so that a
// cached sequence can never alias records still held by a caller.
func (h Host) Clone() Host {
	out := h
	if h.Tags != nil {
		out.Tags = append([]string(nil), h.Tags...)
	}
	out.PublicIPv4 = cloneString(h.PublicIPv4)
	out.PrivateIPv4 = cloneString(h.PrivateIPv4)
	out.PublicIPv6 = cloneString(h.PublicIPv6)
	return out
}

// CloneHosts deep-copies a host sequence, preserving order.
func CloneHosts(hosts []Host) []Host {
	if hosts == nil {
		return nil
	}
	out := make([]Host, len(hosts))
	for i, h := range hosts {
		out[i] = h.Clone()
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
