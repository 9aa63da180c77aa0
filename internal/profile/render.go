package profile

import (
	"fmt"
	"net/netip"
	"strings"
)

// Render serializes an interface to wg-quick configuration text. It is
// total over any built Interface: absent fields render nothing, an
// interface with no peers renders only the `[Interface]` block.
//
// The format asymmetry is deliberate and load-bearing for compatibility:
// Address, DNS and AllowedIPs are comma-joined single lines, while the
// PreUp/PreDown/PostUp/PostDown hooks emit one line per command.
func Render(iface *Interface) string {
	var sb strings.Builder

	sb.WriteString("[Interface]\n")
	if iface.Endpoint != "" {
		fmt.Fprintf(&sb, "# Name = %s\n", iface.Endpoint)
	}
	if len(iface.Addresses) > 0 {
		fmt.Fprintf(&sb, "Address = %s\n", joinAddresses(iface.Addresses))
	}
	if iface.ListenPort != 0 {
		fmt.Fprintf(&sb, "ListenPort = %d\n", iface.ListenPort)
	}
	if iface.PrivateKey != nil {
		fmt.Fprintf(&sb, "PrivateKey = %s\n", iface.PrivateKey)
	}
	if len(iface.DNS) > 0 {
		fmt.Fprintf(&sb, "DNS = %s\n", strings.Join(iface.DNS, ","))
	}
	if iface.MTU != 0 {
		fmt.Fprintf(&sb, "MTU = %d\n", iface.MTU)
	}
	if iface.Table != "" {
		fmt.Fprintf(&sb, "Table = %s\n", iface.Table)
	}
	if iface.Obfuscation != nil {
		renderObfuscation(&sb, iface.Obfuscation)
	}

	renderHooks(&sb, "PreUp", iface.PreUp)
	renderHooks(&sb, "PreDown", iface.PreDown)
	renderHooks(&sb, "PostUp", iface.PostUp)
	renderHooks(&sb, "PostDown", iface.PostDown)

	for i := range iface.Peers {
		sb.WriteString("\n")
		renderPeer(&sb, &iface.Peers[i])
	}

	return sb.String()
}

// joinAddresses comma-joins prefixes, eliding the /32 and /128 suffix of
// single-host networks.
func joinAddresses(prefixes []netip.Prefix) string {
	parts := make([]string, len(prefixes))
	for i, p := range prefixes {
		if p.IsSingleIP() {
			parts[i] = p.Addr().String()
		} else {
			parts[i] = p.String()
		}
	}
	return strings.Join(parts, ",")
}

// renderHooks writes one line per command, preceded by a blank separator
// line. Commands are never joined.
func renderHooks(sb *strings.Builder, key string, cmds []string) {
	if len(cmds) == 0 {
		return
	}
	sb.WriteString("\n")
	for _, cmd := range cmds {
		fmt.Fprintf(sb, "%s = %s\n", key, cmd)
	}
}

func renderObfuscation(sb *strings.Builder, o *ObfuscationSettings) {
	ints := []struct {
		key   string
		value int
	}{
		{"Jc", o.Jc},
		{"Jmin", o.Jmin},
		{"Jmax", o.Jmax},
		{"S1", o.S1},
		{"S2", o.S2},
	}
	for _, f := range ints {
		if f.value != 0 {
			fmt.Fprintf(sb, "%s = %d\n", f.key, f.value)
		}
	}

	headers := []struct {
		key   string
		value uint32
	}{
		{"H1", o.H1},
		{"H2", o.H2},
		{"H3", o.H3},
		{"H4", o.H4},
	}
	for _, f := range headers {
		if f.value != 0 {
			fmt.Fprintf(sb, "%s = %d\n", f.key, f.value)
		}
	}
}

func renderPeer(sb *strings.Builder, peer *Peer) {
	sb.WriteString("[Peer]\n")
	if peer.Endpoint != "" {
		fmt.Fprintf(sb, "Endpoint = %s\n", peer.Endpoint)
	}
	if len(peer.AllowedIPs) > 0 {
		parts := make([]string, len(peer.AllowedIPs))
		for i, p := range peer.AllowedIPs {
			parts[i] = p.String()
		}
		fmt.Fprintf(sb, "AllowedIPs = %s\n", strings.Join(parts, ","))
	}
	fmt.Fprintf(sb, "PublicKey = %s\n", peer.Key.Public())
	if peer.PresharedKey != nil {
		fmt.Fprintf(sb, "PresharedKey = %s\n", peer.PresharedKey)
	}
	if peer.PersistentKeepalive != 0 {
		fmt.Fprintf(sb, "PersistentKeepalive = %d\n", peer.PersistentKeepalive)
	}
}
