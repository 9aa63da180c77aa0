package profile

import (
	"fmt"
	"net/netip"
)

// Route-everything networks used for default-gateway clients.
var (
	allIPv4 = netip.PrefixFrom(netip.IPv4Unspecified(), 0)
	allIPv6 = netip.PrefixFrom(netip.IPv6Unspecified(), 0)
)

// ToInterfaceOptions configures ToInterface.
type ToInterfaceOptions struct {
	// DefaultGateway routes all traffic through the server: the
	// companion peer's AllowedIPs become 0.0.0.0/0 and ::/0 instead of
	// the server's own addresses.
	DefaultGateway bool

	// PersistentKeepalive, when nonzero, is copied verbatim onto the
	// companion peer.
	PersistentKeepalive uint16
}

// ToPeer describes the interface as a `[Peer]` entry for some other
// interface's configuration: public key derived from the private key,
// AllowedIPs from the address assignment, Endpoint combined with the
// listen port when both are known. Fails with ErrServerKeyUnavailable when
// no private key is held, since there is then no public key to expose.
//
// Pushing the result onto another interface's Peers list wires mutual
// peering by hand; ToInterface does the same thing wholesale for clients.
func (i *Interface) ToPeer() (*Peer, error) {
	if i.PrivateKey == nil {
		return nil, ErrServerKeyUnavailable
	}
	return &Peer{
		Key:        PublicOnly(i.PrivateKey.Public()),
		Endpoint:   combinedEndpoint(i),
		AllowedIPs: append([]netip.Prefix(nil), i.Addresses...),
	}, nil
}

// ToInterface synthesizes the client-side Interface for a peer joining
// server. The peer's AllowedIPs on the server become the client's own
// address assignment, and the server is embedded as the single companion
// peer of the result.
//
// The peer must hold its private key (ErrMissingPrivateKey otherwise), and
// the server must hold one to expose a public key through
// (ErrServerKeyUnavailable otherwise). The result shares no state with
// either input, and identical inputs always produce identical output.
func (p *Peer) ToInterface(server *Interface, opts ToInterfaceOptions) (*Interface, error) {
	privateKey, ok := p.Key.Private()
	if !ok {
		return nil, ErrMissingPrivateKey
	}

	companion, err := server.ToPeer()
	if err != nil {
		return nil, err
	}
	companion.PersistentKeepalive = opts.PersistentKeepalive
	if opts.DefaultGateway {
		companion.AllowedIPs = []netip.Prefix{allIPv4, allIPv6}
	}

	return &Interface{
		Addresses:  append([]netip.Prefix(nil), p.AllowedIPs...),
		PrivateKey: &privateKey,
		DNS:        append([]string(nil), server.DNS...),
		Peers:      []Peer{*companion},
	}, nil
}

// combinedEndpoint joins the interface's endpoint with its listen port
// when both are known.
func combinedEndpoint(i *Interface) string {
	if i.Endpoint == "" {
		return ""
	}
	if i.ListenPort == 0 {
		return i.Endpoint
	}
	return fmt.Sprintf("%s:%d", i.Endpoint, i.ListenPort)
}
