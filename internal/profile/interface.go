// Package profile models WireGuard tunnel configuration: one Interface with
// any number of Peers, built through validating builders, derivable into a
// matching client-side Interface and renderable as wg-quick text.
package profile

import (
	"net/netip"
	"strconv"

	"wgconf/internal/wgkey"
)

// Table selects the routing table wg-quick adds routes to.
type Table string

const (
	// TableOff disables route creation altogether.
	TableOff Table = "off"

	// TableAuto adds routes to the default table with special handling of
	// default routes.
	TableAuto Table = "auto"
)

// RoutingTable returns a Table naming a numeric kernel routing table.
func RoutingTable(n int) Table {
	return Table(strconv.Itoa(n))
}

// Interface is one tunnel endpoint's configuration, the `[Interface]`
// section plus its `[Peer]` entries.
//
// The zero value is a legal, empty interface. Optional scalar fields use
// their zero value to mean unset and are then omitted from rendered output.
type Interface struct {
	// Addresses assigned to this endpoint. May be empty.
	Addresses []netip.Prefix `yaml:"addresses,omitempty"`

	// ListenPort is the UDP port to listen on. Zero means unset.
	ListenPort uint16 `yaml:"listen_port,omitempty"`

	// PrivateKey is this endpoint's own key. Nil for read-only or
	// third-party descriptions; the rendered line is simply omitted.
	PrivateKey *wgkey.PrivateKey `yaml:"private_key,omitempty"`

	// DNS servers, rendered comma-joined on a single line.
	DNS []string `yaml:"dns,omitempty"`

	// MTU for the tunnel device. Zero means unset.
	MTU int `yaml:"mtu,omitempty"`

	// Table controls wg-quick route placement. Empty means unset.
	Table Table `yaml:"table,omitempty"`

	// Shell command hooks, one rendered line per entry.
	PreUp    []string `yaml:"pre_up,omitempty"`
	PreDown  []string `yaml:"pre_down,omitempty"`
	PostUp   []string `yaml:"post_up,omitempty"`
	PostDown []string `yaml:"post_down,omitempty"`

	// Endpoint is the host[:port] other parties reach this interface at.
	// It shows up as the `# Name` comment of the rendered section and as
	// the companion peer's Endpoint when this interface is a derivation
	// target.
	Endpoint string `yaml:"endpoint,omitempty"`

	// Peers in declaration order; the order is preserved in output.
	Peers []Peer `yaml:"peers,omitempty"`

	// Obfuscation holds optional AmneziaWG-style parameters.
	Obfuscation *ObfuscationSettings `yaml:"obfuscation,omitempty"`
}

// Clone returns a deep copy sharing no mutable state with i.
func (i *Interface) Clone() *Interface {
	out := *i

	out.Addresses = append([]netip.Prefix(nil), i.Addresses...)
	out.DNS = append([]string(nil), i.DNS...)
	out.PreUp = append([]string(nil), i.PreUp...)
	out.PreDown = append([]string(nil), i.PreDown...)
	out.PostUp = append([]string(nil), i.PostUp...)
	out.PostDown = append([]string(nil), i.PostDown...)

	if i.PrivateKey != nil {
		key := *i.PrivateKey
		out.PrivateKey = &key
	}
	if i.Obfuscation != nil {
		obfs := *i.Obfuscation
		out.Obfuscation = &obfs
	}
	if i.Peers != nil {
		out.Peers = make([]Peer, len(i.Peers))
		for n := range i.Peers {
			out.Peers[n] = *i.Peers[n].Clone()
		}
	}

	return &out
}

// InterfaceBuilder assembles an Interface. The zero value is ready to use;
// setters return the builder for chaining and Build validates the result.
type InterfaceBuilder struct {
	iface Interface
}

// NewInterface returns an empty InterfaceBuilder.
func NewInterface() *InterfaceBuilder {
	return &InterfaceBuilder{}
}

// Address appends one assigned network.
func (b *InterfaceBuilder) Address(p netip.Prefix) *InterfaceBuilder {
	b.iface.Addresses = append(b.iface.Addresses, p)
	return b
}

// Addresses replaces the assigned networks.
func (b *InterfaceBuilder) Addresses(prefixes ...netip.Prefix) *InterfaceBuilder {
	b.iface.Addresses = append([]netip.Prefix(nil), prefixes...)
	return b
}

// ListenPort sets the UDP listen port.
func (b *InterfaceBuilder) ListenPort(port uint16) *InterfaceBuilder {
	b.iface.ListenPort = port
	return b
}

// PrivateKey sets the interface's own key.
func (b *InterfaceBuilder) PrivateKey(key wgkey.PrivateKey) *InterfaceBuilder {
	b.iface.PrivateKey = &key
	return b
}

// DNS replaces the DNS server list.
func (b *InterfaceBuilder) DNS(servers ...string) *InterfaceBuilder {
	b.iface.DNS = append([]string(nil), servers...)
	return b
}

// AddDNS appends one DNS server.
func (b *InterfaceBuilder) AddDNS(server string) *InterfaceBuilder {
	b.iface.DNS = append(b.iface.DNS, server)
	return b
}

// MTU sets the device MTU.
func (b *InterfaceBuilder) MTU(mtu int) *InterfaceBuilder {
	b.iface.MTU = mtu
	return b
}

// Table sets the routing table.
func (b *InterfaceBuilder) Table(table Table) *InterfaceBuilder {
	b.iface.Table = table
	return b
}

// Endpoint sets the host[:port] this interface is reachable at.
func (b *InterfaceBuilder) Endpoint(endpoint string) *InterfaceBuilder {
	b.iface.Endpoint = endpoint
	return b
}

// PreUp appends commands run before the interface comes up.
func (b *InterfaceBuilder) PreUp(cmds ...string) *InterfaceBuilder {
	b.iface.PreUp = append(b.iface.PreUp, cmds...)
	return b
}

// PreDown appends commands run before the interface goes down.
func (b *InterfaceBuilder) PreDown(cmds ...string) *InterfaceBuilder {
	b.iface.PreDown = append(b.iface.PreDown, cmds...)
	return b
}

// PostUp appends commands run after the interface comes up.
func (b *InterfaceBuilder) PostUp(cmds ...string) *InterfaceBuilder {
	b.iface.PostUp = append(b.iface.PostUp, cmds...)
	return b
}

// PostDown appends commands run after the interface goes down.
func (b *InterfaceBuilder) PostDown(cmds ...string) *InterfaceBuilder {
	b.iface.PostDown = append(b.iface.PostDown, cmds...)
	return b
}

// Peer appends one peer.
func (b *InterfaceBuilder) Peer(p Peer) *InterfaceBuilder {
	b.iface.Peers = append(b.iface.Peers, p)
	return b
}

// Peers replaces the peer list.
func (b *InterfaceBuilder) Peers(peers ...Peer) *InterfaceBuilder {
	b.iface.Peers = append([]Peer(nil), peers...)
	return b
}

// Obfuscation sets the optional obfuscation parameters.
func (b *InterfaceBuilder) Obfuscation(settings ObfuscationSettings) *InterfaceBuilder {
	b.iface.Obfuscation = &settings
	return b
}

// Build validates and returns the interface. No field is required; an
// interface with nothing set is legal and renders an empty `[Interface]`
// block. Set obfuscation parameters are range-checked.
func (b *InterfaceBuilder) Build() (*Interface, error) {
	if b.iface.Obfuscation != nil {
		if err := b.iface.Obfuscation.Validate(); err != nil {
			return nil, err
		}
	}
	return b.iface.Clone(), nil
}
