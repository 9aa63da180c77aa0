package profile

import (
	"fmt"
	"net/netip"

	"wgconf/internal/wgkey"
)

// KeyRef holds a peer's key material in one of two forms: public key only,
// for peers that are purely remote descriptions, or the full private key,
// for peer definitions that will later become their own Interface.
type KeyRef struct {
	private *wgkey.PrivateKey
	public  wgkey.PublicKey
}

// PublicOnly returns a KeyRef carrying just a public key.
func PublicOnly(key wgkey.PublicKey) KeyRef {
	return KeyRef{public: key}
}

// PrivateKnown returns a KeyRef carrying a private key.
func PrivateKnown(key wgkey.PrivateKey) KeyRef {
	return KeyRef{private: &key}
}

// Public returns the public key, deriving it on demand when only the
// private key is held. A `[Peer]` block never exposes a private key.
func (k KeyRef) Public() wgkey.PublicKey {
	if k.private != nil {
		return k.private.Public()
	}
	return k.public
}

// Private returns the private key and whether one is held.
func (k KeyRef) Private() (wgkey.PrivateKey, bool) {
	if k.private == nil {
		return wgkey.PrivateKey{}, false
	}
	return *k.private, true
}

// IsZero reports whether no key has been set in either form.
func (k KeyRef) IsZero() bool {
	return k.private == nil && k.public.IsZero()
}

// MarshalYAML encodes a KeyRef as either a private_key or public_key entry.
func (k KeyRef) MarshalYAML() (interface{}, error) {
	if k.private != nil {
		return map[string]string{"private_key": k.private.String()}, nil
	}
	return map[string]string{"public_key": k.public.String()}, nil
}

// UnmarshalYAML decodes either key form, preferring the private one.
func (k *KeyRef) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw struct {
		PrivateKey string `yaml:"private_key"`
		PublicKey  string `yaml:"public_key"`
	}
	if err := unmarshal(&raw); err != nil {
		return err
	}

	switch {
	case raw.PrivateKey != "":
		key, err := wgkey.ParsePrivateKey(raw.PrivateKey)
		if err != nil {
			return err
		}
		*k = PrivateKnown(key)
	case raw.PublicKey != "":
		key, err := wgkey.ParsePublicKey(raw.PublicKey)
		if err != nil {
			return err
		}
		*k = PublicOnly(key)
	default:
		return fmt.Errorf("peer key needs private_key or public_key")
	}

	return nil
}

// Peer is one remote party as seen from an Interface, the `[Peer]` section.
type Peer struct {
	// Key identifies the peer; always present on a built Peer.
	Key KeyRef `yaml:"key"`

	// AllowedIPs are the networks this peer may route.
	AllowedIPs []netip.Prefix `yaml:"allowed_ips,omitempty"`

	// Endpoint is the peer's remote host:port, if known.
	Endpoint string `yaml:"endpoint,omitempty"`

	// PersistentKeepalive is the keepalive interval in seconds. Zero
	// means unset and omits the rendered line.
	PersistentKeepalive uint16 `yaml:"persistent_keepalive,omitempty"`

	// PresharedKey is the optional symmetric key for this peer.
	PresharedKey *wgkey.PresharedKey `yaml:"preshared_key,omitempty"`
}

// Clone returns a deep copy sharing no mutable state with p.
func (p *Peer) Clone() *Peer {
	out := *p
	out.AllowedIPs = append([]netip.Prefix(nil), p.AllowedIPs...)
	if p.PresharedKey != nil {
		psk := *p.PresharedKey
		out.PresharedKey = &psk
	}
	if p.Key.private != nil {
		key := *p.Key.private
		out.Key.private = &key
	}
	return &out
}

// PeerBuilder assembles a Peer. A key, in either form, is required.
type PeerBuilder struct {
	peer Peer
}

// NewPeer returns an empty PeerBuilder.
func NewPeer() *PeerBuilder {
	return &PeerBuilder{}
}

// Key sets the peer's key reference.
func (b *PeerBuilder) Key(key KeyRef) *PeerBuilder {
	b.peer.Key = key
	return b
}

// PrivateKey sets the key from a private key. Shorthand for
// Key(PrivateKnown(key)).
func (b *PeerBuilder) PrivateKey(key wgkey.PrivateKey) *PeerBuilder {
	b.peer.Key = PrivateKnown(key)
	return b
}

// PublicKey sets the key from a public key. Shorthand for
// Key(PublicOnly(key)).
func (b *PeerBuilder) PublicKey(key wgkey.PublicKey) *PeerBuilder {
	b.peer.Key = PublicOnly(key)
	return b
}

// AllowedIP appends one routed network.
func (b *PeerBuilder) AllowedIP(p netip.Prefix) *PeerBuilder {
	b.peer.AllowedIPs = append(b.peer.AllowedIPs, p)
	return b
}

// AllowedIPs replaces the routed networks.
func (b *PeerBuilder) AllowedIPs(prefixes ...netip.Prefix) *PeerBuilder {
	b.peer.AllowedIPs = append([]netip.Prefix(nil), prefixes...)
	return b
}

// Endpoint sets the peer's remote host:port.
func (b *PeerBuilder) Endpoint(endpoint string) *PeerBuilder {
	b.peer.Endpoint = endpoint
	return b
}

// PersistentKeepalive sets the keepalive interval in seconds.
func (b *PeerBuilder) PersistentKeepalive(seconds uint16) *PeerBuilder {
	b.peer.PersistentKeepalive = seconds
	return b
}

// PresharedKey sets the peer's preshared key.
func (b *PeerBuilder) PresharedKey(key wgkey.PresharedKey) *PeerBuilder {
	b.peer.PresharedKey = &key
	return b
}

// Build validates and returns the peer. The key must have been set in some
// form; everything else is optional.
func (b *PeerBuilder) Build() (*Peer, error) {
	if b.peer.Key.IsZero() {
		return nil, &MissingFieldError{Field: "key"}
	}
	return b.peer.Clone(), nil
}
