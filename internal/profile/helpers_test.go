package profile

import (
	"net/netip"
	"testing"

	"wgconf/internal/wgkey"
)

// Fixed keypairs so rendered output is byte-comparable.
const (
	serverPrivB64 = "mHmxo38xgBzRGmcG+0DWvVdSaEaQO7E+3lYkOenBuGM="
	serverPubB64  = "CSO4d5NYd2gy9GGu+9sApjn6BnUdqnVBlbHZRxYvUDA="
	clientPrivB64 = "qGCJvKcfPRptLTyts2acvVDhZeQ0JJ2Lgp9BFmmEKlc="
	clientPubB64  = "yYe4Y0NMt6iTv3IkBDPIxlYgWXhI8bQq+1+kxH3tsyo="
	thirdPrivB64  = "mBEDbPPoIghuyqAHWmn8F4uo+DcYqo870fZegUTmHVo="
	thirdPubB64   = "5mPKR/dQX0lppg7PCSjY6WKoJNdjt1rfBShIrVERKVE="
	pskB64        = "sw/LBqbBrY8pBucysQ9Nt4nTXqaMCIqz9kiBi6SmZWs="
)

func mustPrivateKey(t *testing.T, s string) wgkey.PrivateKey {
	t.Helper()
	key, err := wgkey.ParsePrivateKey(s)
	if err != nil {
		t.Fatalf("parse private key: %v", err)
	}
	return key
}

func mustPublicKey(t *testing.T, s string) wgkey.PublicKey {
	t.Helper()
	key, err := wgkey.ParsePublicKey(s)
	if err != nil {
		t.Fatalf("parse public key: %v", err)
	}
	return key
}

func mustPresharedKey(t *testing.T, s string) wgkey.PresharedKey {
	t.Helper()
	key, err := wgkey.ParsePresharedKey(s)
	if err != nil {
		t.Fatalf("parse preshared key: %v", err)
	}
	return key
}

func prefix(t *testing.T, s string) netip.Prefix {
	t.Helper()
	p, err := netip.ParsePrefix(s)
	if err != nil {
		t.Fatalf("parse prefix %q: %v", s, err)
	}
	return p
}

// testServer builds the server interface used across derivation and
// rendering tests.
func testServer(t *testing.T) *Interface {
	t.Helper()
	server, err := NewInterface().
		Address(prefix(t, "10.0.0.1/24")).
		ListenPort(51820).
		PrivateKey(mustPrivateKey(t, serverPrivB64)).
		DNS("1.1.1.1", "1.0.0.1").
		Endpoint("vpn.example.com").
		Build()
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	return server
}

// testClientPeer builds a client peer holding its private key.
func testClientPeer(t *testing.T) *Peer {
	t.Helper()
	peer, err := NewPeer().
		PrivateKey(mustPrivateKey(t, clientPrivB64)).
		AllowedIP(prefix(t, "10.0.0.2/32")).
		Build()
	if err != nil {
		t.Fatalf("build peer: %v", err)
	}
	return peer
}
