package profile

import (
	"strings"
	"testing"
)

func TestRenderEmptyInterface(t *testing.T) {
	iface, err := NewInterface().Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if got := Render(iface); got != "[Interface]\n" {
		t.Fatalf("rendered %q, want bare section header", got)
	}
}

func TestRenderServerConfig(t *testing.T) {
	psk := mustPresharedKey(t, pskB64)

	clientPeer, err := NewPeer().
		PrivateKey(mustPrivateKey(t, clientPrivB64)).
		AllowedIP(prefix(t, "10.0.0.2/32")).
		PresharedKey(psk).
		Build()
	if err != nil {
		t.Fatalf("build peer: %v", err)
	}

	server, err := NewInterface().
		Address(prefix(t, "10.0.0.1/24")).
		ListenPort(51820).
		PrivateKey(mustPrivateKey(t, serverPrivB64)).
		DNS("1.1.1.1", "1.0.0.1").
		Endpoint("vpn.example.com").
		MTU(1420).
		Table(TableOff).
		PostUp(
			"iptables -A FORWARD -i %i -j ACCEPT",
			"iptables -t nat -A POSTROUTING -o ens0 -j MASQUERADE",
		).
		PostDown(
			"iptables -D FORWARD -i %i -j ACCEPT",
			"iptables -t nat -D POSTROUTING -o ens0 -j MASQUERADE",
		).
		Peer(*clientPeer).
		Build()
	if err != nil {
		t.Fatalf("build server: %v", err)
	}

	want := `[Interface]
# Name = vpn.example.com
Address = 10.0.0.1/24
ListenPort = 51820
PrivateKey = ` + serverPrivB64 + `
DNS = 1.1.1.1,1.0.0.1
MTU = 1420
Table = off

PostUp = iptables -A FORWARD -i %i -j ACCEPT
PostUp = iptables -t nat -A POSTROUTING -o ens0 -j MASQUERADE

PostDown = iptables -D FORWARD -i %i -j ACCEPT
PostDown = iptables -t nat -D POSTROUTING -o ens0 -j MASQUERADE

[Peer]
AllowedIPs = 10.0.0.2/32
PublicKey = ` + clientPubB64 + `
PresharedKey = ` + pskB64 + `
`

	if got := Render(server); got != want {
		t.Fatalf("rendered config mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderDerivedClientConfig(t *testing.T) {
	client, err := testClientPeer(t).ToInterface(testServer(t), ToInterfaceOptions{
		DefaultGateway:      true,
		PersistentKeepalive: 25,
	})
	if err != nil {
		t.Fatalf("derive: %v", err)
	}

	want := `[Interface]
Address = 10.0.0.2
PrivateKey = ` + clientPrivB64 + `
DNS = 1.1.1.1,1.0.0.1

[Peer]
Endpoint = vpn.example.com:51820
AllowedIPs = 0.0.0.0/0,::/0
PublicKey = ` + serverPubB64 + `
PersistentKeepalive = 25
`

	if got := Render(client); got != want {
		t.Fatalf("rendered config mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderHooksOneLinePerEntry(t *testing.T) {
	iface, err := NewInterface().
		PostUp("cmd1", "cmd2").
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	got := Render(iface)
	if !strings.Contains(got, "PostUp = cmd1\nPostUp = cmd2\n") {
		t.Errorf("hooks not rendered one per line:\n%s", got)
	}
	if strings.Contains(got, "cmd1;") || strings.Contains(got, "cmd1,") {
		t.Errorf("hook commands were joined:\n%s", got)
	}
}

func TestRenderDNSCommaJoined(t *testing.T) {
	iface, err := NewInterface().DNS("1.1.1.1", "1.0.0.1").Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	got := Render(iface)
	if !strings.Contains(got, "DNS = 1.1.1.1,1.0.0.1\n") {
		t.Errorf("DNS not comma-joined on one line:\n%s", got)
	}
	if strings.Count(got, "DNS = ") != 1 {
		t.Errorf("expected exactly one DNS line:\n%s", got)
	}
}

func TestRenderSingleHostAddressElided(t *testing.T) {
	iface, err := NewInterface().
		Addresses(prefix(t, "10.0.0.2/32"), prefix(t, "fd00::2/128"), prefix(t, "10.1.0.0/16")).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	got := Render(iface)
	if !strings.Contains(got, "Address = 10.0.0.2,fd00::2,10.1.0.0/16\n") {
		t.Errorf("single-host prefixes not elided:\n%s", got)
	}
}

func TestRenderOmitsUnsetFields(t *testing.T) {
	peer, err := NewPeer().PublicKey(mustPublicKey(t, thirdPubB64)).Build()
	if err != nil {
		t.Fatalf("build peer: %v", err)
	}
	iface, err := NewInterface().Peer(*peer).Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	got := Render(iface)
	for _, absent := range []string{
		"Address", "ListenPort", "PrivateKey", "DNS", "MTU", "Table",
		"Endpoint", "AllowedIPs", "PresharedKey", "PersistentKeepalive",
		"= \n",
	} {
		if strings.Contains(got, absent) {
			t.Errorf("output contains %q for an unset field:\n%s", absent, got)
		}
	}
	if !strings.Contains(got, "PublicKey = "+thirdPubB64+"\n") {
		t.Errorf("peer public key missing:\n%s", got)
	}
}

func TestRenderPeerOrderPreserved(t *testing.T) {
	keys := []string{serverPrivB64, clientPrivB64, thirdPrivB64}
	b := NewInterface()
	for _, k := range keys {
		peer, err := NewPeer().PrivateKey(mustPrivateKey(t, k)).Build()
		if err != nil {
			t.Fatalf("build peer: %v", err)
		}
		b.Peer(*peer)
	}
	iface, err := b.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	got := Render(iface)
	if strings.Count(got, "[Peer]") != 3 {
		t.Fatalf("expected 3 peer sections:\n%s", got)
	}

	wantOrder := []string{serverPubB64, clientPubB64, thirdPubB64}
	pos := -1
	for _, pub := range wantOrder {
		next := strings.Index(got, pub)
		if next < pos {
			t.Fatalf("peer order not preserved:\n%s", got)
		}
		pos = next
	}
}

func TestRenderNoTrailingBlankWithoutPeers(t *testing.T) {
	iface, err := NewInterface().
		Address(prefix(t, "10.0.0.1/24")).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	got := Render(iface)
	if strings.HasSuffix(got, "\n\n") {
		t.Errorf("dangling blank line after peerless interface:\n%q", got)
	}
}

func TestRenderObfuscationBlock(t *testing.T) {
	iface, err := NewInterface().
		Address(prefix(t, "10.0.0.1/24")).
		MTU(1280).
		Obfuscation(ObfuscationSettings{
			Jc:   4,
			Jmin: 8,
			Jmax: 80,
			S1:   20,
			S2:   30,
			H1:   123456789,
			H2:   987654321,
			H3:   111111111,
			H4:   222222222,
		}).
		PostUp("echo up").
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	want := `[Interface]
Address = 10.0.0.1/24
MTU = 1280
Jc = 4
Jmin = 8
Jmax = 80
S1 = 20
S2 = 30
H1 = 123456789
H2 = 987654321
H3 = 111111111
H4 = 222222222

PostUp = echo up
`

	if got := Render(iface); got != want {
		t.Fatalf("rendered config mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderPartialObfuscation(t *testing.T) {
	iface, err := NewInterface().
		Obfuscation(ObfuscationSettings{Jc: 2, Jmin: 10, Jmax: 50}).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	got := Render(iface)
	if !strings.Contains(got, "Jc = 2\nJmin = 10\nJmax = 50\n") {
		t.Errorf("set obfuscation values missing:\n%s", got)
	}
	for _, absent := range []string{"S1", "S2", "H1", "H2", "H3", "H4"} {
		if strings.Contains(got, absent) {
			t.Errorf("unset value %s rendered:\n%s", absent, got)
		}
	}
}
