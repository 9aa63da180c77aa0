package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"wgconf/internal/profile"
	"wgconf/internal/wgkey"
)

const version = "0.3.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "genkey":
		cmdGenkey()
	case "pubkey":
		cmdPubkey()
	case "genpsk":
		cmdGenpsk()
	case "render":
		cmdRender(args)
	case "derive":
		cmdDerive(args)
	case "watch":
		cmdWatch(args)
	case "version":
		fmt.Println("wgconf " + version)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`wgconf - WireGuard profile tool

Usage: wgconf <command> [options]

Commands:
  genkey                          Generate a new private key
  pubkey                          Read a private key on stdin, print its public key
  genpsk                          Generate a new preshared key
  render <profile.yaml> [out]     Render a profile to wg-quick config text
  derive <profile.yaml> <peer>    Derive the client config for peer number <peer>
         [-default-gateway]       Route all client traffic through the server
         [-keepalive <seconds>]   Set the client's persistent keepalive
  watch <profile.yaml> <out>      Re-render the config whenever the profile changes
  version                         Show version information

Examples:
  wgconf genkey
  wgconf render server.yaml wg0.conf
  wgconf derive server.yaml 0 -default-gateway -keepalive 25`)
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func cmdGenkey() {
	key, err := wgkey.GeneratePrivateKey()
	if err != nil {
		fatal("genkey: %v", err)
	}
	fmt.Println(key)
}

func cmdPubkey() {
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		fatal("pubkey: read stdin: %v", err)
	}

	key, err := wgkey.ParsePrivateKey(strings.TrimSpace(line))
	if err != nil {
		fatal("pubkey: %v", err)
	}
	fmt.Println(key.Public())
}

func cmdGenpsk() {
	key, err := wgkey.GeneratePresharedKey()
	if err != nil {
		fatal("genpsk: %v", err)
	}
	fmt.Println(key)
}

func cmdRender(args []string) {
	if len(args) < 1 {
		fatal("Usage: wgconf render <profile.yaml> [out.conf]")
	}

	iface, err := profile.LoadProfile(args[0])
	if err != nil {
		fatal("render: %v", err)
	}

	text := profile.Render(iface)
	if len(args) >= 2 {
		if err := os.WriteFile(args[1], []byte(text), 0600); err != nil {
			fatal("render: %v", err)
		}
		return
	}
	fmt.Print(text)
}

func cmdDerive(args []string) {
	fs := flag.NewFlagSet("derive", flag.ExitOnError)
	defaultGateway := fs.Bool("default-gateway", false, "route all client traffic through the server")
	keepalive := fs.Uint("keepalive", 0, "client persistent keepalive in seconds")

	if len(args) < 2 {
		fatal("Usage: wgconf derive <profile.yaml> <peer-index> [options]")
	}
	fs.Parse(args[2:])

	server, err := profile.LoadProfile(args[0])
	if err != nil {
		fatal("derive: %v", err)
	}

	var index int
	if _, err := fmt.Sscanf(args[1], "%d", &index); err != nil {
		fatal("derive: bad peer index %q", args[1])
	}
	if index < 0 || index >= len(server.Peers) {
		fatal("derive: profile has %d peers, no peer %d", len(server.Peers), index)
	}

	seconds, err := keepaliveSeconds(*keepalive)
	if err != nil {
		fatal("derive: %v", err)
	}

	client, err := server.Peers[index].ToInterface(server, profile.ToInterfaceOptions{
		DefaultGateway:      *defaultGateway,
		PersistentKeepalive: seconds,
	})
	if err != nil {
		fatal("derive: %v", err)
	}

	fmt.Print(profile.Render(client))
}

// keepaliveSeconds validates the -keepalive flag against the config
// field's 16-bit range.
func keepaliveSeconds(v uint) (uint16, error) {
	if v > math.MaxUint16 {
		return 0, fmt.Errorf("keepalive %d out of range (max %d seconds)", v, math.MaxUint16)
	}
	return uint16(v), nil
}

func cmdWatch(args []string) {
	if len(args) < 2 {
		fatal("Usage: wgconf watch <profile.yaml> <out.conf>")
	}
	profilePath, outPath := args[0], args[1]

	reloadable, err := profile.NewReloadable(profilePath)
	if err != nil {
		fatal("watch: %v", err)
	}
	defer reloadable.Close()

	render := func(iface *profile.Interface) {
		if err := os.WriteFile(outPath, []byte(profile.Render(iface)), 0600); err != nil {
			log.Printf("[watch] write %s: %v", outPath, err)
			return
		}
		log.Printf("[watch] rendered %s -> %s", profilePath, outPath)
	}

	render(reloadable.Get())
	reloadable.Watch(func(_, newIface *profile.Interface) {
		render(newIface)
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
}
