package profile

import (
	"crypto/rand"
	"math/big"
)

// Obfuscation parameter limits, matching the AmneziaWG kernel module.
const (
	maxJunkCount  = 128
	maxJunkSize   = 1280
	maxHeaderJunk = 1132

	// Handshake initiation and response differ by 56 bytes on the wire;
	// S1+56 == S2 would make obfuscated initiations collide with
	// responses.
	initResponseGap = 56
)

// ObfuscationSettings are optional AmneziaWG-style parameters rendered as
// extra `[Interface]` lines. Zero values mean unset and are omitted from
// output.
type ObfuscationSettings struct {
	// Jc is the junk packet count sent before the handshake.
	Jc int `yaml:"jc,omitempty"`

	// Jmin and Jmax bound the junk packet size.
	Jmin int `yaml:"jmin,omitempty"`
	Jmax int `yaml:"jmax,omitempty"`

	// S1 and S2 prepend junk to handshake initiation and response.
	S1 int `yaml:"s1,omitempty"`
	S2 int `yaml:"s2,omitempty"`

	// H1..H4 replace the four WireGuard message-type magic headers.
	H1 uint32 `yaml:"h1,omitempty"`
	H2 uint32 `yaml:"h2,omitempty"`
	H3 uint32 `yaml:"h3,omitempty"`
	H4 uint32 `yaml:"h4,omitempty"`
}

// Validate range-checks the set parameters. The returned error names the
// offending setting.
func (o *ObfuscationSettings) Validate() error {
	if o.Jc < 0 || o.Jc > maxJunkCount {
		return &InvalidSettingError{Setting: "Jc"}
	}
	if o.Jmin < 0 || o.Jmin > o.Jmax {
		return &InvalidSettingError{Setting: "Jmin"}
	}
	if o.Jmax > maxJunkSize {
		return &InvalidSettingError{Setting: "Jmax"}
	}
	if o.S1 < 0 || o.S1 > maxHeaderJunk || (o.S1 != 0 && o.S1+initResponseGap == o.S2) {
		return &InvalidSettingError{Setting: "S1"}
	}
	if o.S2 < 0 || o.S2 > maxHeaderJunk {
		return &InvalidSettingError{Setting: "S2"}
	}

	headers := []uint32{o.H1, o.H2, o.H3, o.H4}
	for i, a := range headers {
		if a == 0 {
			continue
		}
		for _, b := range headers[i+1:] {
			if a == b {
				return &InvalidSettingError{Setting: "H1/H2/H3/H4"}
			}
		}
	}

	return nil
}

// RandomSettings generates a full set of parameters that always validates.
func RandomSettings() ObfuscationSettings {
	jmin := 8 + randInt(120)
	jmax := jmin + 1 + randInt(maxJunkSize-jmin-1)

	s1 := 15 + randInt(135)
	s2 := 15 + randInt(135)
	if s1+initResponseGap == s2 {
		s2++
	}

	headers := randHeaders()

	return ObfuscationSettings{
		Jc:   1 + randInt(maxJunkCount-1),
		Jmin: jmin,
		Jmax: jmax,
		S1:   s1,
		S2:   s2,
		H1:   headers[0],
		H2:   headers[1],
		H3:   headers[2],
		H4:   headers[3],
	}
}

// randInt returns a uniform value in [0, n).
func randInt(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

// randHeaders returns four distinct nonzero magic headers. Values 1..4 are
// the stock WireGuard message types and are skipped.
func randHeaders() [4]uint32 {
	var out [4]uint32
	for i := 0; i < 4; {
		v, err := rand.Int(rand.Reader, big.NewInt(int64(1<<32-5)))
		if err != nil {
			continue
		}
		h := uint32(v.Int64()) + 5

		dup := false
		for _, prev := range out[:i] {
			if prev == h {
				dup = true
				break
			}
		}
		if dup {
			continue
		}

		out[i] = h
		i++
	}
	return out
}
