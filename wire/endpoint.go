package wire

import (
	"crypto/rand"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/dchest/siphash"
)

// Endpoint is an IPv6 UDP socket address. IPv4 addresses are always
// normalized to v4-mapped v6 on construction so hashing and equality only
// ever need to deal with one 16-byte shape, per spec.md's "Endpoint
// normalization" design note.
type Endpoint struct {
	addr [16]byte
	port uint16
}

// TCPEndpoint is the TCP analogue, used for bootstrap/bulk-transport peers.
type TCPEndpoint struct {
	addr [16]byte
	port uint16
}

// NewEndpoint builds an Endpoint from a net.IP and a port, normalizing to
// v4-mapped v6.
func NewEndpoint(ip net.IP, port uint16) Endpoint {
	var e Endpoint
	copy(e.addr[:], ip.To16())
	e.port = port
	return e
}

// NewTCPEndpoint mirrors NewEndpoint for TCP peers.
func NewTCPEndpoint(ip net.IP, port uint16) TCPEndpoint {
	var e TCPEndpoint
	copy(e.addr[:], ip.To16())
	e.port = port
	return e
}

// IP returns the 16-byte v4-mapped-v6 address.
func (e Endpoint) IP() net.IP { return net.IP(append([]byte(nil), e.addr[:]...)) }

// Port returns the UDP port.
func (e Endpoint) Port() uint16 { return e.port }

func (e Endpoint) String() string {
	return net.JoinHostPort(e.IP().String(), strconv.Itoa(int(e.port)))
}

func (t TCPEndpoint) IP() net.IP   { return net.IP(append([]byte(nil), t.addr[:]...)) }
func (t TCPEndpoint) Port() uint16 { return t.port }
func (t TCPEndpoint) String() string {
	return net.JoinHostPort(t.IP().String(), strconv.Itoa(int(t.port)))
}

// endpointHashKey0/1 form a process-lifetime random SipHash key. spec.md
// only requires hash(e) to be stable "across runs of the same process",
// never across versions or processes, so a fresh random key each start is
// strictly stronger than the spec demands (it also means an attacker who
// learns endpoint hashes from one run can't predict them in the next).
var endpointHashKey0, endpointHashKey1 = newHashKey()

func newHashKey() (k0, k1 uint64) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand failing is unrecoverable on any real platform; fall
		// back to a fixed key rather than panic, since this hash is only
		// ever used for bucketing, never for anything security sensitive.
		return 0x9ae16a3b2f90404f, 0xc3a5c85c97cb3127
	}
	return leUint64(buf[0:8]), leUint64(buf[8:16])
}

func leUint64(b []byte) uint64 {
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}

// Hash combines the 16 address bytes and the 16-bit port via SipHash-2-4,
// width-folded to the platform int size, per spec.md 4.A.
func (e Endpoint) Hash() int {
	buf := make([]byte, 18)
	copy(buf, e.addr[:])
	buf[16] = byte(e.port)
	buf[17] = byte(e.port >> 8)
	sum := siphash.Hash(endpointHashKey0, endpointHashKey1, buf)
	return foldToWord(sum)
}

func foldToWord(v uint64) int {
	const wordBits = 32 << (^uint(0) >> 63) // 32 on 32-bit platforms, 64 on 64-bit
	if wordBits == 32 {
		return int(uint32(v) ^ uint32(v>>32))
	}
	return int(v)
}

// Equal reports whether two endpoints have the same address and port.
func (e Endpoint) Equal(o Endpoint) bool {
	return e.addr == o.addr && e.port == o.port
}

// ParsePort parses a decimal string in 0..65535.
func ParsePort(text string) (uint16, error) {
	n, err := strconv.ParseUint(text, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid port %q: %w", text, err)
	}
	return uint16(n), nil
}

// ParseAddressPort accepts "<addr>:<port>" or the IPv6 bracket form
// "[<v6>]:<port>".
func ParseAddressPort(text string) (net.IP, uint16, error) {
	host, portStr, err := net.SplitHostPort(text)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid address:port %q: %w", text, err)
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return nil, 0, fmt.Errorf("invalid address %q", host)
	}
	port, err := ParsePort(portStr)
	if err != nil {
		return nil, 0, err
	}
	return ip, port, nil
}

// ParseEndpoint parses "<addr>:<port>" into a UDP Endpoint.
func ParseEndpoint(text string) (Endpoint, error) {
	ip, port, err := ParseAddressPort(text)
	if err != nil {
		return Endpoint{}, err
	}
	return NewEndpoint(ip, port), nil
}

// ParseTCPEndpoint parses "<addr>:<port>" into a TCPEndpoint.
func ParseTCPEndpoint(text string) (TCPEndpoint, error) {
	ip, port, err := ParseAddressPort(text)
	if err != nil {
		return TCPEndpoint{}, err
	}
	return NewTCPEndpoint(ip, port), nil
}

// ReservedAddress reports whether endpoint could not be routed back to:
// unspecified, multicast, documentation/reserved ranges, and -- unless
// allowLoopback is set -- loopback. Used to drop keepalive peer entries
// that could never be dialed.
func ReservedAddress(e Endpoint, allowLoopback bool) bool {
	ip := e.IP()

	if ip.IsUnspecified() {
		return true
	}
	if ip.IsMulticast() {
		return true
	}
	if ip.IsLoopback() {
		return !allowLoopback
	}

	v4 := ip.To4()
	if v4 != nil {
		return reservedV4(v4)
	}
	return reservedV6(ip)
}

func reservedV4(ip net.IP) bool {
	for _, block := range reservedV4Blocks {
		if block.Contains(ip) {
			return true
		}
	}
	return false
}

func reservedV6(ip net.IP) bool {
	for _, block := range reservedV6Blocks {
		if block.Contains(ip) {
			return true
		}
	}
	return false
}

var reservedV4Blocks = mustParseCIDRs(
	"0.0.0.0/8",
	"10.0.0.0/8",
	"100.64.0.0/10",
	"127.0.0.0/8",
	"169.254.0.0/16",
	"172.16.0.0/12",
	"192.0.0.0/24",
	"192.0.2.0/24",
	"192.88.99.0/24",
	"192.168.0.0/16",
	"198.18.0.0/15",
	"198.51.100.0/24",
	"203.0.113.0/24",
	"224.0.0.0/4",
	"240.0.0.0/4",
)

var reservedV6Blocks = mustParseCIDRs(
	"::/128",
	"::1/128",
	"64:ff9b::/96",
	"100::/64",
	"2001::/32",
	"2001:db8::/32",
	"2002::/16",
	"fc00::/7",
	"fe80::/10",
	"ff00::/8",
)

func mustParseCIDRs(cidrs ...string) []*net.IPNet {
	nets := make([]*net.IPNet, 0, len(cidrs))
	for _, c := range cidrs {
		_, n, err := net.ParseCIDR(c)
		if err != nil {
			panic(fmt.Sprintf("wire: bad built-in CIDR %q: %v", c, err))
		}
		nets = append(nets, n)
	}
	return nets
}

// SecondsSinceEpoch returns POSIX seconds, wall clock.
func SecondsSinceEpoch() uint64 {
	return uint64(time.Now().Unix())
}
