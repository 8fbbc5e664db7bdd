package node

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"net"
	"time"

	"github.com/996BC/latticenet/identity"
	"github.com/996BC/latticenet/ledger"
	"github.com/996BC/latticenet/utils"
	"github.com/996BC/latticenet/wire"
)

var logger = utils.NewLogger("node")

// uniquerSweepInterval is how often the node sweeps its block/vote
// uniquers for stale entries; it runs twice as often as the 10-minute
// badger value-log GC loop in ledger/store.go.
const uniquerSweepInterval = 5 * time.Minute

// Node owns the UDP socket, the parser, this process's identity, and the
// ledger store; it is the only thing in this repo that implements
// wire.Visitor, since dispatching a decoded message to storage/response
// logic is exactly the node-supervisor responsibility spec.md keeps out
// of wire.
type Node struct {
	wire.NopVisitor

	conf     *Config
	network  wire.NetworkTag
	identity *identity.KeyPair
	store    *ledger.Store
	verifier *ledger.Verifier
	parser   *wire.Parser
	udp      utils.UDPServer
	metrics  *wire.ParserMetrics

	blockUniquer *wire.BlockUniquer
	voteUniquer  *wire.VoteUniquer

	bulk *bulkServer
	lm   *utils.LoopMode
}

// New builds a Node from a validated Config. It opens the ledger store
// and loads the identity key but does not yet bind the UDP socket --
// that happens in Start.
func New(conf *Config, metrics *wire.ParserMetrics) (*Node, error) {
	tag, err := networkTag(conf.Network)
	if err != nil {
		return nil, err
	}

	kp, err := LoadKey(conf)
	if err != nil {
		return nil, err
	}

	store, err := ledger.Open(conf.DataPath)
	if err != nil {
		return nil, err
	}

	threshold, err := parseThreshold(conf.Threshold)
	if err != nil {
		store.Close()
		return nil, err
	}

	n := &Node{
		conf:         conf,
		network:      tag,
		identity:     kp,
		store:        store,
		verifier:     &ledger.Verifier{Threshold: threshold},
		blockUniquer: wire.NewBlockUniquer(),
		voteUniquer:  wire.NewVoteUniquer(),
		metrics:      metrics,
		lm:           utils.NewLoop(1),
	}

	n.parser = wire.NewParser(
		wire.StaticNetworkConstants{Tag: tag, MinSupportedVersion: wire.VersionMin},
		ledger.StateBlockCodec{},
		ledger.VoteCodec{},
		n.verifier,
		n.blockUniquer,
		n.voteUniquer,
		n,
		n.metrics,
	)

	return n, nil
}

func parseThreshold(hexThreshold string) (uint64, error) {
	raw, err := hex.DecodeString(hexThreshold)
	if err != nil {
		return 0, err
	}
	var buf [8]byte
	copy(buf[8-len(raw):], raw)
	return binary.BigEndian.Uint64(buf[:]), nil
}

// Start binds the UDP socket and begins the receive loop.
func (n *Node) Start() error {
	n.udp = utils.NewUDPServer(net.ParseIP(n.conf.IP), n.conf.Port)
	if !n.udp.Start() {
		return &startError{}
	}

	if n.conf.TCPPort != 0 {
		n.bulk = newBulkServer(net.ParseIP(n.conf.IP), n.conf.TCPPort)
		if !n.bulk.start() {
			n.udp.Stop()
			return &startError{}
		}
	}

	go n.recvLoop()
	go n.sweepLoop()
	n.lm.StartWorking()

	n.greetSeeds()

	logger.Info("node started on %s:%d, network=%s\n", n.conf.IP, n.conf.Port, n.network)
	return nil
}

// greetSeeds sends an initial keepalive to every configured seed peer so
// discovery has somewhere to start from, matching the teacher's own
// dial-the-seed-list-on-start behavior in cmd/anti996/main.go.
func (n *Node) greetSeeds() {
	seeds := parseSeeds(n.conf.Seeds)
	if len(seeds) == 0 {
		return
	}

	self := []wire.Endpoint{wire.NewEndpoint(net.ParseIP(n.conf.IP), uint16(n.conf.Port))}
	ka := wire.NewKeepalive(n.network, self)

	buf := new(bytes.Buffer)
	if err := ka.Serialize(buf); err != nil {
		logger.Warn("build seed keepalive: %v\n", err)
		return
	}

	for _, seed := range seeds {
		n.udp.Send(&utils.UDPPacket{
			Data: buf.Bytes(),
			Addr: &net.UDPAddr{IP: seed.IP(), Port: int(seed.Port())},
		})
		logger.Debug("sent keepalive to seed %s\n", seed.String())
	}
}

// Stop tears the node down in the reverse order it was started.
func (n *Node) Stop() {
	n.lm.Stop()
	if n.bulk != nil {
		n.bulk.stop()
	}
	if n.udp != nil {
		n.udp.Stop()
	}
	n.store.Close()
}

type startError struct{}

func (startError) Error() string { return "node: failed to start UDP server" }

func (n *Node) recvLoop() {
	n.lm.Add()
	defer n.lm.Done()

	recv := n.udp.GetRecvChannel()
	for {
		select {
		case <-n.lm.D:
			return
		case packet := <-recv:
			status := n.parser.DeserializeBuffer(packet.Data)
			if status != wire.StatusSuccess {
				logger.Debug("drop datagram from %v: %v\n", packet.Addr, status)
			}
		}
	}
}

func (n *Node) sweepLoop() {
	n.lm.Add()
	defer n.lm.Done()

	ticker := time.NewTicker(uniquerSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-n.lm.D:
			return
		case <-ticker.C:
			n.blockUniquer.Sweep(wire.DefaultUniquerTTL)
			n.voteUniquer.Sweep(wire.DefaultUniquerTTL)
		}
	}
}

// Publish implements wire.Visitor: a newly seen block gets persisted.
func (n *Node) Publish(p *wire.Publish) {
	sb, ok := p.Block.(*ledger.StateBlock)
	if !ok {
		return
	}
	if err := sb.Verify(); err != nil {
		logger.Warn("publish with invalid signature dropped: %v\n", err)
		return
	}
	if err := n.store.PutBlock(sb); err != nil {
		logger.Debug("publish not stored: %v\n", err)
	}
}

// ConfirmAck implements wire.Visitor: a newly seen vote gets persisted.
func (n *Node) ConfirmAck(a *wire.ConfirmAck) {
	v, ok := a.Vote.(*ledger.Vote)
	if !ok {
		return
	}
	if err := v.Verify(); err != nil {
		logger.Warn("confirm_ack with invalid signature dropped: %v\n", err)
		return
	}
	if err := n.store.PutVote(v); err != nil {
		logger.Debug("vote not stored: %v\n", err)
	}
}

// Keepalive implements wire.Visitor: every non-reserved peer slot is
// logged at debug level as a peer candidate. The peers are not stored,
// dialed, or handed to the UDP layer, and there is no peer table
// (scoring, eviction, re-gossip) in this repo.
func (n *Node) Keepalive(k *wire.Keepalive) {
	for _, peer := range k.Peers {
		if wire.ReservedAddress(peer, false) {
			continue
		}
		logger.Debug("learned peer candidate %s\n", peer.String())
	}
}
