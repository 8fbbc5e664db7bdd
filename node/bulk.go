package node

import (
	"bytes"
	"net"

	"github.com/996BC/latticenet/transport"
	"github.com/996BC/latticenet/utils"
)

// bulkServer accepts bootstrap-style bulk-transport connections and
// drains frames out of them. Actually answering a bulk_pull/
// bulk_pull_account/frontier_req request means walking ledger.Store and
// streaming blocks back, which is bootstrap-session logic this repo
// doesn't attempt to reproduce in full -- this is the accept-and-frame
// half only, matching how tcp_frame.go is scoped to framing and not to
// bootstrap protocol state.
type bulkServer struct {
	tcp utils.TCPServer
	lm  *utils.LoopMode
}

func newBulkServer(ip net.IP, port int) *bulkServer {
	return &bulkServer{
		tcp: utils.NewTCPServer(ip, port),
		lm:  utils.NewLoop(1),
	}
}

func (b *bulkServer) start() bool {
	if !b.tcp.Start() {
		return false
	}
	go b.acceptLoop()
	b.lm.StartWorking()
	return true
}

func (b *bulkServer) stop() {
	b.lm.Stop()
	b.tcp.Stop()
}

func (b *bulkServer) acceptLoop() {
	b.lm.Add()
	defer b.lm.Done()

	accept := b.tcp.GetTCPAcceptConnChannel()
	for {
		select {
		case <-b.lm.D:
			return
		case conn := <-accept:
			conn.SetSplitFunc(func(received *bytes.Buffer) ([][]byte, error) {
				return transport.SplitStream(received)
			})
			go b.readConn(conn)
		}
	}
}

func (b *bulkServer) readConn(conn utils.TCPConn) {
	recv := conn.GetRecvChannel()
	for frame := range recv {
		ok, _, t := transport.VerifyFrame(frame)
		if !ok {
			logger.Warn("bulk connection from %v sent a corrupt frame, disconnecting\n", conn.RemoteAddr())
			conn.Disconnect()
			return
		}
		logger.Debug("bulk connection from %v sent a %v frame\n", conn.RemoteAddr(), t)
	}
}
