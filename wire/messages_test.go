package wire

import (
	"bytes"
	"net"
	"testing"
)

func mustIP(s string) net.IP { return net.ParseIP(s) }

func TestKeepaliveRoundTrip(t *testing.T) {
	peers := []Endpoint{
		NewEndpoint(mustIP("8.8.8.8"), 7075),
		NewEndpoint(mustIP("1.1.1.1"), 7076),
	}
	k := NewKeepalive(NetworkLive, peers)

	var buf bytes.Buffer
	if err := k.Serialize(&buf); err != nil {
		t.Fatalf("serialize: %v", err)
	}

	header, err := DeserializeHeader(&buf)
	if err != nil {
		t.Fatalf("header: %v", err)
	}
	rk, err := DeserializeKeepalive(&buf, header)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if !k.Equal(rk) {
		t.Fatal("keepalive did not round-trip")
	}
	for i := len(peers); i < keepalivePeerCount; i++ {
		if !rk.Peers[i].Equal(Endpoint{}) {
			t.Fatalf("unused peer slot %d should be zero", i)
		}
	}
}

func TestPublishRoundTrip(t *testing.T) {
	block := &fakeBlock{blockType: BlockTypeSend, payload: []byte("a send block")}
	p := NewPublish(NetworkLive, BlockTypeSend, block)

	var buf bytes.Buffer
	if err := p.Serialize(&buf); err != nil {
		t.Fatalf("serialize: %v", err)
	}
	header, err := DeserializeHeader(&buf)
	if err != nil {
		t.Fatalf("header: %v", err)
	}
	rp, err := DeserializePublish(&buf, header, fakeBlockCodec{}, nil, nil)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if !p.Equal(rp) {
		t.Fatal("publish did not round-trip")
	}
}

func TestPublishInternsViaUniquer(t *testing.T) {
	u := NewBlockUniquer()
	block := &fakeBlock{blockType: BlockTypeSend, payload: []byte("shared")}
	p := NewPublish(NetworkLive, BlockTypeSend, block)

	var buf1, buf2 bytes.Buffer
	p.Serialize(&buf1)
	p.Serialize(&buf2)

	h1, _ := DeserializeHeader(&buf1)
	r1, err := DeserializePublish(&buf1, h1, fakeBlockCodec{}, nil, u)
	if err != nil {
		t.Fatalf("first deserialize: %v", err)
	}
	h2, _ := DeserializeHeader(&buf2)
	r2, err := DeserializePublish(&buf2, h2, fakeBlockCodec{}, nil, u)
	if err != nil {
		t.Fatalf("second deserialize: %v", err)
	}
	if r1.Block != r2.Block {
		t.Fatal("two publishes carrying the same block content should intern to the same Block value")
	}
}

func TestConfirmReqRoundTrip(t *testing.T) {
	block := &fakeBlock{blockType: BlockTypeState, payload: []byte("state block")}
	c := NewConfirmReq(NetworkBeta, BlockTypeState, block)

	var buf bytes.Buffer
	if err := c.Serialize(&buf); err != nil {
		t.Fatalf("serialize: %v", err)
	}
	header, _ := DeserializeHeader(&buf)
	rc, err := DeserializeConfirmReq(&buf, header, fakeBlockCodec{}, nil, nil)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if !c.Equal(rc) {
		t.Fatal("confirm_req did not round-trip")
	}
}

func TestConfirmAckHashesRoundTrip(t *testing.T) {
	account := randHash()
	sig := randSig()
	vote, _ := fakeVoteCodec{}.DeserializeHashes(account, sig, 42, [][32]byte{randHash(), randHash(), randHash()})
	ack := NewConfirmAckHashes(NetworkLive, vote)

	var buf bytes.Buffer
	if err := ack.Serialize(&buf); err != nil {
		t.Fatalf("serialize: %v", err)
	}
	header, _ := DeserializeHeader(&buf)
	r := bytes.NewReader(buf.Bytes())
	rack, err := DeserializeConfirmAck(r, header, fakeBlockCodec{}, fakeVoteCodec{}, nil, nil)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if !ack.Equal(rack) {
		t.Fatal("confirm_ack (hashes) did not round-trip")
	}
	if r.Len() != 0 {
		t.Fatalf("expected no trailing bytes, got %d", r.Len())
	}
}

func TestConfirmAckBlockRoundTrip(t *testing.T) {
	account := randHash()
	sig := randSig()
	block := &fakeBlock{blockType: BlockTypeState, payload: []byte("voted-on block")}
	vote, _ := fakeVoteCodec{}.DeserializeBlock(account, sig, 7, block)
	ack := NewConfirmAckBlock(NetworkLive, BlockTypeState, vote)

	var buf bytes.Buffer
	if err := ack.Serialize(&buf); err != nil {
		t.Fatalf("serialize: %v", err)
	}
	header, _ := DeserializeHeader(&buf)
	r := bytes.NewReader(buf.Bytes())
	rack, err := DeserializeConfirmAck(r, header, fakeBlockCodec{}, fakeVoteCodec{}, nil, nil)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if !ack.Equal(rack) {
		t.Fatal("confirm_ack (block) did not round-trip")
	}
}

func TestConfirmAckHashesRejectsShortRemainder(t *testing.T) {
	account := randHash()
	sig := randSig()
	header := NewHeader(NetworkLive, TypeConfirmAck)
	header.BlockTypeSet(BlockTypeNotABlock)

	var buf bytes.Buffer
	buf.Write(account[:])
	buf.Write(sig[:])
	var seq [8]byte
	buf.Write(seq[:])
	buf.WriteByte(0xAB) // 1 stray byte, not a multiple of 32

	r := bytes.NewReader(buf.Bytes())
	if _, err := DeserializeConfirmAck(r, header, fakeBlockCodec{}, fakeVoteCodec{}, nil, nil); err == nil {
		t.Fatal("expected an error for a hash list not a multiple of 32 bytes")
	}
}

func TestBulkPullRoundTripWithAndWithoutCount(t *testing.T) {
	start, end := randHash(), randHash()

	unbounded := NewBulkPull(NetworkLive, start, end, 0)
	var buf1 bytes.Buffer
	unbounded.Serialize(&buf1)
	h1, _ := DeserializeHeader(&buf1)
	r1, err := DeserializeBulkPull(&buf1, h1)
	if err != nil {
		t.Fatalf("deserialize unbounded: %v", err)
	}
	if r1.Count != 0 {
		t.Fatalf("expected count 0 (unlimited), got %d", r1.Count)
	}

	bounded := NewBulkPull(NetworkLive, start, end, 256)
	var buf2 bytes.Buffer
	bounded.Serialize(&buf2)
	h2, _ := DeserializeHeader(&buf2)
	r2, err := DeserializeBulkPull(&buf2, h2)
	if err != nil {
		t.Fatalf("deserialize bounded: %v", err)
	}
	if r2.Count != 256 {
		t.Fatalf("expected count 256, got %d", r2.Count)
	}
	if !bounded.Equal(r2) {
		t.Fatal("bulk_pull (bounded) did not round-trip")
	}
}

func TestBulkPullAccountRejectsUnknownFlags(t *testing.T) {
	b := NewBulkPullAccount(NetworkLive, randHash(), [16]byte{}, PendingAddressOnly)
	var buf bytes.Buffer
	b.Serialize(&buf)

	// corrupt the flags byte (last byte of the payload) to an unknown value
	raw := buf.Bytes()
	raw[len(raw)-1] = 0x7f

	r := bytes.NewReader(raw[8:])
	header, _ := DeserializeHeader(bytes.NewReader(raw[:8]))
	if _, err := DeserializeBulkPullAccount(r, header); err == nil {
		t.Fatal("expected an error for an unknown bulk_pull_account flags value")
	}
}

func TestBulkPullBlocksRoundTrip(t *testing.T) {
	b := NewBulkPullBlocks(NetworkLive, randHash(), randHash(), ChecksumBlocks, 10)
	var buf bytes.Buffer
	b.Serialize(&buf)
	header, _ := DeserializeHeader(&buf)
	rb, err := DeserializeBulkPullBlocks(&buf, header)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if !b.Equal(rb) {
		t.Fatal("bulk_pull_blocks did not round-trip")
	}
}

func TestBulkPushRoundTrip(t *testing.T) {
	b := NewBulkPush(NetworkLive)
	var buf bytes.Buffer
	b.Serialize(&buf)
	header, _ := DeserializeHeader(&buf)
	rb, err := DeserializeBulkPush(header)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if !b.Equal(rb) {
		t.Fatal("bulk_push did not round-trip")
	}
}

func TestFrontierReqRoundTrip(t *testing.T) {
	f := NewFrontierReq(NetworkLive, randHash(), FrontierAny, 100)
	var buf bytes.Buffer
	f.Serialize(&buf)
	header, _ := DeserializeHeader(&buf)
	rf, err := DeserializeFrontierReq(&buf, header)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if !f.Equal(rf) {
		t.Fatal("frontier_req did not round-trip")
	}
}

func TestNodeIDHandshakeQueryOnly(t *testing.T) {
	cookie := randHash()
	n := NewNodeIDHandshake(NetworkLive, &cookie, nil)
	var buf bytes.Buffer
	n.Serialize(&buf)
	header, _ := DeserializeHeader(&buf)
	rn, err := DeserializeNodeIDHandshake(&buf, header)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if rn.Query == nil || rn.Response != nil {
		t.Fatal("expected query present, response absent")
	}
	if !n.Equal(rn) {
		t.Fatal("node_id_handshake did not round-trip")
	}
}

func TestNodeIDHandshakeRejectsNeitherFlag(t *testing.T) {
	header := NewHeader(NetworkLive, TypeNodeIDHandshake)
	if _, err := DeserializeNodeIDHandshake(bytes.NewReader(nil), header); err == nil {
		t.Fatal("expected an error when neither query nor response flag is set")
	}
}
