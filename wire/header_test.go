package wire

import (
	"bytes"
	"testing"
)

func TestHeaderRoundTrip(t *testing.T) {
	h := NewHeader(NetworkLive, TypeConfirmAck)
	h.BlockTypeSet(BlockTypeState)
	h.BulkPullSetCountPresent(true)

	var buf bytes.Buffer
	if err := h.Serialize(&buf); err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if buf.Len() != 8 {
		if err := errorf("header length", 8, buf.Len()); err != nil {
			t.Fatal(err)
		}
	}

	rh, err := DeserializeHeader(&buf)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if rh.Type != TypeConfirmAck {
		t.Fatalf("type: expect %v, got %v", TypeConfirmAck, rh.Type)
	}
	if rh.BlockType() != BlockTypeState {
		t.Fatalf("block type: expect %v, got %v", BlockTypeState, rh.BlockType())
	}
	if !rh.BulkPullIsCountPresent() {
		t.Fatal("bulk pull count-present flag lost in round trip")
	}
	if !rh.ValidMagic() {
		t.Fatal("magic should be valid")
	}
	if !rh.ValidNetwork(NetworkLive) {
		t.Fatal("network should match live")
	}
	if rh.ValidNetwork(NetworkTest) {
		t.Fatal("network should not match test")
	}
}

func TestHeaderBlockTypeNibblePreservesOtherBits(t *testing.T) {
	h := NewHeader(NetworkBeta, TypeNodeIDHandshake)
	h.NodeIDHandshakeSetQuery(true)
	h.NodeIDHandshakeSetResponse(true)
	h.BlockTypeSet(BlockTypeSend)

	if !h.NodeIDHandshakeIsQuery() || !h.NodeIDHandshakeIsResponse() {
		t.Fatal("setting the block-type nibble clobbered unrelated flag bits")
	}
	if h.BlockType() != BlockTypeSend {
		t.Fatalf("block type: expect %v, got %v", BlockTypeSend, h.BlockType())
	}

	h.BlockTypeSet(BlockTypeReceive)
	if !h.NodeIDHandshakeIsQuery() || !h.NodeIDHandshakeIsResponse() {
		t.Fatal("re-setting the block-type nibble clobbered unrelated flag bits")
	}
}

func TestHeaderInvalidMagic(t *testing.T) {
	h := NewHeader(NetworkLive, TypeKeepalive)
	h.Magic[0] = 'X'
	if h.ValidMagic() {
		t.Fatal("expected invalid magic")
	}
}

func TestBlockTypeKnown(t *testing.T) {
	for _, bt := range []BlockType{BlockTypeNotABlock, BlockTypeSend, BlockTypeReceive, BlockTypeOpen, BlockTypeChange, BlockTypeState} {
		if !bt.Known() {
			t.Fatalf("%v should be known", bt)
		}
	}
	if BlockTypeInvalid.Known() {
		t.Fatal("invalid block type should not be known")
	}
	if BlockType(0x0f).Known() {
		t.Fatal("unassigned nibble should not be known")
	}
}
