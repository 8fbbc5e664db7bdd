package wire

import (
	"encoding/binary"
	"io"
)

// FrontierAny/FrontierUnbounded are the "any"/"unbounded" sentinels for
// FrontierReq's Age and Count fields.
const (
	FrontierAny       uint32 = 0xffffffff
	FrontierUnbounded uint32 = 0xffffffff
)

// FrontierReqPayloadSize is the fixed 40-byte body: account(32) + age(4) + count(4).
const FrontierReqPayloadSize = 32 + 4 + 4

// FrontierReq asks a peer to list account frontiers.
type FrontierReq struct {
	Header  MessageHeader
	Account [32]byte
	Age     uint32
	Count   uint32
}

func NewFrontierReq(network NetworkTag, account [32]byte, age, count uint32) *FrontierReq {
	return &FrontierReq{
		Header:  NewHeader(network, TypeFrontierReq),
		Account: account,
		Age:     age,
		Count:   count,
	}
}

func DeserializeFrontierReq(r io.Reader, header MessageHeader) (*FrontierReq, error) {
	f := &FrontierReq{Header: header}
	if _, err := io.ReadFull(r, f.Account[:]); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &f.Age); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &f.Count); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *FrontierReq) Serialize(w io.Writer) error {
	if err := f.Header.Serialize(w); err != nil {
		return err
	}
	if _, err := w.Write(f.Account[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, f.Age); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, f.Count)
}

func (f *FrontierReq) Visit(v Visitor) { v.FrontierReq(f) }

func (f *FrontierReq) Equal(o *FrontierReq) bool {
	return o != nil && f.Account == o.Account && f.Age == o.Age && f.Count == o.Count
}
