package wire

import "io"

// BulkPullAccountFlags selects what bulk_pull_account's response entries
// contain.
type BulkPullAccountFlags uint8

const (
	PendingHashAndAmount         BulkPullAccountFlags = 0
	PendingAddressOnly           BulkPullAccountFlags = 1
	PendingHashAmountAndAddress  BulkPullAccountFlags = 2
)

func (f BulkPullAccountFlags) Valid() bool {
	switch f {
	case PendingHashAndAmount, PendingAddressOnly, PendingHashAmountAndAddress:
		return true
	default:
		return false
	}
}

// BulkPullAccountPayloadSize is account(32) + minimum_amount(16) + flags(1).
const BulkPullAccountPayloadSize = 32 + 16 + 1

// BulkPullAccount asks a peer to stream an account's pending entries.
type BulkPullAccount struct {
	Header        MessageHeader
	Account       [32]byte
	MinimumAmount [16]byte
	Flags         BulkPullAccountFlags
}

func NewBulkPullAccount(network NetworkTag, account [32]byte, minimumAmount [16]byte, flags BulkPullAccountFlags) *BulkPullAccount {
	return &BulkPullAccount{
		Header:        NewHeader(network, TypeBulkPullAccount),
		Account:       account,
		MinimumAmount: minimumAmount,
		Flags:         flags,
	}
}

// DeserializeBulkPullAccount rejects unknown flag values, per spec.md 4.C.
func DeserializeBulkPullAccount(r io.Reader, header MessageHeader) (*BulkPullAccount, error) {
	b := &BulkPullAccount{Header: header}
	if _, err := io.ReadFull(r, b.Account[:]); err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(r, b.MinimumAmount[:]); err != nil {
		return nil, err
	}
	var flag [1]byte
	if _, err := io.ReadFull(r, flag[:]); err != nil {
		return nil, err
	}
	b.Flags = BulkPullAccountFlags(flag[0])
	if !b.Flags.Valid() {
		return nil, errInvalidBulkPullAccountFlags
	}
	return b, nil
}

var errInvalidBulkPullAccountFlags = bulkPullAccountFlagsError{}

type bulkPullAccountFlagsError struct{}

func (bulkPullAccountFlagsError) Error() string { return "bulk_pull_account: unknown flags value" }

func (b *BulkPullAccount) Serialize(w io.Writer) error {
	if err := b.Header.Serialize(w); err != nil {
		return err
	}
	if _, err := w.Write(b.Account[:]); err != nil {
		return err
	}
	if _, err := w.Write(b.MinimumAmount[:]); err != nil {
		return err
	}
	_, err := w.Write([]byte{byte(b.Flags)})
	return err
}

func (b *BulkPullAccount) Visit(v Visitor) { v.BulkPullAccount(b) }

func (b *BulkPullAccount) Equal(o *BulkPullAccount) bool {
	return o != nil && b.Account == o.Account && b.MinimumAmount == o.MinimumAmount && b.Flags == o.Flags
}
