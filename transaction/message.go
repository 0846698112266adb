package transaction

import (
	"bytes"
	"sort"

	"github.com/mezonai/devkit/errors"
	"github.com/mezonai/devkit/instruction"
	"github.com/mezonai/devkit/types"
)

const maxAccountKeys = 256

type MessageHeader struct {
	NumRequiredSignatures       uint8
	NumReadonlySignedAccounts   uint8
	NumReadonlyUnsignedAccounts uint8
}

type CompiledInstruction struct {
	ProgramIDIndex uint8
	Accounts       []uint8
	Data           []byte
}

// Message is the signed portion of a transaction in the legacy layout
type Message struct {
	Header          MessageHeader
	AccountKeys     []types.PublicKey
	RecentBlockhash types.Hash
	Instructions    []CompiledInstruction
}

type keyMeta struct {
	key        types.PublicKey
	isSigner   bool
	isWritable bool
}

// NewMessage compiles instructions against a fee payer and a recent blockhash.
func NewMessage(instructions []instruction.Instruction, payer types.PublicKey, blockhash types.Hash) (*Message, error) {
	if len(instructions) == 0 {
		return nil, errors.NewError(errors.ErrCodeInvalidTransaction, "transaction has no instructions")
	}

	metas := []keyMeta{{key: payer, isSigner: true, isWritable: true}}
	index := map[types.PublicKey]int{payer: 0}
	add := func(m keyMeta) {
		if i, ok := index[m.key]; ok {
			metas[i].isSigner = metas[i].isSigner || m.isSigner
			metas[i].isWritable = metas[i].isWritable || m.isWritable
			return
		}
		index[m.key] = len(metas)
		metas = append(metas, m)
	}
	for _, ix := range instructions {
		for _, a := range ix.Accounts {
			add(keyMeta{key: a.PublicKey, isSigner: a.IsSigner, isWritable: a.IsWritable})
		}
		add(keyMeta{key: ix.ProgramID})
	}
	if len(metas) > maxAccountKeys {
		return nil, errors.NewError(errors.ErrCodeInvalidTransaction, "too many account keys: %d", len(metas))
	}

	// payer stays first; the rest ordered signer/writable classes, first-seen within a class
	rest := metas[1:]
	sort.SliceStable(rest, func(i, j int) bool {
		return metaRank(rest[i]) < metaRank(rest[j])
	})

	msg := &Message{RecentBlockhash: blockhash}
	keyIndex := make(map[types.PublicKey]uint8, len(metas))
	for i, m := range metas {
		msg.AccountKeys = append(msg.AccountKeys, m.key)
		keyIndex[m.key] = uint8(i)
		switch {
		case m.isSigner && !m.isWritable:
			msg.Header.NumRequiredSignatures++
			msg.Header.NumReadonlySignedAccounts++
		case m.isSigner:
			msg.Header.NumRequiredSignatures++
		case !m.isWritable:
			msg.Header.NumReadonlyUnsignedAccounts++
		}
	}

	for _, ix := range instructions {
		compiled := CompiledInstruction{
			ProgramIDIndex: keyIndex[ix.ProgramID],
			Accounts:       make([]uint8, len(ix.Accounts)),
			Data:           append([]byte(nil), ix.Data...),
		}
		for i, a := range ix.Accounts {
			compiled.Accounts[i] = keyIndex[a.PublicKey]
		}
		msg.Instructions = append(msg.Instructions, compiled)
	}
	return msg, nil
}

func metaRank(m keyMeta) int {
	switch {
	case m.isSigner && m.isWritable:
		return 0
	case m.isSigner:
		return 1
	case m.isWritable:
		return 2
	}
	return 3
}

// Signers returns the keys whose signatures the message requires, in signature order
func (m *Message) Signers() []types.PublicKey {
	return m.AccountKeys[:m.Header.NumRequiredSignatures]
}

func (m *Message) IsSigner(i int) bool {
	return i < int(m.Header.NumRequiredSignatures)
}

func (m *Message) IsWritable(i int) bool {
	h := m.Header
	if i < int(h.NumRequiredSignatures) {
		return i < int(h.NumRequiredSignatures-h.NumReadonlySignedAccounts)
	}
	return i < len(m.AccountKeys)-int(h.NumReadonlyUnsignedAccounts)
}

// FeePayer is the first account key
func (m *Message) FeePayer() types.PublicKey {
	return m.AccountKeys[0]
}

func (m *Message) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte(m.Header.NumRequiredSignatures)
	buf.WriteByte(m.Header.NumReadonlySignedAccounts)
	buf.WriteByte(m.Header.NumReadonlyUnsignedAccounts)

	if err := encodeCompactU16(&buf, len(m.AccountKeys)); err != nil {
		return nil, err
	}
	for _, k := range m.AccountKeys {
		buf.Write(k[:])
	}
	buf.Write(m.RecentBlockhash[:])

	if err := encodeCompactU16(&buf, len(m.Instructions)); err != nil {
		return nil, err
	}
	for _, ix := range m.Instructions {
		buf.WriteByte(ix.ProgramIDIndex)
		if err := encodeCompactU16(&buf, len(ix.Accounts)); err != nil {
			return nil, err
		}
		buf.Write(ix.Accounts)
		if err := encodeCompactU16(&buf, len(ix.Data)); err != nil {
			return nil, err
		}
		buf.Write(ix.Data)
	}
	return buf.Bytes(), nil
}

// Instruction expands compiled instruction i back into keys and flags
func (m *Message) Instruction(i int) instruction.Instruction {
	c := m.Instructions[i]
	accounts := make([]instruction.AccountMeta, len(c.Accounts))
	for j, idx := range c.Accounts {
		accounts[j] = instruction.NewAccountMeta(m.AccountKeys[idx], m.IsSigner(int(idx)), m.IsWritable(int(idx)))
	}
	return instruction.New(m.AccountKeys[c.ProgramIDIndex], accounts, c.Data)
}
