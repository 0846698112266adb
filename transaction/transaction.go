package transaction

import (
	"bytes"
	"encoding/base64"
	"strings"

	"github.com/mezonai/devkit/errors"
	"github.com/mezonai/devkit/instruction"
	"github.com/mezonai/devkit/types"
	"github.com/mezonai/devkit/wallet"
)

type Signer interface {
	PublicKey() types.PublicKey
	Sign(message []byte) (types.Signature, error)
}

// Transaction is a draft until every required signature slot is filled
type Transaction struct {
	Signatures []types.Signature
	Message    *Message
}

// New builds an unsigned draft
func New(instructions []instruction.Instruction, feePayer types.PublicKey, blockhash types.Hash) (*Transaction, error) {
	msg, err := NewMessage(instructions, feePayer, blockhash)
	if err != nil {
		return nil, err
	}
	return &Transaction{
		Signatures: make([]types.Signature, msg.Header.NumRequiredSignatures),
		Message:    msg,
	}, nil
}

// Sign signs the exact message bytes with every required signer. Previous
// signatures are discarded, so a changed draft never keeps stale ones.
func (tx *Transaction) Sign(signers ...Signer) error {
	content, err := tx.Message.MarshalBinary()
	if err != nil {
		return err
	}

	byKey := make(map[types.PublicKey]Signer, len(signers))
	for _, s := range signers {
		byKey[s.PublicKey()] = s
	}

	required := tx.Message.Signers()
	sigs := make([]types.Signature, len(required))
	var missing []string
	for i, key := range required {
		s, ok := byKey[key]
		if !ok {
			missing = append(missing, key.String())
			continue
		}
		sig, err := s.Sign(content)
		if err != nil {
			return err
		}
		sigs[i] = sig
	}
	if len(missing) > 0 {
		return errors.NewError(errors.ErrCodeMissingSignature, errors.ErrMsgMissingSignature, strings.Join(missing, ", "))
	}
	tx.Signatures = sigs
	return nil
}

// VerifySignatures checks every required signature against the current message bytes
func (tx *Transaction) VerifySignatures() error {
	content, err := tx.Message.MarshalBinary()
	if err != nil {
		return err
	}
	required := tx.Message.Signers()
	if len(tx.Signatures) != len(required) {
		return errors.NewError(errors.ErrCodeMissingSignature, "expected %d signatures, have %d", len(required), len(tx.Signatures))
	}
	for i, key := range required {
		if tx.Signatures[i].IsZero() {
			return errors.NewError(errors.ErrCodeMissingSignature, errors.ErrMsgMissingSignature, key.String())
		}
		if !wallet.Verify(key, content, tx.Signatures[i]) {
			return errors.NewError(errors.ErrCodeMissingSignature, "signature of %s does not match the message", key.String())
		}
	}
	return nil
}

// ID is the first signature, which identifies the transaction on the ledger
func (tx *Transaction) ID() types.Signature {
	if len(tx.Signatures) == 0 {
		return types.Signature{}
	}
	return tx.Signatures[0]
}

func (tx *Transaction) MarshalBinary() ([]byte, error) {
	content, err := tx.Message.MarshalBinary()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := encodeCompactU16(&buf, len(tx.Signatures)); err != nil {
		return nil, err
	}
	for _, s := range tx.Signatures {
		buf.Write(s[:])
	}
	buf.Write(content)
	return buf.Bytes(), nil
}

func (tx *Transaction) ToBase64() (string, error) {
	b, err := tx.MarshalBinary()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

func (m *Message) ToBase64() (string, error) {
	b, err := m.MarshalBinary()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}
