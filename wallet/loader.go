package wallet

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mezonai/devkit/errors"
	"github.com/mezonai/devkit/keycodec"
	"github.com/mezonai/devkit/logx"
)

type Loader interface {
	LoadKeypair() (*Keypair, error)
}

// FileLoader reads a keypair file holding a JSON byte array
type FileLoader struct {
	Path string
}

func (l *FileLoader) LoadKeypair() (*Keypair, error) {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keypair file %s: %w", l.Path, err)
	}
	kp, err := KeypairFromByteArray(string(data))
	if err != nil {
		return nil, fmt.Errorf("keypair file %s: %w", l.Path, err)
	}
	logx.Debug("WALLET", "Loaded keypair ", kp.PublicKey().String(), " from ", l.Path)
	return kp, nil
}

// EnvLoader reads a base58 secret key from an environment variable
type EnvLoader struct {
	Name   string
	Lookup func(string) (string, bool)
}

func (l *EnvLoader) LoadKeypair() (*Keypair, error) {
	lookup := l.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	value, ok := lookup(l.Name)
	if !ok || value == "" {
		return nil, errors.ConfigurationMissing(l.Name)
	}
	kp, err := KeypairFromBase58(value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.Name, err)
	}
	return kp, nil
}

// SaveKeypairFile writes the keypair in the byte array layout read by FileLoader
func SaveKeypairFile(path string, kp *Keypair) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(keycodec.FormatByteArray(kp.Bytes())), 0o600)
}
