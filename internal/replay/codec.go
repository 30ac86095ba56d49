package replay

import (
	"fmt"
	"os"

	"github.com/fxamacker/cbor/v2"
)

// encMode uses Core Deterministic Encoding (RFC 8949 §4.2): the same log
// always produces identical bytes.
var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("replay: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("replay: CBOR decoder initialization failed: " + err.Error())
	}
}

// Encode serializes a log.
func Encode(l *Log) ([]byte, error) {
	data, err := encMode.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("encode replay log: %w", err)
	}
	return data, nil
}

// Decode parses a log and checks its version.
func Decode(data []byte) (*Log, error) {
	var l Log
	if err := decMode.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("decode replay log: %w", err)
	}
	if l.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, l.Version)
	}
	return &l, nil
}

// WriteFile encodes l to path.
func WriteFile(path string, l *Log) error {
	data, err := Encode(l)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write replay log: %w", err)
	}
	return nil
}

// ReadFile decodes the log stored at path.
func ReadFile(path string) (*Log, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read replay log: %w", err)
	}
	return Decode(data)
}
