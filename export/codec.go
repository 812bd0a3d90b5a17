package export

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// EncodeJSON serializes the plain model as indented JSON.
func (p *Model) EncodeJSON() ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// DecodeJSON parses a plain model from JSON.
func DecodeJSON(data []byte) (*Model, error) {
	p := &Model{}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, err
	}
	return p, nil
}

// EncodeYAML serializes the plain model as YAML.
func (p *Model) EncodeYAML() ([]byte, error) {
	return yaml.Marshal(p)
}

// DecodeYAML parses a plain model from YAML.
func DecodeYAML(data []byte) (*Model, error) {
	p := &Model{}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, err
	}
	return p, nil
}

// EncodeMsgpack serializes the plain model as MessagePack, the compact
// binary form used for model snapshots.
func (p *Model) EncodeMsgpack() ([]byte, error) {
	return msgpack.Marshal(p)
}

// DecodeMsgpack parses a plain model from MessagePack.
func DecodeMsgpack(data []byte) (*Model, error) {
	p := &Model{}
	if err := msgpack.Unmarshal(data, p); err != nil {
		return nil, err
	}
	return p, nil
}
