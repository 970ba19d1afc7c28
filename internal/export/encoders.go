package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

func encodeJSON(w io.Writer, records []Record) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(records)
}

func encodeYAML(w io.Writer, records []Record) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(records); err != nil {
		return err
	}
	return encoder.Close()
}

// encodeCBOR emits map keys in canonical order so identical input yields identical bytes.
func encodeCBOR(w io.Writer, records []Record) error {
	mode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return fmt.Errorf("failed to build CBOR encoder: %w", err)
	}
	data, err := mode.Marshal(records)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
