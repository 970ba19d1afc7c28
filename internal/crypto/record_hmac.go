package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/deploymenttheory/go-opkeychain/internal/types"
)

// RecordHMACField is the member of a record that carries its own tag.
const RecordHMACField = "hmac"

// SerializeRecord produces the bytes a whole-record HMAC covers: for each member in
// sorted key order except "hmac", the key followed by the value's canonical string.
// Booleans are "0" or "1", numbers keep their literal decimal text and strings are
// written verbatim. Null, object and array values have no canonical form and are
// rejected.
func SerializeRecord(record map[string]interface{}) ([]byte, error) {
	keys := make([]string, 0, len(record))
	for key := range record {
		if key == RecordHMACField {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var out []byte
	for _, key := range keys {
		value, err := canonicalValue(record[key])
		if err != nil {
			return nil, fmt.Errorf("%w: record member %q: %v", types.ErrFormat, key, err)
		}
		out = append(out, key...)
		out = append(out, value...)
	}
	return out, nil
}

func canonicalValue(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case bool:
		if v {
			return "1", nil
		}
		return "0", nil
	case json.Number:
		return v.String(), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case nil:
		return "", fmt.Errorf("null value")
	default:
		return "", fmt.Errorf("unsupported value of type %T", value)
	}
}

// VerifyRecordHMAC checks the base64 "hmac" member of record against
// HMAC-SHA256(macKey, SerializeRecord(record)).
func VerifyRecordHMAC(macKey []byte, record map[string]interface{}) error {
	encoded, ok := record[RecordHMACField].(string)
	if !ok {
		return fmt.Errorf("%w: record has no %q member", types.ErrFormat, RecordHMACField)
	}
	expected, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("%w: record hmac is not base64: %v", types.ErrFormat, err)
	}

	covered, err := SerializeRecord(record)
	if err != nil {
		return err
	}
	mac := hmac.New(sha256.New, macKey)
	mac.Write(covered)
	if !hmac.Equal(mac.Sum(nil), expected) {
		return fmt.Errorf("%w: HMAC did not match for record", types.ErrAuthentication)
	}
	return nil
}
