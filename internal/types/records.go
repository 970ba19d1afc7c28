package types

import "encoding/json"

// AgileKeyRecord is one entry of the "list" array in data/default/encryptionKeys.js.
type AgileKeyRecord struct {
	// Base64 ciphertext of the level key, optionally prefixed with SaltMarker and an 8 byte salt.
	Data string `json:"data"`

	// Identifier referenced by item keyID fields and by the level table.
	Identifier string `json:"identifier"`

	// PBKDF2-SHA1 iteration count. Zero means DefaultLegacyIterations.
	Iterations int `json:"iterations"`

	// Security level name, e.g. "SL5".
	Level string `json:"level"`

	// Base64 copy of the level key encrypted under itself.
	Validation string `json:"validation"`
}

// AgileKeyFile is the decoded encryptionKeys.js. Every top-level member other than
// "list" maps a security level name to a key identifier.
type AgileKeyFile struct {
	List   []AgileKeyRecord
	Levels map[string]string
}

// UnmarshalJSON splits the level table from the key list.
func (f *AgileKeyFile) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	f.Levels = make(map[string]string, len(raw))
	for name, value := range raw {
		if name == "list" {
			if err := json.Unmarshal(value, &f.List); err != nil {
				return err
			}
			continue
		}
		var identifier string
		if err := json.Unmarshal(value, &identifier); err != nil {
			return err
		}
		f.Levels[name] = identifier
	}
	return nil
}

// AgileItemRecord is one data/default/<uuid>.1password file.
type AgileItemRecord struct {
	UUID          string `json:"uuid"`
	Title         string `json:"title"`
	TypeName      string `json:"typeName"`
	SecurityLevel string `json:"securityLevel,omitempty"`
	KeyID         string `json:"keyID,omitempty"`
	Encrypted     string `json:"encrypted"`
	Location      string `json:"location,omitempty"`
	FolderUUID    string `json:"folderUuid,omitempty"`
	CreatedAt     int64  `json:"createdAt"`
	UpdatedAt     int64  `json:"updatedAt"`
	Trashed       bool   `json:"trashed"`
}

// CloudProfile is the object inside default/profile.js.
type CloudProfile struct {
	UUID          string `json:"uuid"`
	ProfileName   string `json:"profileName"`
	PasswordHint  string `json:"passwordHint"`
	LastUpdatedBy string `json:"lastUpdatedBy"`

	// Base64 PBKDF2 salt for the super keys.
	Salt string `json:"salt"`

	// PBKDF2-SHA512 iteration count for the super keys.
	Iterations int `json:"iterations"`

	// Base64 opdata1 envelope holding the bare master key.
	MasterKey string `json:"masterKey"`

	// Base64 opdata1 envelope holding the bare overview key.
	OverviewKey string `json:"overviewKey"`

	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`
}

// CloudItemRecord is one member of a band file. Fields keeps every member exactly as
// decoded (numbers as json.Number) because the record HMAC covers all of them.
type CloudItemRecord struct {
	UUID     string
	Category string
	Overview string
	Key      string
	Data     string
	HMAC     string
	Created  int64
	Updated  int64
	Trashed  bool
	Fields   map[string]interface{}
}
