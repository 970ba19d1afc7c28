package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-opkeychain/internal/types"
)

var pbkdf2Vectors = []struct {
	name       string
	algo       HashAlgorithm
	password   string
	salt       string
	iterations int
	expected   string
}{
	{"sha1 empty salt 1", SHA1, "password", "", 1, "8754c32c64b0f524fc50c00f788135de"},
	{"sha1 empty salt 16", SHA1, "password", "", 16, "0b507c7d7213e99e0f0c6ad0bd48a7c9"},
	{"sha1 salt 1", SHA1, "password", "salt", 1, "0c60c80f961f0e71f3a9b524af601206"},
	{"sha1 salt 16", SHA1, "password", "salt", 16, "1e844c66b57c0eedf6fd781bcafce822"},
	{"sha1 salt 163840", SHA1, "password", "salt", 163840, "c2032fb4fef4a86e155c1a936b59a9da"},
	{"sha512 empty salt 1", SHA512, "password", "", 1, "ae16ce6dfd4a6a0c20421ff80eb3ba4a"},
	{"sha512 empty salt 16", SHA512, "password", "", 16, "54e1d554a67b151d193b820a62586249"},
	{"sha512 salt 1", SHA512, "password", "salt", 1, "867f70cf1ade02cff3752599a3a53dc4"},
	{"sha512 salt 16", SHA512, "password", "salt", 16, "8834dcafecf53126ccfe4d46c676164d"},
	{"sha512 salt 163840", SHA512, "password", "salt", 163840, "7cc2a269e7a26a9e8ffb93d7b7668805"},
}

func TestDeriveKeyVectors(t *testing.T) {
	backends := []PBKDF2Backend{ReferencePBKDF2{}, XCryptoPBKDF2{}}

	for _, backend := range backends {
		for _, tc := range pbkdf2Vectors {
			t.Run(backend.Name()+"/"+tc.name, func(t *testing.T) {
				if testing.Short() && tc.iterations > 1000 {
					t.Skip("slow vector")
				}
				key, err := DeriveKey(backend, []byte(tc.password), []byte(tc.salt), 16, tc.iterations, tc.algo)
				require.NoError(t, err)
				assert.Equal(t, mustHex(t, tc.expected), key)
			})
		}
	}
}

func TestBackendsAgreeAcrossBlocks(t *testing.T) {
	// 150 bytes spans several SHA-1 and SHA-512 blocks and ends mid-block.
	for _, algo := range []HashAlgorithm{SHA1, SHA512} {
		reference, err := DeriveKey(ReferencePBKDF2{}, []byte("pass"), []byte("NaCl"), 150, 7, algo)
		require.NoError(t, err)
		accelerated, err := DeriveKey(XCryptoPBKDF2{}, []byte("pass"), []byte("NaCl"), 150, 7, algo)
		require.NoError(t, err)
		assert.Equal(t, reference, accelerated, string(algo))
		assert.Len(t, reference, 150)
	}
}

func TestDeriveKeyValidation(t *testing.T) {
	tests := []struct {
		name       string
		algo       HashAlgorithm
		keyLen     int
		iterations int
	}{
		{"unknown hash", HashAlgorithm("md4"), 16, 1},
		{"zero iterations", SHA1, 16, 0},
		{"zero key length", SHA512, 0, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			key, err := DeriveKey(nil, []byte("p"), []byte("s"), tc.keyLen, tc.iterations, tc.algo)
			assert.Error(t, err)
			assert.Nil(t, key)
		})
	}
}

func TestLookupPBKDF2Backend(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "empty means auto", input: "", expected: DefaultPBKDF2Backend.Name()},
		{name: "auto", input: BackendAuto, expected: DefaultPBKDF2Backend.Name()},
		{name: "reference", input: BackendReference, expected: BackendReference},
		{name: "xcrypto", input: BackendXCrypto, expected: BackendXCrypto},
		{name: "unknown", input: "nettle", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			backend, err := LookupPBKDF2Backend(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, backend.Name())
		})
	}

	assert.Equal(t, []string{BackendAuto, BackendReference, BackendXCrypto}, PBKDF2BackendNames())
}

// Cloud super keys are PBKDF2-SHA512 over the NUL terminated passphrase.
func TestDeriveCloudSuperKeys(t *testing.T) {
	tests := []struct {
		name       string
		passphrase string
		iterations int
		cipherKey  string
		macKey     string
	}{
		{"empty passphrase", "", 1000,
			"cb93096c3a02beeb1c5fac36765c9011fe99f8d8ea62366048fc98cb98dfea8f",
			"4f8d3055a5ef9b7af29773ad8252955469399d25d30a5331288928581fb86ecb"},
		{"empty passphrase 10000 iterations", "", 10000,
			"49b4a7213dfcee4eaddec1e21ea6fc8b9a2c465ae7cd504f411eee6b21d2e5ef",
			"76348ae1a9eaa81b55556d13a2434d09022cc407d9136246ef352805f4b4abb5"},
		{"single iteration", "fred", 1,
			"7608b1d69a16be118b7f618699dcc9bdb2e561f2776c642cfad656168b568860",
			"ad96d3e75310a84c21f3a7b977f025329194bbf0660011cba4aaf28d810f62a9"},
		{"fred", "fred", 1000,
			"509be2b9c04322aff23ec07a46e8ff066a8891e3098296565a308ed611cca7d4",
			"62248128d4f40e384df00c18292172cf023ef3684b5f95a48ca0919cf9372057"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			keys, err := DeriveCloudSuperKeys(nil, tc.passphrase, []byte{}, tc.iterations, types.CloudKeySize)
			require.NoError(t, err)
			assert.Equal(t, mustHex(t, tc.cipherKey), keys.CipherKey)
			assert.Equal(t, mustHex(t, tc.macKey), keys.MACKey)
		})
	}
}

func TestDeriveCloudSuperKeysRejectsKeySize(t *testing.T) {
	_, err := DeriveCloudSuperKeys(nil, "fred", nil, 1, types.KeySize(100))
	assert.Error(t, err)
}

func TestKeyPairWipe(t *testing.T) {
	keys := KeyPair{CipherKey: []byte{1, 2, 3}, MACKey: []byte{4, 5}}
	keys.Wipe()
	assert.Equal(t, []byte{0, 0, 0}, keys.CipherKey)
	assert.Equal(t, []byte{0, 0}, keys.MACKey)
}
