package verify

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-opkeychain/pkg/app"
)

const (
	agileSample = "../../../testdata/sample.agilekeychain"
	cloudSample = "../../../testdata/sample.cloudkeychain"
)

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		request    *Request
		wantCode   string
		wantFormat string
		wantCats   map[string]int
	}{
		{
			name:       "agile keychain",
			request:    &Request{Target: app.KeychainTarget{Path: agileSample, Passphrase: []byte("george")}},
			wantFormat: "agilekeychain",
			wantCats:   map[string]int{"Login": 1, "Secure Note": 1},
		},
		{
			name:       "cloud keychain",
			request:    &Request{Target: app.KeychainTarget{Path: cloudSample, Passphrase: []byte("fred")}},
			wantFormat: "cloudkeychain",
			wantCats:   map[string]int{"Login": 1, "Identity": 1},
		},
		{
			name:     "wrong agile passphrase",
			request:  &Request{Target: app.KeychainTarget{Path: agileSample, Passphrase: []byte("fred")}},
			wantCode: app.ErrCodeBadPassphrase,
		},
		{
			name:     "wrong cloud passphrase",
			request:  &Request{Target: app.KeychainTarget{Path: cloudSample, Passphrase: []byte("george")}},
			wantCode: app.ErrCodeBadPassphrase,
		},
		{
			name:     "not a keychain",
			request:  &Request{Target: app.KeychainTarget{Path: t.TempDir(), Passphrase: []byte("george")}},
			wantCode: app.ErrCodeFormat,
		},
		{
			name:     "missing passphrase",
			request:  &Request{Target: app.KeychainTarget{Path: agileSample}},
			wantCode: app.ErrCodeInvalidInput,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			response, err := Handle(app.NewContext(), tc.request)
			if tc.wantCode != "" {
				require.Error(t, err)
				var common *app.CommonError
				require.True(t, errors.As(err, &common))
				assert.Equal(t, tc.wantCode, common.Code)
				assert.Nil(t, response)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantFormat, response.Format)
			assert.Equal(t, "unlocked", response.State)
			assert.Equal(t, 2, response.Items)
			assert.Zero(t, response.Trashed)
			assert.Equal(t, tc.wantCats, response.Categories)
		})
	}
}

func TestFormatOutput(t *testing.T) {
	response := &Response{
		Path:       "/tmp/sample.agilekeychain",
		Format:     "agilekeychain",
		State:      "unlocked",
		Items:      2,
		Categories: map[string]int{"Secure Note": 1, "Login": 1},
	}

	tests := []struct {
		name     string
		format   string
		wantErr  bool
		validate func(*testing.T, string)
	}{
		{
			name:   "table format",
			format: "table",
			validate: func(t *testing.T, output string) {
				assert.Contains(t, output, "Passphrase OK, 2 items (0 trashed)")
				assert.Less(t, bytes.Index([]byte(output), []byte("Login")), bytes.Index([]byte(output), []byte("Secure Note")))
			},
		},
		{
			name:   "json format",
			format: "json",
			validate: func(t *testing.T, output string) {
				var decoded Response
				require.NoError(t, json.Unmarshal([]byte(output), &decoded))
				assert.Equal(t, 2, decoded.Items)
			},
		},
		{
			name:   "yaml format",
			format: "yaml",
			validate: func(t *testing.T, output string) {
				assert.Contains(t, output, "format: agilekeychain")
			},
		},
		{
			name:    "unsupported format",
			format:  "xml",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := FormatOutput(&buf, response, tc.format)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tc.validate(t, buf.String())
		})
	}
}
