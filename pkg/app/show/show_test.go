package show

import (
	"bytes"
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
	agile := app.KeychainTarget{Path: agileSample, Passphrase: []byte("george")}
	cloud := app.KeychainTarget{Path: cloudSample, Passphrase: []byte("fred")}

	tests := []struct {
		name      string
		request   *Request
		wantCode  string
		wantTitle string
		validate  func(*testing.T, *Response)
	}{
		{
			name:      "agile secure note",
			request:   &Request{Target: agile, UUID: "5d7a2e1f-0c4b-4e8a-9b3c-6d2e1f0a9b8c"},
			wantTitle: "Bank PIN",
			validate: func(t *testing.T, resp *Response) {
				assert.Equal(t, map[string]interface{}{"notesPlain": "PIN 0412"}, resp.Payload)
			},
		},
		{
			name:      "cloud login",
			request:   &Request{Target: cloud, UUID: "2A632FDD32F5445E91EB5636C7580447"},
			wantTitle: "Skype",
			validate: func(t *testing.T, resp *Response) {
				payload, ok := resp.Payload.(map[string]interface{})
				require.True(t, ok)
				assert.Contains(t, payload, "fields")
				assert.Contains(t, string(resp.Plaintext), "dej3ur9unsh5ian1and5")
			},
		},
		{
			name:     "unknown item",
			request:  &Request{Target: cloud, UUID: "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF"},
			wantCode: app.ErrCodeNotFound,
		},
		{
			name:     "missing uuid",
			request:  &Request{Target: cloud, UUID: "  "},
			wantCode: app.ErrCodeInvalidInput,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			response, err := Handle(app.NewContext(), tc.request)
			if tc.wantCode != "" {
				var common *app.CommonError
				require.True(t, errors.As(err, &common))
				assert.Equal(t, tc.wantCode, common.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantTitle, response.Item.Title)
			tc.validate(t, response)
		})
	}
}

func TestFormatOutput(t *testing.T) {
	response := &Response{
		Item:      app.ItemSummary{UUID: "ABC", Title: "Bank PIN", Category: "Secure Note"},
		Payload:   map[string]interface{}{"notesPlain": "PIN 0412"},
		Plaintext: []byte(`{"notesPlain":"PIN 0412"}`),
	}

	var buf bytes.Buffer
	require.NoError(t, FormatOutput(&buf, response, "table"))
	assert.Contains(t, buf.String(), "Title:    Bank PIN")
	assert.Contains(t, buf.String(), "{\n  \"notesPlain\": \"PIN 0412\"\n}")

	buf.Reset()
	require.NoError(t, FormatOutput(&buf, response, "yaml"))
	assert.Contains(t, buf.String(), "notesPlain: PIN 0412")
	assert.NotContains(t, buf.String(), "plaintext")

	buf.Reset()
	response.Plaintext = []byte("raw text")
	require.NoError(t, FormatOutput(&buf, response, "table"))
	assert.Contains(t, buf.String(), "raw text")
}
