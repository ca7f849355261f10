package profile

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/orris-inc/subhub/internal/shared/errors"
)

const acmeProfile = `key: acme
name: Acme
global_config: |
  mode: global
rules: |
  domain-suffix,example.com,Proxy
  MATCH,,DIRECT
`

func TestCheck_Valid(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Check(&out, []byte(acmeProfile), nil))
	assert.Equal(t, "profile \"acme\" is valid: 2 rule(s), global config present\n", out.String())
}

func TestCheck_Merge(t *testing.T) {
	var out bytes.Buffer
	base := []byte("port: 7890\nmode: rule\nrules:\n  - MATCH,REJECT\n")

	require.NoError(t, Check(&out, []byte(acmeProfile), base))
	assert.Equal(t,
		"port: 7890\nmode: global\nrules:\n  - DOMAIN-SUFFIX,example.com,Proxy\n  - MATCH,,DIRECT\n  - MATCH,REJECT\n",
		out.String())
}

func TestCheck_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		profile string
	}{
		{"bad key", "key: a\nname: x\n"},
		{"bad rule", "key: acme\nname: Acme\nrules: DOMAIN,example.com\n"},
		{"global config not a mapping", "key: acme\nname: Acme\nglobal_config: \"- a\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(&bytes.Buffer{}, []byte(tt.profile), nil)
			assert.True(t, apperrors.IsValidationError(err), "got %v", err)
		})
	}

	err := Check(&bytes.Buffer{}, []byte("key: [unterminated"), nil)
	assert.Error(t, err)
}
