package document

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, text string) *Mapping {
	t.Helper()
	m, err := Parse(text)
	require.NoError(t, err)
	return m
}

func scalarAt(t *testing.T, m *Mapping, key string) *Scalar {
	t.Helper()
	v, ok := m.Get(key)
	require.True(t, ok, "key %q missing", key)
	s, ok := v.(*Scalar)
	require.True(t, ok, "key %q is %s", key, v.Kind())
	return s
}

func TestParse_EmptyInput(t *testing.T) {
	for _, text := range []string{"", "   \n\t", "# only a comment\n", "~"} {
		m, err := Parse(text)
		require.NoError(t, err, "input %q", text)
		assert.Equal(t, 0, m.Len(), "input %q", text)
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"sequence root", "- a\n- b\n"},
		{"scalar root", "just text"},
		{"broken syntax", "proxies: [a, b\nmode: rule"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			assert.Error(t, err)
		})
	}

	_, err := Parse("- a\n")
	assert.ErrorIs(t, err, ErrNotMapping)
}

func TestParse_KeepsOrderAndTags(t *testing.T) {
	m := mustParse(t, `
port: 7890
allow-lan: true
mode: rule
secret: "123"
ratio: 1.5
dns:
`)

	assert.Equal(t, []string{"port", "allow-lan", "mode", "secret", "ratio", "dns"}, m.Keys())
	assert.Equal(t, TagInt, scalarAt(t, m, "port").Tag)
	assert.Equal(t, TagBool, scalarAt(t, m, "allow-lan").Tag)
	assert.Equal(t, TagString, scalarAt(t, m, "mode").Tag)
	assert.Equal(t, TagString, scalarAt(t, m, "secret").Tag)
	assert.Equal(t, StyleDoubleQuoted, scalarAt(t, m, "secret").Style)
	assert.Equal(t, TagFloat, scalarAt(t, m, "ratio").Tag)
	assert.True(t, scalarAt(t, m, "dns").IsNull())
}

func TestParse_ExpandsAliases(t *testing.T) {
	m := mustParse(t, `
base: &common
  interval: 300
  lazy: true
group-a: *common
`)

	a, ok := m.Get("group-a")
	require.True(t, ok)
	am, ok := a.(*Mapping)
	require.True(t, ok)
	assert.Equal(t, []string{"interval", "lazy"}, am.Keys())

	am.Set("interval", String("600"))
	b, _ := m.Get("base")
	assert.Equal(t, "300", scalarAt(t, b.(*Mapping), "interval").Text)
}

func TestEncode_RoundTrip(t *testing.T) {
	text := `port: 7890
socks-port: 7891
mode: rule
proxies:
  - name: hk-01
    type: ss
    server: 1.2.3.4
    port: 443
    password: "123456"
    udp: true
proxy-groups:
  - name: Proxy
    type: select
    proxies: [hk-01, DIRECT]
rules:
  - DOMAIN-SUFFIX,google.com,Proxy
  - MATCH,DIRECT
`
	first := mustParse(t, text)

	out, err := Encode(first)
	require.NoError(t, err)

	second := mustParse(t, out)
	assert.True(t, Equal(first, second), "round trip changed the document:\n%s", out)
	assert.Contains(t, out, `"123456"`)
	assert.Contains(t, out, "port: 7890")
	assert.Contains(t, out, "udp: true")
}

func TestEncode_QuotesAmbiguousStrings(t *testing.T) {
	m := NewMapping()
	m.Set("version", String("1.0"))
	m.Set("enabled", String("true"))
	m.Set("empty", String(""))
	m.Set("count", &Scalar{Tag: TagInt, Text: "3"})

	out, err := Encode(m)
	require.NoError(t, err)

	back := mustParse(t, out)
	assert.Equal(t, TagString, scalarAt(t, back, "version").Tag)
	assert.Equal(t, TagString, scalarAt(t, back, "enabled").Tag)
	assert.Equal(t, TagString, scalarAt(t, back, "empty").Tag)
	assert.Equal(t, TagInt, scalarAt(t, back, "count").Tag)
}

func TestEncode_EmptyMapping(t *testing.T) {
	out, err := Encode(NewMapping())
	require.NoError(t, err)

	back := mustParse(t, out)
	assert.Equal(t, 0, back.Len())
}

func TestMergeInto(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		fragment string
		want     string
	}{
		{
			name:     "fragment scalar wins",
			base:     "port: 7890\nmode: rule\n",
			fragment: "mode: global\n",
			want:     "port: 7890\nmode: global\n",
		},
		{
			name:     "nested mappings merge",
			base:     "dns:\n  enable: false\n  ipv6: false\n",
			fragment: "dns:\n  enable: true\n  listen: 0.0.0.0:53\n",
			want:     "dns:\n  enable: true\n  ipv6: false\n  listen: 0.0.0.0:53\n",
		},
		{
			name:     "sequence replaced wholesale",
			base:     "proxies:\n  - a\n  - b\n",
			fragment: "proxies:\n  - c\n",
			want:     "proxies:\n  - c\n",
		},
		{
			name:     "shape mismatch replaces",
			base:     "dns: off\n",
			fragment: "dns:\n  enable: true\n",
			want:     "dns:\n  enable: true\n",
		},
		{
			name:     "new keys appended in fragment order",
			base:     "port: 7890\n",
			fragment: "tun:\n  enable: true\nallow-lan: true\n",
			want:     "port: 7890\ntun:\n  enable: true\nallow-lan: true\n",
		},
		{
			name:     "empty fragment is identity",
			base:     "port: 7890\nmode: rule\n",
			fragment: "",
			want:     "port: 7890\nmode: rule\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := mustParse(t, tt.base)
			fragment := mustParse(t, tt.fragment)
			want := mustParse(t, tt.want)

			MergeInto(base, fragment)

			assert.True(t, Equal(want, base), "got keys %v", base.Keys())
		})
	}
}

func TestMergeInto_LeavesFragmentUntouched(t *testing.T) {
	base := mustParse(t, "dns:\n  enable: false\n")
	fragment := mustParse(t, "dns:\n  enable: true\nproxies:\n  - a\n")
	snapshot := Clone(fragment)

	MergeInto(base, fragment)

	proxies, _ := base.Get("proxies")
	proxies.(*Sequence).Prepend(String("z"))

	assert.True(t, Equal(snapshot, fragment))
}

func TestSequencePrepend(t *testing.T) {
	seq := NewSequence(String("c"), String("d"))
	seq.Prepend(String("a"), String("b"))

	want := NewSequence(String("a"), String("b"), String("c"), String("d"))
	assert.True(t, Equal(want, seq))
}

// nestedAliases builds a document where every level repeats the previous
// anchor ten times, so levels=7 expands to ten million scalars.
func nestedAliases(levels int) string {
	var b strings.Builder
	b.WriteString("l0: &l0 [x, x, x, x, x, x, x, x, x, x]\n")
	for i := 1; i <= levels; i++ {
		prev := fmt.Sprintf("*l%d", i-1)
		fmt.Fprintf(&b, "l%d: &l%d [%s]\n", i, i, strings.TrimSuffix(strings.Repeat(prev+", ", 10), ", "))
	}
	return b.String()
}

func TestParse_RejectsAliasExpansionBeyondBudget(t *testing.T) {
	start := time.Now()
	_, err := Parse(nestedAliases(7))
	assert.ErrorIs(t, err, ErrTooManyAliases)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestParse_AllowsModestAliasReuse(t *testing.T) {
	m := mustParse(t, nestedAliases(2))
	v, ok := m.Get("l2")
	require.True(t, ok)
	assert.Len(t, v.(*Sequence).Items, 10)
}
