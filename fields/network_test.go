package fields_test

import (
	"net/netip"
	"testing"

	"github.com/rowfold/rowfold/fields"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIPAddress_ProtocolRestriction(t *testing.T) {
	v4only, err := fields.NewIPAddress("addr", fields.ProtocolIPv4, fields.UnpackSame, fields.Options{})
	require.NoError(t, err)

	assert.NoError(t, fields.Validate(v4only, "192.168.0.1"))
	assert.NoError(t, fields.Validate(v4only, "10.0.0.0/24"))
	assert.NoError(t, fields.Validate(v4only, netip.MustParseAddr("127.0.0.1")))

	err = fields.Validate(v4only, "2001:db8::1")
	require.Error(t, err)
	assert.True(t, fields.IsValidation(err))

	v6only, err := fields.NewIPAddress("addr", fields.ProtocolIPv6, fields.UnpackSame, fields.Options{})
	require.NoError(t, err)

	assert.NoError(t, fields.Validate(v6only, "2001:db8::1"))
	assert.Error(t, fields.Validate(v6only, "192.168.0.1"))
}

func TestIPAddress_RejectsGarbage(t *testing.T) {
	f, err := fields.NewIPAddress("addr", fields.ProtocolBoth, fields.UnpackSame, fields.Options{})
	require.NoError(t, err)

	assert.Error(t, fields.Validate(f, "not an address"))
	assert.Error(t, fields.Validate(f, "300.1.1.1"))
	assert.Error(t, fields.Validate(f, 42))
}

func TestIPAddress_UnpackToV4(t *testing.T) {
	f, err := fields.NewIPAddress("addr", fields.ProtocolBoth, fields.UnpackIPv4, fields.Options{})
	require.NoError(t, err)

	out, err := fields.Recompose(f, "::ffff:10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1", out)

	out, err = fields.Recompose(f, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1", out)

	_, err = fields.Recompose(f, "2001:db8::1")
	require.Error(t, err)
	assert.True(t, fields.IsValidation(err))
}

func TestIPAddress_UnpackToV6(t *testing.T) {
	f, err := fields.NewIPAddress("addr", fields.ProtocolBoth, fields.UnpackIPv6, fields.Options{})
	require.NoError(t, err)

	out, err := fields.Recompose(f, "1.2.3.4")
	require.NoError(t, err)
	assert.Equal(t, "::ffff:1.2.3.4", out)

	out, err = fields.Recompose(f, "10.0.0.0/24")
	require.NoError(t, err)
	assert.Equal(t, "::ffff:10.0.0.0/120", out)

	out, err = fields.Recompose(f, "2001:db8::1")
	require.NoError(t, err)
	assert.Equal(t, "2001:db8::1", out)
}

func TestIPAddress_SerializeAppliesUnpack(t *testing.T) {
	f, err := fields.NewIPAddress("addr", fields.ProtocolBoth, fields.UnpackIPv6, fields.Options{})
	require.NoError(t, err)

	out, err := fields.SerializeData(f, "1.2.3.4")
	require.NoError(t, err)
	assert.Equal(t, "::ffff:1.2.3.4", out)
}

func TestMacAddr_AcceptedForms(t *testing.T) {
	f, err := fields.NewMacAddr("nic", fields.MacUnix, fields.Options{})
	require.NoError(t, err)

	for _, v := range []string{
		"0a:1b:3c:4d:5e:6f",
		"0a-1b-3c-4d-5e-6f",
		"0a1b.3c4d.5e6f",
		"0a1b3c4d5e6f",
	} {
		assert.NoError(t, fields.Validate(f, v), v)
	}

	assert.Error(t, fields.Validate(f, "not a mac"))
	assert.Error(t, fields.Validate(f, "01:02:03:04:05:06:07:08"))
}

func TestMacAddr_DialectRenderings(t *testing.T) {
	const stored = "0a:1b:3c:4d:5e:6f"

	tests := []struct {
		dialect fields.MacDialect
		want    string
	}{
		{fields.MacBare, "0A1B3C4D5E6F"},
		{fields.MacCisco, "0a1b.3c4d.5e6f"},
		{fields.MacEUI48, "0A-1B-3C-4D-5E-6F"},
		{fields.MacPgSQL, "0a1b3c:4d5e6f"},
		{fields.MacUnix, "a:1b:3c:4d:5e:6f"},
		{fields.MacUnixExpanded, "0a:1b:3c:4d:5e:6f"},
	}

	for _, tt := range tests {
		t.Run(string(tt.dialect), func(t *testing.T) {
			f, err := fields.NewMacAddr("nic", tt.dialect, fields.Options{})
			require.NoError(t, err)

			out, err := fields.Recompose(f, stored)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestMacAddr_SanitizeCanonicalizes(t *testing.T) {
	f, err := fields.NewMacAddr("nic", fields.MacUnix, fields.Options{})
	require.NoError(t, err)

	payload, err := fields.SanitizeData(f, "0A-1B-3C-4D-5E-6F")
	require.NoError(t, err)
	assert.Equal(t, "0a:1b:3c:4d:5e:6f", payload)
}
