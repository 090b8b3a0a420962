package prefix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	for _, tcase := range []*struct {
		Text   string
		ExpStr string
		ExpLen int
		ExpErr error
	}{
		{"10.10.11.1", "10.10.11.1/32", 32, nil},
		{"10.10.11.0/24", "10.10.11.0/24", 24, nil},
		{"10.10.11.7/24", "10.10.11.0/24", 24, nil},
		{"0.0.0.0/0", "0.0.0.0/0", 0, nil},
		{"10.0.0.0/255.255.0.0", "10.0.0.0/16", 16, nil},
		{"10.0.0.0/255.255.255.255", "10.0.0.0/32", 32, nil},
		{"10.0.0.0/0.0.0.0", "0.0.0.0/0", 0, nil},
		{"2001:db8::1", "2001:db8::1/128", 128, nil},
		{"2001:db8::/32", "2001:db8::/32", 32, nil},
		{"::/0", "::/0", 0, nil},
		{"10.11.12.300/24", "", 0, ErrInvalidAddress},
		{"10.11.12.0/33", "", 0, ErrInvalidLength},
		{"10.11.12.0/-1", "", 0, ErrInvalidLength},
		{"10.11.12.0/+8", "", 0, ErrInvalidLength},
		{"10.11.12.0/", "", 0, ErrInvalidLength},
		{"10.11.12.0/abc", "", 0, ErrInvalidLength},
		{"10.0.0.0/255.0.255.0", "", 0, ErrInvalidLength},
		{"10.0.0.0/255.255.0.300", "", 0, ErrInvalidLength},
		{"2001:db8::/129", "", 0, ErrInvalidLength},
		{"2001:db8::/255.0.0.0", "", 0, ErrInvalidLength},
		{"fe80::1%eth0/64", "", 0, ErrInvalidAddress},
		{"", "", 0, ErrInvalidAddress},
		{"/24", "", 0, ErrInvalidAddress},
		{"example.com/24", "", 0, ErrInvalidAddress},
	} {
		tcase := tcase

		t.Run(tcase.Text, func(t *testing.T) {
			p, err := Parse(tcase.Text)

			if tcase.ExpErr != nil {
				assert.ErrorIs(t, err, tcase.ExpErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tcase.ExpStr, p.String())
			assert.Equal(t, tcase.ExpLen, p.Len())
		})
	}
}

func TestParseFamily(t *testing.T) {
	t.Parallel()

	p, err := ParseFamily(IPv4, "192.168.0.0/16")
	require.NoError(t, err)
	assert.Equal(t, IPv4, p.Family())

	_, err = ParseFamily(IPv4, "2001:db8::/32")
	assert.ErrorIs(t, err, ErrInvalidAddress)

	_, err = ParseFamily(IPv6, "192.168.0.0/16")
	assert.ErrorIs(t, err, ErrInvalidAddress)

	p, err = ParseFamily(IPv6, "::ffff:192.168.0.0/112")
	require.NoError(t, err)
	assert.Equal(t, IPv6, p.Family())
	assert.Equal(t, 112, p.Len())
}

func TestParse_ErrorMessage(t *testing.T) {
	t.Parallel()

	_, err := Parse("10.11.12.300/24")
	assert.EqualError(t, err, `"10.11.12.300": invalid address`)

	_, err = Parse("10.11.12.0/33")
	assert.EqualError(t, err, `"33" for IPv4: invalid prefix length`)
}

func TestMustParse(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() { MustParse("10.0.0.0/8") })
	assert.Panics(t, func() { MustParse("10.0.0.0/88") })
}

func TestParse_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"10.10.10.0/24", "172.16.0.0/12", "2001:db8:1::/48", "::1/128"} {
		p := MustParse(s)
		q := MustParse(p.String())

		assert.Equal(t, p, q)
	}
}
