package pattern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/regexmark/pkg/pattern"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		flags   string
		want    pattern.Options
		wantErr bool
	}{
		{"", pattern.Options{}, false},
		{"gm", pattern.Options{Global: true, Multiline: true}, false},
		{"gimu", pattern.Options{Global: true, CaseInsensitive: true, Multiline: true, Unicode: true}, false},
		{"ug", pattern.Options{Global: true, Unicode: true}, false},
		{"gg", pattern.Options{}, true},
		{"s", pattern.Options{}, true},
		{"g m", pattern.Options{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.flags, func(t *testing.T) {
			t.Parallel()

			got, err := pattern.ParseFlags(tc.flags)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, pattern.IsPatternError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFlags_RoundTrip(t *testing.T) {
	t.Parallel()

	canonical := []string{
		"", "g", "i", "m", "u",
		"gi", "gm", "gu", "im", "iu", "mu",
		"gim", "giu", "gmu", "imu",
		"gimu",
	}

	for _, flags := range canonical {
		opts, err := pattern.ParseFlags(flags)
		require.NoError(t, err, flags)
		assert.Equal(t, flags, opts.String())
	}
}

func TestCanonicalFlags(t *testing.T) {
	t.Parallel()

	got, err := pattern.CanonicalFlags("umig")
	require.NoError(t, err)
	assert.Equal(t, "gimu", got)

	assert.Equal(t, pattern.DefaultFlags, pattern.DefaultOptions().String())
}
