package options

import (
	"errors"
	"testing"

	"github.com/arc-language/spralpkg/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestNormalize_Defaults(t *testing.T) {
	o := Defaults()

	assert.False(t, o.Shared())
	fpic, ok := o.FPIC()
	assert.True(t, ok)
	assert.True(t, fpic)
	assert.True(t, o.WithOpenMP())
	assert.False(t, o.With64BitInt())
}

func TestNormalize_SharedDropsFPIC(t *testing.T) {
	tests := []struct {
		name string
		raw  Raw
	}{
		{name: "shared only", raw: Raw{Shared: boolPtr(true)}},
		{name: "shared with explicit fPIC", raw: Raw{Shared: boolPtr(true), FPIC: boolPtr(true)}},
		{name: "shared with fPIC off", raw: Raw{Shared: boolPtr(true), FPIC: boolPtr(false)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Normalize(tt.raw)

			_, ok := o.FPIC()
			assert.False(t, ok)
			assert.False(t, o.Has(FPIC))
			assert.NotContains(t, o.Values(), string(FPIC))
			assert.NotContains(t, o.String(), "fPIC")
		})
	}
}

func TestNormalize_StaticKeepsFPIC(t *testing.T) {
	o := Normalize(Raw{Shared: boolPtr(false), FPIC: boolPtr(false)})

	fpic, ok := o.FPIC()
	require.True(t, ok)
	assert.False(t, fpic)
	assert.Equal(t, "False", o.Values()["fPIC"])
}

func TestOptionSet_String(t *testing.T) {
	o := Normalize(Raw{With64BitInt: boolPtr(true)})
	assert.Equal(t, "fPIC=True shared=False with_64bit_int=True with_openmp=True", o.String())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]string
		wantErr bool
		check   func(t *testing.T, raw Raw)
	}{
		{
			name:   "plain names",
			values: map[string]string{"shared": "True", "with_openmp": "false"},
			check: func(t *testing.T, raw Raw) {
				require.NotNil(t, raw.Shared)
				assert.True(t, *raw.Shared)
				require.NotNil(t, raw.WithOpenMP)
				assert.False(t, *raw.WithOpenMP)
				assert.Nil(t, raw.FPIC)
			},
		},
		{
			name:   "scoped names",
			values: map[string]string{"spral/*:with_64bit_int": "1", "*:fPIC": "off"},
			check: func(t *testing.T, raw Raw) {
				require.NotNil(t, raw.With64BitInt)
				assert.True(t, *raw.With64BitInt)
				require.NotNil(t, raw.FPIC)
				assert.False(t, *raw.FPIC)
			},
		},
		{name: "unknown option", values: map[string]string{"cuda": "True"}, wantErr: true},
		{name: "illegal value", values: map[string]string{"shared": "maybe"}, wantErr: true},
		{name: "other package scope", values: map[string]string{"metis/*:shared": "True"}, wantErr: true},
		{name: "same option plain and scoped", values: map[string]string{"shared": "True", "spral:shared": "False"}, wantErr: true},
		{name: "same option under two scopes", values: map[string]string{"*:fPIC": "True", "spral/*:fPIC": "True"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := Parse(tt.values)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, core.ErrInvalidOption))
				return
			}
			require.NoError(t, err)
			tt.check(t, raw)
		})
	}
}

func TestParseAssignments(t *testing.T) {
	values, err := ParseAssignments([]string{"shared=True", " with_openmp = False "})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"shared": "True", "with_openmp": "False"}, values)

	_, err = ParseAssignments([]string{"shared"})
	assert.ErrorIs(t, err, core.ErrInvalidOption)
}

func TestLookup(t *testing.T) {
	d, ok := Lookup("with_64bit_int")
	require.True(t, ok)
	assert.False(t, d.Default)
	assert.Equal(t, []string{"True", "False"}, d.Values())

	_, ok = Lookup("gpu")
	assert.False(t, ok)
}
