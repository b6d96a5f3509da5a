package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePageRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    PageRange
		wantErr bool
	}{
		{in: "all", want: All()},
		{in: "0", want: Single(0)},
		{in: "7", want: Single(7)},
		{in: "2-5", want: Range(2, 5)},
		{in: "5-2", want: Range(5, 2)},
		{in: "0--4", want: Range(0, -4)},
		{in: "-3", wantErr: true},
		{in: "", wantErr: true},
		{in: "ALL", wantErr: true},
		{in: "1-", wantErr: true},
		{in: "1-2-3", wantErr: true},
		{in: "x", wantErr: true},
		{in: "99999999999999999999", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParsePageRange(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidPageRange)
				require.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSortOrder(t *testing.T) {
	t.Parallel()

	o, err := ParseSortOrder("asc")
	require.NoError(t, err)
	assert.Equal(t, Asc, o)

	o, err = ParseSortOrder("desc")
	require.NoError(t, err)
	assert.Equal(t, Desc, o)

	for _, bad := range []string{"ASC", "Desc", "", "ascending"} {
		_, err := ParseSortOrder(bad)
		require.ErrorIs(t, err, ErrInvalidSortOrder, bad)
	}
}

func TestParsePageSpec(t *testing.T) {
	t.Parallel()

	spec, err := ParsePageSpec(url.Values{"range": {"1-2"}, "items": {"10"}, "sort": {"name"}, "order": {"desc"}})
	require.NoError(t, err)
	assert.Equal(t, Range(1, 2), spec.Range)
	require.NotNil(t, spec.Items)
	assert.Equal(t, int64(10), *spec.Items)
	require.NotNil(t, spec.Sort)
	assert.Equal(t, "name", *spec.Sort)
	require.NotNil(t, spec.Order)
	assert.Equal(t, Desc, *spec.Order)

	spec, err = ParsePageSpec(url.Values{"range": {"all"}})
	require.NoError(t, err)
	assert.Nil(t, spec.Items)
	assert.Nil(t, spec.Sort)
	assert.Nil(t, spec.Order)
}

func TestParsePageSpec_ItemsFallback(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "abc", "-5", "1.5"} {
		spec, err := ParsePageSpec(url.Values{"range": {"0"}, "items": {raw}})
		require.NoError(t, err)
		require.NotNil(t, spec.Items, raw)
		assert.Equal(t, DefaultItemCount, *spec.Items, raw)
	}
}

func TestParsePageSpec_Errors(t *testing.T) {
	t.Parallel()

	_, err := ParsePageSpec(url.Values{})
	require.ErrorIs(t, err, ErrInvalidPageRange)

	_, err = ParsePageSpec(url.Values{"range": {"0"}, "order": {"up"}})
	require.ErrorIs(t, err, ErrInvalidSortOrder)
}
