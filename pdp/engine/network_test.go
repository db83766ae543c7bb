package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campusweb/mediagate/model"
)

func TestIPToLong(t *testing.T) {
	tests := []struct {
		ip   string
		want uint32
		ok   bool
	}{
		{"0.0.0.0", 0, true},
		{"0.0.0.1", 1, true},
		{"128.197.30.30", 128<<24 | 197<<16 | 30<<8 | 30, true},
		{"255.255.255.255", 4294967295, true},
		{"256.0.0.1", 0, false},
		{"1.2.3", 0, false},
		{"1.2.3.4.5", 0, false},
		{"a.b.c.d", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := ipToLong(tt.ip)
		assert.Equal(t, tt.ok, ok, "ok for %q", tt.ip)
		if tt.ok {
			assert.Equal(t, tt.want, got, "value for %q", tt.ip)
		}
	}
}

func TestContainsIP_InclusiveBoundaries(t *testing.T) {
	table := model.NetworkRangeTable{
		"campus": {
			{Start: "128.197.0.0", End: "128.197.255.255"},
		},
	}
	names := []string{"campus"}

	assert.True(t, ContainsIP(table, names, "128.197.0.0"), "start boundary is a match")
	assert.True(t, ContainsIP(table, names, "128.197.255.255"), "end boundary is a match")
	assert.True(t, ContainsIP(table, names, "128.197.30.30"))
	assert.False(t, ContainsIP(table, names, "128.196.255.255"), "below start")
	assert.False(t, ContainsIP(table, names, "128.198.0.0"), "above end")
}

func TestContainsIP_SecondIntervalOfRange(t *testing.T) {
	table := model.NetworkRangeTable{
		"vpn": {
			{Start: "10.0.0.0", End: "10.0.0.255"},
			{Start: "10.9.0.0", End: "10.9.255.255"},
		},
	}

	assert.True(t, ContainsIP(table, []string{"vpn"}, "10.9.12.34"))
	assert.False(t, ContainsIP(table, []string{"vpn"}, "10.1.0.0"))
}

func TestContainsIP_UnknownRangeNameIgnored(t *testing.T) {
	table := model.NetworkRangeTable{
		"campus": {{Start: "128.197.0.0", End: "128.197.255.255"}},
	}

	assert.True(t, ContainsIP(table, []string{"no-such-range", "campus"}, "128.197.1.1"))
	assert.False(t, ContainsIP(table, []string{"no-such-range"}, "128.197.1.1"))
}

func TestContainsIP_EmptyNamesNeverMatch(t *testing.T) {
	table := model.NetworkRangeTable{
		"campus": {{Start: "0.0.0.0", End: "255.255.255.255"}},
	}

	assert.False(t, ContainsIP(table, nil, "128.197.1.1"))
}

func TestContainsIP_MalformedInputs(t *testing.T) {
	table := model.NetworkRangeTable{
		"campus":  {{Start: "128.197.0.0", End: "128.197.255.255"}},
		"garbage": {{Start: "not-an-ip", End: "also-not"}},
	}

	assert.False(t, ContainsIP(table, []string{"campus"}, "not-an-ip"))
	assert.False(t, ContainsIP(table, []string{"garbage"}, "128.197.1.1"))
}
