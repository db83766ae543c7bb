package engine

import (
	"strconv"
	"strings"

	"github.com/campusweb/mediagate/model"
)

// ipToLong converts a dotted IPv4 string to its positional-weight integer
// (octet0*2^24 + octet1*2^16 + octet2*2^8 + octet3). The second return is
// false for anything that is not four in-range octets; a malformed address
// never matches any interval.
func ipToLong(ip string) (uint32, bool) {
	parts := strings.Split(ip, ".")
	if len(parts) != 4 {
		return 0, false
	}

	var long uint32
	for _, part := range parts {
		octet, err := strconv.Atoi(part)
		if err != nil || octet < 0 || octet > 255 {
			return 0, false
		}
		long = long<<8 | uint32(octet)
	}
	return long, true
}

// ContainsIP reports whether ip falls inside any interval of the named
// ranges. Intervals are inclusive at both ends. Range names absent from the
// table contribute nothing; an empty name set never matches.
func ContainsIP(table model.NetworkRangeTable, rangeNames []string, ip string) bool {
	ipLong, ok := ipToLong(ip)
	if !ok {
		return false
	}

	for _, name := range rangeNames {
		for _, interval := range table[name] {
			start, okStart := ipToLong(interval.Start)
			end, okEnd := ipToLong(interval.End)
			if !okStart || !okEnd {
				continue
			}
			if start <= ipLong && ipLong <= end {
				return true
			}
		}
	}
	return false
}
