package core

import (
	"strconv"
	"strings"
	"time"
)

// EntryName builds the bin entry name for a base name recycled at the given unix second
func EntryName(base string, secs int64) string {
	return base + "." + strconv.FormatInt(secs, 10)
}

// ParseEntryName splits a bin entry name into its original base name and the
// relocation timestamp. ok is false when the name carries no numeric suffix,
// which means the entry is not managed by rsycle.
func ParseEntryName(name string) (base string, secs int64, ok bool) {
	i := strings.LastIndexByte(name, '.')
	if i < 0 || i == len(name)-1 {
		return "", 0, false
	}
	suffix := name[i+1:]
	for _, r := range suffix {
		if r < '0' || r > '9' {
			return "", 0, false
		}
	}
	secs, err := strconv.ParseInt(suffix, 10, 64)
	if err != nil {
		return "", 0, false
	}
	return name[:i], secs, true
}

// EntryTime converts an entry timestamp into local time
func EntryTime(secs int64) time.Time {
	return time.Unix(secs, 0)
}
