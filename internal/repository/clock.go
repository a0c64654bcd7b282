package repository

import "time"

// Clock supplies the current time to a store. Constructors accept a
// Clock so tests can pin timestamps; pass nil to use UTCNow.
type Clock func() time.Time

// UTCNow is the default Clock. Times are truncated to whole seconds
// because the freshness watermark is exchanged with clients through
// RFC 1123 headers, which carry no sub-second precision.
func UTCNow() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
