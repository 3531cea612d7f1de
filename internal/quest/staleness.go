package quest

import "strings"

// CacheDecision is the outcome of comparing a cached document against
// the currently available key set.
type CacheDecision struct {
	Stale          bool
	AvailableParts int
	CachedParts    int
}

// StalenessOf decides whether a cached assembled document is missing
// parts that have since unlocked. The cached part count is inferred
// from the part banners embedded in the document; the full banner
// (rule line plus label) is matched so that narrative text mentioning
// "PART 2" does not count. A cache holding as many or more parts than
// the key set reports is never stale, which keeps a transient key
// lookup shortfall from looking like a downgrade.
func StalenessOf(cachedDocument string, keys KeySet) CacheDecision {
	cached := 1
	for _, n := range []int{2, 3} {
		if strings.Contains(cachedDocument, partBanner(n)) {
			cached++
		}
	}

	available := keys.AvailableParts()
	return CacheDecision{
		Stale:          cached < available,
		AvailableParts: available,
		CachedParts:    cached,
	}
}
