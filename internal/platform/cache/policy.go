package cache

import "time"

// Class groups cached operations that share a freshness requirement.
type Class string

const (
	// ClassCatalog covers near-static reference data such as the league list.
	ClassCatalog Class = "catalog"
	// ClassSchedule covers per-date game lists and per-game quarter lines.
	ClassSchedule Class = "schedule"
	// ClassAggregate covers per-team derived results.
	ClassAggregate Class = "aggregate"
)

// TTLPolicy maps each class to how long its entries stay fresh. A class with a
// non-positive TTL is never stored.
type TTLPolicy map[Class]time.Duration

func DefaultTTLPolicy() TTLPolicy {
	return TTLPolicy{
		ClassCatalog:   time.Hour,
		ClassSchedule:  60 * time.Second,
		ClassAggregate: 5 * time.Minute,
	}
}

func (p TTLPolicy) TTL(class Class) time.Duration {
	if p == nil {
		return 0
	}
	return p[class]
}
