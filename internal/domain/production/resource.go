package production

import "fmt"

// Resource identifies one of the four materials a factory can stockpile.
// Each machine type produces exactly one resource, so Resource also names
// the machine types.
type Resource int

const (
	Ore Resource = iota
	Clay
	Obsidian
	Geode
)

// ResourceCount is the size of the resource enumeration
const ResourceCount = 4

// Terminal is the resource the search maximizes
const Terminal = Geode

// String returns the lowercase resource name used in blueprint text
func (r Resource) String() string {
	switch r {
	case Ore:
		return "ore"
	case Clay:
		return "clay"
	case Obsidian:
		return "obsidian"
	case Geode:
		return "geode"
	default:
		return fmt.Sprintf("resource(%d)", int(r))
	}
}

// IsValid reports whether r is a member of the enumeration
func (r Resource) IsValid() bool {
	return r >= Ore && r <= Geode
}

// AllResources returns every resource in enumeration order
func AllResources() []Resource {
	return []Resource{Ore, Clay, Obsidian, Geode}
}

// ParseResource converts a resource name into a Resource
func ParseResource(s string) (Resource, error) {
	for _, r := range AllResources() {
		if r.String() == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown resource: %q", s)
}

// Amounts holds one quantity per resource, indexed by Resource.
// It is used for stockpiles, machine counts and recipe costs alike.
type Amounts [ResourceCount]uint64

// Covers reports whether every quantity in a is at least the one in cost
func (a Amounts) Covers(cost Amounts) bool {
	for i := range a {
		if a[i] < cost[i] {
			return false
		}
	}
	return true
}

// Plus returns the element-wise sum
func (a Amounts) Plus(b Amounts) Amounts {
	for i := range a {
		a[i] += b[i]
	}
	return a
}

// Minus returns the element-wise difference. Callers must check Covers
// first; Minus does not guard against underflow.
func (a Amounts) Minus(b Amounts) Amounts {
	for i := range a {
		a[i] -= b[i]
	}
	return a
}

// Get returns the quantity held for r
func (a Amounts) Get(r Resource) uint64 {
	return a[r]
}

func (a Amounts) String() string {
	return fmt.Sprintf("ore=%d clay=%d obsidian=%d geode=%d",
		a[Ore], a[Clay], a[Obsidian], a[Geode])
}
