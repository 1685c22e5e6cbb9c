package weft

import "math"

// UnitKind identifies how a Unit's value is interpreted.
type UnitKind uint8

const (
	// UnitAuto sizes from content. It is the zero value, so an unset
	// dimension is content-sized.
	UnitAuto UnitKind = iota
	// UnitCells is an absolute cell count.
	UnitCells
	// UnitPercent is a fraction of the reference dimension.
	UnitPercent
	// UnitVW is a fraction of the viewport width.
	UnitVW
	// UnitVH is a fraction of the viewport height.
	UnitVH
	// UnitCh is a count of character cells. On a character grid it is
	// equivalent to UnitCells; it exists so size expressions written in
	// ch terms keep their meaning.
	UnitCh
	// UnitFr is a fractional share of leftover space. Only grid track
	// sizing gives fr meaning; everywhere else it resolves to 0.
	UnitFr
)

// Unit is a responsive size expression: a kind plus a magnitude. Units are
// resolved to concrete cell counts against a reference dimension and the
// viewport.
type Unit struct {
	Kind  UnitKind
	Value float64
}

// Cells returns an absolute size in cells.
func Cells(n int) Unit { return Unit{Kind: UnitCells, Value: float64(n)} }

// Pct returns a percentage of the reference dimension (Pct(50) = half).
func Pct(p float64) Unit { return Unit{Kind: UnitPercent, Value: p} }

// VW returns a percentage of the viewport width.
func VW(p float64) Unit { return Unit{Kind: UnitVW, Value: p} }

// VH returns a percentage of the viewport height.
func VH(p float64) Unit { return Unit{Kind: UnitVH, Value: p} }

// Ch returns a size in character cells.
func Ch(n int) Unit { return Unit{Kind: UnitCh, Value: float64(n)} }

// Fr returns a fractional share for grid track sizing.
func Fr(f float64) Unit { return Unit{Kind: UnitFr, Value: f} }

// Auto returns the content-sized unit.
func Auto() Unit { return Unit{} }

// IsAuto reports whether the unit is content-sized.
func (u Unit) IsAuto() bool { return u.Kind == UnitAuto }

// resolvable reports whether the unit can produce a value against the given
// reference. Percentages need a definite reference; auto and fr never
// resolve on their own.
func (u Unit) resolvable(ref int) bool {
	switch u.Kind {
	case UnitPercent:
		return ref >= 0
	case UnitAuto, UnitFr:
		return false
	default:
		return true
	}
}

// Resolve converts the unit to a concrete cell count. ref is the dimension
// the unit resolves against on its own axis; a negative ref marks it
// indefinite, which makes percentages unresolvable. Fractional results
// round to nearest with ties away from zero, then clamp into [0, ref] when
// ref is definite. The result is never negative; unresolvable units (and
// auto and fr) resolve to 0, which callers treat as content-sized.
func (u Unit) Resolve(ref int, vp Size) int {
	var v float64
	switch u.Kind {
	case UnitCells, UnitCh:
		v = u.Value
	case UnitPercent:
		if ref < 0 {
			return 0
		}
		v = u.Value / 100 * float64(ref)
	case UnitVW:
		v = u.Value / 100 * float64(vp.W)
	case UnitVH:
		v = u.Value / 100 * float64(vp.H)
	default:
		return 0
	}
	if math.IsNaN(v) {
		return 0
	}
	n := int(math.Round(v))
	if n < 0 {
		n = 0
	}
	if ref >= 0 && n > ref {
		n = ref
	}
	return n
}
