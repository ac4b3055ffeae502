package route

// sFamilyBends is the control point count from which a candidate belongs
// to the S-path family.
const sFamilyBends = 4

// Select picks the winning candidate:
//
//  1. no candidates: the raw straight line, collisions ignored
//  2. the first candidate without control points (a clear direct line)
//  3. the shortest S-family candidate (four or more control points)
//  4. the shortest of the rest
//
// Ties go to the earlier candidate. The second result reports whether the
// winner is the unconditional fallback.
func Select(candidates []Path, from, to Point) (Path, bool) {
	if len(candidates) == 0 {
		p := polyline(StrategyFallback, from, to)
		return p, true
	}

	for _, c := range candidates {
		if len(c.ControlPoints) == 0 {
			return c, false
		}
	}

	var sFamily []Path
	for _, c := range candidates {
		if len(c.ControlPoints) >= sFamilyBends {
			sFamily = append(sFamily, c)
		}
	}
	if len(sFamily) > 0 {
		return shortest(sFamily), false
	}

	return shortest(candidates), false
}

func shortest(paths []Path) Path {
	best := paths[0]
	for _, p := range paths[1:] {
		if p.Length < best.Length {
			best = p
		}
	}
	return best
}
