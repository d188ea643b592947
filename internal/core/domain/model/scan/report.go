package scan

// Report is the result of reconciling scanned quantities against an order's
// required quantities for one direction. It is derived on demand and never
// cached: scan events are append-only, so Scanned can only grow and a
// satisfied gate can never become unsatisfied.
type Report struct {
	Direction Direction
	Required  int
	Scanned   int
}

// Satisfied reports whether scanned units cover the required total.
func (r Report) Satisfied() bool {
	return r.Scanned >= r.Required
}

// OverScanned reports whether more units were scanned than required.
// Over-scanning does not block the gate; it is exposed for audit.
func (r Report) OverScanned() bool {
	return r.Scanned > r.Required
}

// Shortfall returns how many units are still missing, or 0 when satisfied.
func (r Report) Shortfall() int {
	if r.Scanned >= r.Required {
		return 0
	}
	return r.Required - r.Scanned
}
