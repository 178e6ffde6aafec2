package component

// ChargeComponent governs pairwise Coulomb interaction
// Same-signed charges repel, opposite-signed attract
type ChargeComponent struct {
	Magnitude float64
}
