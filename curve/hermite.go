package curve

// Hermite evaluates the cubic Hermite segment between p0 and p1 at local
// parameter u in [0,1]. m0 and m1 are the outgoing/incoming tangents
// expressed as value-per-second slopes; dt is the segment duration used to
// scale them into the unit parameter space.
func Hermite(p0, m0, p1, m1, dt, u float64) float64 {
	u2 := u * u
	u3 := u2 * u
	h00 := 2*u3 - 3*u2 + 1
	h10 := u3 - 2*u2 + u
	h01 := -2*u3 + 3*u2
	h11 := u3 - u2
	return h00*p0 + h10*dt*m0 + h01*p1 + h11*dt*m1
}
