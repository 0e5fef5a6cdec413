package anim2d

// Smooth cubic Bézier splines through a sequence of knots. Control points
// P1[i], P2[i] of segment i (knot i to knot i+1) are chosen so the first and
// second derivatives match at every interior knot:
//
//	P1[i-1] + 4*P1[i] + P1[i+1] = 4*K[i] + 2*K[i+1]
//	P2[i] = 2*K[i+1] - P1[i+1]
//
// Open splines have a vanishing second derivative at each end unless the
// first or last control point is given explicitly.

// splineControls returns the inner control points for an open spline
// through knots. c1 and c2, when non-nil, fix the first segment's first
// control point and the last segment's second control point.
func splineControls(knots []Vec2, c1, c2 *Vec2) (p1, p2 []Vec2) {
	n := len(knots) - 1
	p1 = make([]Vec2, n)
	p2 = make([]Vec2, n)
	if n == 1 {
		k0, k1 := knots[0], knots[1]
		switch {
		case c1 != nil && c2 != nil:
			p1[0], p2[0] = *c1, *c2
		case c1 != nil:
			p1[0] = *c1
			p2[0] = Vec2{(k1.X + c1.X) / 2, (k1.Y + c1.Y) / 2}
		case c2 != nil:
			p2[0] = *c2
			p1[0] = Vec2{(k0.X + c2.X) / 2, (k0.Y + c2.Y) / 2}
		default:
			p1[0] = Vec2{k0.X + (k1.X-k0.X)/3, k0.Y + (k1.Y-k0.Y)/3}
			p2[0] = Vec2{k0.X + 2*(k1.X-k0.X)/3, k0.Y + 2*(k1.Y-k0.Y)/3}
		}
		return p1, p2
	}

	a := make([]float64, n)
	b := make([]float64, n)
	c := make([]float64, n)
	rx := make([]float64, n)
	ry := make([]float64, n)
	for i := 1; i < n-1; i++ {
		a[i], b[i], c[i] = 1, 4, 1
		rx[i] = 4*knots[i].X + 2*knots[i+1].X
		ry[i] = 4*knots[i].Y + 2*knots[i+1].Y
	}
	if c1 != nil {
		b[0], c[0] = 1, 0
		rx[0], ry[0] = c1.X, c1.Y
	} else {
		b[0], c[0] = 2, 1
		rx[0] = knots[0].X + 2*knots[1].X
		ry[0] = knots[0].Y + 2*knots[1].Y
	}
	last := n - 1
	if c2 != nil {
		a[last], b[last] = 1, 4
		rx[last] = 4*knots[last].X + c2.X
		ry[last] = 4*knots[last].Y + c2.Y
	} else {
		a[last], b[last] = 2, 7
		rx[last] = 8*knots[last].X + knots[n].X
		ry[last] = 8*knots[last].Y + knots[n].Y
	}

	xs := solveTridiagonal(a, b, c, rx)
	ys := solveTridiagonal(a, b, c, ry)
	for i := range p1 {
		p1[i] = Vec2{xs[i], ys[i]}
	}
	for i := 0; i < last; i++ {
		p2[i] = Vec2{2*knots[i+1].X - xs[i+1], 2*knots[i+1].Y - ys[i+1]}
	}
	if c2 != nil {
		p2[last] = *c2
	} else {
		p2[last] = Vec2{(knots[n].X + xs[last]) / 2, (knots[n].Y + ys[last]) / 2}
	}
	return p1, p2
}

// cyclicControls returns the inner control points of a closed spline through
// knots; segment i runs from knot i to knot (i+1) mod n.
func cyclicControls(knots []Vec2) (p1, p2 []Vec2) {
	n := len(knots)
	rx := make([]float64, n)
	ry := make([]float64, n)
	for i := range knots {
		next := knots[(i+1)%n]
		rx[i] = 4*knots[i].X + 2*next.X
		ry[i] = 4*knots[i].Y + 2*next.Y
	}
	xs := solveCyclic(rx)
	ys := solveCyclic(ry)
	p1 = make([]Vec2, n)
	p2 = make([]Vec2, n)
	for i := range knots {
		j := (i + 1) % n
		p1[i] = Vec2{xs[i], ys[i]}
		p2[i] = Vec2{2*knots[j].X - xs[j], 2*knots[j].Y - ys[j]}
	}
	return p1, p2
}

// solveTridiagonal solves a tridiagonal system with sub-diagonal a,
// diagonal b and super-diagonal c (Thomas algorithm).
func solveTridiagonal(a, b, c, r []float64) []float64 {
	n := len(r)
	cp := make([]float64, n)
	x := make([]float64, n)
	m := b[0]
	cp[0] = c[0] / m
	x[0] = r[0] / m
	for i := 1; i < n; i++ {
		m = b[i] - a[i]*cp[i-1]
		cp[i] = c[i] / m
		x[i] = (r[i] - a[i]*x[i-1]) / m
	}
	for i := n - 2; i >= 0; i-- {
		x[i] -= cp[i] * x[i+1]
	}
	return x
}

// solveCyclic solves the cyclic system with rows
// x[i-1] + 4*x[i] + x[i+1] = r[i] (indices mod n) using Sherman-Morrison.
func solveCyclic(r []float64) []float64 {
	n := len(r)
	switch n {
	case 1:
		return []float64{r[0] / 6}
	case 2:
		return []float64{(4*r[0] - 2*r[1]) / 12, (4*r[1] - 2*r[0]) / 12}
	}
	const alpha, beta = 1.0, 1.0
	a := make([]float64, n)
	b := make([]float64, n)
	c := make([]float64, n)
	for i := range b {
		a[i], b[i], c[i] = 1, 4, 1
	}
	gamma := -b[0]
	b[0] -= gamma
	b[n-1] -= alpha * beta / gamma
	x := solveTridiagonal(a, b, c, r)
	u := make([]float64, n)
	u[0], u[n-1] = gamma, alpha
	z := solveTridiagonal(a, b, c, u)
	fact := (x[0] + beta*x[n-1]/gamma) / (1 + z[0] + beta*z[n-1]/gamma)
	for i := range x {
		x[i] -= fact * z[i]
	}
	return x
}
