package canvas

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// line walks the cells between a and b (Bresenham).
func line(a, b Point, plot func(Point)) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}

	err := dx + dy
	x, y := a.X, a.Y
	for {
		plot(Point{X: x, Y: y})
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// rect plots the outline of the rectangle spanned by two corners.
func rect(a, b Point, plot func(Point)) {
	minX, maxX := a.X, b.X
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := a.Y, b.Y
	if minY > maxY {
		minY, maxY = maxY, minY
	}

	for x := minX; x <= maxX; x++ {
		plot(Point{X: x, Y: minY})
		plot(Point{X: x, Y: maxY})
	}
	for y := minY; y <= maxY; y++ {
		plot(Point{X: minX, Y: y})
		plot(Point{X: maxX, Y: y})
	}
}

// circle plots the circle centred on c passing through edge (midpoint algorithm).
func circle(c, edge Point, plot func(Point)) {
	dx, dy := edge.X-c.X, edge.Y-c.Y
	r := isqrt(dx*dx + dy*dy)
	if r == 0 {
		plot(c)
		return
	}

	x, y := r, 0
	d := 1 - r
	for x >= y {
		for _, p := range [8]Point{
			{c.X + x, c.Y + y}, {c.X + y, c.Y + x},
			{c.X - y, c.Y + x}, {c.X - x, c.Y + y},
			{c.X - x, c.Y - y}, {c.X - y, c.Y - x},
			{c.X + y, c.Y - x}, {c.X + x, c.Y - y},
		} {
			plot(p)
		}
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

// isqrt rounds the square root of n to the nearest integer.
func isqrt(n int) int {
	r := 0
	for (r+1)*(r+1) <= n {
		r++
	}
	if n-r*r > (r+1)*(r+1)-n {
		r++
	}
	return r
}
