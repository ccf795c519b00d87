package geometry

import "math"

// SegmentKind tags a path segment.
type SegmentKind int

const (
	MoveTo SegmentKind = iota
	LineTo
	QuadTo
	// ArcTo sweeps clockwise from Start to End radians around Center. When the path
	// already has a current point it is joined to the arc start by a straight line.
	ArcTo
	Close
)

// Segment is one drawing command.
type Segment struct {
	Kind SegmentKind
	// To is the end point for MoveTo, LineTo and QuadTo.
	To Point
	// Ctrl is the control point of a QuadTo.
	Ctrl Point
	// Center, Radius, Start and End describe an ArcTo.
	Center     Point
	Radius     float64
	Start, End float64
}

// Path is an ordered list of drawing commands.
type Path []Segment

// Points returns every explicit end point and control point in order. Arcs
// contribute their start and end points.
func (p Path) Points() []Point {
	var pts []Point
	for _, s := range p {
		switch s.Kind {
		case MoveTo, LineTo:
			pts = append(pts, s.To)
		case QuadTo:
			pts = append(pts, s.Ctrl, s.To)
		case ArcTo:
			pts = append(pts, arcPoint(s.Center, s.Radius, s.Start), arcPoint(s.Center, s.Radius, s.End))
		}
	}
	return pts
}

// Transform returns a copy of p with every point turned by deg around c.
func (p Path) Transform(c Point, deg float64) Path {
	if deg == 0 {
		return p
	}
	rad := deg * math.Pi / 180
	out := make(Path, len(p))
	for i, s := range p {
		switch s.Kind {
		case MoveTo, LineTo:
			s.To = s.To.RotateAbout(c, deg)
		case QuadTo:
			s.To = s.To.RotateAbout(c, deg)
			s.Ctrl = s.Ctrl.RotateAbout(c, deg)
		case ArcTo:
			s.Center = s.Center.RotateAbout(c, deg)
			s.Start += rad
			s.End += rad
		}
		out[i] = s
	}
	return out
}

func arcPoint(c Point, r, angle float64) Point {
	sin, cos := math.Sincos(angle)
	return Point{c.X + r*cos, c.Y + r*sin}
}

// RoundedPolygon builds a closed outline through vertices with every corner cut
// back by radius along both adjacent edges and joined by a quadratic curve whose
// control point is the original vertex.
func RoundedPolygon(vertices []Point, radius float64) Path {
	n := len(vertices)
	if n < 3 {
		return nil
	}
	dirs := make([]Point, n)
	for i := range vertices {
		next := vertices[(i+1)%n]
		angle := math.Atan2(next.Y-vertices[i].Y, next.X-vertices[i].X)
		sin, cos := math.Sincos(angle)
		dirs[i] = Point{cos, sin}
	}

	start := vertices[0].Add(dirs[0].Mul(radius))
	path := Path{{Kind: MoveTo, To: start}}
	for i := 1; i <= n; i++ {
		v := vertices[i%n]
		in := dirs[i-1]
		out := dirs[i%n]
		path = append(path, Segment{Kind: LineTo, To: v.Sub(in.Mul(radius))})
		end := v.Add(out.Mul(radius))
		if i == n {
			end = start
		}
		path = append(path, Segment{Kind: QuadTo, Ctrl: v, To: end})
	}
	return append(path, Segment{Kind: Close})
}

// RoundedRect builds a rectangle outline with quadratic corners of the given radius.
func RoundedRect(r Rect, radius float64) Path {
	x, y, w, h := r.X, r.Y, r.W, r.H
	return Path{
		{Kind: MoveTo, To: Pt(x+radius, y)},
		{Kind: LineTo, To: Pt(x+w-radius, y)},
		{Kind: QuadTo, Ctrl: Pt(x+w, y), To: Pt(x+w, y+radius)},
		{Kind: LineTo, To: Pt(x+w, y+h-radius)},
		{Kind: QuadTo, Ctrl: Pt(x+w, y+h), To: Pt(x+w-radius, y+h)},
		{Kind: LineTo, To: Pt(x+radius, y+h)},
		{Kind: QuadTo, Ctrl: Pt(x, y+h), To: Pt(x, y+h-radius)},
		{Kind: LineTo, To: Pt(x, y+radius)},
		{Kind: QuadTo, Ctrl: Pt(x, y), To: Pt(x+radius, y)},
		{Kind: Close},
	}
}

// Capsule builds a vertical stadium filling r: semicircular caps of radius r.W/2
// joined by straight sides.
func Capsule(r Rect) Path {
	radius := r.W / 2
	top := Pt(r.X+radius, r.Y+radius)
	bottom := Pt(r.X+radius, r.Y+r.H-radius)
	return Path{
		{Kind: ArcTo, Center: top, Radius: radius, Start: math.Pi, End: 2 * math.Pi},
		{Kind: LineTo, To: Pt(r.X+r.W, r.Y+r.H-radius)},
		{Kind: ArcTo, Center: bottom, Radius: radius, Start: 0, End: math.Pi},
		{Kind: Close},
	}
}

// CirclePath builds a full circle.
func CirclePath(c Point, radius float64) Path {
	return Path{
		{Kind: ArcTo, Center: c, Radius: radius, Start: 0, End: 2 * math.Pi},
		{Kind: Close},
	}
}
