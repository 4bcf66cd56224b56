package mathutil

// QuadNormal returns the face normal of a quadrilateral as the cross product of
// its diagonals, (p2-p0) x (p3-p1).
//
// The result is NOT normalized. Its length is twice the projected quad area, so
// it scales with the square of the element size. Consumers normalize.
func QuadNormal(p0, p1, p2, p3 Vec3) Vec3 {
	return p2.Sub(p0).Cross(p3.Sub(p1))
}
