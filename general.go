package optimize

// resizeZero takes x and returns a zeroed slice of length dim. It returns a
// resliced x if cap(x) >= dim, and a new slice otherwise.
func resizeZero(x []float64, dim int) []float64 {
	if dim > cap(x) {
		return make([]float64, dim)
	}
	x = x[:dim]
	for i := range x {
		x[i] = 0
	}
	return x
}
