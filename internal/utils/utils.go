package utils

import (
	"cmp"
	"math"
	"slices"

	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Float | constraints.Integer
}

// Argmax returns the index of the largest element; NaN never wins.
func Argmax[T cmp.Ordered](arr []T) (argmax int) {
	for i := range arr {
		if cmp.Compare(arr[i], arr[argmax]) == 1 {
			argmax = i
		}
	}
	return
}

func IntAbs(a int) int {
	if a < 0 {
		return -a
	} else {
		return a
	}
}

func Intersect(a, b []string) *string {
	for i := range a {
		if slices.Contains(b, a[i]) {
			return &a[i]
		}
	}
	return nil
}

// FinitePairs drops every (x, y) pair where either coordinate is NaN or infinite.
func FinitePairs[T Number](xs, ys []T) (fx, fy []T) {
	n := min(len(xs), len(ys))
	fx = make([]T, 0, n)
	fy = make([]T, 0, n)
	for i := range n {
		if !IsFinite(xs[i]) || !IsFinite(ys[i]) {
			continue
		}
		fx = append(fx, xs[i])
		fy = append(fy, ys[i])
	}
	return
}

func IsFinite[T Number](v T) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
