package geom

import "testing"

func TestIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{
			name: "partial overlap",
			a:    NewRect(0, 0, 10, 10),
			b:    NewRect(5, 5, 10, 10),
			want: NewRect(5, 5, 5, 5),
		},
		{
			name: "contained",
			a:    NewRect(0, 0, 100, 100),
			b:    NewRect(20, 20, 10, 10),
			want: NewRect(20, 20, 10, 10),
		},
		{
			name: "disjoint",
			a:    NewRect(0, 0, 10, 10),
			b:    NewRect(50, 50, 10, 10),
			want: Rect{},
		},
		{
			name: "edge touching has zero area",
			a:    NewRect(0, 0, 10, 10),
			b:    NewRect(10, 0, 10, 10),
			want: NewRect(10, 0, 0, 10),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Intersect(tt.a, tt.b); got != tt.want {
				t.Errorf("Intersect() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestIntersectCommutative(t *testing.T) {
	pairs := []struct{ a, b Rect }{
		{NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10)},
		{NewRect(0, 0, 10, 10), NewRect(50, 50, 10, 10)},
		{NewRect(3, 7, 80, 4), NewRect(0, 0, 200, 200)},
		{NewRect(0, 0, 0, 0), NewRect(1, 1, 2, 2)},
	}

	for _, p := range pairs {
		ab := Intersect(p.a, p.b)
		ba := Intersect(p.b, p.a)
		if ab != ba {
			t.Errorf("Intersect(%+v, %+v) = %+v, reversed = %+v", p.a, p.b, ab, ba)
		}
	}
}

func TestPercentageInside(t *testing.T) {
	tests := []struct {
		name string
		f, r Rect
		want float64
	}{
		{
			name: "fully contained",
			f:    NewRect(10, 10, 10, 10),
			r:    NewRect(0, 0, 100, 100),
			want: 100,
		},
		{
			name: "no overlap",
			f:    NewRect(0, 0, 10, 10),
			r:    NewRect(100, 100, 10, 10),
			want: 0,
		},
		{
			name: "half inside",
			f:    NewRect(0, 0, 10, 10),
			r:    NewRect(5, 0, 10, 10),
			want: 50,
		},
		{
			name: "zero area fragment",
			f:    NewRect(5, 5, 0, 0),
			r:    NewRect(0, 0, 100, 100),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PercentageInside(tt.f, tt.r); got != tt.want {
				t.Errorf("PercentageInside() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVerticalOverlapPercentage(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want float64
	}{
		{
			name: "same row",
			a:    NewRect(0, 10, 50, 10),
			b:    NewRect(100, 10, 50, 10),
			want: 100,
		},
		{
			name: "no vertical overlap",
			a:    NewRect(0, 0, 50, 10),
			b:    NewRect(0, 50, 50, 10),
			want: 0,
		},
		{
			name: "tall fragment measured against own height",
			a:    NewRect(0, 10, 50, 10),
			b:    NewRect(0, 0, 5, 200),
			want: 5,
		},
		{
			name: "zero height b",
			a:    NewRect(0, 0, 50, 10),
			b:    NewRect(0, 5, 50, 0),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VerticalOverlapPercentage(tt.a, tt.b); got != tt.want {
				t.Errorf("VerticalOverlapPercentage() = %v, want %v", got, tt.want)
			}
		})
	}
}
