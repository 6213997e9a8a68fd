package paging

import "testing"

func TestValidate(t *testing.T) {
	if err := Validate(0, 10); err != nil {
		t.Fatalf("from=0 size=10: %v", err)
	}
	if err := Validate(-1, 10); err == nil {
		t.Fatal("negative from must fail")
	}
	if err := Validate(0, 0); err == nil {
		t.Fatal("zero size must fail")
	}
}

func TestOffset(t *testing.T) {
	cases := []struct {
		from, size, want int
	}{
		{0, 10, 0},
		{15, 5, 15},
		{7, 5, 5},
		{4, 5, 0},
		{10, 10, 10},
	}
	for _, tc := range cases {
		if got := Offset(tc.from, tc.size); got != tc.want {
			t.Fatalf("Offset(%d, %d) = %d; want %d", tc.from, tc.size, got, tc.want)
		}
	}
}
