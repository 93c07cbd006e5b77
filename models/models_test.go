package models

import "testing"

func TestProgressPercentage(t *testing.T) {
	tests := []struct {
		name    string
		watched int
		total   int
		want    float64
	}{
		{"three of ten", 3, 10, 30.0},
		{"one of three rounds to one decimal", 1, 3, 33.3},
		{"two of three rounds up", 2, 3, 66.7},
		{"complete", 10, 10, 100.0},
		{"empty chapter reports zero", 0, 0, 0},
		{"watched but no videos reports zero", 5, 0, 0},
		{"watched above total is not clamped", 12, 10, 120.0},
		{"nothing watched", 0, 7, 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := ProgressPercentage(tc.watched, tc.total); got != tc.want {
				t.Fatalf("ProgressPercentage(%d, %d) = %v, want %v", tc.watched, tc.total, got, tc.want)
			}
		})
	}
}

func TestRoleValid(t *testing.T) {
	if !RoleStudent.Valid() || !RoleTeacher.Valid() {
		t.Fatal("known roles must be valid")
	}
	for _, r := range []Role{"", "admin", "owner", "Student"} {
		if r.Valid() {
			t.Errorf("expected role %q to be invalid", r)
		}
	}
}
