package store

import "testing"

func TestLevelForPoints(t *testing.T) {
	tests := []struct {
		points int
		level  int
	}{
		{0, 1},
		{49, 1},
		{50, 2},
		{99, 2},
		{100, 3},
		{149, 3},
		{150, 4},
	}
	for _, tt := range tests {
		if got := LevelForPoints(tt.points); got != tt.level {
			t.Errorf("LevelForPoints(%d)=%d, want %d", tt.points, got, tt.level)
		}
	}
}

func TestComputeProgress_OnlyApproved(t *testing.T) {
	tasks := []Task{
		{ID: "t1", Points: 30, Status: TaskApproved},
		{ID: "t2", Points: 40, Status: TaskCompletedPendingReview},
		{ID: "t3", Points: 25, Status: TaskApproved},
		{ID: "t4", Points: 100, Status: TaskPending},
	}
	p := ComputeProgress(tasks)
	if p.TotalPoints != 55 {
		t.Fatalf("TotalPoints=%d, want 55", p.TotalPoints)
	}
	if p.Level != 2 {
		t.Fatalf("Level=%d, want 2", p.Level)
	}
	if p.LevelPoints() != 5 {
		t.Fatalf("LevelPoints=%d, want 5", p.LevelPoints())
	}
	if p.PointsToNextLevel() != 45 {
		t.Fatalf("PointsToNextLevel=%d, want 45", p.PointsToNextLevel())
	}
	if p.Fraction() != 0.1 {
		t.Fatalf("Fraction=%v, want 0.1", p.Fraction())
	}
}

func TestComputeProgress_Empty(t *testing.T) {
	p := ComputeProgress(nil)
	if p.TotalPoints != 0 || p.Level != 1 {
		t.Fatalf("got %+v, want 0 points at level 1", p)
	}
	if p.Fraction() != 0 {
		t.Fatalf("Fraction=%v, want 0", p.Fraction())
	}
}

func TestWishVisible(t *testing.T) {
	w := Wish{ID: "w1", Name: "Bike", MinLevel: 3}

	for level, want := range map[int]bool{1: false, 2: false, 3: true, 4: true} {
		if got := WishVisible(w, level); got != want {
			t.Errorf("WishVisible(minLevel 3, level %d)=%v, want %v", level, got, want)
		}
	}

	// Zero and negative minimum levels are always visible.
	if !WishVisible(Wish{MinLevel: 0}, 1) || !WishVisible(Wish{MinLevel: -2}, 1) {
		t.Error("expected non-positive min level to be visible")
	}
}

func TestNextID(t *testing.T) {
	tests := []struct {
		ids  []string
		want string
	}{
		{nil, "t1"},
		{[]string{"t1", "t2"}, "t3"},
		{[]string{"t10", "t2"}, "t11"},
		{[]string{"w5", "x", "tabc"}, "t1"},
		{[]string{"", "t4"}, "t5"},
	}
	for _, tt := range tests {
		if got := nextID(taskIDPrefix, tt.ids); got != tt.want {
			t.Errorf("nextID(%v)=%s, want %s", tt.ids, got, tt.want)
		}
	}
}
