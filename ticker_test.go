package animator

import "testing"

func TestTickerDeliversTicks(t *testing.T) {
	tk := NewTicker()
	var ticks []Tick
	tk.OnUpdate(func(tick Tick) { ticks = append(ticks, tick) })

	tk.Advance(0.25)
	tk.SetRunning(true)
	tk.Advance(0.5)

	if len(ticks) != 2 {
		t.Fatalf("got %d ticks, want 2", len(ticks))
	}
	if ticks[0] != (Tick{Delta: 0.25}) {
		t.Errorf("tick 0 = %+v", ticks[0])
	}
	if ticks[1] != (Tick{Delta: 0.5, Live: true}) {
		t.Errorf("tick 1 = %+v", ticks[1])
	}
}

func TestTickerStopIdempotent(t *testing.T) {
	tk := NewTicker()
	calls := 0
	a := tk.OnUpdate(func(Tick) { calls++ })
	b := tk.OnUpdate(func(Tick) { calls += 10 })

	a.Stop()
	a.Stop()
	if tk.NumSubscribers() != 1 {
		t.Fatalf("subscribers = %d, want 1", tk.NumSubscribers())
	}
	tk.Advance(0.1)
	if calls != 10 {
		t.Errorf("calls = %d, want 10", calls)
	}
	b.Stop()
	tk.Advance(0.1)
	if calls != 10 || tk.NumSubscribers() != 0 {
		t.Errorf("stopped callbacks still ran, calls = %d", calls)
	}
}

func TestTickerStopDuringAdvance(t *testing.T) {
	tk := NewTicker()
	var order []int
	var second Subscription
	tk.OnUpdate(func(Tick) {
		order = append(order, 1)
		second.Stop()
	})
	second = tk.OnUpdate(func(Tick) { order = append(order, 2) })

	tk.Advance(0.1)
	tk.Advance(0.1)
	want := []int{1, 1}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}
