package progress

import "testing"

func TestChannelCallback_NilChannel(t *testing.T) {
	t.Parallel()
	cb := ChannelCallback(nil, 0)
	cb(0.5) // must not panic
}

func TestChannelCallback_DoesNotBlock(t *testing.T) {
	t.Parallel()
	ch := make(chan ProgressUpdate, 1)
	cb := ChannelCallback(ch, 3)

	cb(0.1)
	cb(0.2) // buffer full, dropped

	got := <-ch
	if got.CheckerIndex != 3 || got.Value != 0.1 {
		t.Errorf("got %+v, want {3 0.1}", got)
	}
	select {
	case extra := <-ch:
		t.Errorf("unexpected extra update %+v", extra)
	default:
	}
}

func TestThrottled(t *testing.T) {
	t.Parallel()
	var seen []float64
	cb := Throttled(func(v float64) { seen = append(seen, v) })

	for _, v := range []float64{0, 0.001, 0.005, 0.02, 0.025, 0.5, 0.999, 1.0} {
		cb(v)
	}

	want := []float64{0, 0.02, 0.5, 0.999, 1.0}
	if len(seen) != len(want) {
		t.Fatalf("forwarded %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("seen[%d] = %v, want %v", i, seen[i], want[i])
		}
	}
}

func TestThrottled_NilCallback(t *testing.T) {
	t.Parallel()
	Throttled(nil)(0.5)
}
