package hub

import (
	"fmt"
	"testing"
)

// BenchmarkBroadcast measures delivery cost across N panel connections.
func BenchmarkBroadcast1(b *testing.B)  { benchBroadcast(b, 1) }
func BenchmarkBroadcast5(b *testing.B)  { benchBroadcast(b, 5) }
func BenchmarkBroadcast10(b *testing.B) { benchBroadcast(b, 10) }

func benchBroadcast(b *testing.B, numPanels int) {
	h := New(nil)
	for i := 0; i < numPanels; i++ {
		h.AddPanel(fmt.Sprintf("panel-%d", i), &fakeSender{})
	}

	m := msg()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		h.Broadcast(m)
	}
}
