package store

import (
	"fmt"
	"testing"
)

// BenchmarkStoreGet benchmarks point reads against a pre-populated store.
func BenchmarkStoreGet(b *testing.B) {
	st, err := New[string]()
	if err != nil {
		b.Fatal(err)
	}

	for i := 0; i < 1000; i++ {
		_ = st.Upsert(fmt.Sprintf("key%d", i), fmt.Sprintf("value%d", i))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		st.Get(fmt.Sprintf("key%d", i%1000))
	}
}

// BenchmarkStoreUpsert benchmarks writes with no subscribers.
func BenchmarkStoreUpsert(b *testing.B) {
	st, err := New[string]()
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = st.Upsert(fmt.Sprintf("key%d", i%1000), "value")
	}
}

// BenchmarkStoreUpsertFanOut benchmarks synchronous delivery cost as the
// subscriber count per key grows.
func BenchmarkStoreUpsertFanOut(b *testing.B) {
	for _, subscribers := range []int{1, 10, 100} {
		b.Run(fmt.Sprintf("subs_%d", subscribers), func(b *testing.B) {
			st, err := New[string]()
			if err != nil {
				b.Fatal(err)
			}

			sink := 0
			for i := 0; i < subscribers; i++ {
				if _, err := st.Observe("key", func(string) { sink++ }); err != nil {
					b.Fatal(err)
				}
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = st.Upsert("key", "value")
			}
		})
	}
}
