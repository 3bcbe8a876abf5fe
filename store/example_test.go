package store_test

import (
	"fmt"

	"github.com/c360/retain/store"
)

func ExampleStore_Observe() {
	st, err := store.New[string]()
	if err != nil {
		panic(err)
	}

	// A value written before anyone observes is replayed on subscribe.
	_ = st.Upsert("editor-a", "draft one")

	sub, err := st.Observe("editor-a", func(state string) {
		fmt.Println("received:", state)
	})
	if err != nil {
		panic(err)
	}
	defer sub.Unsubscribe()

	_ = st.Upsert("editor-a", "draft two")

	// Output:
	// received: draft one
	// received: draft two
}

func ExampleStore_Get() {
	st, err := store.New[int]()
	if err != nil {
		panic(err)
	}

	_ = st.Upsert("counter", 41)
	_ = st.Upsert("counter", 42)

	if value, ok := st.Get("counter"); ok {
		fmt.Println("counter:", value)
	}
	if _, ok := st.Get("missing"); !ok {
		fmt.Println("missing: no record")
	}

	// Output:
	// counter: 42
	// missing: no record
}
