package event

import (
	"sync"
	"testing"
)

func TestFireReachesAllListeners(t *testing.T) {
	Flush()
	defer Flush()

	var got []interface{}
	Listen("thing.happened", func(p interface{}) { got = append(got, p) })
	Listen("thing.happened", func(p interface{}) { got = append(got, p) })

	Fire("thing.happened", 42)

	if len(got) != 2 || got[0] != 42 {
		t.Errorf("listeners: %v", got)
	}
}

func TestFireUnknownEventIsNoop(t *testing.T) {
	Flush()
	defer Flush()
	Fire("nobody.listens", nil)
}

func TestFireAsync(t *testing.T) {
	Flush()
	defer Flush()

	var wg sync.WaitGroup
	wg.Add(2)
	Listen("bg", func(p interface{}) { wg.Done() })
	Listen("bg", func(p interface{}) { wg.Done() })

	FireAsync("bg", nil)
	wg.Wait()
}
