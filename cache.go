package space

import "fmt"

var _ Cache[any] = &SimpleCache[any]{}

func (c *SimpleCache[T]) GetIndex(key string) (int, bool) {
	index, ok := c.itemIndices[key]
	return index, ok
}

func (c *SimpleCache[T]) GetItem(index int) *T {
	return &c.items[index]
}

// Register stores item under key and returns its zero-based index.
func (c *SimpleCache[T]) Register(key string, item T) (int, error) {
	if _, taken := c.itemIndices[key]; taken {
		return -1, fmt.Errorf("key %q already registered", key)
	}
	if len(c.items) >= c.maxCapacity {
		return -1, fmt.Errorf("cache at maximum capacity (%d)", c.maxCapacity)
	}
	idx := len(c.items)
	c.itemIndices[key] = idx
	c.items = append(c.items, item)
	return idx, nil
}

func (c *SimpleCache[T]) Keys() []string {
	keys := make([]string, len(c.items))
	for k, i := range c.itemIndices {
		keys[i] = k
	}
	return keys
}

func (c *SimpleCache[T]) Clear() {
	c.items = c.items[:0]
	c.itemIndices = make(map[string]int)
}
