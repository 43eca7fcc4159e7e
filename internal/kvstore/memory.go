package kvstore

import "context"

// Memory is a map-backed Store used in tests. FailWrites makes Set and Remove
// return the given error, to exercise write-failure propagation.
type Memory struct {
	values     map[string][]byte
	FailWrites error
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	value, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}

	return value, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	if m.FailWrites != nil {
		return m.FailWrites
	}

	m.values[key] = append([]byte(nil), value...)

	return nil
}

func (m *Memory) Remove(_ context.Context, key string) error {
	if m.FailWrites != nil {
		return m.FailWrites
	}

	delete(m.values, key)

	return nil
}
