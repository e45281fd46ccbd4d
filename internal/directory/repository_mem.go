package directory

import (
	"context"
	"sort"
	"sync"
)

type memRepo struct {
	mu    sync.Mutex
	rooms map[string]RoomInfo
}

func NewMemoryRepo() Repo {
	return &memRepo{
		rooms: make(map[string]RoomInfo),
	}
}

func (m *memRepo) Save(ctx context.Context, info RoomInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[info.ID] = info
	return nil
}

func (m *memRepo) Remove(ctx context.Context, roomID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, roomID)
	return nil
}

func (m *memRepo) List(ctx context.Context) ([]RoomInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]RoomInfo, 0, len(m.rooms))
	for _, info := range m.rooms {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
