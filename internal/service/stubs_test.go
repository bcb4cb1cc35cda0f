package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jemert1992/socialcontrol/internal/models"
	"github.com/jemert1992/socialcontrol/internal/repository"
)

// stubContentRepo is an in-memory ContentRepository. Claims are atomic under
// the mutex, mirroring the conditional update the real store performs.
type stubContentRepo struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]*models.ContentItem

	claimErr  error
	postedErr error
}

func newStubContentRepo() *stubContentRepo {
	return &stubContentRepo{items: make(map[int64]*models.ContentItem)}
}

func (r *stubContentRepo) add(item *models.ContentItem) *models.ContentItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	clone := *item
	clone.ID = r.nextID
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = time.Now().UTC()
	}
	r.items[clone.ID] = &clone
	copied := clone
	return &copied
}

func (r *stubContentRepo) Create(ctx context.Context, item *models.ContentItem) (int64, error) {
	return r.add(item).ID, nil
}

func (r *stubContentRepo) GetByID(ctx context.Context, id int64) (*models.ContentItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *item
	return &clone, nil
}

func (r *stubContentRepo) List(ctx context.Context, f repository.ContentFilter) ([]*models.ContentItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []*models.ContentItem
	for _, item := range r.items {
		if f.Status != "" && item.Status != f.Status {
			continue
		}
		clone := *item
		items = append(items, &clone)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	return items, nil
}

func (r *stubContentRepo) Count(ctx context.Context, status models.ContentStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, item := range r.items {
		if status == "" || item.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *stubContentRepo) ListQueue(ctx context.Context) ([]*models.ContentItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []*models.ContentItem
	for _, item := range r.items {
		if item.Status == models.StatusDraft || item.Status == models.StatusScheduled {
			clone := *item
			items = append(items, &clone)
		}
	}
	// scheduled_time ascending, NULLs last, id breaks ties
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch {
		case a.ScheduledTime == nil && b.ScheduledTime == nil:
			return a.ID < b.ID
		case a.ScheduledTime == nil:
			return false
		case b.ScheduledTime == nil:
			return true
		case a.ScheduledTime.Equal(*b.ScheduledTime):
			return a.ID < b.ID
		default:
			return a.ScheduledTime.Before(*b.ScheduledTime)
		}
	})
	return items, nil
}

func (r *stubContentRepo) ListDue(ctx context.Context, now time.Time) ([]*models.ContentItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []*models.ContentItem
	for _, item := range r.items {
		if item.Status != models.StatusScheduled || item.ScheduledTime == nil {
			continue
		}
		if item.ScheduledTime.After(now) {
			continue
		}
		clone := *item
		items = append(items, &clone)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].ScheduledTime.Equal(*items[j].ScheduledTime) {
			return items[i].ID < items[j].ID
		}
		return items[i].ScheduledTime.Before(*items[j].ScheduledTime)
	})
	return items, nil
}

func (r *stubContentRepo) UpdateFields(ctx context.Context, id int64, patch *repository.ContentPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	if patch.Caption != nil {
		item.Caption = *patch.Caption
	}
	if patch.Hashtags != nil {
		item.Hashtags = *patch.Hashtags
	}
	if patch.Platforms != nil {
		item.Platforms = *patch.Platforms
	}
	if patch.ScheduledTime != nil {
		t := *patch.ScheduledTime
		item.ScheduledTime = &t
	}
	if patch.Status != nil {
		item.Status = *patch.Status
	}
	return nil
}

func (r *stubContentRepo) ClaimForPosting(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.claimErr != nil {
		return false, r.claimErr
	}
	item, ok := r.items[id]
	if !ok || item.Status != models.StatusScheduled {
		return false, nil
	}
	item.Status = models.StatusPosting
	return true, nil
}

func (r *stubContentRepo) MarkPosted(ctx context.Context, id int64, postedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.postedErr != nil {
		return r.postedErr
	}
	item, ok := r.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	item.Status = models.StatusPosted
	t := postedAt
	item.PostedAt = &t
	return nil
}

func (r *stubContentRepo) MarkFailed(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	item.Status = models.StatusFailed
	return nil
}

func (r *stubContentRepo) Remove(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// stubNotifier records invocations per content id and answers via respond.
type stubNotifier struct {
	mu      sync.Mutex
	calls   map[int64]int
	respond func(payload *DeploymentPayload) (*NotifyResult, error)
}

func newStubNotifier(respond func(payload *DeploymentPayload) (*NotifyResult, error)) *stubNotifier {
	return &stubNotifier{calls: make(map[int64]int), respond: respond}
}

func (n *stubNotifier) Notify(ctx context.Context, payload *DeploymentPayload) (*NotifyResult, error) {
	n.mu.Lock()
	n.calls[payload.ContentID]++
	n.mu.Unlock()
	return n.respond(payload)
}

func (n *stubNotifier) callCount(id int64) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls[id]
}

// stubStorage keeps saved blobs in memory.
type stubStorage struct {
	mu        sync.Mutex
	saved     map[string][]byte
	saveCalls int
	removeErr error
}

func newStubStorage() *stubStorage {
	return &stubStorage{saved: make(map[string][]byte)}
}

func (s *stubStorage) Save(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveCalls++
	s.saved[name] = data
	return "uploads/" + name, nil
}

func (s *stubStorage) Remove(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.removeErr != nil {
		return s.removeErr
	}
	delete(s.saved, name)
	return nil
}

func (s *stubStorage) has(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.saved[name]
	return ok
}
