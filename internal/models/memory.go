package models

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-process Repo used for local demos and tests.
type MemoryRepo[T any, P DocPtr[T]] struct {
	mu   sync.RWMutex
	docs map[string]T
	spec Collection[T]
	now  func() time.Time
}

func NewMemoryRepo[T any, P DocPtr[T]](spec Collection[T]) *MemoryRepo[T, P] {
	return &MemoryRepo[T, P]{docs: make(map[string]T), spec: spec, now: time.Now}
}

func (r *MemoryRepo[T, P]) List(ctx context.Context) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]T, 0, len(r.docs))
	for _, d := range r.docs {
		out = append(out, d)
	}
	if r.spec.Less != nil {
		sort.SliceStable(out, func(i, j int) bool { return r.spec.Less(&out[i], &out[j]) })
	}
	return out, nil
}

func (r *MemoryRepo[T, P]) Get(ctx context.Context, id string) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &d, nil
}

func (r *MemoryRepo[T, P]) Insert(ctx context.Context, doc *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b := P(doc).DocBase()
	stampNew(b, r.now().UTC())
	r.docs[b.ID.Hex()] = *doc
	return nil
}

func (r *MemoryRepo[T, P]) Replace(ctx context.Context, id string, doc *T) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[id]; !ok {
		return ErrNotFound
	}
	b := P(doc).DocBase()
	b.ID = oid
	b.UpdatedAt = r.now().UTC()
	r.docs[id] = *doc
	return nil
}

func (r *MemoryRepo[T, P]) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[id]; !ok {
		return ErrNotFound
	}
	delete(r.docs, id)
	return nil
}

func (r *MemoryRepo[T, P]) ReplaceAll(ctx context.Context, docs []T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	r.docs = make(map[string]T, len(docs))
	for i := range docs {
		b := P(&docs[i]).DocBase()
		stampNew(b, now)
		r.docs[b.ID.Hex()] = docs[i]
	}
	return nil
}

type MemorySettingsRepo struct {
	mu       sync.RWMutex
	settings map[string]Setting
}

func NewMemorySettingsRepo() *MemorySettingsRepo {
	return &MemorySettingsRepo{settings: make(map[string]Setting)}
}

func (r *MemorySettingsRepo) All(ctx context.Context) ([]Setting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Setting, 0, len(r.settings))
	for _, s := range r.settings {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (r *MemorySettingsRepo) Upsert(ctx context.Context, key, value string) (*Setting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Setting{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	r.settings[key] = s
	return &s, nil
}

func (r *MemorySettingsRepo) UpsertMany(ctx context.Context, values map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	for k, v := range values {
		r.settings[k] = Setting{Key: k, Value: v, UpdatedAt: now}
	}
	return nil
}

type MemoryUserRepo struct {
	mu    sync.RWMutex
	users map[string]User
}

func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{users: make(map[string]User)}
}

func (r *MemoryUserRepo) FindByIdentifier(ctx context.Context, identifier string) (*User, error) {
	identifier = NormalizeIdentifier(identifier)
	if identifier == "" {
		return nil, ErrNotFound
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == identifier || u.Email == identifier {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUserRepo) GetByID(ctx context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *MemoryUserRepo) CreateUser(ctx context.Context, user *User) error {
	user.Username = NormalizeIdentifier(user.Username)
	user.Email = NormalizeIdentifier(user.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if (user.Username != "" && u.Username == user.Username) || (user.Email != "" && u.Email == user.Email) {
			return ErrDuplicate
		}
	}
	stampNew(&user.Base, time.Now().UTC())
	r.users[user.ID.Hex()] = *user
	return nil
}
