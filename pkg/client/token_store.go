package client

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

const accessTokenKey = "accessToken"

// TokenStore keeps the session token between runs. The zero value is not
// usable; construct with NewTokenStore.
type TokenStore struct {
	mu   sync.Mutex
	path string
}

func NewTokenStore(path string) *TokenStore {
	return &TokenStore{path: path}
}

func (t *TokenStore) load() map[string]string {
	data := map[string]string{}
	raw, err := os.ReadFile(t.path)
	if err != nil {
		return data
	}
	_ = json.Unmarshal(raw, &data)
	return data
}

func (t *TokenStore) save(data map[string]string) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(t.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(t.path, raw, 0o600)
}

func (t *TokenStore) Get() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.load()[accessTokenKey]
}

func (t *TokenStore) Set(token string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	data := t.load()
	data[accessTokenKey] = token
	return t.save(data)
}

// Clear drops the stored token, typically after the backend answered 401.
func (t *TokenStore) Clear() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	data := t.load()
	delete(data, accessTokenKey)
	return t.save(data)
}
