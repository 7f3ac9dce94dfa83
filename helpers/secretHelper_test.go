package helpers

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCredentialStoreConcurrentAccess(t *testing.T) {
	store := &CredentialStore{}
	store.Set("initial")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				store.Set(fmt.Sprintf("key-%d-%d", i, j))
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.NotEmpty(t, store.Get())
			}
		}()
	}
	wg.Wait()
}

func TestStartRefreshPicksUpNewValue(t *testing.T) {
	store := &CredentialStore{}
	store.Set("old")

	stop := store.StartRefresh(10*time.Millisecond, func() (string, error) {
		return "new", nil
	})
	defer close(stop)

	deadline := time.Now().Add(2 * time.Second)
	for store.Get() != "new" {
		if time.Now().After(deadline) {
			t.Fatal("credential was never refreshed")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestStartRefreshKeepsValueOnLoadError(t *testing.T) {
	store := &CredentialStore{}
	store.Set("current")

	stop := store.StartRefresh(10*time.Millisecond, func() (string, error) {
		return "", errors.New("env file unreadable")
	})
	defer close(stop)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, "current", store.Get())
}
