package helpers

import (
	"log"
	"sync"
	"time"
)

// CredentialStore holds a process-wide credential (the payment gateway API
// key) behind synchronized access. Request handlers only read it; the value
// is replaced by the dedicated refresh task, never by request-handling code.
type CredentialStore struct {
	mu    sync.RWMutex
	value string
}

func (c *CredentialStore) Get() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

func (c *CredentialStore) Set(value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = value
}

// StartRefresh reloads the credential on a ticker until stop is closed.
// Failed loads keep the previous value.
func (c *CredentialStore) StartRefresh(interval time.Duration, load func() (string, error)) (stop chan struct{}) {
	stop = make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				value, err := load()
				if err != nil {
					log.Printf("error occurred while refreshing credential: %v", err)
					continue
				}
				c.Set(value)
			}
		}
	}()
	return stop
}

// PaymentSecret is the Paystack API key. Deployments rotate it by rewriting
// the environment file; the refresh job in main picks the new value up.
var PaymentSecret = &CredentialStore{}
