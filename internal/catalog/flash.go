package catalog

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
)

const flashCookie = "catalog_flash"

// Flash is a one-shot notice shown on the next rendered page.
// Category is "error" or "success".
type Flash struct {
	Category string
	Message  string
}

// Flashes holds pending notices per browser, keyed by a UUID cookie. It
// stands in for a session layer: single process, drained on render.
type Flashes struct {
	mu sync.Mutex
	m  map[string][]Flash
}

func NewFlashes() *Flashes {
	return &Flashes{m: map[string][]Flash{}}
}

func (f *Flashes) Add(w http.ResponseWriter, r *http.Request, category, message string) {
	id := f.cookieID(w, r)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.m[id] = append(f.m[id], Flash{Category: category, Message: message})
}

// Pop drains and returns the pending notices for this browser, oldest first.
func (f *Flashes) Pop(w http.ResponseWriter, r *http.Request) []Flash {
	id := f.cookieID(w, r)

	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.m[id]
	delete(f.m, id)
	return out
}

// cookieID returns the browser's flash ID, issuing a cookie when absent.
// Must run before the response status is written.
func (f *Flashes) cookieID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(flashCookie); err == nil && c.Value != "" {
		return c.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
	})
	return id
}
