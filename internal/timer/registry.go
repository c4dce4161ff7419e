package timer

import "sync"

// Registry garde le chronomètre de chaque utilisateur connecté.
// Un seul chronomètre par utilisateur, créé à la demande.
type Registry struct {
	mu       sync.Mutex
	recorder Recorder
	timers   map[string]*Timer
}

func NewRegistry(recorder Recorder) *Registry {
	return &Registry{
		recorder: recorder,
		timers:   make(map[string]*Timer),
	}
}

// Get retourne le chronomètre de l'utilisateur, en le créant si nécessaire
func (r *Registry) Get(userID string) *Timer {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.timers[userID]
	if !ok {
		t = New(userID, r.recorder)
		r.timers[userID] = t
	}
	return t
}
