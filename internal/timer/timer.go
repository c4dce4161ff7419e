package timer

import (
	"context"
	"sync"
	"time"
)

// Interval est l'intervalle d'étude produit par un arrêt du chronomètre
type Interval struct {
	UserID          string     `json:"userId"`
	SubjectID       string     `json:"subjectId"`
	TaskID          *string    `json:"taskId,omitempty"`
	StartTime       time.Time  `json:"startTime"`
	EndTime         time.Time  `json:"endTime"`
	DurationSeconds int        `json:"durationSeconds"`
}

// Recorder persiste un intervalle d'étude terminé
type Recorder interface {
	Record(ctx context.Context, interval Interval) (string, error)
}

// Timer est le chronomètre d'étude d'un utilisateur: Idle → Running → Idle,
// pas d'état Pause. Le temps écoulé est toujours recalculé depuis l'horodatage
// de départ absolu, jamais accumulé par tick: un callback en retard ou une
// suspension de l'app se rattrape immédiatement au prochain échantillonnage.
type Timer struct {
	mu       sync.Mutex
	userID   string
	recorder Recorder
	now      func() time.Time

	running   bool
	startedAt time.Time
	elapsed   int
}

// New crée un chronomètre à l'arrêt pour un utilisateur
func New(userID string, recorder Recorder) *Timer {
	return &Timer{userID: userID, recorder: recorder, now: time.Now}
}

// Start démarre le chronomètre. Sans effet s'il tourne déjà.
func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return
	}
	t.running = true
	t.startedAt = t.now()
	t.elapsed = 0
}

// Elapsed recalcule les secondes écoulées depuis le départ,
// arrondies à l'entier inférieur et bornées à zéro contre les dérives d'horloge
func (t *Timer) Elapsed() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return t.elapsed
	}

	seconds := int(t.now().Sub(t.startedAt) / time.Second)
	if seconds < 0 {
		seconds = 0
	}
	t.elapsed = seconds
	return seconds
}

// Running indique si le chronomètre tourne
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Stop arrête le chronomètre et persiste l'intervalle via le Recorder.
// Le passage à l'arrêt est local et immédiat: même si la persistance échoue,
// le chronomètre reste arrêté et l'erreur est remontée à l'appelant.
// La durée finale est bornée à 1 seconde minimum pour ne jamais enregistrer
// d'intervalle de longueur nulle; le départ synthétique vaut fin − durée.
func (t *Timer) Stop(ctx context.Context, subjectID string, taskID *string) (Interval, error) {
	t.mu.Lock()

	end := t.now()
	duration := 0
	if t.running {
		duration = int(end.Sub(t.startedAt) / time.Second)
	} else {
		duration = t.elapsed
	}
	if duration < 1 {
		duration = 1
	}

	t.running = false
	t.elapsed = duration

	interval := Interval{
		UserID:          t.userID,
		SubjectID:       subjectID,
		TaskID:          taskID,
		StartTime:       end.Add(-time.Duration(duration) * time.Second),
		EndTime:         end,
		DurationSeconds: duration,
	}
	t.mu.Unlock()

	if _, err := t.recorder.Record(ctx, interval); err != nil {
		return interval, err
	}
	return interval, nil
}

// Reset remet le chronomètre à zéro et à l'arrêt, quel que soit l'état courant
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.running = false
	t.startedAt = time.Time{}
	t.elapsed = 0
}
