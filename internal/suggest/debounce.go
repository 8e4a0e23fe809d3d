// Package suggest откладывает поисковые запросы до паузы во вводе и отбрасывает устаревшие ответы.
package suggest

import (
	"context"
	"errors"
	"sync"
	"time"
)

// DefaultDelay задаёт задержку по умолчанию после последнего нажатия клавиши.
const DefaultDelay = 300 * time.Millisecond

// ErrSuperseded возвращается вызову, который был вытеснен более новым вызовом с тем же ключом.
var ErrSuperseded = errors.New("superseded by a newer request")

// Debouncer выполняет не более одного актуального запроса на ключ (например, поле формы клиента).
// Каждый вызов получает номер из общей монотонной последовательности; результат применяется
// только если номер вызова всё ещё последний для своего ключа.
type Debouncer[T any] struct {
	delay time.Duration

	mu     sync.Mutex
	next   uint64
	latest map[string]uint64
}

// New создаёт Debouncer с указанной задержкой.
func New[T any](delay time.Duration) *Debouncer[T] {
	return &Debouncer[T]{
		delay:  delay,
		latest: make(map[string]uint64),
	}
}

// Do ждёт задержку и вызывает fn, если за это время не пришёл более новый вызов с тем же ключом.
// Вытесненный во время выполнения fn вызов не прерывается, но его результат отбрасывается.
func (d *Debouncer[T]) Do(ctx context.Context, key string, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	token := d.issue(key)

	if d.delay > 0 {
		timer := time.NewTimer(d.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			d.release(key, token)
			return zero, ctx.Err()
		case <-timer.C:
		}
	}

	if !d.isLatest(key, token) {
		return zero, ErrSuperseded
	}

	res, err := fn(ctx)

	if !d.release(key, token) {
		return zero, ErrSuperseded
	}
	return res, err
}

func (d *Debouncer[T]) issue(key string) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.next++
	d.latest[key] = d.next
	return d.next
}

func (d *Debouncer[T]) isLatest(key string, token uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.latest[key] == token
}

// release сообщает, был ли вызов последним, и в этом случае забывает ключ.
func (d *Debouncer[T]) release(key string, token uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.latest[key] != token {
		return false
	}
	delete(d.latest, key)
	return true
}

// Pending возвращает число ключей с незавершёнными вызовами.
func (d *Debouncer[T]) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.latest)
}
