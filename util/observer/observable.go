package observer

import "slices"

// Observable broadcasts values of type T to any number of registered
// observers. The control socket's read loop uses it to hand every
// inbound packet to its subscribers (in this daemon, the receiver that
// dispatches HELLOs and LSAs) without knowing about them.
type Observable[T any] struct {
	observers  []Observer[T]
	bufferSize int
}

// NewObservable creates a new Observable instance. bufferSize sets the
// channel buffer used by Subscribe; a full subscriber channel drops the
// value rather than blocking the producer.
func NewObservable[T any](bufferSize int) *Observable[T] {
	return &Observable[T]{
		observers:  make([]Observer[T], 0),
		bufferSize: bufferSize,
	}
}

// AddObserver adds an observer to the observable.
func (o *Observable[T]) AddObserver(observer Observer[T]) {
	o.observers = append(o.observers, observer)
}

// ObserveOnce adds an observer that will be notified only once.
// After the first notification, it will be removed automatically.
func (o *Observable[T]) ObserveOnce(observer Observer[T]) {
	wrapper := &onceObserver[T]{
		observable: o,
		observer:   observer,
	}
	o.observers = append(o.observers, wrapper)
}

// Subscribe returns a channel that receives every value passed to
// NotifyObservers from now on. If a subscriber falls behind and its
// buffer fills, further values are dropped rather than blocking the
// producer.
func (o *Observable[T]) Subscribe() chan T {
	ch := make(chan T, o.bufferSize)
	o.AddObserver(&chanObserver[T]{ch: ch})
	return ch
}

// onceObserver is a wrapper that calls the original observer once and then removes itself
type onceObserver[T any] struct {
	observable *Observable[T]
	observer   Observer[T]
}

// Update calls the wrapped observer and then removes itself from the observable
func (o *onceObserver[T]) Update(data T) {
	o.observer.Update(data)
	o.observable.RemoveObserver(o)
}

// chanObserver adapts a channel to the Observer interface for Subscribe.
type chanObserver[T any] struct {
	ch chan T
}

func (c *chanObserver[T]) Update(data T) {
	select {
	case c.ch <- data:
	default:
	}
}

// RemoveObserver removes an observer from the observable.
func (o *Observable[T]) RemoveObserver(observer Observer[T]) {
	for i, obs := range o.observers {
		if obs == observer {
			o.observers = slices.Delete(o.observers, i, i+1)
			return
		}
	}
}

// NotifyObservers notifies all observers with the given data.
func (o *Observable[T]) NotifyObservers(data T) {
	for _, observer := range o.observers {
		observer.Update(data)
	}
}

// ClearObservers removes all observers from the observable.
func (o *Observable[T]) ClearObservers() {
	o.observers = nil
}
