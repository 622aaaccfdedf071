// pkg/client/state/store.go
package state

import (
	"errors"
	"fmt"
	"sync"

	"github.com/javajoker/storefront/pkg/client/api"
)

var ErrValidation = errors.New("validation error")

// State is a snapshot of every slice.
type State struct {
	Cart     CartState
	User     UserState
	Product  ProductState
	Order    OrderState
	Requests map[string]Request
}

// Request returns the tracked status of op.
func (s State) Request(op string) Request {
	return s.Requests[op]
}

// Store is the application state container. Dispatch applies actions one
// at a time; the cart and the session are written through to storage.
type Store struct {
	mu       sync.Mutex
	state    State
	storage  Storage
	nextSub  int
	watchers map[int]func(State, Action)
}

// NewStore rehydrates the durable slices from storage.
func NewStore(storage Storage) (*Store, error) {
	s := &Store{
		storage:  storage,
		watchers: make(map[int]func(State, Action)),
		state: State{
			Cart:     CartState{CartItems: []CartItem{}},
			Requests: make(map[string]Request),
		},
	}

	if _, err := storage.Load(KeyCartItems, &s.state.Cart.CartItems); err != nil {
		return nil, err
	}
	if s.state.Cart.CartItems == nil {
		s.state.Cart.CartItems = []CartItem{}
	}
	if _, err := storage.Load(KeyShippingAddress, &s.state.Cart.ShippingAddress); err != nil {
		return nil, err
	}
	if _, err := storage.Load(KeyPaymentMethod, &s.state.Cart.PaymentMethod); err != nil {
		return nil, err
	}

	var info api.UserInfo
	if ok, err := storage.Load(KeyUserInfo, &info); err != nil {
		return nil, err
	} else if ok && info.Token != "" {
		s.state.User.UserInfo = &info
	}
	return s, nil
}

// Dispatch runs a through every slice reducer. A rejected action leaves the
// state untouched. Subscribers run before Dispatch returns and must not
// dispatch themselves.
func (s *Store) Dispatch(a Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	cartChanged, err := next.Cart.reduce(a)
	if err != nil {
		return err
	}
	userChanged, _ := next.User.reduce(a)
	next.Product.reduce(a)
	next.Order.reduce(a)
	requestState(next.Requests).reduce(a)
	s.state = next

	var persistErr error
	if cartChanged {
		persistErr = s.persistCart()
	}
	if userChanged {
		persistErr = errors.Join(persistErr, s.persistUser())
	}

	snapshot := s.state.clone()
	for _, fn := range s.watchers {
		fn(snapshot, a)
	}

	if persistErr != nil {
		return fmt.Errorf("state updated but not saved: %w", persistErr)
	}
	return nil
}

func (s *Store) persistCart() error {
	return errors.Join(
		s.storage.Save(KeyCartItems, s.state.Cart.CartItems),
		s.storage.Save(KeyShippingAddress, s.state.Cart.ShippingAddress),
		s.storage.Save(KeyPaymentMethod, s.state.Cart.PaymentMethod),
	)
}

func (s *Store) persistUser() error {
	if s.state.User.UserInfo == nil {
		return s.storage.Remove(KeyUserInfo)
	}
	return s.storage.Save(KeyUserInfo, s.state.User.UserInfo)
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe registers fn to run after every dispatched action. The returned
// func removes it.
func (s *Store) Subscribe(fn func(State, Action)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.watchers[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.watchers, id)
		s.mu.Unlock()
	}
}

func (st State) clone() State {
	st.Cart = st.Cart.clone()
	requests := make(map[string]Request, len(st.Requests))
	for op, r := range st.Requests {
		requests[op] = r
	}
	st.Requests = requests
	return st
}
