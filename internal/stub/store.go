package stub

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Account is a registered user held by the stub backend. Passwords are
// bcrypt-hashed even here; the store never returns them.
type Account struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	passwordHash []byte
	CreatedAt    time.Time
	LastLogin    time.Time
}

// Store keeps accounts in memory, keyed by lower-cased email. Contents do
// not survive a restart; the stub exists for development and tests only.
type Store struct {
	mu      sync.RWMutex
	byEmail map[string]*Account
}

// NewStore builds an empty account store.
func NewStore() *Store {
	return &Store{byEmail: make(map[string]*Account)}
}

// Create registers a new account. The email is unique across the store.
func (s *Store) Create(firstName, lastName, email, password string) (Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, err
	}

	key := strings.ToLower(email)
	now := time.Now().UTC()
	account := &Account{
		ID:           uuid.NewString(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		passwordHash: hash,
		CreatedAt:    now,
		LastLogin:    now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[key]; exists {
		return Account{}, ErrEmailTaken
	}
	s.byEmail[key] = account
	return *account, nil
}

// Authenticate verifies the credentials and stamps a new last-login time.
// A missing account and a wrong password are indistinguishable to the
// caller.
func (s *Store) Authenticate(email, password string) (Account, error) {
	key := strings.ToLower(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.byEmail[key]
	if !ok {
		return Account{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(account.passwordHash, []byte(password)); err != nil {
		return Account{}, ErrInvalidCredentials
	}

	account.LastLogin = time.Now().UTC()
	return *account, nil
}

// Get looks up an account by ID.
func (s *Store) Get(id string) (Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, account := range s.byEmail {
		if account.ID == id {
			return *account, true
		}
	}
	return Account{}, false
}
