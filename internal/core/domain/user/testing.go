package user

import (
	"context"
	"crypto/md5"
	c "fintrack/internal/core/domain/common"
	"fmt"
	"io"
	"sync"
)

type FakePasswordHasher struct {
	ReturnError bool
}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	if h.ReturnError {
		return PasswordHash(""), fmt.Errorf("could not hash password")
	}
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}

type FakeUserRepository struct {
	Users       []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{Users: make([]User, 0, 10)}
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email c.Email) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user %v", email)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) SetPassword(ctx context.Context, input SetPasswordInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not set password for %v", input.Email)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.Email == input.Email {
			r.Users[ix].PasswordHash = input.PasswordHash
			r.Users[ix].PasswordChangedAt = c.NewOptional(input.At, true)
			return r.Users[ix], nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) Delete(email c.Email) {
	r.lock.Lock()
	defer r.lock.Unlock()
	users := r.Users[:0]
	for _, u := range r.Users {
		if u.Email != email {
			users = append(users, u)
		}
	}
	r.Users = users
}
