package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	domain "github.com/aq2208/gstore-api/internal/entity"
	"github.com/aq2208/gstore-api/internal/logging"
	"github.com/aq2208/gstore-api/internal/security"
	"github.com/aq2208/gstore-api/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingFields      = errors.New("missing required fields")
)

// Auth simulates a login session: the signed-in user lives under the "user"
// storage key and nothing is verified server side beyond the hardcoded accounts.
type Auth struct {
	ls  storage.LocalStorage
	now func() time.Time
	log *slog.Logger
}

func NewAuth(ls storage.LocalStorage) *Auth {
	return &Auth{ls: ls, now: time.Now, log: logging.New("auth")}
}

func (a *Auth) Login(ctx context.Context, email, password string) (domain.User, error) {
	acc, ok := security.Authenticate(strings.TrimSpace(email), password)
	if !ok {
		return domain.User{}, ErrInvalidCredentials
	}
	u := domain.User{ID: acc.ID, Email: acc.Email, Name: acc.Name}
	return u, a.save(ctx, u)
}

// Register accepts any complete form; the id is the current time in millis.
func (a *Auth) Register(ctx context.Context, name, email, password string) (domain.User, error) {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return domain.User{}, ErrMissingFields
	}
	u := domain.User{ID: a.now().UnixMilli(), Email: email, Name: name}
	return u, a.save(ctx, u)
}

func (a *Auth) Logout(ctx context.Context) error {
	if err := a.ls.RemoveItem(ctx, storage.KeyUser); err != nil {
		return fmt.Errorf("remove user: %w", err)
	}
	return nil
}

// Current returns the signed-in user. A malformed entry reads as signed out.
func (a *Auth) Current(ctx context.Context) (domain.User, bool, error) {
	raw, ok, err := a.ls.GetItem(ctx, storage.KeyUser)
	if err != nil || !ok {
		return domain.User{}, false, err
	}
	var u domain.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil || u.Email == "" {
		a.log.Warn("ignoring saved user", "err", err)
		return domain.User{}, false, nil
	}
	return u, true, nil
}

func (a *Auth) save(ctx context.Context, u domain.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	if err := a.ls.SetItem(ctx, storage.KeyUser, string(b)); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}
