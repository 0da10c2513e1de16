package connect

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Skotchmaster/buildmart/internal/store"
	"github.com/Skotchmaster/buildmart/internal/store/mongostore"
	"github.com/Skotchmaster/buildmart/internal/store/sqlstore"
)

type CloseFunc func(ctx context.Context) error

func noClose(context.Context) error { return nil }

// Open picks a driver from the URL scheme. On any failure it still returns a
// usable store.Unavailable together with the reason.
func Open(ctx context.Context, databaseURL, database string) (store.Store, CloseFunc, error) {
	s, closeFn, err := open(ctx, databaseURL, database)
	if err != nil {
		return store.Unavailable{Reason: err.Error()}, noClose, err
	}
	return s, closeFn, nil
}

func open(ctx context.Context, databaseURL, database string) (store.Store, CloseFunc, error) {
	switch {
	case databaseURL == "":
		return nil, nil, errors.New("DATABASE_URL is not set")

	case strings.HasPrefix(databaseURL, "mongodb://"), strings.HasPrefix(databaseURL, "mongodb+srv://"):
		s, err := mongostore.Open(ctx, databaseURL, database)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil

	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"),
		strings.HasPrefix(databaseURL, "sqlite://"):
		s, err := sqlstore.Open(ctx, databaseURL)
		if err != nil {
			return nil, nil, err
		}
		return s, func(context.Context) error { return s.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unsupported DATABASE_URL scheme")
	}
}
