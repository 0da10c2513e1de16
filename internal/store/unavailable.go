package store

import "context"

// Unavailable stands in when no connection could be established at startup.
type Unavailable struct {
	Reason string
}

func (u Unavailable) Create(context.Context, string, any) (string, error) { return "", ErrUnavailable }

func (u Unavailable) Find(context.Context, string, string, any) error { return ErrUnavailable }

func (u Unavailable) Query(context.Context, string, Filter, any) error { return ErrUnavailable }

func (u Unavailable) Count(context.Context, string) (int64, error) { return 0, ErrUnavailable }

func (u Unavailable) InsertMany(context.Context, string, []any) ([]string, error) {
	return nil, ErrUnavailable
}

func (u Unavailable) Collections(context.Context) ([]string, error) { return nil, ErrUnavailable }

func (u Unavailable) Name() string { return "" }

func IsAvailable(s Store) bool {
	switch s.(type) {
	case nil, Unavailable, *Unavailable:
		return false
	}
	return true
}
