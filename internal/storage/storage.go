package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dgraph-io/badger/v4"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/endgame"
)

var log = slog.Default().With("package", "storage")

// Storage keys
const (
	keyStats      = "stats"
	sessionPrefix = "session/"
)

// MaxNameLength is the longest accepted save name.
const MaxNameLength = 10

// GameStats counts finished games.
type GameStats struct {
	GamesPlayed int       `json:"games_played"`
	RedWins     int       `json:"red_wins"`
	BlueWins    int       `json:"blue_wins"`
	Draws       int       `json:"draws"`
	LastPlayed  time.Time `json:"last_played"`
}

// WinRate returns the share of games won by c as a percentage (0-100).
func (s *GameStats) WinRate(c board.Color) float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	wins := s.RedWins
	if c == board.Blue {
		wins = s.BlueWins
	}
	return float64(wins) / float64(s.GamesPlayed) * 100
}

// Result is the outcome of a finished game.
type Result struct {
	Status endgame.Status
	// Winner is only meaningful for Checkmate.
	Winner board.Color
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in the platform data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens the database in dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", dir, err)
	}
	log.Info("database opened", "dir", dir)
	return &Storage{db: db}, nil
}

// OpenInMemory opens a database that lives only as long as the process.
func OpenInMemory() (*Storage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ValidateName checks that name can be used as a save name.
func ValidateName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < 1 || n > MaxNameLength {
		return fmt.Errorf("%w: %q must be 1 to %d characters", ErrInvalidName, name, MaxNameLength)
	}
	if strings.ContainsAny(name, "/\\") {
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}
	return nil
}

func sessionKey(name string) []byte {
	return []byte(sessionPrefix + name)
}

// SaveSession stores a session snapshot under name, replacing any earlier save.
func (s *Storage) SaveSession(name string, data []byte) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(sessionKey(name), data)
	})
}

// LoadSession returns the snapshot saved under name.
func (s *Storage) LoadSession(name string) ([]byte, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sessionKey(name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrSessionNotFound, name)
		}
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	return data, err
}

// ListSessions returns the saved names in sorted order.
func (s *Storage) ListSessions() ([]string, error) {
	names := []string{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(sessionPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			key := string(it.Item().Key())
			names = append(names, strings.TrimPrefix(key, sessionPrefix))
		}
		return nil
	})
	sort.Strings(names)
	return names, err
}

// DeleteSession removes the save called name.
func (s *Storage) DeleteSession(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(sessionKey(name)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: %s", ErrSessionNotFound, name)
			}
			return err
		}
		return txn.Delete(sessionKey(name))
	})
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := &GameStats{}
	err := s.db.View(func(txn *badger.Txn) error {
		return readStats(txn, stats)
	})
	return stats, err
}

func readStats(txn *badger.Txn, stats *GameStats) error {
	item, err := txn.Get([]byte(keyStats))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, stats)
	})
}

// RecordResult adds a finished game to the statistics.
func (s *Storage) RecordResult(result Result) error {
	if !result.Status.IsOver() {
		return fmt.Errorf("record result: game is still %s", result.Status)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		stats := &GameStats{}
		if err := readStats(txn, stats); err != nil {
			return err
		}

		stats.GamesPlayed++
		stats.LastPlayed = time.Now()
		switch {
		case result.Status == endgame.Stalemate:
			stats.Draws++
		case result.Winner == board.Red:
			stats.RedWins++
		default:
			stats.BlueWins++
		}

		data, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		return txn.Set([]byte(keyStats), data)
	})
}
