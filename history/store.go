// Package history keeps a per-product record of observed prices.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketName = []byte("price_history")

// Point is one observed price for a product on a given day.
type Point struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// Trend describes how the latest observed price compares to the one
// before it.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

const maxPoints = 90

// Store persists price points in a bbolt database keyed by product
// link. At most one point per calendar day is kept per product.
type Store struct {
	db *bolt.DB
}

func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open history db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Record appends today's price for the product, replacing an earlier
// observation from the same day and dropping points beyond maxPoints.
func (s *Store) Record(link string, price float64, at time.Time) error {
	day := at.Format("2006-01-02")

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)

		points, err := decodePoints(b.Get([]byte(link)))
		if err != nil {
			return err
		}

		if n := len(points); n > 0 && points[n-1].Date == day {
			points[n-1].Price = price
		} else {
			points = append(points, Point{Date: day, Price: price})
		}
		if len(points) > maxPoints {
			points = points[len(points)-maxPoints:]
		}

		raw, err := json.Marshal(points)
		if err != nil {
			return err
		}
		return b.Put([]byte(link), raw)
	})
}

// Points returns the stored history for a product, oldest first.
func (s *Store) Points(link string) ([]Point, error) {
	var points []Point
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		points, err = decodePoints(tx.Bucket(bucketName).Get([]byte(link)))
		return err
	})
	return points, err
}

// TrendOf compares the last two recorded points.
func TrendOf(points []Point) Trend {
	if len(points) < 2 {
		return TrendStable
	}
	last, prev := points[len(points)-1], points[len(points)-2]
	switch {
	case last.Price > prev.Price:
		return TrendUp
	case last.Price < prev.Price:
		return TrendDown
	default:
		return TrendStable
	}
}

func (s *Store) Close() error {
	return s.db.Close()
}

func decodePoints(raw []byte) ([]Point, error) {
	if raw == nil {
		return nil, nil
	}
	var points []Point
	if err := json.Unmarshal(raw, &points); err != nil {
		return nil, fmt.Errorf("corrupt history entry: %w", err)
	}
	return points, nil
}
