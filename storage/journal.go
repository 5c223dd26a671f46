// Package storage keeps an append-only journal of member join handling.
package storage

import (
	"DiscordBuddy/domain"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var memberJoinsBucket = []byte("member_joins")

type Journal struct {
	db *bolt.DB
}

func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, fmt.Errorf("create journal folder: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open journal %v: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(memberJoinsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Journal{db: db}, nil
}

// Record appends record. Duplicates are kept.
func (j *Journal) Record(record domain.JoinRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	return j.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(memberJoinsBucket)
		id, err := b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(itob(id), data)
	})
}

// Records returns every record in insertion order.
func (j *Journal) Records() ([]domain.JoinRecord, error) {
	var records []domain.JoinRecord
	err := j.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(memberJoinsBucket).ForEach(func(_, v []byte) error {
			var record domain.JoinRecord
			if err := json.Unmarshal(v, &record); err != nil {
				return err
			}
			records = append(records, record)
			return nil
		})
	})
	return records, err
}

func (j *Journal) Close() error {
	return j.db.Close()
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
