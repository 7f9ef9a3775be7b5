/* Copyright 2018-2019 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package bolt is a Storage implementation based on BoltDB.
package bolt

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Comcast/atn/core"
	"github.com/Comcast/atn/storage"

	"github.com/tliron/commonlog"
	bolt "go.etcd.io/bbolt"
)

var log = commonlog.GetLogger("atn.storage.bolt")

// Bucket holds the grammar descriptions, keyed by name.
var Bucket = []byte("grammars")

type Storage struct {
	filename string
	db       *bolt.DB
}

func NewStorage(filename string) (*Storage, error) {
	return &Storage{
		filename: filename,
	}, nil
}

func (s *Storage) Open(ctx context.Context) error {
	opts := &bolt.Options{
		Timeout: time.Second,
	}

	db, err := bolt.Open(s.filename, 0644, opts)
	if err != nil {
		return err
	}
	s.db = db
	return nil
}

func (s *Storage) Close(ctx context.Context) error {
	return s.db.Close()
}

func (s *Storage) Put(ctx context.Context, g *core.Grammar) error {
	log.Debugf("Put %s %s", g.Name, g.Version)

	js, err := json.Marshal(g)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(Bucket)
		if err != nil {
			return err
		}
		return b.Put([]byte(g.Name), js)
	})
}

func (s *Storage) Get(ctx context.Context, name string) (*core.Grammar, error) {
	log.Debugf("Get %s", name)

	var js []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(Bucket)
		if b == nil {
			return nil
		}
		if bs := b.Get([]byte(name)); bs != nil {
			// Only valid during the transaction.
			js = append([]byte(nil), bs...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if js == nil {
		return nil, &storage.NotFound{Name: name}
	}

	var g core.Grammar
	if err = json.Unmarshal(js, &g); err != nil {
		return nil, err
	}

	return &g, nil
}

func (s *Storage) List(ctx context.Context) ([]string, error) {
	names := make([]string, 0, 32)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(Bucket)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			names = append(names, string(k))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Debugf("List found %d grammars", len(names))

	return names, nil
}

func (s *Storage) Rem(ctx context.Context, name string) error {
	log.Debugf("Rem %s", name)
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(Bucket)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(name))
	})
}
