package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aquilax/blogboard/database"
	"github.com/klauspost/compress/zstd"
)

// record is one line of a backup file.
type record struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// exportDatabase writes every key of db to w as zstd compressed JSON lines.
func exportDatabase(db database.Database, w io.Writer) (int, error) {
	keys, err := db.Keys("")
	if err != nil {
		return 0, err
	}
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return 0, err
	}
	bw := bufio.NewWriter(enc)
	je := json.NewEncoder(bw)
	n := 0
	for _, key := range keys {
		value, err := db.Get(key)
		if err != nil {
			_ = enc.Close()
			return n, fmt.Errorf("export %s: %w", key, err)
		}
		if err := je.Encode(record{Key: key, Value: value}); err != nil {
			_ = enc.Close()
			return n, err
		}
		n++
	}
	if err := bw.Flush(); err != nil {
		_ = enc.Close()
		return n, err
	}
	return n, enc.Close()
}

// importDatabase restores the records written by exportDatabase, overwriting
// existing keys.
func importDatabase(db database.Database, r io.Reader) (int, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return 0, err
	}
	defer dec.Close()
	jd := json.NewDecoder(bufio.NewReader(dec))
	n := 0
	for {
		var rec record
		err := jd.Decode(&rec)
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("import record %d: %w", n+1, err)
		}
		if err := db.Set(rec.Key, rec.Value); err != nil {
			return n, fmt.Errorf("import %s: %w", rec.Key, err)
		}
		n++
	}
}
