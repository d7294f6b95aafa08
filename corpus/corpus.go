// Copyright 2023 Sneller, Inc.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

// Package corpus stores the text of generated
// queries in compressed append-only logs, so
// that suppressed queries can be replayed or
// triaged after a generation run.
package corpus

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/crypto/blake2b"
)

// Entry is one recorded query.
type Entry struct {
	// ID is the query's generation-run ID.
	ID uuid.UUID
	// Rule is the name of the filter rule that
	// suppressed the query, or the empty string.
	Rule string
	// Text is the query text. Callers that log
	// queries built over sensitive data should
	// record the redacted text.
	Text string
}

// ContentID returns a stable identifier for
// query text, independent of the generated
// query ID.
func ContentID(text string) string {
	h := blake2b.Sum256([]byte(text))
	return base64.URLEncoding.EncodeToString(h[:])
}

// Writer appends entries to a zstd-compressed
// log. Entries whose text has already been
// written are dropped.
type Writer struct {
	zw   *zstd.Encoder
	seen map[string]struct{}
}

// NewWriter returns a Writer that writes
// a compressed log to dst.
func NewWriter(dst io.Writer) (*Writer, error) {
	zw, err := zstd.NewWriter(dst)
	if err != nil {
		return nil, err
	}
	return &Writer{
		zw:   zw,
		seen: make(map[string]struct{}),
	}, nil
}

// Append records e unless an entry with
// identical text has already been written.
// It reports whether the entry was written.
func (w *Writer) Append(e *Entry) (bool, error) {
	if strings.ContainsRune(e.Text, '\n') {
		return false, fmt.Errorf("corpus: query text %q spans multiple lines", e.Text)
	}
	if strings.ContainsAny(e.Rule, "\t\n") {
		return false, fmt.Errorf("corpus: bad rule name %q", e.Rule)
	}
	cid := ContentID(e.Text)
	if _, ok := w.seen[cid]; ok {
		return false, nil
	}
	w.seen[cid] = struct{}{}
	_, err := io.WriteString(w.zw, e.ID.String()+"\t"+e.Rule+"\t"+e.Text+"\n")
	if err != nil {
		return false, err
	}
	return true, nil
}

// Close flushes and closes the compressed stream.
// The underlying writer is not closed.
func (w *Writer) Close() error {
	return w.zw.Close()
}

// Reader iterates the entries of a log
// produced by a Writer.
type Reader struct {
	zr *zstd.Decoder
	sc *bufio.Scanner
}

// NewReader returns a Reader that reads
// a compressed log from src.
func NewReader(src io.Reader) (*Reader, error) {
	zr, err := zstd.NewReader(src)
	if err != nil {
		return nil, err
	}
	return &Reader{zr: zr, sc: bufio.NewScanner(zr)}, nil
}

// Next returns the next entry in the log,
// or io.EOF when the log is exhausted.
func (r *Reader) Next() (*Entry, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	line := r.sc.Text()
	fields := strings.SplitN(line, "\t", 3)
	if len(fields) != 3 {
		return nil, fmt.Errorf("corpus: malformed entry %q", line)
	}
	id, err := uuid.Parse(fields[0])
	if err != nil {
		return nil, fmt.Errorf("corpus: malformed entry id: %w", err)
	}
	return &Entry{ID: id, Rule: fields[1], Text: fields[2]}, nil
}

// Close releases the decoder.
func (r *Reader) Close() {
	r.zr.Close()
}
