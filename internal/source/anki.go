// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"cmp"
	"context"
	"database/sql"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	_ "github.com/mattn/go-sqlite3"

	"github.com/ashklab/uworld-finder/internal/logging"
	"github.com/ashklab/uworld-finder/pkg/types"
)

// maxParams keeps IN (...) lists under SQLite's bound-parameter limit.
const maxParams = 500

// Collection reads notes from an Anki collection file. The file is opened
// read-only so a running Anki instance is never disturbed.
type Collection struct {
	db   *sql.DB
	path string
	sel  Selection
}

// OpenCollection opens the collection at path.
func OpenCollection(path string, sel Selection) (*Collection, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, "opening collection %s", path)
	}

	db, err := sql.Open("sqlite3", collectionDSN(path))
	if err != nil {
		return nil, errors.Wrapf(err, "opening collection %s", path)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "opening collection %s", path)
	}

	return &Collection{db: db, path: path, sel: sel}, nil
}

// Close releases the database connection.
func (c *Collection) Close() error {
	return c.db.Close()
}

// Records returns the selected notes, ordered by note ID. Note IDs that do
// not exist in the collection are skipped.
func (c *Collection) Records(ctx context.Context) ([]types.Record, error) {
	var (
		records []types.Record
		err     error
	)

	switch {
	case len(c.sel.NoteIDs) > 0:
		records, err = c.notesByID(ctx, c.sel.NoteIDs)
	case len(c.sel.CardIDs) > 0:
		var nids []int64
		nids, err = c.noteIDsForCards(ctx, c.sel.CardIDs)
		if err == nil {
			records, err = c.notesByID(ctx, nids)
		}
	default:
		records, err = c.queryNotes(ctx, `SELECT id, tags FROM notes ORDER BY id`)
	}
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, ErrNoSelection
	}
	logging.Logger.Debugw("loaded notes", "collection", c.path, "notes", len(records))
	return records, nil
}

func (c *Collection) notesByID(ctx context.Context, ids []int64) ([]types.Record, error) {
	ids = dedupe(ids)
	var records []types.Record
	for _, chunk := range chunks(ids) {
		rs, err := c.queryNotes(ctx,
			`SELECT id, tags FROM notes WHERE id IN (`+placeholders(len(chunk))+`) ORDER BY id`,
			anySlice(chunk)...)
		if err != nil {
			return nil, err
		}
		records = append(records, rs...)
	}

	if missing := len(ids) - len(records); missing > 0 {
		logging.Logger.Debugw("selected notes not found", "collection", c.path, "missing", missing)
	}
	slices.SortFunc(records, func(a, b types.Record) int { return cmp.Compare(a.ID, b.ID) })
	return records, nil
}

func (c *Collection) noteIDsForCards(ctx context.Context, cardIDs []int64) ([]int64, error) {
	var nids []int64
	for _, chunk := range chunks(dedupe(cardIDs)) {
		rows, err := c.db.QueryContext(ctx,
			`SELECT DISTINCT nid FROM cards WHERE id IN (`+placeholders(len(chunk))+`)`,
			anySlice(chunk)...)
		if err != nil {
			return nil, errors.Wrap(err, "resolving cards to notes")
		}
		for rows.Next() {
			var nid int64
			if err := rows.Scan(&nid); err != nil {
				rows.Close()
				return nil, errors.Wrap(err, "scanning card note ID")
			}
			nids = append(nids, nid)
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, errors.Wrap(err, "resolving cards to notes")
		}
	}
	return dedupe(nids), nil
}

func (c *Collection) queryNotes(ctx context.Context, query string, args ...any) ([]types.Record, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying notes")
	}
	defer rows.Close()

	var records []types.Record
	for rows.Next() {
		var (
			id   int64
			tags string
		)
		if err := rows.Scan(&id, &tags); err != nil {
			return nil, errors.Wrap(err, "scanning note")
		}
		records = append(records, types.Record{ID: id, Tags: SplitTags(tags)})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "querying notes")
	}
	return records, nil
}

// collectionDSN builds a read-only SQLite URI for path. Anki profile
// directories routinely contain spaces, so the path is escaped.
func collectionDSN(path string) string {
	p := filepath.ToSlash(path)
	if filepath.IsAbs(path) && !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{Scheme: "file", RawQuery: "mode=ro&_busy_timeout=5000"}
	if strings.HasPrefix(p, "/") {
		u.Path = p
	} else {
		u.Opaque = (&url.URL{Path: p}).EscapedPath()
	}
	return u.String()
}

// SplitTags parses the notes.tags column. Anki stores tags as one
// space-separated string padded with a space on each side.
func SplitTags(s string) []string {
	return strings.Fields(s)
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func anySlice(ids []int64) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}

func chunks(ids []int64) [][]int64 {
	var out [][]int64
	for len(ids) > maxParams {
		out = append(out, ids[:maxParams])
		ids = ids[maxParams:]
	}
	if len(ids) > 0 {
		out = append(out, ids)
	}
	return out
}

// dedupe returns ids without repeats, keeping first-seen order.
func dedupe(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
