package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pable/go-lol-stats/internal/model"
)

// insertChunk bounds the number of rows per multi-row INSERT.
const insertChunk = 400

// Partition splits candidate ids into those already stored (as a game or a
// remake) and those that need fetching, and returns the stored game and player
// rows for the present ids.
//
// The candidate set lives in a temp table created inside a read transaction
// that is always rolled back, so the working set disappears on every exit path.
// Duplicate candidates collapse; output preserves first-seen order.
func (db *DB) Partition(ctx context.Context, ids []string) (*model.Partition, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS temp.matchlist`); err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `CREATE TEMP TABLE matchlist (game_id TEXT PRIMARY KEY, pos INTEGER NOT NULL)`); err != nil {
		return nil, fmt.Errorf("create matchlist: %w", err)
	}

	for start := 0; start < len(ids); start += insertChunk {
		end := min(start+insertChunk, len(ids))
		args := make([]any, 0, 2*(end-start))
		for i, id := range ids[start:end] {
			args = append(args, id, start+i)
		}
		q := `INSERT OR IGNORE INTO temp.matchlist(game_id, pos) VALUES ` + placeholders(end-start, 2)
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return nil, fmt.Errorf("fill matchlist: %w", err)
		}
	}

	p := &model.Partition{}
	if p.Present, err = queryIDs(ctx, tx, `
		SELECT m.game_id FROM temp.matchlist m
		WHERE EXISTS (SELECT 1 FROM games g WHERE g.game_id = m.game_id)
		   OR EXISTS (SELECT 1 FROM remakes r WHERE r.game_id = m.game_id)
		ORDER BY m.pos`); err != nil {
		return nil, fmt.Errorf("present ids: %w", err)
	}
	if p.Missing, err = queryIDs(ctx, tx, `
		SELECT m.game_id FROM temp.matchlist m
		LEFT JOIN games g ON g.game_id = m.game_id
		LEFT JOIN remakes r ON r.game_id = m.game_id
		WHERE g.game_id IS NULL AND r.game_id IS NULL
		ORDER BY m.pos`); err != nil {
		return nil, fmt.Errorf("missing ids: %w", err)
	}
	if p.Games, err = scanGames(tx.QueryContext(ctx, `
		SELECT g.game_id, g.queue, g.duration, g.winner, g.forfeit, g.creation
		FROM games g JOIN temp.matchlist m ON m.game_id = g.game_id
		ORDER BY m.pos`)); err != nil {
		return nil, fmt.Errorf("preexisting games: %w", err)
	}
	if p.Players, err = scanPlayers(tx.QueryContext(ctx, `
		SELECT p.game_id, p.player_id, p.champion_id, p.win
		FROM players p JOIN temp.matchlist m ON m.game_id = p.game_id
		ORDER BY m.pos, p.player_id`)); err != nil {
		return nil, fmt.Errorf("preexisting players: %w", err)
	}
	return p, nil
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func queryIDs(ctx context.Context, q queryer, query string, args ...any) ([]string, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// placeholders returns n comma-separated value tuples of width cols, e.g. "(?,?),(?,?)".
func placeholders(n, cols int) string {
	tuple := "(" + strings.TrimSuffix(strings.Repeat("?,", cols), ",") + ")"
	return strings.TrimSuffix(strings.Repeat(tuple+",", n), ",")
}
