package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pable/go-lol-stats/internal/model"
)

// AppendBatch writes the games, player rows and remakes of one ingestion run
// in a single transaction. Rows already present are left untouched; any
// constraint failure rolls the whole batch back.
func (db *DB) AppendBatch(ctx context.Context, b model.Batch) error {
	if b.Empty() {
		return nil
	}
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	gameStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO games(game_id, queue, duration, winner, forfeit, creation)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(game_id) DO NOTHING`)
	if err != nil {
		return err
	}
	defer gameStmt.Close()
	for _, g := range b.Games {
		if _, err := gameStmt.ExecContext(ctx, g.ID, int(g.Queue), g.Duration, g.Winner.Code(), boolInt(g.Forfeit), g.Creation); err != nil {
			return fmt.Errorf("insert game %s: %w", g.ID, err)
		}
	}

	playerStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO players(game_id, player_id, champion_id, win)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(game_id, player_id) DO NOTHING`)
	if err != nil {
		return err
	}
	defer playerStmt.Close()
	for _, p := range b.Players {
		if _, err := playerStmt.ExecContext(ctx, p.GameID, p.PlayerID, p.ChampionID, boolInt(p.Win)); err != nil {
			return fmt.Errorf("insert player %s/%s: %w", p.GameID, p.PlayerID, err)
		}
	}

	remakeStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO remakes(game_id, queue, duration, creation)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(game_id) DO NOTHING`)
	if err != nil {
		return err
	}
	defer remakeStmt.Close()
	for _, r := range b.Remakes {
		if _, err := remakeStmt.ExecContext(ctx, r.ID, int(r.Queue), r.Duration, r.Creation); err != nil {
			return fmt.Errorf("insert remake %s: %w", r.ID, err)
		}
	}
	return tx.Commit()
}

// GamesForPlayer returns every stored game the player took part in, plus all
// participant rows of those games.
func (db *DB) GamesForPlayer(ctx context.Context, playerID string) (*model.Snapshot, error) {
	games, err := scanGames(db.conn.QueryContext(ctx, `
		SELECT g.game_id, g.queue, g.duration, g.winner, g.forfeit, g.creation
		FROM games g JOIN players p ON p.game_id = g.game_id
		WHERE p.player_id = ?
		ORDER BY g.creation`, playerID))
	if err != nil {
		return nil, fmt.Errorf("games for %s: %w", playerID, err)
	}
	players, err := scanPlayers(db.conn.QueryContext(ctx, `
		SELECT p.game_id, p.player_id, p.champion_id, p.win
		FROM players p
		WHERE p.game_id IN (SELECT game_id FROM players WHERE player_id = ?)
		ORDER BY p.game_id, p.player_id`, playerID))
	if err != nil {
		return nil, fmt.Errorf("players for %s: %w", playerID, err)
	}
	return &model.Snapshot{Games: games, Players: players}, nil
}

// ListGames returns stored games, newest first. limit <= 0 means all.
func (db *DB) ListGames(limit int) ([]model.Game, error) {
	q := `SELECT game_id, queue, duration, winner, forfeit, creation FROM games ORDER BY creation DESC`
	if limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", limit)
	}
	return scanGames(db.conn.Query(q))
}

// GetGameByPrefix finds the first game whose id starts with prefix, with its
// player rows. It returns nil when nothing matches.
func (db *DB) GetGameByPrefix(prefix string) (*model.Game, []model.PlayerGame, error) {
	games, err := scanGames(db.conn.Query(`
		SELECT game_id, queue, duration, winner, forfeit, creation
		FROM games WHERE game_id LIKE ? ORDER BY game_id LIMIT 1`, prefix+"%"))
	if err != nil {
		return nil, nil, err
	}
	if len(games) == 0 {
		return nil, nil, nil
	}
	players, err := scanPlayers(db.conn.Query(`
		SELECT game_id, player_id, champion_id, win
		FROM players WHERE game_id = ? ORDER BY win DESC, player_id`, games[0].ID))
	if err != nil {
		return nil, nil, err
	}
	return &games[0], players, nil
}

// QueryRaw runs an arbitrary query and returns column names and stringified rows.
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}
	var out [][]string
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			switch x := v.(type) {
			case nil:
				row[i] = "NULL"
			case []byte:
				row[i] = string(x)
			default:
				row[i] = fmt.Sprint(x)
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

func scanGames(rows *sql.Rows, err error) ([]model.Game, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Game
	for rows.Next() {
		var g model.Game
		var queue, winner, forfeit int
		if err := rows.Scan(&g.ID, &queue, &g.Duration, &winner, &forfeit, &g.Creation); err != nil {
			return nil, err
		}
		side, err := model.SideFromCode(winner)
		if err != nil {
			return nil, fmt.Errorf("game %s: %w", g.ID, err)
		}
		g.Queue = model.Queue(queue)
		g.Winner = side
		g.Forfeit = forfeit != 0
		out = append(out, g)
	}
	return out, rows.Err()
}

func scanPlayers(rows *sql.Rows, err error) ([]model.PlayerGame, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PlayerGame
	for rows.Next() {
		var p model.PlayerGame
		var win int
		if err := rows.Scan(&p.GameID, &p.PlayerID, &p.ChampionID, &win); err != nil {
			return nil, err
		}
		p.Win = win != 0
		out = append(out, p)
	}
	return out, rows.Err()
}
