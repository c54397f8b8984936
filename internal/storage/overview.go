package storage

import (
	"database/sql"

	"github.com/pable/go-lol-stats/internal/model"
)

// Overview summarises the whole store.
type Overview struct {
	Games         int
	Remakes       int
	UniquePlayers int
	Forfeits      int
	BlueWins      int
	Earliest      string
	Latest        string
}

// QueueCount is the number of stored games per queue.
type QueueCount struct {
	Queue    model.Queue
	Games    int
	Forfeits int
	AvgSec   float64
}

// ActivePlayer is a player with many stored games.
type ActivePlayer struct {
	PlayerID string
	Games    int
	Wins     int
}

// GetOverview returns store-wide counts and the creation date range.
func (db *DB) GetOverview() (Overview, error) {
	var ov Overview
	var earliest, latest sql.NullInt64
	err := db.conn.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(forfeit), 0),
		       COALESCE(SUM(CASE WHEN winner = 100 THEN 1 ELSE 0 END), 0),
		       MIN(creation), MAX(creation)
		FROM games`).Scan(&ov.Games, &ov.Forfeits, &ov.BlueWins, &earliest, &latest)
	if err != nil {
		return ov, err
	}
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM remakes`).Scan(&ov.Remakes); err != nil {
		return ov, err
	}
	if err := db.conn.QueryRow(`SELECT COUNT(DISTINCT player_id) FROM players`).Scan(&ov.UniquePlayers); err != nil {
		return ov, err
	}
	if earliest.Valid {
		ov.Earliest = model.FormatCreation(earliest.Int64)
		ov.Latest = model.FormatCreation(latest.Int64)
	}
	return ov, nil
}

// GetQueueCounts returns per-queue game counts, most played first.
func (db *DB) GetQueueCounts() ([]QueueCount, error) {
	rows, err := db.conn.Query(`
		SELECT queue, COUNT(*), SUM(forfeit), AVG(duration)
		FROM games GROUP BY queue ORDER BY COUNT(*) DESC, queue`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []QueueCount
	for rows.Next() {
		var c QueueCount
		var q int
		if err := rows.Scan(&q, &c.Games, &c.Forfeits, &c.AvgSec); err != nil {
			return nil, err
		}
		c.Queue = model.Queue(q)
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetTopPlayers returns the players with the most stored games.
func (db *DB) GetTopPlayers(limit int) ([]ActivePlayer, error) {
	rows, err := db.conn.Query(`
		SELECT player_id, COUNT(*), SUM(win)
		FROM players GROUP BY player_id
		ORDER BY COUNT(*) DESC, player_id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ActivePlayer
	for rows.Next() {
		var p ActivePlayer
		if err := rows.Scan(&p.PlayerID, &p.Games, &p.Wins); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
