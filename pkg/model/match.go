package model

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"doppelkopf-server/pkg/db"
	"doppelkopf-server/pkg/doppelkopf"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const matchColumns = `
matches.uuid,
matches.name,
matches.created_by,
matches.state,
matches.created,
matches.updated`

// Match is a record in the `matches` table. It owns the serialized game
// aggregate; all rule decisions happen on the Game object.
type Match struct {
	UUID      string    `json:"uuid"`
	Name      string    `json:"name"`
	CreatedBy int64     `json:"createdBy"`
	Created   time.Time `json:"created"`
	Updated   time.Time `json:"updated"`

	game *doppelkopf.Game
}

func getMatchByRow(row db.Scanner) (*Match, error) {
	var match Match
	var state []byte
	if err := row.Scan(&match.UUID, &match.Name, &match.CreatedBy, &state, &match.Created, &match.Updated); err != nil {
		return nil, err
	}

	var game doppelkopf.Game
	if err := json.Unmarshal(state, &game); err != nil {
		return nil, err
	}

	match.game = &game
	return &match, nil
}

// Game returns the deserialized game aggregate
func (m *Match) Game() *doppelkopf.Game {
	return m.game
}

// CreateMatch creates a new match owned by the player
func CreateMatch(ctx context.Context, player *Player, name string, maxPlayers int) (*Match, error) {
	game := doppelkopf.NewGame(player.ID, maxPlayers)
	state, err := json.Marshal(game)
	if err != nil {
		return nil, err
	}

	const query = `
INSERT INTO matches (uuid, name, created_by, state)
VALUES ($1, $2, $3, $4)
RETURNING ` + matchColumns

	row := db.Instance().QueryRowContext(ctx, query, uuid.New().String(), name, player.ID, state)
	match, err := getMatchByRow(row)
	if err != nil {
		if err, ok := err.(*pq.Error); ok && err.Code == pqDuplicateKeyErrorCode {
			return nil, ErrDuplicateKey
		}

		return nil, err
	}

	return match, nil
}

// GetMatchByUUID returns the match with the UUID
func GetMatchByUUID(ctx context.Context, id string) (*Match, error) {
	const query = `
SELECT ` + matchColumns + `
FROM matches
WHERE uuid = $1`

	row := db.Instance().QueryRowContext(ctx, query, id)
	return getMatchByRow(row)
}

// Save persists the current game state
func (m *Match) Save(ctx context.Context) error {
	state, err := json.Marshal(m.game)
	if err != nil {
		return err
	}

	const query = `
UPDATE matches
SET state = $1, updated = (NOW() AT TIME ZONE 'utc')
WHERE uuid = $2
RETURNING updated`

	var updated sql.NullTime
	if err := db.Instance().QueryRowContext(ctx, query, state, m.UUID).Scan(&updated); err != nil {
		return err
	}

	m.Updated = updated.Time
	return nil
}

// GetMatchesByPlayer returns the matches created by the player, newest first
func GetMatchesByPlayer(ctx context.Context, playerID int64, offset int64, limit int) ([]*Match, error) {
	const query = `
SELECT ` + matchColumns + `
FROM matches
WHERE created_by = $1
ORDER BY created DESC
OFFSET $2
LIMIT $3`

	rows, err := db.Instance().QueryContext(ctx, query, playerID, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*Match, 0)
	for rows.Next() {
		match, err := getMatchByRow(rows)
		if err != nil {
			return nil, err
		}

		matches = append(matches, match)
	}

	return matches, nil
}
