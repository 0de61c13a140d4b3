package roster

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Store reads players from the SQLite database. Each call opens its own
// connection and releases it before returning; the tool is interactive and
// low-concurrency, so there is no pooling across calls.
type Store struct {
	path   string
	logger *zap.Logger
}

// NewStore returns a Store for the database at path. The file is not
// touched until the first call.
func NewStore(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{path: path, logger: logger}
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

func (s *Store) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		s.logger.Debug("failed to set sqlite busy_timeout", zap.Error(err))
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		s.logger.Debug("failed to set sqlite journal_mode=WAL", zap.Error(err))
	}
	return db, nil
}

// FetchPlayers executes the fixed filter query bound to teamType and
// returns the matching records. An unrecognized type returns
// ErrUnknownSubmissionType and an empty filter result returns ErrNoPlayers;
// both halt the pipeline before any remote call is spent.
func (s *Store) FetchPlayers(ctx context.Context, teamType SubmissionType) ([]Player, error) {
	query, ok := submissionQueries[teamType]
	if !ok {
		s.logger.Warn("unknown submission type", zap.String("team_type", string(teamType)))
		return nil, ErrUnknownSubmissionType
	}

	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		s.logger.Error("player query failed",
			zap.String("team_type", string(teamType)),
			zap.Error(err))
		return nil, fmt.Errorf("query players: %w", err)
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan player row: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate player rows: %w", err)
	}

	if len(players) == 0 {
		s.logger.Info("no players matched filter", zap.String("team_type", string(teamType)))
		return nil, ErrNoPlayers
	}

	s.logger.Debug("fetched players",
		zap.String("team_type", string(teamType)),
		zap.Int("count", len(players)))
	return players, nil
}

func scanPlayer(rows *sql.Rows) (Player, error) {
	var p Player
	var region sql.NullString
	err := rows.Scan(
		&p.Name, &p.Org, &region, &p.RoundsPlayed,
		&p.AverageCombatScore, &p.KillDeathRatio, &p.AverageDamagePerRnd,
		&p.KillsPerRound, &p.AssistsPerRound,
		&p.FirstKillsPerRound, &p.FirstDeathsPerRound,
		&p.HeadshotPct, &p.ClutchSuccessPct, &p.ClutchWonPlayed,
		&p.TotalKills, &p.TotalDeaths, &p.TotalAssists,
		&p.TotalFirstKills, &p.TotalFirstDeaths,
		&p.MapID, &p.Agent,
	)
	if err != nil {
		return Player{}, err
	}
	if region.Valid {
		p.Region = region.String
	}
	return p, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS players (
	player TEXT NOT NULL,
	org TEXT NOT NULL,
	region TEXT,
	rds INTEGER NOT NULL DEFAULT 0,
	average_combat_score REAL NOT NULL DEFAULT 0,
	kill_deaths REAL NOT NULL DEFAULT 0,
	average_damage_per_round REAL NOT NULL DEFAULT 0,
	kills_per_round REAL NOT NULL DEFAULT 0,
	assists_per_round REAL NOT NULL DEFAULT 0,
	first_kills_per_round REAL NOT NULL DEFAULT 0,
	first_deaths_per_round REAL NOT NULL DEFAULT 0,
	headshot_percentage REAL NOT NULL DEFAULT 0,
	clutch_success_percentage REAL NOT NULL DEFAULT 0,
	clutch_won_played REAL NOT NULL DEFAULT 0,
	total_kills INTEGER NOT NULL DEFAULT 0,
	total_deaths INTEGER NOT NULL DEFAULT 0,
	total_assists INTEGER NOT NULL DEFAULT 0,
	total_first_kills INTEGER NOT NULL DEFAULT 0,
	total_first_deaths INTEGER NOT NULL DEFAULT 0,
	map_id TEXT NOT NULL DEFAULT '',
	agent TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_players_org ON players(org);
CREATE INDEX IF NOT EXISTS idx_players_region ON players(region);
`

// InitSchema creates the players table if it does not exist.
func (s *Store) InitSchema(ctx context.Context) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

const insertPlayer = `INSERT INTO players (
	player, org, region, rds,
	average_combat_score, kill_deaths, average_damage_per_round,
	kills_per_round, assists_per_round,
	first_kills_per_round, first_deaths_per_round,
	headshot_percentage, clutch_success_percentage, clutch_won_played,
	total_kills, total_deaths, total_assists,
	total_first_kills, total_first_deaths,
	map_id, agent
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// InsertPlayers adds records to the players table in one transaction.
func (s *Store) InsertPlayers(ctx context.Context, players []Player) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertPlayer)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range players {
		var region any
		if p.Region != "" {
			region = p.Region
		}
		_, err := stmt.ExecContext(ctx,
			p.Name, p.Org, region, p.RoundsPlayed,
			p.AverageCombatScore, p.KillDeathRatio, p.AverageDamagePerRnd,
			p.KillsPerRound, p.AssistsPerRound,
			p.FirstKillsPerRound, p.FirstDeathsPerRound,
			p.HeadshotPct, p.ClutchSuccessPct, p.ClutchWonPlayed,
			p.TotalKills, p.TotalDeaths, p.TotalAssists,
			p.TotalFirstKills, p.TotalFirstDeaths,
			p.MapID, p.Agent,
		)
		if err != nil {
			return fmt.Errorf("insert player %q: %w", p.Name, err)
		}
	}
	return tx.Commit()
}

// ImportCSV creates the schema if needed and loads player rows from a CSV
// file whose columns match the players table in order, with a header row.
// It returns the number of imported rows.
func (s *Store) ImportCSV(ctx context.Context, csvPath string) (int, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return 0, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	if err := s.InitSchema(ctx); err != nil {
		return 0, err
	}

	r := csv.NewReader(f)
	r.FieldsPerRecord = 21

	// Skip header.
	if _, err := r.Read(); err != nil {
		return 0, fmt.Errorf("read csv header: %w", err)
	}

	var players []Player
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("read csv row: %w", err)
		}
		p, err := playerFromRecord(record)
		if err != nil {
			return 0, err
		}
		players = append(players, p)
	}

	if err := s.InsertPlayers(ctx, players); err != nil {
		return 0, err
	}
	s.logger.Info("imported players",
		zap.String("csv", csvPath),
		zap.Int("count", len(players)))
	return len(players), nil
}

func playerFromRecord(record []string) (Player, error) {
	var parseErr error
	intCol := func(i int) int64 {
		if parseErr != nil || record[i] == "" {
			return 0
		}
		v, err := strconv.ParseInt(record[i], 10, 64)
		if err != nil {
			parseErr = fmt.Errorf("column %d: %w", i+1, err)
		}
		return v
	}
	floatCol := func(i int) float64 {
		if parseErr != nil || record[i] == "" {
			return 0
		}
		v, err := strconv.ParseFloat(record[i], 64)
		if err != nil {
			parseErr = fmt.Errorf("column %d: %w", i+1, err)
		}
		return v
	}

	p := Player{
		Name:                record[0],
		Org:                 record[1],
		Region:              record[2],
		RoundsPlayed:        intCol(3),
		AverageCombatScore:  floatCol(4),
		KillDeathRatio:      floatCol(5),
		AverageDamagePerRnd: floatCol(6),
		KillsPerRound:       floatCol(7),
		AssistsPerRound:     floatCol(8),
		FirstKillsPerRound:  floatCol(9),
		FirstDeathsPerRound: floatCol(10),
		HeadshotPct:         floatCol(11),
		ClutchSuccessPct:    floatCol(12),
		ClutchWonPlayed:     floatCol(13),
		TotalKills:          intCol(14),
		TotalDeaths:         intCol(15),
		TotalAssists:        intCol(16),
		TotalFirstKills:     intCol(17),
		TotalFirstDeaths:    intCol(18),
		MapID:               record[19],
		Agent:               record[20],
	}
	if parseErr != nil {
		return Player{}, fmt.Errorf("parse csv row for %q: %w", record[0], parseErr)
	}
	return p, nil
}
