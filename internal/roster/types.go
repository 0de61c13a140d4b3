// Package roster provides access to the local VALORANT player database:
// the fixed submission-type catalog with its filter queries, the player
// record type, the diversity validation rules, and the agent role tables.
package roster

import "errors"

// SubmissionType is one of the six fixed categories of team request.
// The set is closed; it is never extended at runtime.
type SubmissionType string

const (
	SubmissionProfessional     SubmissionType = "Professional Team Submission"
	SubmissionSemiProfessional SubmissionType = "Semi-Professional Team Submission"
	SubmissionGameChangers     SubmissionType = "Game Changers Team Submission"
	SubmissionMixedGender      SubmissionType = "Mixed-Gender Team Submission"
	SubmissionCrossRegional    SubmissionType = "Cross-Regional Team Submission"
	SubmissionRisingStar       SubmissionType = "Rising Star Team Submission"
)

// SubmissionTypes lists all submission types in display order.
var SubmissionTypes = []SubmissionType{
	SubmissionProfessional,
	SubmissionSemiProfessional,
	SubmissionGameChangers,
	SubmissionMixedGender,
	SubmissionCrossRegional,
	SubmissionRisingStar,
}

// submissionQueries maps each submission type to its fixed filter query.
// Rising Star and Semi-Professional intentionally share the same filter;
// the distinction lives in the prompt, not the player pool.
var submissionQueries = map[SubmissionType]string{
	SubmissionProfessional: `SELECT * FROM players
		WHERE org IN ('Ascend', 'Mystic', 'Legion', 'Phantom', 'Rising', 'Nebula', 'OrgZ', 'T1A')`,
	SubmissionSemiProfessional: `SELECT * FROM players
		WHERE org = 'Rising'`,
	SubmissionGameChangers: `SELECT * FROM players
		WHERE org = 'OrgZ'`,
	SubmissionMixedGender: `SELECT * FROM players
		WHERE org = 'OrgZ'
		LIMIT 1`,
	SubmissionCrossRegional: `SELECT * FROM players
		WHERE region IN ('Japan', 'Russia', 'China', 'ME', 'LATAM')
		LIMIT 3`,
	SubmissionRisingStar: `SELECT * FROM players
		WHERE org = 'Rising'`,
}

// Sentinel errors for the input-error taxonomy. Callers are expected to
// halt the pipeline before the remote call when they see one of these.
var (
	ErrUnknownSubmissionType = errors.New("invalid team submission type selected")
	ErrNoPlayers             = errors.New("no players found matching the selected criteria")
)

// Player is one row of the players table. Records are immutable once
// fetched and are discarded after the prompt is built.
type Player struct {
	Name                string  // player
	Org                 string  // org
	Region              string  // region; empty when NULL in the store
	RoundsPlayed        int64   // rds
	AverageCombatScore  float64 // average_combat_score
	KillDeathRatio      float64 // kill_deaths
	AverageDamagePerRnd float64 // average_damage_per_round
	KillsPerRound       float64 // kills_per_round
	AssistsPerRound     float64 // assists_per_round
	FirstKillsPerRound  float64 // first_kills_per_round
	FirstDeathsPerRound float64 // first_deaths_per_round
	HeadshotPct         float64 // headshot_percentage
	ClutchSuccessPct    float64 // clutch_success_percentage
	ClutchWonPlayed     float64 // clutch_won_played
	TotalKills          int64   // total_kills
	TotalDeaths         int64   // total_deaths
	TotalAssists        int64   // total_assists
	TotalFirstKills     int64   // total_first_kills
	TotalFirstDeaths    int64   // total_first_deaths
	MapID               string  // map_id
	Agent               string  // agent
}
