package prompt

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamforge/internal/roster"
)

func samplePlayer() roster.Player {
	return roster.Player{
		Name:                "riser",
		Org:                 "Rising",
		Region:              "Japan",
		RoundsPlayed:        200,
		AverageCombatScore:  230.5,
		KillDeathRatio:      1.1,
		AverageDamagePerRnd: 150.2,
		KillsPerRound:       0.8,
		AssistsPerRound:     0.3,
		FirstKillsPerRound:  0.15,
		FirstDeathsPerRound: 0.1,
		HeadshotPct:         25.4,
		ClutchSuccessPct:    18,
		ClutchWonPlayed:     0.5,
		TotalKills:          160,
		TotalDeaths:         145,
		TotalAssists:        60,
		TotalFirstKills:     30,
		TotalFirstDeaths:    20,
		MapID:               "ascent",
		Agent:               "Viper",
	}
}

func TestBuild_PlayerBlockFields(t *testing.T) {
	out, err := Build(roster.SubmissionSemiProfessional, "", []roster.Player{samplePlayer()})
	require.NoError(t, err)

	for _, want := range []string{
		"Player Name: riser",
		"Organization: Rising",
		"Rounds Played: 200",
		"Average Combat Score: 230.5",
		"Kill/Death Ratio: 1.1",
		"Average Damage Per Round: 150.2",
		"Kills Per Round: 0.8",
		"Assists Per Round: 0.3",
		"First Kills Per Round: 0.15",
		"First Deaths Per Round: 0.1",
		"Headshot Percentage: 25.4%",
		"Clutch Success Percentage: 18%",
		"Clutches Won/Played: 0.50",
		"Total Kills: 160",
		"Total Deaths: 145",
		"Total Assists: 60",
		"Total First Kills: 30",
		"Total First Deaths: 20",
		"Map ID: ascent",
		"Agent: Viper (Sentinel)",
		"Region: JAPAN",
	} {
		assert.Contains(t, out, want)
	}
}

// The clutch ratio always renders with two decimals, regardless of input
// precision.
func TestBuild_ClutchRatioTwoDecimals(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.5, "Clutches Won/Played: 0.50"},
		{0.333333, "Clutches Won/Played: 0.33"},
		{1, "Clutches Won/Played: 1.00"},
	}
	for _, tt := range tests {
		p := samplePlayer()
		p.ClutchWonPlayed = tt.in
		out, err := Build(roster.SubmissionProfessional, "", []roster.Player{p})
		require.NoError(t, err)
		assert.Contains(t, out, tt.want)
	}
}

func TestBuild_MissingRegionIsUnknown(t *testing.T) {
	p := samplePlayer()
	p.Region = ""
	out, err := Build(roster.SubmissionProfessional, "", []roster.Player{p})
	require.NoError(t, err)
	assert.Contains(t, out, "Region: UNKNOWN")
}

func TestBuild_UnknownAgentRole(t *testing.T) {
	p := samplePlayer()
	p.Agent = "Harbor"
	out, err := Build(roster.SubmissionProfessional, "", []roster.Player{p})
	require.NoError(t, err)
	assert.Contains(t, out, "Agent: Harbor (Undefined)")
}

func TestBuild_EightPlayerBlocks(t *testing.T) {
	players := make([]roster.Player, 8)
	for i := range players {
		players[i] = samplePlayer()
	}

	out, err := Build(roster.SubmissionProfessional, "", players)
	require.NoError(t, err)

	assert.Equal(t, 8, strings.Count(out, "Player Name: "))
	assert.Equal(t, 8, strings.Count(out, "-----\n"))
	assert.Contains(t, out, "Team Submission Type: Professional Team Submission")
	assert.True(t, strings.HasSuffix(out,
		"5. Provide insights on team strategy and hypothesize team strengths and weaknesses.\n"),
		"prompt must end with the instruction list")
}

func TestBuild_Constraints(t *testing.T) {
	t.Run("included when present", func(t *testing.T) {
		out, err := Build(roster.SubmissionProfessional, "Prefer aggressive entry duelists.", []roster.Player{samplePlayer()})
		require.NoError(t, err)
		assert.Contains(t, out, "Additional Constraints: Prefer aggressive entry duelists.\n")
	})

	t.Run("omitted when empty", func(t *testing.T) {
		out, err := Build(roster.SubmissionProfessional, "", []roster.Player{samplePlayer()})
		require.NoError(t, err)
		assert.NotContains(t, out, "Additional Constraints:")
	})
}

func TestBuild_InstructionList(t *testing.T) {
	out, err := Build(roster.SubmissionProfessional, "", []roster.Player{samplePlayer()})
	require.NoError(t, err)

	for _, want := range []string{
		"1. Assign roles to each player on the team and explain their contribution.",
		"2. Specify Offensive vs. Defensive roles.",
		"3. Categorize each agent (Duelist, Sentinel, Controller, Initiator).",
		"4. Assign a team IGL (In-Game Leader) and explain their role as the primary strategist and shotcaller.",
		"5. Provide insights on team strategy and hypothesize team strengths and weaknesses.",
	} {
		assert.Contains(t, out, want)
	}
}

func TestBuild_NonFiniteNumberErrors(t *testing.T) {
	p := samplePlayer()
	p.KillDeathRatio = math.NaN()
	_, err := Build(roster.SubmissionProfessional, "", []roster.Player{p})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Kill/Death Ratio")

	p = samplePlayer()
	p.HeadshotPct = math.Inf(1)
	_, err = Build(roster.SubmissionProfessional, "", []roster.Player{p})
	assert.Error(t, err)
}

func TestBuild_Deterministic(t *testing.T) {
	players := []roster.Player{samplePlayer()}
	a, err := Build(roster.SubmissionRisingStar, "x", players)
	require.NoError(t, err)
	b, err := Build(roster.SubmissionRisingStar, "x", players)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
