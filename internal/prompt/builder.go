// Package prompt renders fetched player records into the natural-language
// prompt sent to the hosted agent. Rendering is deterministic: fields
// appear in a fixed order with fixed labels so identical inputs always
// produce an identical prompt.
package prompt

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"teamforge/internal/roster"
)

const instructions = `For each team composition, perform the following tasks:
1. Assign roles to each player on the team and explain their contribution.
2. Specify Offensive vs. Defensive roles.
3. Categorize each agent (Duelist, Sentinel, Controller, Initiator).
4. Assign a team IGL (In-Game Leader) and explain their role as the primary strategist and shotcaller.
5. Provide insights on team strategy and hypothesize team strengths and weaknesses.
`

// Build assembles the full prompt: one labeled block per player, the
// submission type, optional free-text constraints, and the fixed
// instruction list. Non-finite numeric fields are a formatting error, not
// something to coerce silently.
func Build(teamType roster.SubmissionType, additionalConstraints string, players []roster.Player) (string, error) {
	var sb strings.Builder
	sb.WriteString("Build a team for a VALORANT esports team based on the following player data:\n\n")

	for _, p := range players {
		block, err := playerBlock(p)
		if err != nil {
			return "", err
		}
		sb.WriteString(block)
	}

	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Team Submission Type: %s\n", teamType)

	if additionalConstraints != "" {
		fmt.Fprintf(&sb, "Additional Constraints: %s\n\n", additionalConstraints)
	}

	sb.WriteString(instructions)
	return sb.String(), nil
}

// playerBlock renders one player record. Every field is listed, percentage
// fields carry a trailing "%", the clutch ratio is fixed to two decimals,
// and the region label is uppercased with "UNKNOWN" standing in for a
// missing region.
func playerBlock(p roster.Player) (string, error) {
	for _, f := range []struct {
		label string
		value float64
	}{
		{"Average Combat Score", p.AverageCombatScore},
		{"Kill/Death Ratio", p.KillDeathRatio},
		{"Average Damage Per Round", p.AverageDamagePerRnd},
		{"Kills Per Round", p.KillsPerRound},
		{"Assists Per Round", p.AssistsPerRound},
		{"First Kills Per Round", p.FirstKillsPerRound},
		{"First Deaths Per Round", p.FirstDeathsPerRound},
		{"Headshot Percentage", p.HeadshotPct},
		{"Clutch Success Percentage", p.ClutchSuccessPct},
		{"Clutches Won/Played", p.ClutchWonPlayed},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return "", fmt.Errorf("player %q: %s is not a finite number", p.Name, f.label)
		}
	}

	role := roster.ClassifyAgent(p.Agent)
	region := "UNKNOWN"
	if p.Region != "" {
		region = strings.ToUpper(p.Region)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Player Name: %s\n", p.Name)
	fmt.Fprintf(&sb, "Organization: %s\n", p.Org)
	fmt.Fprintf(&sb, "Rounds Played: %d\n", p.RoundsPlayed)
	fmt.Fprintf(&sb, "Average Combat Score: %s\n", num(p.AverageCombatScore))
	fmt.Fprintf(&sb, "Kill/Death Ratio: %s\n", num(p.KillDeathRatio))
	fmt.Fprintf(&sb, "Average Damage Per Round: %s\n", num(p.AverageDamagePerRnd))
	fmt.Fprintf(&sb, "Kills Per Round: %s\n", num(p.KillsPerRound))
	fmt.Fprintf(&sb, "Assists Per Round: %s\n", num(p.AssistsPerRound))
	fmt.Fprintf(&sb, "First Kills Per Round: %s\n", num(p.FirstKillsPerRound))
	fmt.Fprintf(&sb, "First Deaths Per Round: %s\n", num(p.FirstDeathsPerRound))
	fmt.Fprintf(&sb, "Headshot Percentage: %s%%\n", num(p.HeadshotPct))
	fmt.Fprintf(&sb, "Clutch Success Percentage: %s%%\n", num(p.ClutchSuccessPct))
	fmt.Fprintf(&sb, "Clutches Won/Played: %.2f\n", p.ClutchWonPlayed)
	fmt.Fprintf(&sb, "Total Kills: %d\n", p.TotalKills)
	fmt.Fprintf(&sb, "Total Deaths: %d\n", p.TotalDeaths)
	fmt.Fprintf(&sb, "Total Assists: %d\n", p.TotalAssists)
	fmt.Fprintf(&sb, "Total First Kills: %d\n", p.TotalFirstKills)
	fmt.Fprintf(&sb, "Total First Deaths: %d\n", p.TotalFirstDeaths)
	fmt.Fprintf(&sb, "Map ID: %s\n", p.MapID)
	fmt.Fprintf(&sb, "Agent: %s (%s)\n", p.Agent, role)
	fmt.Fprintf(&sb, "Region: %s\n", region)
	sb.WriteString("-----\n")
	return sb.String(), nil
}

// num formats a statistic with the shortest decimal representation that
// round-trips, so 1.25 renders as "1.25" and 250 as "250".
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
