package roster

import "strings"

// ValidationError reports an unmet diversity requirement for a submission
// type. It is an input error: the pipeline halts before the remote call.
type ValidationError struct {
	Type   SubmissionType
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Validate checks the type-specific minimum-diversity conditions against a
// fetched player set. Types without an extra rule always pass.
func Validate(teamType SubmissionType, players []Player) error {
	switch teamType {
	case SubmissionMixedGender:
		count := 0
		for _, p := range players {
			if p.Org == "OrgZ" {
				count++
			}
		}
		if count < 1 {
			return &ValidationError{
				Type:   teamType,
				Reason: "Not enough players from underrepresented groups (OrgZ) to build a Mixed-Gender team.",
			}
		}
	case SubmissionCrossRegional:
		regions := make(map[string]struct{})
		for _, p := range players {
			if p.Region != "" {
				regions[strings.ToUpper(p.Region)] = struct{}{}
			}
		}
		if len(regions) < 3 {
			return &ValidationError{
				Type:   teamType,
				Reason: "Not enough players from different regions to build a Cross-Regional team.",
			}
		}
	}
	return nil
}
