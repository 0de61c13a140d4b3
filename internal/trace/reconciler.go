// Package trace regroups the loosely-structured diagnostics returned by
// the agent runtime into ordered display groups. Grouping is best effort:
// entries that don't match the expected shape are counted and dropped,
// never fatal.
package trace

import (
	"encoding/json"
	"fmt"
	"strings"
)

// sections is the top-level phase taxonomy in display order.
var sections = []struct {
	Name   string
	Phases []string
}{
	{"Pre-Processing", []string{"preGuardrailTrace", "preProcessingTrace"}},
	{"Orchestration", []string{"orchestrationTrace"}},
	{"Post-Processing", []string{"postProcessingTrace", "postGuardrailTrace"}},
}

// phaseFields maps each phase with a known schema to the ordered list of
// inner fields that may carry the correlation id. First present field
// wins. Phases absent from this map (the guardrail variants) group each
// entry by its own top-level traceId instead.
var phaseFields = map[string][]string{
	"preProcessingTrace":  {"modelInvocationInput", "modelInvocationOutput"},
	"orchestrationTrace":  {"invocationInput", "modelInvocationInput", "modelInvocationOutput", "observation", "rationale"},
	"postProcessingTrace": {"modelInvocationInput", "modelInvocationOutput", "observation"},
}

// StepGroup is one numbered display group: the entries of a single logical
// step, correlated by trace id within one phase.
type StepGroup struct {
	Section string
	Phase   string
	Number  int
	TraceID string
	Entries []map[string]any
}

// Result carries the ordered groups plus the count of entries that
// matched no expected field and were excluded from grouping.
type Result struct {
	Steps   []StepGroup
	Dropped int
}

// Reconcile regroups the accumulated trace mapping. Steps are numbered
// sequentially across all phases in taxonomy order; within a phase,
// groups keep the order in which their trace id was first seen.
func Reconcile(traceData map[string][]map[string]any) Result {
	var res Result
	step := 1

	for _, section := range sections {
		for _, phase := range section.Phases {
			entries, ok := traceData[phase]
			if !ok {
				continue
			}

			var order []string
			groups := make(map[string][]map[string]any)

			for _, entry := range entries {
				id, grouped, keep := groupKey(phase, entry)
				if !grouped {
					res.Dropped++
					continue
				}
				if _, seen := groups[id]; !seen {
					order = append(order, id)
				}
				groups[id] = append(groups[id], keep)
			}

			for _, id := range order {
				res.Steps = append(res.Steps, StepGroup{
					Section: section.Name,
					Phase:   phase,
					Number:  step,
					TraceID: id,
					Entries: groups[id],
				})
				step++
			}
		}
	}
	return res
}

// groupKey extracts the correlation id for one raw entry. For phases with
// a known schema the id lives inside the first present inner field; for
// the rest it is the entry's own traceId and the entry is wrapped under
// its phase tag the way the runtime console shows it.
func groupKey(phase string, entry map[string]any) (id string, grouped bool, keep map[string]any) {
	fields, known := phaseFields[phase]
	if !known {
		raw, ok := entry["traceId"].(string)
		if !ok || raw == "" {
			return "", false, nil
		}
		return raw, true, map[string]any{phase: entry}
	}

	for _, field := range fields {
		inner, ok := entry[field].(map[string]any)
		if !ok {
			continue
		}
		raw, ok := inner["traceId"].(string)
		if !ok || raw == "" {
			return "", false, nil
		}
		return raw, true, entry
	}
	return "", false, nil
}

// Render formats the group's entries as indented JSON blocks, one per
// entry, separated by blank lines.
func (g StepGroup) Render() string {
	blocks := make([]string, 0, len(g.Entries))
	for _, entry := range g.Entries {
		b, err := json.MarshalIndent(entry, "", "  ")
		if err != nil {
			// Entries come from decoded JSON, so this only fires on
			// values injected by tests.
			blocks = append(blocks, fmt.Sprintf("<unrenderable entry: %v>", err))
			continue
		}
		blocks = append(blocks, string(b))
	}
	return strings.Join(blocks, "\n\n")
}

// CitationUnit is one numbered display unit: a retrieved reference paired
// with the generated response part it supported.
type CitationUnit struct {
	Number                int
	GeneratedResponsePart map[string]any
	RetrievedReference    map[string]any
}

// FlattenCitations expands each citation into one unit per retrieved
// reference, numbered sequentially. Citations without references produce
// no units.
func FlattenCitations(citations []map[string]any) []CitationUnit {
	var units []CitationUnit
	n := 1
	for _, citation := range citations {
		part, _ := citation["generatedResponsePart"].(map[string]any)
		if part == nil {
			part = map[string]any{}
		}
		refs, _ := citation["retrievedReferences"].([]any)
		for _, raw := range refs {
			ref, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			units = append(units, CitationUnit{
				Number:                n,
				GeneratedResponsePart: part,
				RetrievedReference:    ref,
			})
			n++
		}
	}
	return units
}

// Render formats the unit the way the runtime console shows a citation.
func (u CitationUnit) Render() string {
	b, err := json.MarshalIndent(map[string]any{
		"generatedResponsePart": u.GeneratedResponsePart,
		"retrievedReference":    u.RetrievedReference,
	}, "", "  ")
	if err != nil {
		return fmt.Sprintf("<unrenderable citation: %v>", err)
	}
	return string(b)
}
