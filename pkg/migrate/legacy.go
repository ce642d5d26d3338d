// Package migrate imports legacy flat "job" definitions and rebuilds
// them as workflow graphs. Construction is deterministic: a synthetic
// start node, one node per action in original order, a trigger chain,
// and an optional trailing persistence node. No action is ever
// dropped, and missing legacy fields default to empty rather than
// failing the import.
package migrate

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/fieldline/conduit/pkg/catalog"
	"github.com/fieldline/conduit/pkg/graph"
)

// Job is the legacy flat job document.
type Job struct {
	ID          string   `json:"id" mapstructure:"id"`
	JobID       string   `json:"job_id" mapstructure:"job_id"`
	Name        string   `json:"name" mapstructure:"name"`
	Description string   `json:"description" mapstructure:"description"`
	Config      Config   `json:"config" mapstructure:"config"`
	Actions     []Action `json:"actions" mapstructure:"actions"`
}

// Config is the legacy execution policy block.
type Config struct {
	ErrorHandling string `json:"error_handling" mapstructure:"error_handling"`
	GlobalTimeout int    `json:"global_timeout" mapstructure:"global_timeout"`
}

// Action is one legacy step.
type Action struct {
	Type      string         `json:"type" mapstructure:"type"`
	Name      string         `json:"name" mapstructure:"name"`
	Targeting Targeting      `json:"targeting" mapstructure:"targeting"`
	Execution map[string]any `json:"execution" mapstructure:"execution"`
	Database  Database       `json:"database" mapstructure:"database"`
}

// Targeting is the legacy device-selection block.
type Targeting struct {
	Source       string `json:"source" mapstructure:"source"`
	NetworkRange string `json:"network_range" mapstructure:"network_range"`
}

// Database is the legacy result-persistence block. A non-empty table
// marks the action as database-writing.
type Database struct {
	Table     string   `json:"table" mapstructure:"table"`
	KeyFields []string `json:"key_fields" mapstructure:"key_fields"`
}

// actionTypes is the fixed lookup from legacy action type to catalog
// node type. Unmatched types fall back to the generic command node.
var actionTypes = map[string]string{
	"ping":          catalog.TypePingSweep,
	"ping_sweep":    catalog.TypePingSweep,
	"ssh":           catalog.TypeSSHCommand,
	"ssh_command":   catalog.TypeSSHCommand,
	"http":          catalog.TypeHTTPCheck,
	"http_check":    catalog.TypeHTTPCheck,
	"snmp":          catalog.TypeSNMPGet,
	"snmp_get":      catalog.TypeSNMPGet,
	"port_scan":     catalog.TypePortScan,
	"backup":        catalog.TypeConfigBackup,
	"config_backup": catalog.TypeConfigBackup,
	"notify":        catalog.TypeNotify,
}

// Row layout constants: one row, fixed spacing, no overlap.
const (
	layoutOriginX = 80
	layoutOriginY = 200
	layoutSpacing = 260
)

// FromMap decodes an untyped legacy payload. Decoding is weakly typed
// on purpose: legacy exports carry numbers as strings and key_fields
// as either a string or a list.
func FromMap(raw map[string]any) (Job, error) {
	var job Job
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &job,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Job{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Job{}, fmt.Errorf("migrate: decoding legacy job: %w", err)
	}
	return job, nil
}

// DecodeJob parses legacy job JSON bytes.
func DecodeJob(data []byte) (Job, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Job{}, fmt.Errorf("migrate: parsing legacy job: %w", err)
	}
	return FromMap(raw)
}

// Migrate rebuilds a legacy job as a workflow graph.
func Migrate(job Job) *graph.Workflow {
	id := job.ID
	if id == "" {
		id = job.JobID
	}
	name := job.Name
	if name == "" {
		name = "Imported job"
	}

	settings := graph.DefaultSettings()
	if job.Config.ErrorHandling != "" {
		settings.ErrorHandling = job.Config.ErrorHandling
	}
	if job.Config.GlobalTimeout > 0 {
		settings.Timeout = job.Config.GlobalTimeout
	}

	w := &graph.Workflow{
		ID:          id,
		Name:        name,
		Description: job.Description,
		Viewport:    graph.DefaultViewport(),
		Settings:    settings,
	}

	w.Nodes = append(w.Nodes, graph.Node{
		ID:       "start",
		Type:     catalog.TypeStart,
		Label:    "Start",
		Position: position(0),
	})

	prevID, prevHandle := "start", "trigger"
	for i, action := range job.Actions {
		nodeType, ok := actionTypes[action.Type]
		if !ok {
			nodeType = catalog.TypeCommand
		}
		label := action.Name
		if label == "" {
			label = action.Type
		}
		if label == "" {
			label = fmt.Sprintf("Action %d", i+1)
		}

		nodeID := fmt.Sprintf("action_%d", i+1)
		w.Nodes = append(w.Nodes, graph.Node{
			ID:         nodeID,
			Type:       nodeType,
			Label:      label,
			Position:   position(i + 1),
			Parameters: actionParameters(action),
		})
		w.Edges = append(w.Edges, chain(prevID, prevHandle, nodeID))

		prevID, prevHandle = nodeID, "success"
	}

	if db, ok := databaseConfig(job.Actions); ok {
		w.Nodes = append(w.Nodes, graph.Node{
			ID:       "db_write",
			Type:     catalog.TypeDBWrite,
			Label:    "Write Results",
			Position: position(len(job.Actions) + 1),
			Parameters: map[string]any{
				"table":      db.Table,
				"key_fields": append([]string{}, db.KeyFields...),
				"rows":       "{{$input}}",
			},
		})
		w.Edges = append(w.Edges, chain(prevID, prevHandle, "db_write"))
	}

	return w
}

// databaseConfig returns the first action's database block with a
// table set, if any.
func databaseConfig(actions []Action) (Database, bool) {
	for _, a := range actions {
		if a.Database.Table != "" {
			return a.Database, true
		}
	}
	return Database{}, false
}

func actionParameters(action Action) map[string]any {
	params := map[string]any{}
	if action.Targeting.Source != "" {
		params["source"] = action.Targeting.Source
	}
	if action.Targeting.NetworkRange != "" {
		params["network_range"] = action.Targeting.NetworkRange
	}
	// Execution keys ride through untouched; unknown keys must survive
	// for newer catalog versions.
	for k, v := range action.Execution {
		params[k] = v
	}
	return params
}

func chain(sourceID, sourceHandle, targetID string) graph.Edge {
	return graph.Edge{
		ID:           fmt.Sprintf("%s-%s", sourceID, targetID),
		Source:       sourceID,
		SourceHandle: sourceHandle,
		Target:       targetID,
		TargetHandle: "trigger",
		Kind:         graph.EdgeKindTrigger,
	}
}

func position(index int) graph.Position {
	return graph.Position{
		X: layoutOriginX + float64(index)*layoutSpacing,
		Y: layoutOriginY,
	}
}
