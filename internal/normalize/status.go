package normalize

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Agent is one autonomous backend agent.
type Agent struct {
	Key    string
	Name   string
	Status string
}

// Event is a recent backend event.
type Event struct {
	Type   string
	Source string
}

func (e Event) String() string {
	return e.Type + " - " + e.Source
}

// SystemStatus is a full snapshot of backend agent state. Each poll
// replaces the previous value.
type SystemStatus struct {
	Agents []Agent
	Events []Event
}

// AgentCount returns the number of reported agents.
func (s SystemStatus) AgentCount() int {
	return len(s.Agents)
}

// NormalizeStatus reads a system-status payload.
func NormalizeStatus(raw json.RawMessage) SystemStatus {
	var out SystemStatus
	if !gjson.ValidBytes(raw) {
		return out
	}
	payload := gjson.ParseBytes(raw)

	agents := payload.Get("autonomous_agents")
	if !agents.IsObject() {
		agents = gjson.Result{}
	}
	agents.ForEach(func(key, agent gjson.Result) bool {
		out.Agents = append(out.Agents, Agent{
			Key:    key.String(),
			Name:   textOr(agent.Get("name"), key.String()),
			Status: textOr(agent.Get("status"), "idle"),
		})
		return true
	})
	payload.Get("recent_events").ForEach(func(_, ev gjson.Result) bool {
		out.Events = append(out.Events, Event{
			Type:   textOr(ev.Get("type"), "unknown"),
			Source: textOr(ev.Get("source"), "unknown"),
		})
		return true
	})
	return out
}
