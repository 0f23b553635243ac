package parse

import (
	"fmt"
	"strconv"
	"strings"
)

// Container terminal states. Anything else is treated as transitional.
const (
	statusRunning = "RUNNING"
	statusStopped = "STOPPED"
)

// formatTaskStateChange renders an "ECS Task State Change" detail into a
// per-container status summary.
func formatTaskStateChange(detail map[string]any) (string, error) {
	clusterName := shortName(stringField(detail, "clusterArn"))
	taskID := shortName(stringField(detail, "taskArn"))
	lastStatus := stringFieldOr(detail, "lastStatus", "UNKNOWN")
	desiredStatus := stringFieldOr(detail, "desiredStatus", "UNKNOWN")

	stoppedReason := stringField(detail, "stoppedReason")
	if stoppedReason == "" {
		stoppedReason = stringField(detail, "stopCode")
	}
	if stoppedReason == "" {
		stoppedReason = "N/A"
	}

	lines := []string{
		fmt.Sprintf("**Cluster:** `%s`", clusterName),
		fmt.Sprintf("**Task:** `%s`", taskID),
		fmt.Sprintf("**Status:** `%s` (Desired: `%s`)", lastStatus, desiredStatus),
		fmt.Sprintf("**Reason:** %s", stoppedReason),
		"",
		"**Containers:**",
	}

	containers, _ := detail["containers"].([]any)
	if len(containers) == 0 {
		lines = append(lines, "_No container info available_")
		return strings.Join(lines, "\n"), nil
	}

	for _, entry := range containers {
		c, _ := entry.(map[string]any)
		name := stringFieldOr(c, "name", "unknown")
		status := stringFieldOr(c, "lastStatus", "UNKNOWN")
		exitCode, hasExit := intField(c, "exitCode")
		reason := stringField(c, "reason")

		icon := "⚠️"
		if hasExit && exitCode == 0 {
			icon = "✅"
		}
		if status != statusRunning && status != statusStopped {
			icon = "🔄" // pending / provisioning
		}

		line := fmt.Sprintf("`%s`: %s", name, status)
		if hasExit {
			line += fmt.Sprintf(" (Exit: %d)", exitCode)
		}
		if reason != "" {
			line += " - " + reason
		}
		lines = append(lines, icon+" "+line)
	}

	return strings.Join(lines, "\n"), nil
}

// formatServiceAction renders an "ECS Service Action" detail.
func formatServiceAction(detail map[string]any) (string, error) {
	eventName := stringFieldOr(detail, "eventName", "Unknown Event")
	eventType := stringFieldOr(detail, "eventType", "INFO")
	clusterName := shortName(stringField(detail, "clusterArn"))

	var icon string
	switch eventType {
	case "WARN":
		icon = "⚠️ "
	case "ERROR":
		icon = "🔴 "
	case "INFO":
		icon = "ℹ️ "
	}

	lines := []string{
		fmt.Sprintf("**Event:** %s`%s`", icon, eventName),
		fmt.Sprintf("**Type:** `%s`", eventType),
		fmt.Sprintf("**Cluster:** `%s`", clusterName),
	}

	if providers, ok := detail["capacityProviderArns"].([]any); ok && len(providers) > 0 {
		names := make([]string, 0, len(providers))
		for _, p := range providers {
			if s, ok := p.(string); ok {
				names = append(names, s)
			}
		}
		lines = append(lines, "**Capacity Providers:** "+strings.Join(names, ", "))
	}

	if reason := stringField(detail, "reason"); reason != "" {
		lines = append(lines, "**Reason:** "+reason)
	}

	return strings.Join(lines, "\n"), nil
}

// shortName extracts the segment after the last path separator of an ARN,
// or the full identifier when it has no separator.
func shortName(arn string) string {
	if idx := strings.LastIndex(arn, "/"); idx >= 0 {
		return arn[idx+1:]
	}
	return arn
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func stringFieldOr(m map[string]any, key, def string) string {
	if s := stringField(m, key); s != "" {
		return s
	}
	return def
}

// intField reads a numeric field from a decoded JSON mapping. JSON numbers
// decode as float64; integers encoded as strings are accepted too.
func intField(m map[string]any, key string) (int, bool) {
	switch v := m[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n, true
		}
	}
	return 0, false
}
