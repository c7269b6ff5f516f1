// Package alerts turns tank fill levels into notifications. The classifier
// itself is a pure step function; the poller decides when it runs.
package alerts

import (
	"fmt"
	"time"

	"nipco-portal/internal/analytics"
	"nipco-portal/internal/models"

	"github.com/google/uuid"
)

// Alert is the classification of a single tank reading.
type Alert struct {
	Severity string
	Label    string
}

// Classify thresholds a tank percentage into a severity band.
// The bands are inclusive at the top: exactly 5% is still critical.
func Classify(percent float64) Alert {
	switch {
	case percent <= 5:
		return Alert{Severity: models.SeverityCritical, Label: "Tank Almost Empty"}
	case percent <= 10:
		return Alert{Severity: models.SeverityHigh, Label: "Low: Tank Level Warning"}
	case percent <= 20:
		return Alert{Severity: models.SeverityMedium, Label: "Warning: Tank Level Low"}
	default:
		return Alert{Severity: models.SeverityNone}
	}
}

// AlertKey builds the stable dedup id for a tank alert. Re-running
// classification on unchanged tank state produces the same keys, which is
// what keeps the poll loop from spamming duplicates.
func AlertKey(stationID, tankName, severity string) string {
	return fmt.Sprintf("%s-%s-%s", stationID, tankName, severity)
}

// BuildTankAlerts classifies every tank and synthesizes notification rows
// for those below threshold. Tanks above 20% produce nothing.
func BuildTankAlerts(tanks []models.Tank, now time.Time) []models.Notification {
	var out []models.Notification
	for _, t := range tanks {
		pct := analytics.TankPercent(t)
		alert := Classify(pct)
		if alert.Severity == models.SeverityNone {
			continue
		}
		out = append(out, models.Notification{
			ID:        uuid.NewString(),
			StationID: t.StationID,
			Type:      "tank_alert",
			Title:     alert.Label,
			Message:   fmt.Sprintf("%s (%s) is at %.1f%% capacity (%.0fL of %.0fL)", t.Name, t.FuelType, pct, t.CurrentLiters, t.CapacityLiters),
			Severity:  alert.Severity,
			AlertKey:  AlertKey(t.StationID, t.Name, alert.Severity),
			Timestamp: now,
		})
	}
	return out
}

// Dedup drops alerts whose key is already present in the existing set.
// Only genuinely new keys survive, so a second pass over unchanged tank
// state yields nothing.
func Dedup(fresh []models.Notification, existingKeys map[string]bool) []models.Notification {
	var out []models.Notification
	for _, n := range fresh {
		if existingKeys[n.AlertKey] {
			continue
		}
		out = append(out, n)
	}
	return out
}
