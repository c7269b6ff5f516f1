package alerts

import (
	"log"
	"time"

	"nipco-portal/internal/database"
	"nipco-portal/internal/models"

	"github.com/robfig/cron/v3"
)

// Poller re-evaluates every tank on a fixed interval and appends
// notifications for newly crossed thresholds. Dedup happens against the
// alert keys already stored, so an unchanged network inserts nothing.
type Poller struct {
	cron *cron.Cron
}

// NewPoller wires the classification sweep onto a 30-second schedule.
func NewPoller() (*Poller, error) {
	c := cron.New()
	p := &Poller{cron: c}
	if _, err := c.AddFunc("@every 30s", p.Sweep); err != nil {
		return nil, err
	}
	return p, nil
}

// Start launches the background schedule.
func (p *Poller) Start() {
	p.cron.Start()
	log.Println("🚀 Tank alert poller started (every 30s)")
}

// Stop halts the schedule and waits for a running sweep to finish.
func (p *Poller) Stop() {
	ctx := p.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 Tank alert poller stopped")
}

// Sweep runs one classification pass over all tanks.
func (p *Poller) Sweep() {
	var tanks []models.Tank
	if err := database.DB.Find(&tanks).Error; err != nil {
		log.Println("⚠️ Alert sweep: failed to load tanks:", err)
		return
	}

	fresh := BuildTankAlerts(tanks, time.Now())
	if len(fresh) == 0 {
		return
	}

	var existing []string
	if err := database.DB.Model(&models.Notification{}).
		Where("alert_key <> ''").
		Pluck("alert_key", &existing).Error; err != nil {
		log.Println("⚠️ Alert sweep: failed to load existing alerts:", err)
		return
	}

	seen := make(map[string]bool, len(existing))
	for _, k := range existing {
		seen[k] = true
	}

	newAlerts := Dedup(fresh, seen)
	if len(newAlerts) == 0 {
		return
	}

	if err := database.DB.Create(&newAlerts).Error; err != nil {
		log.Println("⚠️ Alert sweep: failed to insert notifications:", err)
		return
	}
	log.Printf("🔔 Alert sweep: %d new tank alert(s)", len(newAlerts))
}
