// Package notify delivers WhatsApp service notifications through a
// templated messaging API, behind a rate-limited FIFO queue so a burst of
// service entries never hammers the provider.
package notify

import (
	"strconv"
	"strings"
	"time"
)

// maxDetailsLen caps the free-text parameter; the WhatsApp template
// rejects longer values.
const maxDetailsLen = 200

// Message carries everything a service notification needs. CategoryName
// decides routing: Bolt-category services additionally go to the Bolt
// number.
type Message struct {
	Date           time.Time
	ScooterID      string
	CurrentKm      int
	NextKm         int
	ServiceDetails string
	CategoryName   string
}

// Valid reports whether the message has the fields the template requires.
func (m Message) Valid() bool {
	return !m.Date.IsZero() && m.ScooterID != "" && m.CurrentKm > 0 && m.NextKm > 0
}

// IsBolt reports whether the message should also go to the Bolt number.
func (m Message) IsBolt() bool {
	return strings.Contains(strings.ToLower(m.CategoryName), "bolt")
}

// formatMessageDate renders dates the en-GB way the fleet staff expect.
func formatMessageDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// formatKm renders an odometer reading with thousands separators.
func formatKm(km int) string {
	s := strconv.Itoa(km)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// formatDetails collapses whitespace and truncates to the template limit.
func formatDetails(details string) string {
	s := strings.Join(strings.Fields(details), " ")
	if len(s) > maxDetailsLen {
		s = s[:maxDetailsLen]
	}
	return s
}

// templateParams returns the ordered body parameters for the "hsm"
// template: date, scooter, current km, next km, details.
func (m Message) templateParams() []string {
	return []string{
		formatMessageDate(m.Date),
		m.ScooterID,
		formatKm(m.CurrentKm),
		formatKm(m.NextKm),
		formatDetails(m.ServiceDetails),
	}
}
