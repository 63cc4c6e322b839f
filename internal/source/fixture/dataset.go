// Package fixture provides the demo dataset used when no data backend is configured, and by the
// seed command to populate a development database.
package fixture

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	appointmentdomain "bookingdesk/backend/internal/appointment/domain"
	auditdomain "bookingdesk/backend/internal/audit/domain"
	businessdomain "bookingdesk/backend/internal/business/domain"
	membershipdomain "bookingdesk/backend/internal/membership/domain"
	messagedomain "bookingdesk/backend/internal/message/domain"
)

// DemoOrgID is the business that owns the demo dataset.
const DemoOrgID = "7d1f3c1e-2a4b-4c59-9d0e-6f8a1b2c3d4e"

var idSpace = uuid.MustParse("b6f0a3c2-58d1-4e0b-9a57-1c2d3e4f5a6b")

// ID derives a stable UUID for a named fixture row so repeated seeding is idempotent.
func ID(name string) string {
	return uuid.NewSHA1(idSpace, []byte(name)).String()
}

type person struct {
	key   string
	name  string
	email string
	role  membershipdomain.Role
}

func staff() []person {
	return []person{
		{"owner", "Maya Patel", "maya@glowstudio.test", membershipdomain.RoleOwner},
		{"admin", "Leo Martins", "leo@glowstudio.test", membershipdomain.RoleAdmin},
		{"stylist1", "Ana Souza", "ana@glowstudio.test", membershipdomain.RoleMember},
		{"stylist2", "Tom Becker", "tom@glowstudio.test", membershipdomain.RoleMember},
	}
}

// Dataset is the typed demo data for one business plus the public directory.
type Dataset struct {
	OrgID          string
	Members        []membershipdomain.Membership
	AuditLogs      []auditdomain.AuditLog
	LoginHistory   []auditdomain.LoginEvent
	SecurityEvents []auditdomain.SecurityEvent
	Appointments   []appointmentdomain.Appointment
	Messages       []messagedomain.Message
	Businesses     []businessdomain.Business
}

// UserID returns the user id of a staff fixture by key (owner, admin, stylist1, stylist2).
func UserID(key string) string {
	return ID("user:" + key)
}

// Demo builds a fresh dataset with timestamps relative to now, so date presets select a
// realistic share of it. Each call returns new slices.
func Demo(now time.Time) Dataset {
	now = now.UTC().Truncate(time.Minute)
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	ago := func(d time.Duration) time.Time { return now.Add(-d) }
	hours := func(n int) time.Duration { return time.Duration(n) * time.Hour }
	days := func(n int) time.Duration { return time.Duration(n) * 24 * time.Hour }

	people := staff()
	d := Dataset{OrgID: DemoOrgID}
	for i, p := range people {
		status := membershipdomain.StatusActive
		if i == len(people)-1 {
			status = membershipdomain.StatusInvited
		}
		d.Members = append(d.Members, membershipdomain.Membership{
			ID:        ID("member:" + p.key),
			UserID:    UserID(p.key),
			OrgID:     DemoOrgID,
			Name:      p.name,
			Email:     p.email,
			Role:      p.role,
			Status:    status,
			CreatedAt: ago(days(90 - i*10)),
		})
	}

	audits := []struct {
		who, action, resource string
		sev                   auditdomain.Severity
		at                    time.Duration
	}{
		{"owner", "create", "appointment", auditdomain.SeverityLow, hours(2)},
		{"admin", "update", "service", auditdomain.SeverityLow, hours(20)},
		{"owner", "delete", "team_member", auditdomain.SeverityHigh, days(3)},
		{"stylist1", "update", "appointment", auditdomain.SeverityLow, days(5)},
		{"admin", "update", "business_settings", auditdomain.SeverityMedium, days(12)},
		{"owner", "export", "audit_logs", auditdomain.SeverityMedium, days(25)},
		{"admin", "revoke", "api_key", auditdomain.SeverityCritical, days(40)},
	}
	for i, a := range audits {
		p := lookup(people, a.who)
		d.AuditLogs = append(d.AuditLogs, auditdomain.AuditLog{
			ID:        ID("audit:" + strconv.Itoa(i)),
			OrgID:     DemoOrgID,
			UserID:    UserID(p.key),
			UserName:  p.name,
			Action:    a.action,
			Resource:  a.resource,
			Severity:  a.sev,
			IP:        "203.0.113." + strconv.Itoa(10+i),
			CreatedAt: ago(a.at),
		})
	}

	logins := []struct {
		who     string
		outcome auditdomain.LoginOutcome
		agent   string
		at      time.Duration
	}{
		{"owner", auditdomain.LoginSuccess, "Mozilla/5.0 (Macintosh) Safari/17.2", hours(1)},
		{"stylist1", auditdomain.LoginFailed, "Mozilla/5.0 (iPhone) Mobile Safari", hours(30)},
		{"stylist1", auditdomain.LoginSuccess, "Mozilla/5.0 (iPhone) Mobile Safari", hours(29)},
		{"admin", auditdomain.LoginSuccess, "Mozilla/5.0 (Windows NT 10.0) Chrome/120.0", days(6)},
		{"stylist2", auditdomain.LoginFailed, "curl/8.4.0", days(15)},
	}
	for i, l := range logins {
		p := lookup(people, l.who)
		d.LoginHistory = append(d.LoginHistory, auditdomain.LoginEvent{
			ID:        ID("login:" + strconv.Itoa(i)),
			OrgID:     DemoOrgID,
			UserID:    UserID(p.key),
			UserName:  p.name,
			Outcome:   l.outcome,
			IP:        "198.51.100." + strconv.Itoa(20+i),
			UserAgent: l.agent,
			CreatedAt: ago(l.at),
		})
	}

	events := []struct {
		who, kind, desc string
		sev             auditdomain.Severity
		at              time.Duration
	}{
		{"stylist2", "brute_force", "5 failed sign-ins within 10 minutes", auditdomain.SeverityHigh, days(15)},
		{"admin", "api_key_revoked", "Integration key revoked after rotation", auditdomain.SeverityMedium, days(40)},
		{"owner", "new_device", "Sign-in from a new device in Lisbon", auditdomain.SeverityLow, hours(1)},
	}
	for i, e := range events {
		p := lookup(people, e.who)
		d.SecurityEvents = append(d.SecurityEvents, auditdomain.SecurityEvent{
			ID:          ID("security:" + strconv.Itoa(i)),
			OrgID:       DemoOrgID,
			UserID:      UserID(p.key),
			UserName:    p.name,
			EventType:   e.kind,
			Severity:    e.sev,
			Description: e.desc,
			CreatedAt:   ago(e.at),
		})
	}

	bookings := []struct {
		client, email, service, staffKey string
		status                           appointmentdomain.Status
		start                            time.Duration
		minutes                          int
		notes                            string
	}{
		{"Carla Diaz", "carla@example.com", "Haircut", "stylist1", appointmentdomain.StatusConfirmed, hours(10), 45, ""},
		{"Ben Ortiz", "ben@example.com", "Beard trim", "stylist2", appointmentdomain.StatusPending, hours(14), 30, "First visit"},
		{"Ivy Chen", "ivy@example.com", "Color", "stylist1", appointmentdomain.StatusCompleted, -days(2), 120, ""},
		{"Omar Haddad", "omar@example.com", "Haircut", "stylist2", appointmentdomain.StatusCancelled, -days(4), 45, "Called to cancel"},
		{"Lena Vogel", "lena@example.com", "Manicure", "stylist1", appointmentdomain.StatusCompleted, -days(20), 60, ""},
		{"Carla Diaz", "carla@example.com", "Color", "stylist1", appointmentdomain.StatusPending, days(6), 120, ""},
	}
	for i, b := range bookings {
		p := lookup(people, b.staffKey)
		starts := day.Add(b.start)
		d.Appointments = append(d.Appointments, appointmentdomain.Appointment{
			ID:          ID("appointment:" + strconv.Itoa(i)),
			OrgID:       DemoOrgID,
			ClientName:  b.client,
			ClientEmail: b.email,
			ServiceName: b.service,
			StaffID:     UserID(p.key),
			StaffName:   p.name,
			Status:      b.status,
			StartsAt:    starts,
			EndsAt:      starts.Add(time.Duration(b.minutes) * time.Minute),
			Notes:       b.notes,
			CreatedAt:   ago(days(30 - i*4)),
		})
	}

	msgs := []struct {
		from, to, subject, body string
		status                  messagedomain.Status
		at                      time.Duration
	}{
		{"Carla Diaz", "Ana Souza", "Running late", "I will be 10 minutes late today.", messagedomain.StatusUnread, hours(3)},
		{"Ben Ortiz", "Tom Becker", "Parking", "Is there parking near the studio?", messagedomain.StatusRead, days(1)},
		{"Maya Patel", "Leo Martins", "Holiday hours", "Please update the holiday opening hours.", messagedomain.StatusArchived, days(18)},
		{"Ivy Chen", "Ana Souza", "Thank you", "Love the new color, thanks!", messagedomain.StatusRead, days(2)},
	}
	for i, m := range msgs {
		d.Messages = append(d.Messages, messagedomain.Message{
			ID:            ID("message:" + strconv.Itoa(i)),
			OrgID:         DemoOrgID,
			SenderName:    m.from,
			RecipientName: m.to,
			Subject:       m.subject,
			Body:          m.body,
			Status:        m.status,
			CreatedAt:     ago(m.at),
		})
	}

	directory := []businessdomain.Business{
		{Name: "Glow Studio", Category: "salon", City: "Lisbon", Country: "PT", Description: "Hair and color studio in Príncipe Real", Rating: 4.8},
		{Name: "Iron Temple", Category: "fitness", City: "Berlin", Country: "DE", Description: "Strength gym with personal training", Rating: 4.5},
		{Name: "Calm Clinic", Category: "health", City: "Lisbon", Country: "PT", Description: "Physiotherapy and massage", Rating: 4.9},
		{Name: "Paw Spa", Category: "pets", City: "Porto", Country: "PT", Description: "Grooming for dogs and cats", Rating: 4.2},
		{Name: "Night Ink", Category: "tattoo", City: "Berlin", Country: "DE", Description: "Fine line tattoo studio", Rating: 4.6, Status: businessdomain.StatusSuspended},
	}
	for i := range directory {
		b := directory[i]
		b.ID = ID("business:" + b.Name)
		b.CreatedAt = ago(days(200 - i*30))
		_ = b.Validate()
		d.Businesses = append(d.Businesses, b)
	}
	return d
}

func lookup(people []person, key string) person {
	for _, p := range people {
		if p.key == key {
			return p
		}
	}
	return person{key: key, name: key}
}
