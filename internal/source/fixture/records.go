package fixture

import (
	"time"

	appointmentdomain "bookingdesk/backend/internal/appointment/domain"
	auditdomain "bookingdesk/backend/internal/audit/domain"
	businessdomain "bookingdesk/backend/internal/business/domain"
	membershipdomain "bookingdesk/backend/internal/membership/domain"
	messagedomain "bookingdesk/backend/internal/message/domain"
	"bookingdesk/backend/internal/filter"
	"bookingdesk/backend/internal/source"
)

// Records converts the dataset's rows for c into generic records keyed by column name, with
// empty optional columns left out the way a NULL column is. orgID replaces the fixture org on
// tenant-scoped rows when non-empty.
func (d Dataset) Records(c source.Collection, orgID string) []filter.Record {
	if orgID == "" {
		orgID = d.OrgID
	}
	out := make([]filter.Record, 0)
	switch c {
	case source.CollectionAuditLogs:
		for _, a := range d.AuditLogs {
			out = append(out, AuditLogRecord(a, orgID))
		}
	case source.CollectionLoginHistory:
		for _, l := range d.LoginHistory {
			out = append(out, LoginEventRecord(l, orgID))
		}
	case source.CollectionSecurityEvents:
		for _, e := range d.SecurityEvents {
			out = append(out, SecurityEventRecord(e, orgID))
		}
	case source.CollectionTeamMembers:
		for _, m := range d.Members {
			out = append(out, MemberRecord(m, orgID))
		}
	case source.CollectionAppointments:
		for _, a := range d.Appointments {
			out = append(out, AppointmentRecord(a, orgID))
		}
	case source.CollectionMessages:
		for _, m := range d.Messages {
			out = append(out, MessageRecord(m, orgID))
		}
	case source.CollectionBusinesses:
		for _, b := range d.Businesses {
			out = append(out, BusinessRecord(b))
		}
	}
	return out
}

func AuditLogRecord(a auditdomain.AuditLog, orgID string) filter.Record {
	r := filter.Record{
		"id":         a.ID,
		"org_id":     orgID,
		"action":     a.Action,
		"resource":   a.Resource,
		"severity":   string(a.Severity),
		"created_at": a.CreatedAt,
	}
	put(r, "user_id", a.UserID)
	put(r, "user_name", a.UserName)
	put(r, "ip", a.IP)
	put(r, "metadata", a.Metadata)
	return r
}

func LoginEventRecord(l auditdomain.LoginEvent, orgID string) filter.Record {
	r := filter.Record{
		"id":         l.ID,
		"org_id":     orgID,
		"outcome":    string(l.Outcome),
		"created_at": l.CreatedAt,
	}
	put(r, "user_id", l.UserID)
	put(r, "user_name", l.UserName)
	put(r, "ip", l.IP)
	put(r, "user_agent", l.UserAgent)
	return r
}

func SecurityEventRecord(e auditdomain.SecurityEvent, orgID string) filter.Record {
	r := filter.Record{
		"id":         e.ID,
		"org_id":     orgID,
		"event_type": e.EventType,
		"severity":   string(e.Severity),
		"created_at": e.CreatedAt,
	}
	put(r, "user_id", e.UserID)
	put(r, "user_name", e.UserName)
	put(r, "description", e.Description)
	return r
}

func MemberRecord(m membershipdomain.Membership, orgID string) filter.Record {
	return filter.Record{
		"id":         m.ID,
		"org_id":     orgID,
		"user_id":    m.UserID,
		"name":       m.Name,
		"email":      m.Email,
		"role":       string(m.Role),
		"status":     string(m.Status),
		"created_at": m.CreatedAt,
	}
}

func AppointmentRecord(a appointmentdomain.Appointment, orgID string) filter.Record {
	r := filter.Record{
		"id":           a.ID,
		"org_id":       orgID,
		"client_name":  a.ClientName,
		"service_name": a.ServiceName,
		"status":       string(a.Status),
		"starts_at":    a.StartsAt,
		"created_at":   a.CreatedAt,
	}
	put(r, "client_email", a.ClientEmail)
	put(r, "staff_id", a.StaffID)
	put(r, "staff_name", a.StaffName)
	putTime(r, "ends_at", a.EndsAt)
	put(r, "notes", a.Notes)
	return r
}

func MessageRecord(m messagedomain.Message, orgID string) filter.Record {
	r := filter.Record{
		"id":             m.ID,
		"org_id":         orgID,
		"sender_name":    m.SenderName,
		"recipient_name": m.RecipientName,
		"subject":        m.Subject,
		"status":         string(m.Status),
		"created_at":     m.CreatedAt,
	}
	put(r, "body", m.Body)
	return r
}

func BusinessRecord(b businessdomain.Business) filter.Record {
	r := filter.Record{
		"id":         b.ID,
		"name":       b.Name,
		"category":   b.Category,
		"city":       b.City,
		"country":    b.Country,
		"rating":     b.Rating,
		"status":     string(b.Status),
		"created_at": b.CreatedAt,
	}
	put(r, "description", b.Description)
	return r
}

func put(r filter.Record, key, v string) {
	if v != "" {
		r[key] = v
	}
}

func putTime(r filter.Record, key string, v time.Time) {
	if !v.IsZero() {
		r[key] = v
	}
}
