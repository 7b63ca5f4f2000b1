package mapping

import (
	"github.com/assacalos/easyconnect/internal/core/domain"
	"github.com/assacalos/easyconnect/internal/models"
)

// ToModelInterview converts a domain Interview to a model Interview
func ToModelInterview(d domain.Interview) models.Interview {
	return models.Interview{
		InterviewID:   d.InterviewID,
		ApplicationID: d.ApplicationID,
		InterviewerID: d.InterviewerID,
		ScheduledAt:   d.ScheduledAt,
		InterviewType: string(d.Type),
		Location:      d.Location,
		MeetingLink:   d.MeetingLink,
		Notes:         d.Notes,
		Feedback:      d.Feedback,
		Status:        string(d.Status),
		CompletedAt:   d.CompletedAt,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInterview converts a model Interview to a domain Interview
func ToDomainInterview(m models.Interview) domain.Interview {
	return domain.Interview{
		InterviewID:   m.InterviewID,
		ApplicationID: m.ApplicationID,
		InterviewerID: m.InterviewerID,
		ScheduledAt:   m.ScheduledAt,
		Type:          domain.InterviewType(m.InterviewType),
		Location:      m.Location,
		MeetingLink:   m.MeetingLink,
		Notes:         m.Notes,
		Feedback:      m.Feedback,
		Status:        domain.InterviewStatus(m.Status),
		CompletedAt:   m.CompletedAt,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
