package mapping

import (
	"github.com/assacalos/easyconnect/internal/core/domain"
	"github.com/assacalos/easyconnect/internal/models"
)

// ToModelAttendance converts a domain Attendance to a model Attendance
func ToModelAttendance(d domain.Attendance) models.Attendance {
	m := models.Attendance{
		AttendanceID:    d.AttendanceID,
		UserID:          d.UserID,
		PunchType:       string(d.Type),
		PunchedAt:       d.PunchedAt,
		Notes:           d.Notes,
		Status:          string(d.Status),
		ApprovedBy:      d.ApprovedBy,
		ApprovedAt:      d.ApprovedAt,
		ApprovalComment: d.ApprovalComment,
		RejectionReason: d.RejectionReason,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
	if d.Location != nil {
		lat, lng := d.Location.Latitude, d.Location.Longitude
		m.Latitude, m.Longitude = &lat, &lng
		m.Address = d.Location.Address
	}
	return m
}

// ToDomainAttendance converts a model Attendance to a domain Attendance.
// A location is present only when both coordinates are stored.
func ToDomainAttendance(m models.Attendance) domain.Attendance {
	d := domain.Attendance{
		AttendanceID:    m.AttendanceID,
		UserID:          m.UserID,
		Type:            domain.PunchType(m.PunchType),
		PunchedAt:       m.PunchedAt,
		Notes:           m.Notes,
		Status:          domain.AttendanceStatus(m.Status),
		ApprovedBy:      m.ApprovedBy,
		ApprovedAt:      m.ApprovedAt,
		ApprovalComment: m.ApprovalComment,
		RejectionReason: m.RejectionReason,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
	if m.Latitude != nil && m.Longitude != nil {
		d.Location = &domain.Location{Latitude: *m.Latitude, Longitude: *m.Longitude, Address: m.Address}
	}
	return d
}

// ToDomainAttendanceSlice converts a slice of model punches to domain punches
func ToDomainAttendanceSlice(ms []models.Attendance) []domain.Attendance {
	ds := make([]domain.Attendance, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAttendance(m)
	}
	return ds
}
