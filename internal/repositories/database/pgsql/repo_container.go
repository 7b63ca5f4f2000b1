package pgsql

import (
	portsrepo "github.com/assacalos/easyconnect/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		PaymentRepo:     newPgxPaymentRepository(dbPool),
		InvoiceRepo:     newPgxInvoiceRepository(dbPool),
		BordereauRepo:   newPgxBordereauRepository(dbPool),
		AttendanceRepo:  newPgxAttendanceRepository(dbPool),
		InterviewRepo:   newPgxInterviewRepository(dbPool),
		ScheduleRepo:    newPgxScheduleRepository(dbPool),
		UserRepo:        newPgxUserRepository(dbPool),
		DeviceTokenRepo: newPgxDeviceTokenRepository(dbPool),
	}
}
