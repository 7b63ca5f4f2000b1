package services

import (
	portsrepo "github.com/assacalos/easyconnect/internal/core/ports/repositories"
	portssvc "github.com/assacalos/easyconnect/internal/core/ports/services"
	"github.com/assacalos/easyconnect/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// opts are applied to every service, so they all share one policy, tracker and clock.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, opts ...Option) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}
	base := newBaseService(opts)
	container.Clock = base.Now

	container.Payment = NewPaymentService(repos.PaymentRepo, repos.InvoiceRepo, cfg.DefaultCurrency, opts...)
	container.Invoice = NewInvoiceService(repos.InvoiceRepo, cfg.DefaultCurrency, opts...)
	container.Bordereau = NewBordereauService(repos.BordereauRepo, opts...)
	container.Attendance = NewAttendanceService(repos.AttendanceRepo, opts...)
	container.Interview = NewInterviewService(repos.InterviewRepo, opts...)
	container.Schedule = NewScheduleService(repos.ScheduleRepo, repos.PaymentRepo, opts...)
	container.DeviceToken = NewDeviceTokenService(repos.DeviceTokenRepo, opts...)
	container.Auth = NewAuthService(cfg, repos.UserRepo, opts...)
	container.Sweep = NewOverdueSweeper(repos.PaymentRepo, repos.InvoiceRepo, opts...)

	// The dispatcher only delegates, so it is built last over the finished container.
	container.Lifecycle = NewLifecycleService(container)

	return container
}
