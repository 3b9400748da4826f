package policy

import (
	"errors"

	"github.com/clinicops/clinic-scheduler/internal/session"
)

type Operation string

const (
	OpBookAppointment     Operation = "appointment.book"
	OpCancelAppointment   Operation = "appointment.cancel"
	OpMarkNoShow          Operation = "appointment.no_show"
	OpCompleteVisit       Operation = "appointment.complete"
	OpListAppointments    Operation = "appointment.list"
	OpListAllAppointments Operation = "appointment.list_all"
	OpReadConsultation    Operation = "consultation.read"
	OpReadInvoice         Operation = "invoice.read"

	OpReadDirectory   Operation = "directory.read"
	OpRegisterPatient Operation = "patient.register"
	OpManageDoctors   Operation = "doctor.manage"
	OpManageUsers     Operation = "user.manage"
	OpReadAuditLog    Operation = "audit.read"
	OpReadOwnSchedule Operation = "schedule.own"
)

var (
	ErrForbidden   = errors.New("forbidden")
	ErrNotAssigned = errors.New("appointment belongs to another doctor")
)

// Gate decides whether a session may run an operation. The scheduling core
// assumes the gate has already approved every call it receives.
type Gate interface {
	Authorize(s session.Session, op Operation) error
}

// RoleGate is a static role to operation table.
type RoleGate struct {
	rules map[session.Role]map[Operation]bool
}

func allow(ops ...Operation) map[Operation]bool {
	m := make(map[Operation]bool, len(ops))
	for _, op := range ops {
		m[op] = true
	}
	return m
}

func NewRoleGate() *RoleGate {
	return &RoleGate{
		rules: map[session.Role]map[Operation]bool{
			session.RoleAdmin: allow(
				OpBookAppointment, OpCancelAppointment, OpMarkNoShow, OpCompleteVisit,
				OpListAppointments, OpListAllAppointments, OpReadConsultation, OpReadInvoice,
				OpReadDirectory, OpRegisterPatient, OpManageDoctors, OpManageUsers,
				OpReadAuditLog,
			),
			session.RoleSecretary: allow(
				OpBookAppointment, OpCancelAppointment, OpMarkNoShow,
				OpListAppointments, OpListAllAppointments, OpReadInvoice,
				OpReadDirectory, OpRegisterPatient,
			),
			session.RoleDoctor: allow(
				OpMarkNoShow, OpCompleteVisit,
				OpListAppointments, OpReadConsultation,
				OpReadDirectory, OpReadOwnSchedule,
			),
		},
	}
}

func (g *RoleGate) Authorize(s session.Session, op Operation) error {
	if g.rules[s.Role][op] {
		return nil
	}
	return ErrForbidden
}

// AssignedTo limits a Doctor session to appointments of its linked doctor.
// Other roles are not scoped.
func AssignedTo(s session.Session, doctorID uint) error {
	if s.Role != session.RoleDoctor {
		return nil
	}
	if s.DoctorID == nil || *s.DoctorID != doctorID {
		return ErrNotAssigned
	}
	return nil
}

var _ Gate = (*RoleGate)(nil)
