// Package shift implementa el turno diario de caja del biller y el arqueo
// de entrega de efectivo al manager. El cierre de turno está condicionado a
// un arqueo no rechazado, y un arqueo pendiente o rechazado sin resolver
// bloquea el siguiente check-in.
package shift

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/application/ledger"
	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
	"github.com/jhoicas/Comercio-api/pkg/logger"
)

// Notifier aviso de plantilla al manager o al biller. Post-commit, mejor esfuerzo.
type Notifier interface {
	Notify(ctx context.Context, templateID, recipient string, placeholders []string, attachmentURL string) error
}

// Service casos de uso de turno y arqueo.
type Service struct {
	txRunner   repository.TxRunner
	reads      repository.Tx
	employees  repository.EmployeeRepository
	ledger     *ledger.Ledger
	notifier   Notifier
	templateID string
	log        *logger.Logger
}

// NewService construye el servicio de turnos. notifier puede ser nil.
func NewService(
	txRunner repository.TxRunner,
	reads repository.Tx,
	employees repository.EmployeeRepository,
	lg *ledger.Ledger,
	notifier Notifier,
	templateID string,
	log *logger.Logger,
) *Service {
	return &Service{
		txRunner:   txRunner,
		reads:      reads,
		employees:  employees,
		ledger:     lg,
		notifier:   notifier,
		templateID: templateID,
		log:        log,
	}
}

// CheckIn abre el turno del día. Se rechaza si ya hay uno abierto hoy o si
// el biller arrastra un arqueo pendiente o rechazado sin resolver.
func (s *Service) CheckIn(ctx context.Context, id dto.Identity, in dto.CheckInRequest) (*dto.RegisterResponse, error) {
	if in.OpeningBalance.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	var reg *entity.CounterRegister

	err := s.txRunner.Run(ctx, func(tx repository.Tx) error {
		open, err := tx.Shifts.GetOpenRegisterForUpdate(id.EmployeeID, now)
		if err != nil {
			return err
		}
		if open != nil {
			return domain.ErrShiftAlreadyOpen
		}
		blocking, err := tx.Shifts.ListBlockingByBiller(id.EmployeeID)
		if err != nil {
			return err
		}
		if len(blocking) > 0 {
			return domain.ErrHandoverOutstanding
		}

		reg = &entity.CounterRegister{
			ID:             uuid.New().String(),
			BillerID:       id.EmployeeID,
			BranchID:       id.BranchID,
			CompanyID:      id.CompanyID,
			OpeningBalance: in.OpeningBalance,
			Status:         entity.RegisterOpen,
			ShiftStart:     now,
		}
		return tx.Shifts.CreateRegister(reg)
	})
	if err != nil {
		return nil, err
	}
	return registerResponse(reg), nil
}

// CheckOut cierra el turno abierto de hoy. Exige un arqueo no rechazado que
// referencie el turno: primero se entrega el efectivo, después se cierra.
func (s *Service) CheckOut(ctx context.Context, id dto.Identity, in dto.CheckOutRequest) (*dto.RegisterResponse, error) {
	if in.ClosingBalance.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	var reg *entity.CounterRegister

	err := s.txRunner.Run(ctx, func(tx repository.Tx) error {
		open, err := tx.Shifts.GetOpenRegisterForUpdate(id.EmployeeID, now)
		if err != nil {
			return err
		}
		if open == nil {
			return domain.ErrNoOpenShift
		}
		handover, err := tx.Shifts.GetNonRejectedByRegister(open.ID)
		if err != nil {
			return err
		}
		if handover == nil {
			return domain.ErrHandoverRequired
		}
		if err := tx.Shifts.CloseRegister(open.ID, in.ClosingBalance, now); err != nil {
			return err
		}
		open.Status = entity.RegisterClosed
		open.ClosingBalance = in.ClosingBalance
		open.ShiftEnd = &now
		reg = open
		return nil
	})
	if err != nil {
		return nil, err
	}
	return registerResponse(reg), nil
}

// CreateHandover registra un arqueo PENDING del biller hacia el manager y
// le avisa. Sin register_id explícito se usa el turno abierto de hoy.
func (s *Service) CreateHandover(ctx context.Context, id dto.Identity, in dto.CreateHandoverRequest) (*dto.HandoverResponse, error) {
	if in.ManagerID == "" || in.CashAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	manager, err := s.employees.GetByID(in.ManagerID)
	if err != nil || manager == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	var handover *entity.CashHandover

	err = s.txRunner.Run(ctx, func(tx repository.Tx) error {
		registerID := in.RegisterID
		if registerID == "" {
			open, err := tx.Shifts.GetOpenRegister(id.EmployeeID, now)
			if err != nil {
				return err
			}
			if open == nil {
				return domain.ErrNoOpenShift
			}
			registerID = open.ID
		} else {
			reg, err := tx.Shifts.GetRegisterByID(registerID)
			if err != nil || reg == nil {
				return domain.ErrNotFound
			}
			if reg.BillerID != id.EmployeeID {
				return domain.ErrForbidden
			}
		}

		handover = &entity.CashHandover{
			ID:         uuid.New().String(),
			RegisterID: registerID,
			BillerID:   id.EmployeeID,
			ManagerID:  in.ManagerID,
			BranchID:   id.BranchID,
			CompanyID:  id.CompanyID,
			CashAmount: in.CashAmount,
			Status:     entity.HandoverPending,
			Remarks:    in.Remarks,
			CreatedAt:  now,
		}
		return tx.Shifts.CreateHandover(handover)
	})
	if err != nil {
		return nil, err
	}

	s.notify(manager.Phone, []string{manager.Name, handover.CashAmount.StringFixed(2)})
	return handoverResponse(handover), nil
}

// ResolveHandover aprueba o rechaza un arqueo PENDING. El rechazo exige
// remarks. La aprobación saca el efectivo de la caja de la sucursal con su
// fila de auditoría, en la misma transacción que el cambio de estado.
func (s *Service) ResolveHandover(ctx context.Context, id dto.Identity, handoverID string, in dto.ResolveHandoverRequest) (*dto.HandoverResponse, error) {
	if !in.Approve && in.Remarks == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var handover *entity.CashHandover

	err := s.txRunner.Run(ctx, func(tx repository.Tx) error {
		h, err := tx.Shifts.GetHandoverForUpdate(handoverID)
		if err != nil || h == nil {
			return domain.ErrNotFound
		}
		if h.Status != entity.HandoverPending {
			return domain.ErrInvalidStateTransition
		}

		status := entity.HandoverRejected
		if in.Approve {
			status = entity.HandoverApproved
			// El efectivo entregado sale de la caja de la sucursal
			if _, err := s.ledger.AdjustAccount(tx, entity.AccountCash, h.BranchID, h.CashAmount.Neg(), ledger.Audit{
				TransactionType: entity.FinTxnBranchCashTransfer,
				PaymentMethod:   entity.PaymentCash,
				ReferenceNumber: h.ID,
				EmployeeID:      id.EmployeeID,
				BranchID:        h.BranchID,
				CompanyID:       h.CompanyID,
				Description:     "entrega de efectivo de turno",
			}); err != nil {
				return err
			}
		}
		if err := tx.Shifts.UpdateHandoverStatus(h.ID, status, id.EmployeeID, in.Remarks, now); err != nil {
			return err
		}
		h.Status = status
		h.ManagerID = id.EmployeeID
		if in.Remarks != "" {
			h.Remarks = in.Remarks
		}
		h.ApprovalDate = &now
		handover = h
		return nil
	})
	if err != nil {
		return nil, err
	}

	if biller, err := s.employees.GetByID(handover.BillerID); err == nil && biller != nil {
		s.notify(biller.Phone, []string{biller.Name, handover.Status})
	}
	return handoverResponse(handover), nil
}

// GetOpenRegister devuelve el turno abierto de hoy del biller, si existe.
func (s *Service) GetOpenRegister(ctx context.Context, id dto.Identity) (*dto.RegisterResponse, error) {
	reg, err := s.reads.Shifts.GetOpenRegister(id.EmployeeID, time.Now())
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, domain.ErrNoOpenShift
	}
	return registerResponse(reg), nil
}

func (s *Service) notify(phone string, placeholders []string) {
	if s.notifier == nil || phone == "" {
		return
	}
	go func() {
		if err := s.notifier.Notify(context.Background(), s.templateID, phone, placeholders, ""); err != nil {
			s.log.Error().Err(err).Msg("no se pudo enviar el aviso de arqueo")
		}
	}()
}

func registerResponse(r *entity.CounterRegister) *dto.RegisterResponse {
	return &dto.RegisterResponse{
		ID:             r.ID,
		BillerID:       r.BillerID,
		BranchID:       r.BranchID,
		OpeningBalance: r.OpeningBalance,
		ClosingBalance: r.ClosingBalance,
		Status:         r.Status,
		ShiftStart:     r.ShiftStart,
		ShiftEnd:       r.ShiftEnd,
	}
}

func handoverResponse(h *entity.CashHandover) *dto.HandoverResponse {
	return &dto.HandoverResponse{
		ID:           h.ID,
		RegisterID:   h.RegisterID,
		BillerID:     h.BillerID,
		ManagerID:    h.ManagerID,
		CashAmount:   h.CashAmount,
		Status:       h.Status,
		Remarks:      h.Remarks,
		ApprovalDate: h.ApprovalDate,
	}
}
