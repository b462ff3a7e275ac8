package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"taller_str/internal/domain/entities"
	mock_interfaces "taller_str/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type orderMocks struct {
	repo     *mock_interfaces.MockIOrderRepository
	parts    *mock_interfaces.MockIPartRepository
	services *mock_interfaces.MockIServiceRepository
	settings *mock_interfaces.MockISettingsRepository
	notifs   *mock_interfaces.MockINotificationRepository
}

func newOrderUseCase(t *testing.T) (*OrderUseCase, orderMocks) {
	ctrl := gomock.NewController(t)
	m := orderMocks{
		repo:     mock_interfaces.NewMockIOrderRepository(ctrl),
		parts:    mock_interfaces.NewMockIPartRepository(ctrl),
		services: mock_interfaces.NewMockIServiceRepository(ctrl),
		settings: mock_interfaces.NewMockISettingsRepository(ctrl),
		notifs:   mock_interfaces.NewMockINotificationRepository(ctrl),
	}
	return NewOrderUseCase(m.repo, m.parts, m.services, m.settings, m.notifs), m
}

func echoSave(_ context.Context, o entities.ServiceOrder) (entities.ServiceOrder, error) {
	return o, nil
}

func TestOrderUseCase_Create(t *testing.T) {
	t.Run("number generation error", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.repo.EXPECT().NextOrderNumber(gomock.Any()).Return("", errors.New("disk"))

		_, err := uc.Create(context.Background(), OrderDraft{CustomerName: "Ana"})
		if err == nil || err.Error() != "disk" {
			t.Fatalf("expected disk error, got %v", err)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.repo.EXPECT().NextOrderNumber(gomock.Any()).Return("ORD-202608-0001", nil)
		m.repo.EXPECT().Save(gomock.Any(), gomock.AssignableToTypeOf(entities.ServiceOrder{})).DoAndReturn(echoSave)
		m.notifs.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, n entities.Notification) (entities.Notification, error) {
				if n.Type != entities.NotificationOrderCreated {
					t.Fatalf("expected order_created notification, got %s", n.Type)
				}
				if n.OrderNumber != "ORD-202608-0001" {
					t.Fatalf("unexpected notification order number: %s", n.OrderNumber)
				}
				return n, nil
			})

		o, err := uc.Create(context.Background(), OrderDraft{
			CustomerName:  "Ana García",
			CustomerPhone: "+54 11 5555-1234",
			DeviceType:    "notebook",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if o.ID == "" {
			t.Fatalf("expected generated id")
		}
		if o.OrderNumber != "ORD-202608-0001" {
			t.Fatalf("unexpected order number: %s", o.OrderNumber)
		}
		if o.Status != entities.OrderStatusRecibido {
			t.Fatalf("expected status recibido, got %s", o.Status)
		}
		if o.BudgetStatus != entities.BudgetStatusNone {
			t.Fatalf("expected budget none, got %s", o.BudgetStatus)
		}
		if o.StatusHistory == nil || len(o.StatusHistory) != 0 {
			t.Fatalf("expected empty status history, got %+v", o.StatusHistory)
		}
		if o.InternalNotes == nil || o.DevicePhotos == nil || o.UsedParts == nil || o.Services == nil {
			t.Fatalf("expected empty slices, not nil: %+v", o)
		}
		if o.CreatedAt.IsZero() || o.UpdatedAt.IsZero() {
			t.Fatalf("expected timestamps")
		}
	})

	t.Run("notification failure does not fail creation", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.repo.EXPECT().NextOrderNumber(gomock.Any()).Return("ORD-202608-0002", nil)
		m.repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(echoSave)
		m.notifs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Notification{}, errors.New("disk"))

		if _, err := uc.Create(context.Background(), OrderDraft{CustomerName: "Ana"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestOrderUseCase_Getters(t *testing.T) {
	t.Run("GetByID invalid id", func(t *testing.T) {
		uc, _ := newOrderUseCase(t)
		_, err := uc.GetByID(context.Background(), "   ")
		if !errors.Is(err, ErrInvalidOrderID) {
			t.Fatalf("expected ErrInvalidOrderID, got %v", err)
		}
	})

	t.Run("GetByID not found", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "id-1").Return(entities.ServiceOrder{}, nil)

		_, err := uc.GetByID(context.Background(), "id-1")
		if !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})

	t.Run("GetByNumber invalid", func(t *testing.T) {
		uc, _ := newOrderUseCase(t)
		_, err := uc.GetByNumber(context.Background(), "")
		if !errors.Is(err, ErrInvalidOrderNumber) {
			t.Fatalf("expected ErrInvalidOrderNumber, got %v", err)
		}
	})

	t.Run("GetByNumber success", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		expected := entities.ServiceOrder{ID: "id-1", OrderNumber: "ORD-202608-0001"}
		m.repo.EXPECT().GetByNumber(gomock.Any(), "ORD-202608-0001").Return(expected, nil)

		o, err := uc.GetByNumber(context.Background(), " ORD-202608-0001 ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if o.ID != "id-1" {
			t.Fatalf("unexpected order: %+v", o)
		}
	})

	t.Run("SearchByPhone no digits short-circuits", func(t *testing.T) {
		uc, _ := newOrderUseCase(t)
		res, err := uc.SearchByPhone(context.Background(), "abc-")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res) != 0 {
			t.Fatalf("expected empty result, got %+v", res)
		}
	})

	t.Run("SearchByPhone strips formatting", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.repo.EXPECT().SearchByPhone(gomock.Any(), "1155551234").Return([]entities.ServiceOrder{{ID: "id-1"}}, nil)

		res, err := uc.SearchByPhone(context.Background(), "(11) 5555-1234")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res) != 1 {
			t.Fatalf("expected one order, got %d", len(res))
		}
	})
}

func TestOrderUseCase_UpdateStatus(t *testing.T) {
	base := func(status entities.OrderStatus, budget entities.BudgetStatus) entities.ServiceOrder {
		return entities.ServiceOrder{
			ID:            "id-1",
			OrderNumber:   "ORD-202608-0001",
			CustomerName:  "Ana",
			DeviceBrand:   "Lenovo",
			DeviceModel:   "T14",
			Status:        status,
			BudgetStatus:  budget,
			StatusHistory: []entities.StatusHistoryEntry{},
		}
	}
	statusOf := func(s entities.OrderStatus) *entities.OrderStatus { return &s }

	t.Run("invalid status", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "id-1").Return(base(entities.OrderStatusRecibido, entities.BudgetStatusNone), nil)

		_, _, err := uc.Update(context.Background(), "id-1", OrderPatch{Status: statusOf("enviado")})
		if !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("expected ErrInvalidStatus, got %v", err)
		}
	})

	t.Run("gate blocks work statuses while pending", func(t *testing.T) {
		for _, target := range []entities.OrderStatus{
			entities.OrderStatusReparando, entities.OrderStatusListo, entities.OrderStatusEntregado,
		} {
			uc, m := newOrderUseCase(t)
			m.repo.EXPECT().GetByID(gomock.Any(), "id-1").Return(base(entities.OrderStatusDiagnosticando, entities.BudgetStatusPending), nil)

			_, _, err := uc.Update(context.Background(), "id-1", OrderPatch{Status: statusOf(target)})
			if !errors.Is(err, ErrBudgetGateBlocked) {
				t.Fatalf("status %s: expected ErrBudgetGateBlocked, got %v", target, err)
			}
		}
	})

	t.Run("gate blocks after rejection", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "id-1").Return(base(entities.OrderStatusDiagnosticando, entities.BudgetStatusRejected), nil)

		_, _, err := uc.Update(context.Background(), "id-1", OrderPatch{Status: statusOf(entities.OrderStatusReparando)})
		if !errors.Is(err, ErrBudgetGateBlocked) {
			t.Fatalf("expected ErrBudgetGateBlocked, got %v", err)
		}
	})

	t.Run("pending budget still allows diagnosticando", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "id-1").Return(base(entities.OrderStatusRecibido, entities.BudgetStatusPending), nil)
		m.repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(echoSave)

		o, _, err := uc.Update(context.Background(), "id-1", OrderPatch{Status: statusOf(entities.OrderStatusDiagnosticando)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if o.Status != entities.OrderStatusDiagnosticando {
			t.Fatalf("unexpected status: %s", o.Status)
		}
	})

	t.Run("approved budget opens the gate and appends one history entry", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "id-1").Return(base(entities.OrderStatusDiagnosticando, entities.BudgetStatusApproved), nil)
		m.repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(echoSave)

		o, wa, err := uc.Update(context.Background(), "id-1", OrderPatch{
			Status:           statusOf(entities.OrderStatusReparando),
			StatusChangeNote: "repuesto disponible",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if wa != "" {
			t.Fatalf("expected no whatsapp message, got %q", wa)
		}
		if len(o.StatusHistory) != 1 {
			t.Fatalf("expected exactly one history entry, got %d", len(o.StatusHistory))
		}
		h := o.StatusHistory[0]
		if h.From != entities.OrderStatusDiagnosticando || h.To != entities.OrderStatusReparando {
			t.Fatalf("unexpected history entry: %+v", h)
		}
		if h.Note != "repuesto disponible" || h.Date.IsZero() {
			t.Fatalf("unexpected history entry: %+v", h)
		}
	})

	t.Run("same status appends nothing", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "id-1").Return(base(entities.OrderStatusReparando, entities.BudgetStatusApproved), nil)
		m.repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(echoSave)

		o, _, err := uc.Update(context.Background(), "id-1", OrderPatch{Status: statusOf(entities.OrderStatusReparando)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(o.StatusHistory) != 0 {
			t.Fatalf("expected no history entries, got %d", len(o.StatusHistory))
		}
	})

	t.Run("listo returns the ready whatsapp message", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "id-1").Return(base(entities.OrderStatusReparando, entities.BudgetStatusApproved), nil)
		m.repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(echoSave)
		m.settings.EXPECT().Get(gomock.Any()).Return(entities.DefaultSettings(), nil)

		_, wa, err := uc.Update(context.Background(), "id-1", OrderPatch{Status: statusOf(entities.OrderStatusListo)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(wa, "Ana") || !strings.Contains(wa, "Lenovo T14") || !strings.Contains(wa, "ORD-202608-0001") {
			t.Fatalf("placeholders not replaced: %q", wa)
		}
	})

	t.Run("entregado emits order_completed", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "id-1").Return(base(entities.OrderStatusListo, entities.BudgetStatusApproved), nil)
		m.repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(echoSave)
		m.notifs.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, n entities.Notification) (entities.Notification, error) {
				if n.Type != entities.NotificationOrderCompleted {
					t.Fatalf("expected order_completed, got %s", n.Type)
				}
				return n, nil
			})

		if _, _, err := uc.Update(context.Background(), "id-1", OrderPatch{Status: statusOf(entities.OrderStatusEntregado)}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("backward move is allowed", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "id-1").Return(base(entities.OrderStatusListo, entities.BudgetStatusApproved), nil)
		m.repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(echoSave)

		o, _, err := uc.Update(context.Background(), "id-1", OrderPatch{Status: statusOf(entities.OrderStatusReparando)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if o.Status != entities.OrderStatusReparando {
			t.Fatalf("unexpected status: %s", o.Status)
		}
	})
}

func TestOrderUseCase_UpdateFieldsAndStock(t *testing.T) {
	t.Run("nil fields untouched, set fields applied", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "id-1").Return(entities.ServiceOrder{
			ID: "id-1", OrderNumber: "ORD-202608-0001", CustomerName: "Ana", Diagnosis: "pantalla rota", EstimatedCost: 500,
		}, nil)
		m.repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(echoSave)

		diag := "pantalla y bisagra"
		o, _, err := uc.Update(context.Background(), "id-1", OrderPatch{Diagnosis: &diag})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if o.Diagnosis != "pantalla y bisagra" {
			t.Fatalf("diagnosis not applied: %q", o.Diagnosis)
		}
		if o.CustomerName != "Ana" || o.EstimatedCost != 500 {
			t.Fatalf("untouched fields changed: %+v", o)
		}
		if o.OrderNumber != "ORD-202608-0001" {
			t.Fatalf("order number must be immutable")
		}
	})

	t.Run("used part increase decrements stock by the delta", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "id-1").Return(entities.ServiceOrder{
			ID: "id-1",
			UsedParts: []entities.UsedPart{
				{PartID: "p-1", PartName: "Pantalla", Quantity: 1, UnitCost: 120},
			},
		}, nil)
		m.parts.EXPECT().ReduceStock(gomock.Any(), "p-1", 2).Return(entities.Part{ID: "p-1"}, nil)
		m.parts.EXPECT().ReduceStock(gomock.Any(), "p-2", 1).Return(entities.Part{ID: "p-2"}, nil)
		m.repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(echoSave)

		_, _, err := uc.Update(context.Background(), "id-1", OrderPatch{
			UsedParts: []entities.UsedPart{
				{PartID: "p-1", PartName: "Pantalla", Quantity: 3, UnitCost: 120},
				{PartID: "p-2", PartName: "Teclado", Quantity: 1, UnitCost: 45},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("used part decrease touches no stock", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "id-1").Return(entities.ServiceOrder{
			ID: "id-1",
			UsedParts: []entities.UsedPart{
				{PartID: "p-1", PartName: "Pantalla", Quantity: 3, UnitCost: 120},
			},
		}, nil)
		m.repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(echoSave)

		_, _, err := uc.Update(context.Background(), "id-1", OrderPatch{
			UsedParts: []entities.UsedPart{
				{PartID: "p-1", PartName: "Pantalla", Quantity: 1, UnitCost: 120},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestOrderUseCase_Delete(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		uc, _ := newOrderUseCase(t)
		if err := uc.Delete(context.Background(), ""); !errors.Is(err, ErrInvalidOrderID) {
			t.Fatalf("expected ErrInvalidOrderID, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.repo.EXPECT().Delete(gomock.Any(), "id-1").Return(false, nil)
		if err := uc.Delete(context.Background(), "id-1"); !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.repo.EXPECT().Delete(gomock.Any(), "id-1").Return(true, nil)
		if err := uc.Delete(context.Background(), "id-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestOrderUseCase_SendBudget(t *testing.T) {
	t.Run("zero manual estimate rejected", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "id-1").Return(entities.ServiceOrder{ID: "id-1"}, nil)

		_, _, err := uc.SendBudget(context.Background(), "id-1", nil, "")
		if !errors.Is(err, ErrZeroBudget) {
			t.Fatalf("expected ErrZeroBudget, got %v", err)
		}
	})

	t.Run("unknown service id", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "id-1").Return(entities.ServiceOrder{ID: "id-1"}, nil)
		m.services.EXPECT().GetByID(gomock.Any(), "svc-x").Return(entities.RepairService{}, nil)

		_, _, err := uc.SendBudget(context.Background(), "id-1", []string{"svc-x"}, "")
		if !errors.Is(err, ErrServiceNotFound) {
			t.Fatalf("expected ErrServiceNotFound, got %v", err)
		}
	})

	t.Run("manual estimate stands without services", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "id-1").Return(entities.ServiceOrder{
			ID: "id-1", OrderNumber: "ORD-202608-0001", CustomerName: "Ana",
			EstimatedCost: 500, PartsCost: 150,
		}, nil)
		m.repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(echoSave)
		m.settings.EXPECT().Get(gomock.Any()).Return(entities.DefaultSettings(), nil)

		o, msg, err := uc.SendBudget(context.Background(), "id-1", nil, "incluye mano de obra")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if o.EstimatedCost != 500 || o.PartsCost != 150 {
			t.Fatalf("manual costs changed: %+v", o)
		}
		if o.BudgetStatus != entities.BudgetStatusPending {
			t.Fatalf("expected pending, got %s", o.BudgetStatus)
		}
		if o.BudgetSentAt == nil || o.BudgetNote != "incluye mano de obra" {
			t.Fatalf("budget metadata not set: %+v", o)
		}
		if msg == "" || !strings.Contains(msg, "ORD-202608-0001") {
			t.Fatalf("expected budget message, got %q", msg)
		}
	})

	t.Run("services recompute the estimate", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "id-1").Return(entities.ServiceOrder{
			ID: "id-1", OrderNumber: "ORD-202608-0001",
			EstimatedCost: 99, PartsCost: 1,
		}, nil)
		m.services.EXPECT().GetByID(gomock.Any(), "svc-1").Return(entities.RepairService{
			ID: "svc-1", Name: "Cambio de pantalla", BasePrice: 300, LinkedPartCost: 120,
		}, nil)
		m.services.EXPECT().GetByID(gomock.Any(), "svc-2").Return(entities.RepairService{
			ID: "svc-2", Name: "Mantenimiento", BasePrice: 450,
		}, nil)
		m.repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(echoSave)
		m.settings.EXPECT().Get(gomock.Any()).Return(entities.DefaultSettings(), nil)

		o, _, err := uc.SendBudget(context.Background(), "id-1", []string{"svc-1", "svc-2"}, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if o.EstimatedCost != 750 || o.PartsCost != 120 {
			t.Fatalf("expected 750/120, got %v/%v", o.EstimatedCost, o.PartsCost)
		}
		if len(o.Services) != 2 || o.Services[0].ServiceID != "svc-1" {
			t.Fatalf("unexpected snapshot: %+v", o.Services)
		}
	})

	t.Run("re-send clears the previous response", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		responded := time.Now().UTC().Add(-time.Hour)
		m.repo.EXPECT().GetByID(gomock.Any(), "id-1").Return(entities.ServiceOrder{
			ID: "id-1", OrderNumber: "ORD-202608-0001",
			EstimatedCost:     500,
			BudgetStatus:      entities.BudgetStatusRejected,
			BudgetRespondedAt: &responded,
			ClientNote:        "muy caro",
			ApprovalSignature: "data:image/png;base64,xxx",
		}, nil)
		m.repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(echoSave)
		m.settings.EXPECT().Get(gomock.Any()).Return(entities.DefaultSettings(), nil)

		o, _, err := uc.SendBudget(context.Background(), "id-1", nil, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if o.BudgetStatus != entities.BudgetStatusPending {
			t.Fatalf("expected pending, got %s", o.BudgetStatus)
		}
		if o.BudgetRespondedAt != nil || o.ClientNote != "" || o.ApprovalSignature != "" {
			t.Fatalf("previous response not cleared: %+v", o)
		}
	})
}

func TestOrderUseCase_RespondBudget(t *testing.T) {
	pending := func() entities.ServiceOrder {
		sent := time.Now().UTC().Add(-time.Hour)
		return entities.ServiceOrder{
			ID: "id-1", OrderNumber: "ORD-202608-0001", CustomerName: "Ana",
			BudgetStatus: entities.BudgetStatusPending, BudgetSentAt: &sent,
		}
	}

	t.Run("invalid action", func(t *testing.T) {
		uc, _ := newOrderUseCase(t)
		_, err := uc.RespondBudget(context.Background(), "id-1", "ORD-202608-0001", BudgetResponse{Action: "maybe"})
		if !errors.Is(err, ErrInvalidBudgetAction) {
			t.Fatalf("expected ErrInvalidBudgetAction, got %v", err)
		}
	})

	t.Run("token bound to another order", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "id-1").Return(pending(), nil)

		_, err := uc.RespondBudget(context.Background(), "id-1", "ORD-202608-0099", BudgetResponse{Action: BudgetActionReject})
		if !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})

	t.Run("no pending budget", func(t *testing.T) {
		for _, b := range []entities.BudgetStatus{
			entities.BudgetStatusNone, entities.BudgetStatusApproved, entities.BudgetStatusRejected,
		} {
			uc, m := newOrderUseCase(t)
			o := pending()
			o.BudgetStatus = b
			m.repo.EXPECT().GetByID(gomock.Any(), "id-1").Return(o, nil)

			_, err := uc.RespondBudget(context.Background(), "id-1", "ORD-202608-0001", BudgetResponse{Action: BudgetActionApprove, ApprovalSignature: "sig"})
			if !errors.Is(err, ErrNoPendingBudget) {
				t.Fatalf("budget %s: expected ErrNoPendingBudget, got %v", b, err)
			}
		}
	})

	t.Run("approve without signature", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "id-1").Return(pending(), nil)

		_, err := uc.RespondBudget(context.Background(), "id-1", "ORD-202608-0001", BudgetResponse{Action: BudgetActionApprove, ApprovalSignature: "  "})
		if !errors.Is(err, ErrSignatureRequired) {
			t.Fatalf("expected ErrSignatureRequired, got %v", err)
		}
	})

	t.Run("approve", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "id-1").Return(pending(), nil)
		m.repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, o entities.ServiceOrder) (entities.ServiceOrder, error) {
				if o.BudgetStatus != entities.BudgetStatusApproved {
					t.Fatalf("expected approved, got %s", o.BudgetStatus)
				}
				if o.ApprovalSignature != "data:image/png;base64,xxx" {
					t.Fatalf("signature not stored")
				}
				if o.BudgetRespondedAt == nil {
					t.Fatalf("responded timestamp not set")
				}
				return o, nil
			})
		m.notifs.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, n entities.Notification) (entities.Notification, error) {
				if n.Type != entities.NotificationBudgetApproved {
					t.Fatalf("expected budget_approved, got %s", n.Type)
				}
				return n, nil
			})

		status, err := uc.RespondBudget(context.Background(), "id-1", "ord-202608-0001", BudgetResponse{
			Action:            BudgetActionApprove,
			ApprovalSignature: "data:image/png;base64,xxx",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if status != entities.BudgetStatusApproved {
			t.Fatalf("expected approved, got %s", status)
		}
	})

	t.Run("reject needs no signature", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "id-1").Return(pending(), nil)
		m.repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(echoSave)
		m.notifs.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, n entities.Notification) (entities.Notification, error) {
				if n.Type != entities.NotificationBudgetRejected {
					t.Fatalf("expected budget_rejected, got %s", n.Type)
				}
				return n, nil
			})

		status, err := uc.RespondBudget(context.Background(), "id-1", "ORD-202608-0001", BudgetResponse{
			Action:     BudgetActionReject,
			ClientNote: "muy caro",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if status != entities.BudgetStatusRejected {
			t.Fatalf("expected rejected, got %s", status)
		}
	})
}

func TestOrderUseCase_VerifyContact(t *testing.T) {
	stored := entities.ServiceOrder{ID: "id-1", OrderNumber: "ORD-202608-0001", CustomerPhone: "+54 11 5555-1234"}

	t.Run("fragment too short", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.repo.EXPECT().GetByNumber(gomock.Any(), "ORD-202608-0001").Return(stored, nil)

		_, err := uc.VerifyContact(context.Background(), "ORD-202608-0001", "123")
		if !errors.Is(err, ErrPhoneTooShort) {
			t.Fatalf("expected ErrPhoneTooShort, got %v", err)
		}
	})

	t.Run("mismatch", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.repo.EXPECT().GetByNumber(gomock.Any(), "ORD-202608-0001").Return(stored, nil)

		_, err := uc.VerifyContact(context.Background(), "ORD-202608-0001", "9999")
		if !errors.Is(err, ErrPhoneMismatch) {
			t.Fatalf("expected ErrPhoneMismatch, got %v", err)
		}
	})

	t.Run("suffix match", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		m.repo.EXPECT().GetByNumber(gomock.Any(), "ORD-202608-0001").Return(stored, nil)

		o, err := uc.VerifyContact(context.Background(), "ORD-202608-0001", "5555-1234")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if o.ID != "id-1" {
			t.Fatalf("unexpected order: %+v", o)
		}
	})

	t.Run("full number matches a locally stored number", func(t *testing.T) {
		uc, m := newOrderUseCase(t)
		local := entities.ServiceOrder{ID: "id-1", OrderNumber: "ORD-202608-0001", CustomerPhone: "5555-1234"}
		m.repo.EXPECT().GetByNumber(gomock.Any(), "ORD-202608-0001").Return(local, nil)

		if _, err := uc.VerifyContact(context.Background(), "ORD-202608-0001", "+54 11 5555-1234"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
