package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"taller_str/internal/domain/entities"
	"taller_str/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrderID     = errors.New("invalid order id")
	ErrInvalidOrderNumber = errors.New("invalid order number")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrBudgetGateBlocked  = errors.New("budget pending or rejected blocks this status")
	ErrNoPendingBudget    = errors.New("no pending budget to respond to")
	ErrSignatureRequired  = errors.New("approval signature required")
	ErrZeroBudget         = errors.New("budget total must be greater than zero")
	ErrInvalidBudgetAction = errors.New("invalid budget action")
	ErrPhoneTooShort      = errors.New("phone fragment too short")
	ErrPhoneMismatch      = errors.New("phone does not match the order")
)

// Budget response actions accepted from the client portal.
const (
	BudgetActionApprove = "approve"
	BudgetActionReject  = "reject"
)

// OrderDraft carries the intake fields for a new order. Everything is
// optional free text except what the admin form requires client-side.
type OrderDraft struct {
	CustomerName       string
	CustomerPhone      string
	CustomerEmail      string
	DeviceType         string
	DeviceBrand        string
	DeviceModel        string
	SerialNumber       string
	Accessories        string
	ProblemDescription string
	Diagnosis          string
	EstimatedCost      float64
	PartsCost          float64
	LaborCost          float64
	EstimatedDelivery  string
	Signature          string
	DevicePhotos       []string
	UsedParts          []entities.UsedPart
}

// OrderPatch is a partial update; nil fields are left unchanged.
// ID, order number and creation time are immutable regardless of input.
type OrderPatch struct {
	CustomerName       *string
	CustomerPhone      *string
	CustomerEmail      *string
	DeviceType         *string
	DeviceBrand        *string
	DeviceModel        *string
	SerialNumber       *string
	Accessories        *string
	ProblemDescription *string
	Diagnosis          *string
	DetailedDiagnosis  *string
	EstimatedCost      *float64
	PartsCost          *float64
	LaborCost          *float64
	EstimatedDelivery  *string
	Signature          *string
	DevicePhotos       []string
	UsedParts          []entities.UsedPart
	InternalNotes      []entities.InternalNote
	Status             *entities.OrderStatus
	StatusChangeNote   string
}

// BudgetResponse is the client's decision on a pending budget.
type BudgetResponse struct {
	Action            string
	ClientNote        string
	ApprovalSignature string
}

// IOrderUseCase exposes the order lifecycle:
//   - intake (Create) and admin edits (Update) with status-history tracking,
//     the budget gate and automatic part-stock decrements
//   - the budget sub-flow (SendBudget / RespondBudget)
//   - the public and portal lookups (GetByNumber, SearchByPhone,
//     VerifyContact)

type IOrderUseCase interface {
	Create(ctx context.Context, draft OrderDraft) (entities.ServiceOrder, error)
	List(ctx context.Context) ([]entities.ServiceOrder, error)
	GetByID(ctx context.Context, id string) (entities.ServiceOrder, error)
	GetByNumber(ctx context.Context, orderNumber string) (entities.ServiceOrder, error)
	SearchByPhone(ctx context.Context, phone string) ([]entities.ServiceOrder, error)
	Update(ctx context.Context, id string, patch OrderPatch) (entities.ServiceOrder, string, error)
	Delete(ctx context.Context, id string) error
	SendBudget(ctx context.Context, id string, serviceIDs []string, note string) (entities.ServiceOrder, string, error)
	RespondBudget(ctx context.Context, id, boundOrderNumber string, resp BudgetResponse) (entities.BudgetStatus, error)
	VerifyContact(ctx context.Context, orderNumber, phone string) (entities.ServiceOrder, error)
}

type OrderUseCase struct {
	repo         interfaces.IOrderRepository
	partRepo     interfaces.IPartRepository
	serviceRepo  interfaces.IServiceRepository
	settingsRepo interfaces.ISettingsRepository
	notifRepo    interfaces.INotificationRepository
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

func NewOrderUseCase(
	repo interfaces.IOrderRepository,
	partRepo interfaces.IPartRepository,
	serviceRepo interfaces.IServiceRepository,
	settingsRepo interfaces.ISettingsRepository,
	notifRepo interfaces.INotificationRepository,
) *OrderUseCase {
	return &OrderUseCase{
		repo:         repo,
		partRepo:     partRepo,
		serviceRepo:  serviceRepo,
		settingsRepo: settingsRepo,
		notifRepo:    notifRepo,
	}
}

func (u *OrderUseCase) Create(ctx context.Context, draft OrderDraft) (entities.ServiceOrder, error) {
	number, err := u.repo.NextOrderNumber(ctx)
	if err != nil {
		return entities.ServiceOrder{}, err
	}

	now := time.Now().UTC()
	o := entities.ServiceOrder{
		ID:                 uuid.NewString(),
		OrderNumber:        number,
		CustomerName:       draft.CustomerName,
		CustomerPhone:      draft.CustomerPhone,
		CustomerEmail:      draft.CustomerEmail,
		DeviceType:         draft.DeviceType,
		DeviceBrand:        draft.DeviceBrand,
		DeviceModel:        draft.DeviceModel,
		SerialNumber:       draft.SerialNumber,
		Accessories:        draft.Accessories,
		ProblemDescription: draft.ProblemDescription,
		Diagnosis:          draft.Diagnosis,
		EstimatedCost:      draft.EstimatedCost,
		PartsCost:          draft.PartsCost,
		LaborCost:          draft.LaborCost,
		EstimatedDelivery:  draft.EstimatedDelivery,
		Signature:          draft.Signature,
		DevicePhotos:       orEmpty(draft.DevicePhotos),
		UsedParts:          orEmptyParts(draft.UsedParts),
		Services:           []entities.SelectedService{},
		Status:             entities.OrderStatusRecibido,
		StatusHistory:      []entities.StatusHistoryEntry{},
		BudgetStatus:       entities.BudgetStatusNone,
		InternalNotes:      []entities.InternalNote{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	saved, err := u.repo.Save(ctx, o)
	if err != nil {
		return entities.ServiceOrder{}, err
	}

	u.notify(ctx, entities.NotificationOrderCreated, "Nueva orden",
		fmt.Sprintf("Orden %s creada para %s", saved.OrderNumber, saved.CustomerName), saved)

	return saved, nil
}

func (u *OrderUseCase) List(ctx context.Context) ([]entities.ServiceOrder, error) {
	return u.repo.List(ctx)
}

func (u *OrderUseCase) GetByID(ctx context.Context, id string) (entities.ServiceOrder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.ServiceOrder{}, ErrInvalidOrderID
	}
	o, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if o.ID == "" {
		return entities.ServiceOrder{}, ErrOrderNotFound
	}
	return o, nil
}

func (u *OrderUseCase) GetByNumber(ctx context.Context, orderNumber string) (entities.ServiceOrder, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return entities.ServiceOrder{}, ErrInvalidOrderNumber
	}
	o, err := u.repo.GetByNumber(ctx, orderNumber)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if o.ID == "" {
		return entities.ServiceOrder{}, ErrOrderNotFound
	}
	return o, nil
}

func (u *OrderUseCase) SearchByPhone(ctx context.Context, phone string) ([]entities.ServiceOrder, error) {
	digits := digitsOnly(phone)
	if digits == "" {
		return []entities.ServiceOrder{}, nil
	}
	return u.repo.SearchByPhone(ctx, digits)
}

// Update applies a partial admin edit. A status change validates the budget
// gate and appends exactly one history entry; used-part quantity increases
// decrement inventory stock by the delta. When the order becomes "listo" the
// customer-ready WhatsApp message is returned for manual dispatch.
func (u *OrderUseCase) Update(ctx context.Context, id string, patch OrderPatch) (entities.ServiceOrder, string, error) {
	o, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.ServiceOrder{}, "", err
	}

	now := time.Now().UTC()
	oldStatus := o.Status

	if patch.Status != nil && *patch.Status != oldStatus {
		newStatus := *patch.Status
		if !newStatus.Valid() {
			return entities.ServiceOrder{}, "", ErrInvalidStatus
		}
		if !o.BudgetStatus.CanEnterWithBudget(newStatus) {
			return entities.ServiceOrder{}, "", ErrBudgetGateBlocked
		}
		o.StatusHistory = append(o.StatusHistory, entities.StatusHistoryEntry{
			From: oldStatus,
			To:   newStatus,
			Date: now,
			Note: patch.StatusChangeNote,
		})
		o.Status = newStatus
	}

	if patch.UsedParts != nil {
		if err := u.reduceStockForDeltas(ctx, o.UsedParts, patch.UsedParts); err != nil {
			return entities.ServiceOrder{}, "", err
		}
		o.UsedParts = patch.UsedParts
	}

	applyPatchFields(&o, patch)
	o.UpdatedAt = now

	saved, err := u.repo.Save(ctx, o)
	if err != nil {
		return entities.ServiceOrder{}, "", err
	}

	waMessage := ""
	if saved.Status != oldStatus {
		switch saved.Status {
		case entities.OrderStatusListo:
			waMessage = u.composeTemplate(ctx, saved, func(s entities.BusinessSettings) string {
				return s.WhatsappTemplateReady
			})
		case entities.OrderStatusEntregado:
			u.notify(ctx, entities.NotificationOrderCompleted, "Orden entregada",
				fmt.Sprintf("Orden %s entregada a %s", saved.OrderNumber, saved.CustomerName), saved)
		}
	}

	return saved, waMessage, nil
}

func (u *OrderUseCase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidOrderID
	}
	deleted, err := u.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrOrderNotFound
	}
	return nil
}

// SendBudget starts (or restarts) a budget cycle.
//
// With service ids the estimate and parts cost are recomputed from the
// catalog snapshot; without services the order's manually entered values
// stand. A zero total is rejected. Any prior client response is cleared.
// Returns the order plus the budget WhatsApp message for manual dispatch.
func (u *OrderUseCase) SendBudget(ctx context.Context, id string, serviceIDs []string, note string) (entities.ServiceOrder, string, error) {
	o, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.ServiceOrder{}, "", err
	}

	if serviceIDs != nil {
		selected, err := u.snapshotServices(ctx, serviceIDs)
		if err != nil {
			return entities.ServiceOrder{}, "", err
		}
		o.Services = selected
	}

	costs := entities.ComputeCosts(o)
	if costs.Total <= 0 {
		return entities.ServiceOrder{}, "", ErrZeroBudget
	}
	if len(o.Services) > 0 {
		o.EstimatedCost = costs.Total
		o.PartsCost = costs.PartsCost
	}

	now := time.Now().UTC()
	o.BudgetStatus = entities.BudgetStatusPending
	o.BudgetSentAt = &now
	o.BudgetRespondedAt = nil
	o.BudgetNote = note
	o.ClientNote = ""
	o.ApprovalSignature = ""
	o.UpdatedAt = now

	saved, err := u.repo.Save(ctx, o)
	if err != nil {
		return entities.ServiceOrder{}, "", err
	}

	message := u.composeTemplate(ctx, saved, func(s entities.BusinessSettings) string {
		return s.WhatsappTemplateBudget
	})
	return saved, message, nil
}

// RespondBudget records the client's decision. Only valid while the budget is
// pending; approval requires a captured signature. boundOrderNumber is the
// order number the caller's portal token is bound to.
func (u *OrderUseCase) RespondBudget(ctx context.Context, id, boundOrderNumber string, resp BudgetResponse) (entities.BudgetStatus, error) {
	if resp.Action != BudgetActionApprove && resp.Action != BudgetActionReject {
		return "", ErrInvalidBudgetAction
	}

	o, err := u.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if !strings.EqualFold(o.OrderNumber, boundOrderNumber) {
		return "", ErrOrderNotFound
	}
	if o.BudgetStatus != entities.BudgetStatusPending {
		return "", ErrNoPendingBudget
	}

	now := time.Now().UTC()
	if resp.Action == BudgetActionApprove {
		if strings.TrimSpace(resp.ApprovalSignature) == "" {
			return "", ErrSignatureRequired
		}
		o.BudgetStatus = entities.BudgetStatusApproved
		o.ApprovalSignature = resp.ApprovalSignature
	} else {
		o.BudgetStatus = entities.BudgetStatusRejected
	}
	o.BudgetRespondedAt = &now
	o.ClientNote = resp.ClientNote
	o.UpdatedAt = now

	saved, err := u.repo.Save(ctx, o)
	if err != nil {
		return "", err
	}

	if saved.BudgetStatus == entities.BudgetStatusApproved {
		u.notify(ctx, entities.NotificationBudgetApproved, "Presupuesto aprobado",
			fmt.Sprintf("El cliente aprobó el presupuesto de la orden %s", saved.OrderNumber), saved)
	} else {
		u.notify(ctx, entities.NotificationBudgetRejected, "Presupuesto rechazado",
			fmt.Sprintf("El cliente rechazó el presupuesto de la orden %s", saved.OrderNumber), saved)
	}

	return saved.BudgetStatus, nil
}

// VerifyContact matches a phone fragment (>= 4 digits) against the order's
// stored phone by suffix, prefix or equality. Used to issue portal tokens.
func (u *OrderUseCase) VerifyContact(ctx context.Context, orderNumber, phone string) (entities.ServiceOrder, error) {
	o, err := u.GetByNumber(ctx, orderNumber)
	if err != nil {
		return entities.ServiceOrder{}, err
	}

	input := digitsOnly(phone)
	stored := digitsOnly(o.CustomerPhone)
	if len(input) < 4 {
		return entities.ServiceOrder{}, ErrPhoneTooShort
	}
	if !strings.HasSuffix(stored, input) && !strings.HasSuffix(input, stored) && stored != input {
		return entities.ServiceOrder{}, ErrPhoneMismatch
	}
	return o, nil
}

func (u *OrderUseCase) snapshotServices(ctx context.Context, serviceIDs []string) ([]entities.SelectedService, error) {
	selected := []entities.SelectedService{}
	for _, id := range serviceIDs {
		svc, err := u.serviceRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if svc.ID == "" {
			return nil, ErrServiceNotFound
		}
		selected = append(selected, entities.SelectedService{
			ServiceID:      svc.ID,
			Name:           svc.Name,
			BasePrice:      svc.BasePrice,
			LinkedPartCost: svc.LinkedPartCost,
		})
	}
	return selected, nil
}

func (u *OrderUseCase) reduceStockForDeltas(ctx context.Context, oldParts, newParts []entities.UsedPart) error {
	for _, np := range newParts {
		oldQty := 0
		for _, op := range oldParts {
			if op.PartID == np.PartID {
				oldQty = op.Quantity
				break
			}
		}
		if diff := np.Quantity - oldQty; diff > 0 {
			if _, err := u.partRepo.ReduceStock(ctx, np.PartID, diff); err != nil {
				return err
			}
		}
	}
	return nil
}

// notify records an internal notification; failures are logged and swallowed
// so they never fail the main operation.
func (u *OrderUseCase) notify(ctx context.Context, typ entities.NotificationType, title, message string, o entities.ServiceOrder) {
	if u.notifRepo == nil {
		return
	}
	_, err := u.notifRepo.Create(ctx, entities.Notification{
		ID:          uuid.NewString(),
		Type:        typ,
		Title:       title,
		Message:     message,
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		log.Printf("[orders][usecase] notification %s failed order=%s: %v", typ, o.OrderNumber, err)
	}
}

func (u *OrderUseCase) composeTemplate(ctx context.Context, o entities.ServiceOrder, pick func(entities.BusinessSettings) string) string {
	if u.settingsRepo == nil {
		return ""
	}
	settings, err := u.settingsRepo.Get(ctx)
	if err != nil {
		log.Printf("[orders][usecase] settings load failed order=%s: %v", o.OrderNumber, err)
		return ""
	}
	device := strings.TrimSpace(o.DeviceBrand + " " + o.DeviceModel)
	if device == "" {
		device = o.DeviceType
	}
	msg := pick(settings)
	msg = strings.ReplaceAll(msg, "{nombre}", o.CustomerName)
	msg = strings.ReplaceAll(msg, "{equipo}", device)
	msg = strings.ReplaceAll(msg, "{orden}", o.OrderNumber)
	return msg
}

func applyPatchFields(o *entities.ServiceOrder, patch OrderPatch) {
	setString(&o.CustomerName, patch.CustomerName)
	setString(&o.CustomerPhone, patch.CustomerPhone)
	setString(&o.CustomerEmail, patch.CustomerEmail)
	setString(&o.DeviceType, patch.DeviceType)
	setString(&o.DeviceBrand, patch.DeviceBrand)
	setString(&o.DeviceModel, patch.DeviceModel)
	setString(&o.SerialNumber, patch.SerialNumber)
	setString(&o.Accessories, patch.Accessories)
	setString(&o.ProblemDescription, patch.ProblemDescription)
	setString(&o.Diagnosis, patch.Diagnosis)
	setString(&o.DetailedDiagnosis, patch.DetailedDiagnosis)
	setString(&o.EstimatedDelivery, patch.EstimatedDelivery)
	setString(&o.Signature, patch.Signature)
	setFloat(&o.EstimatedCost, patch.EstimatedCost)
	setFloat(&o.PartsCost, patch.PartsCost)
	setFloat(&o.LaborCost, patch.LaborCost)
	if patch.DevicePhotos != nil {
		o.DevicePhotos = patch.DevicePhotos
	}
	if patch.InternalNotes != nil {
		o.InternalNotes = patch.InternalNotes
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func orEmptyParts(p []entities.UsedPart) []entities.UsedPart {
	if p == nil {
		return []entities.UsedPart{}
	}
	return p
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
